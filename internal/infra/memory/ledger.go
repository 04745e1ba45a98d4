package memory

import (
	"context"
	"sync"

	"quiz-contest-service/internal/domain"
)

// Ledger records transfers and credits recipients in memory.
type Ledger struct {
	mu        sync.RWMutex
	balances  map[string]uint64
	transfers []domain.Transfer
	fail      error
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[string]uint64)}
}

func (l *Ledger) Transfer(_ context.Context, t domain.Transfer) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fail != nil {
		return l.fail
	}
	l.balances[t.Recipient] += t.Amount
	l.transfers = append(l.transfers, t)
	return nil
}

// FailWith makes every following transfer return err; nil restores normal behavior.
func (l *Ledger) FailWith(err error) {
	l.mu.Lock()
	l.fail = err
	l.mu.Unlock()
}

// Balance returns the total credited to recipient.
func (l *Ledger) Balance(recipient string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[recipient]
}

// Transfers returns a copy of the transfer log.
func (l *Ledger) Transfers() []domain.Transfer {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Transfer(nil), l.transfers...)
}
