// Package escrow holds the prize pool of a single quiz.
package escrow

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"quiz-contest-service/internal/domain"
)

var errPayoutUnknown = errors.New("escrow: payout not issued by this pool")

// Pool is a funded balance that only shrinks through Pay and Sweep.
// A Pool must not be copied after Fund.
type Pool struct {
	mu      sync.Mutex
	funded  uint64
	balance uint64
	issued  map[*payoutToken]struct{}
}

// Payout is value taken out of a pool and not yet handed to anyone.
// It can be returned to the pool it came from with Refund.
type Payout struct {
	amount uint64
	token  *payoutToken
}

type payoutToken struct{ _ byte }

// Amount reports the value carried by the payout.
func (p Payout) Amount() uint64 { return p.amount }

// Fund merges deposits into a new pool.
func Fund(deposits []domain.Deposit) (*Pool, error) {
	total, err := Total(deposits)
	if err != nil {
		return nil, err
	}
	return &Pool{
		funded:  total,
		balance: total,
		issued:  make(map[*payoutToken]struct{}),
	}, nil
}

// Total sums deposit amounts, failing on overflow.
func Total(deposits []domain.Deposit) (uint64, error) {
	var total uint64
	for _, d := range deposits {
		if d.Amount > math.MaxUint64-total {
			return 0, domain.ErrFundingOverflow
		}
		total += d.Amount
	}
	return total, nil
}

// Pay removes amount from the balance.
func (p *Pool) Pay(amount uint64) (Payout, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if amount > p.balance {
		return Payout{}, fmt.Errorf("%w: requested %d, available %d", domain.ErrInsufficientFunds, amount, p.balance)
	}
	return p.issueLocked(amount), nil
}

// Sweep drains the whole balance. An empty pool yields a zero payout.
func (p *Pool) Sweep() Payout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.issueLocked(p.balance)
}

// Refund puts an undelivered payout back. Payouts from other pools, or ones
// already refunded, are rejected.
func (p *Pool) Refund(payout Payout) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.issued[payout.token]; !ok {
		return errPayoutUnknown
	}
	delete(p.issued, payout.token)
	p.balance += payout.amount
	return nil
}

// Settle forgets a delivered payout so it can no longer be refunded.
func (p *Pool) Settle(payout Payout) {
	p.mu.Lock()
	delete(p.issued, payout.token)
	p.mu.Unlock()
}

// Value returns the current balance.
func (p *Pool) Value() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance
}

// Funded returns the amount the pool was created with.
func (p *Pool) Funded() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.funded
}

// PaidOut returns the value that has left the pool, including undelivered payouts.
func (p *Pool) PaidOut() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.funded - p.balance
}

func (p *Pool) issueLocked(amount uint64) Payout {
	p.balance -= amount
	token := &payoutToken{}
	p.issued[token] = struct{}{}
	return Payout{amount: amount, token: token}
}
