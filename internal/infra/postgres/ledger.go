package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v4/pgxpool"

	"quiz-contest-service/internal/domain"
)

// ErrAmountOutOfRange is returned for transfers the BIGINT amount column cannot hold.
var ErrAmountOutOfRange = errors.New("payout amount exceeds ledger range")

// Ledger records prize-pool transfers in the payouts table.
type Ledger struct {
	pool *pgxpool.Pool
}

func NewLedger(pool *pgxpool.Pool) *Ledger {
	return &Ledger{pool: pool}
}

func (l *Ledger) Transfer(ctx context.Context, t domain.Transfer) error {
	if t.Amount > math.MaxInt64 {
		return fmt.Errorf("record payout: %w: %d", ErrAmountOutOfRange, t.Amount)
	}
	_, err := l.pool.Exec(ctx,
		`INSERT INTO payouts (quiz_id, recipient, amount, kind, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.QuizID, t.Recipient, int64(t.Amount), string(t.Kind), t.At,
	)
	if err != nil {
		return fmt.Errorf("record payout: %w", err)
	}
	return nil
}

// Balance sums everything paid to recipient.
func (l *Ledger) Balance(ctx context.Context, recipient string) (uint64, error) {
	var total int64
	err := l.pool.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payouts WHERE recipient=$1`, recipient).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("payout balance: %w", err)
	}
	return uint64(total), nil
}
