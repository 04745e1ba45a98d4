package postgres

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"quiz-contest-service/internal/domain"
)

func TestLedgerRejectsAmountBeyondColumnRange(t *testing.T) {
	ledger := NewLedger(nil)
	err := ledger.Transfer(context.Background(), domain.Transfer{
		QuizID:    "quiz-1",
		Recipient: "winner",
		Amount:    math.MaxInt64 + 1,
		Kind:      domain.TransferPrize,
		At:        time.Unix(100, 0),
	})
	if !errors.Is(err, ErrAmountOutOfRange) {
		t.Fatalf("expected ErrAmountOutOfRange, got %v", err)
	}
}
