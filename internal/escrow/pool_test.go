package escrow

import (
	"errors"
	"math"
	"testing"

	"quiz-contest-service/internal/domain"
)

func TestFundMergesDeposits(t *testing.T) {
	pool, err := Fund([]domain.Deposit{{Owner: "a", Amount: 600}, {Owner: "a", Amount: 400}})
	if err != nil {
		t.Fatalf("fund: %v", err)
	}
	if pool.Value() != 1000 || pool.Funded() != 1000 {
		t.Fatalf("expected 1000 funded, got value=%d funded=%d", pool.Value(), pool.Funded())
	}
}

func TestFundRejectsOverflow(t *testing.T) {
	_, err := Fund([]domain.Deposit{{Amount: math.MaxUint64}, {Amount: 1}})
	if !errors.Is(err, domain.ErrFundingOverflow) {
		t.Fatalf("expected overflow error, got %v", err)
	}
}

func TestPayAndSweepConserveValue(t *testing.T) {
	pool, _ := Fund([]domain.Deposit{{Amount: 1000}})

	payout, err := pool.Pay(300)
	if err != nil {
		t.Fatalf("pay: %v", err)
	}
	pool.Settle(payout)
	if payout.Amount() != 300 || pool.Value() != 700 {
		t.Fatalf("unexpected balances: payout=%d value=%d", payout.Amount(), pool.Value())
	}

	if _, err := pool.Pay(701); !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	if pool.Value() != 700 {
		t.Fatalf("failed pay must not change balance, got %d", pool.Value())
	}

	rest := pool.Sweep()
	if rest.Amount() != 700 || pool.Value() != 0 {
		t.Fatalf("sweep: payout=%d value=%d", rest.Amount(), pool.Value())
	}
	if pool.PaidOut() != pool.Funded() {
		t.Fatalf("drained pool should have paid out everything: %d != %d", pool.PaidOut(), pool.Funded())
	}

	empty := pool.Sweep()
	if empty.Amount() != 0 {
		t.Fatalf("expected zero sweep, got %d", empty.Amount())
	}
}

func TestRefundRestoresBalanceOnce(t *testing.T) {
	pool, _ := Fund([]domain.Deposit{{Amount: 500}})
	other, _ := Fund([]domain.Deposit{{Amount: 500}})

	payout, _ := pool.Pay(200)
	if err := other.Refund(payout); err == nil {
		t.Fatalf("expected foreign refund to fail")
	}
	if err := pool.Refund(payout); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if pool.Value() != 500 {
		t.Fatalf("expected balance restored, got %d", pool.Value())
	}
	if err := pool.Refund(payout); err == nil {
		t.Fatalf("expected double refund to fail")
	}
	if pool.Value() != 500 {
		t.Fatalf("double refund changed balance: %d", pool.Value())
	}
}
