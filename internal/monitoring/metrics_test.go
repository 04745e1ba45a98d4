package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"quiz-contest-service/internal/domain"
)

func TestMetricsCountOutcomes(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QuizCreated()
	m.Submission(nil)
	m.Submission(domain.ErrDuplicateSubmission)
	m.Settled()
	m.Paid(domain.TransferSweep, 250)
	m.Paid(domain.TransferSweep, 0)

	if got := testutil.ToFloat64(m.QuizzesCreated); got != 1 {
		t.Fatalf("quizzes created = %v", got)
	}
	if got := testutil.ToFloat64(m.Submissions.WithLabelValues("duplicate_submission")); got != 1 {
		t.Fatalf("duplicate submissions = %v", got)
	}
	if got := testutil.ToFloat64(m.Payouts.WithLabelValues("sweep")); got != 1 {
		t.Fatalf("zero payouts must not count, got %v", got)
	}
	if got := testutil.ToFloat64(m.PayoutAmount.WithLabelValues("sweep")); got != 250 {
		t.Fatalf("payout amount = %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.QuizCreated()
	m.Submission(nil)
	m.Settled()
	m.Paid(domain.TransferPrize, 1)
}
