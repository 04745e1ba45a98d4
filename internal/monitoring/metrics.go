// Package monitoring exposes contest counters to Prometheus.
package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"

	"quiz-contest-service/internal/domain"
)

// Metrics groups the contest counters. A nil *Metrics records nothing.
type Metrics struct {
	QuizzesCreated prometheus.Counter
	Submissions    *prometheus.CounterVec
	Settlements    prometheus.Counter
	Payouts        *prometheus.CounterVec
	PayoutAmount   *prometheus.CounterVec
}

// New builds the counters and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		QuizzesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contest_quizzes_created_total",
			Help: "Number of funded quizzes created",
		}),
		Submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contest_submissions_total",
				Help: "Submission attempts by outcome",
			},
			[]string{"result"},
		),
		Settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "contest_settlements_total",
			Help: "Number of quizzes finalized",
		}),
		Payouts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contest_payouts_total",
				Help: "Transfers out of prize pools",
			},
			[]string{"kind"},
		),
		PayoutAmount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contest_payout_amount_total",
				Help: "Value transferred out of prize pools",
			},
			[]string{"kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.QuizzesCreated, m.Submissions, m.Settlements, m.Payouts, m.PayoutAmount)
	}
	return m
}

func (m *Metrics) QuizCreated() {
	if m == nil {
		return
	}
	m.QuizzesCreated.Inc()
}

// Submission records a submit attempt; err is the outcome.
func (m *Metrics) Submission(err error) {
	if m == nil {
		return
	}
	result := "accepted"
	if err != nil {
		result = domain.Kind(err)
	}
	m.Submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) Settled() {
	if m == nil {
		return
	}
	m.Settlements.Inc()
}

func (m *Metrics) Paid(kind domain.TransferKind, amount uint64) {
	if m == nil || amount == 0 {
		return
	}
	m.Payouts.WithLabelValues(string(kind)).Inc()
	m.PayoutAmount.WithLabelValues(string(kind)).Add(float64(amount))
}
