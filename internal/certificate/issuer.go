// Package certificate builds claim receipts.
package certificate

import (
	"time"

	"github.com/google/uuid"

	"quiz-contest-service/internal/domain"
)

// Snapshot is the part of a quiz a certificate records.
type Snapshot struct {
	QuizID string
	Title  string
}

// IDFunc mints certificate identifiers.
type IDFunc func() string

// NewID returns a random UUID string.
func NewID() string {
	return uuid.NewString()
}

// Issue builds a certificate for participant. winner and sub may be nil when the
// participant did not place or never submitted. Amount is whatever was paid.
func Issue(quiz Snapshot, participant string, winner *domain.Winner, sub *domain.Submission, amount uint64, claimedAt time.Time, id IDFunc) domain.Certificate {
	if id == nil {
		id = NewID
	}
	cert := domain.Certificate{
		ID:          id(),
		QuizID:      quiz.QuizID,
		QuizTitle:   quiz.Title,
		Participant: participant,
		Amount:      amount,
		ClaimedAt:   claimedAt,
	}
	if sub != nil {
		cert.Score = sub.Score
		cert.HasScore = true
	}
	if winner != nil {
		position := winner.Position
		cert.Position = &position
	}
	return cert
}
