package certificate

import (
	"testing"
	"time"

	"quiz-contest-service/internal/domain"
)

func TestIssueForWinner(t *testing.T) {
	at := time.Unix(50, 0)
	winner := &domain.Winner{Participant: "x", Position: 1, Score: 1, Amount: 1_000_000}
	sub := &domain.Submission{Participant: "x", Score: 1}

	cert := Issue(Snapshot{QuizID: "q", Title: "Math"}, "x", winner, sub, winner.Amount, at, func() string { return "c-1" })
	if cert.ID != "c-1" || cert.QuizID != "q" || cert.QuizTitle != "Math" {
		t.Fatalf("unexpected identity fields: %+v", cert)
	}
	if cert.Position == nil || *cert.Position != 1 {
		t.Fatalf("expected position 1, got %v", cert.Position)
	}
	if !cert.HasScore || cert.Score != 1 || cert.Amount != 1_000_000 || !cert.ClaimedAt.Equal(at) {
		t.Fatalf("unexpected outcome fields: %+v", cert)
	}

	winner.Position = 5
	if *cert.Position != 1 {
		t.Fatalf("certificate must not alias winner")
	}
}

func TestIssueWithoutSubmission(t *testing.T) {
	cert := Issue(Snapshot{QuizID: "q"}, "ghost", nil, nil, 0, time.Time{}, nil)
	if cert.HasScore || cert.Score != 0 || cert.Position != nil || cert.Amount != 0 {
		t.Fatalf("expected empty outcome, got %+v", cert)
	}
	if cert.ID == "" {
		t.Fatalf("expected generated id")
	}
}
