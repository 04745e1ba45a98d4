// Package submission keeps the append-only answer records of a quiz.
package submission

import "quiz-contest-service/internal/domain"

// Store is an ordered list of submissions with a participant index.
// It is not safe for concurrent use; the owning quiz serializes access.
type Store struct {
	records []domain.Submission
	index   map[string]int
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Add appends s unless its participant already has a record.
func (s *Store) Add(sub domain.Submission) error {
	if _, ok := s.index[sub.Participant]; ok {
		return domain.ErrDuplicateSubmission
	}
	s.index[sub.Participant] = len(s.records)
	s.records = append(s.records, clone(sub))
	return nil
}

// Has reports whether participant already submitted.
func (s *Store) Has(participant string) bool {
	_, ok := s.index[participant]
	return ok
}

// Get returns the participant's submission.
func (s *Store) Get(participant string) (domain.Submission, bool) {
	i, ok := s.index[participant]
	if !ok {
		return domain.Submission{}, false
	}
	return clone(s.records[i]), true
}

func (s *Store) Len() int {
	return len(s.records)
}

// All returns a copy of every submission in arrival order.
func (s *Store) All() []domain.Submission {
	out := make([]domain.Submission, len(s.records))
	for i, r := range s.records {
		out[i] = clone(r)
	}
	return out
}

func clone(sub domain.Submission) domain.Submission {
	sub.Answers = append([]int(nil), sub.Answers...)
	return sub
}
