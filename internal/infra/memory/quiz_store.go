package memory

import (
	"sync"

	"quiz-contest-service/internal/app"
)

// QuizStore is an in-memory implementation of app.QuizStore.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]*app.Quiz
}

func NewQuizStore() *QuizStore {
	return &QuizStore{
		quizzes: make(map[string]*app.Quiz),
	}
}

func (s *QuizStore) Save(quiz *app.Quiz) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID()] = quiz
}

func (s *QuizStore) Get(quizID string) (*app.Quiz, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quiz, ok := s.quizzes[quizID]
	return quiz, ok
}
