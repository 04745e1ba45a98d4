package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/monitoring"
)

// QuizStore holds live quiz aggregates (in-memory, etc).
type QuizStore interface {
	Save(quiz *Quiz)
	Get(quizID string) (*Quiz, bool)
}

// Registry records which quizzes exist for discovery.
type Registry interface {
	Add(ctx context.Context, quizID string) error
	Contains(ctx context.Context, quizID string) (bool, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context) ([]string, error)
}

// Transferer moves value out of a prize pool to its recipient.
type Transferer interface {
	Transfer(ctx context.Context, t domain.Transfer) error
}

// ContestService exposes the quiz use cases to transports.
type ContestService struct {
	quizzes  QuizStore
	registry Registry
	ledger   Transferer
	now      func() time.Time
	newID    func() string
	log      *zap.Logger
	metrics  *monitoring.Metrics
}

// Option customizes a ContestService.
type Option func(*ContestService)

// WithClock replaces time.Now, mostly for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *ContestService) { s.now = now }
}

// WithIDGenerator replaces the random quiz id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *ContestService) { s.newID = newID }
}

func WithLogger(log *zap.Logger) Option {
	return func(s *ContestService) { s.log = log }
}

func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *ContestService) { s.metrics = m }
}

func NewContestService(quizzes QuizStore, registry Registry, ledger Transferer, opts ...Option) *ContestService {
	s := &ContestService{
		quizzes:  quizzes,
		registry: registry,
		ledger:   ledger,
		now:      time.Now,
		newID:    uuid.NewString,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateQuiz validates and funds a new quiz owned by creator, then registers it.
func (s *ContestService) CreateQuiz(ctx context.Context, creator string, in domain.CreateQuizInput) (domain.Summary, error) {
	quiz, err := NewQuiz(s.newID(), creator, in, s.now())
	if err != nil {
		s.log.Info("quiz rejected", zap.String("creator", creator), zap.Error(err))
		return domain.Summary{}, err
	}
	if err := s.registry.Add(ctx, quiz.ID()); err != nil {
		s.log.Error("registry add failed", zap.String("quiz", quiz.ID()), zap.Error(err))
		return domain.Summary{}, err
	}
	s.quizzes.Save(quiz)
	s.metrics.QuizCreated()

	summary := quiz.Summary()
	s.log.Info("quiz created",
		zap.String("quiz", summary.ID),
		zap.String("creator", creator),
		zap.Int("questions", quiz.QuestionCount()),
		zap.Uint64("funded", summary.TotalPrize),
	)
	return summary, nil
}

// Submit records participant's one and only answer set.
func (s *ContestService) Submit(_ context.Context, quizID, participant string, answers []int) (domain.Submission, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return domain.Submission{}, err
	}
	sub, err := quiz.Submit(participant, answers, s.now())
	s.metrics.Submission(err)
	if err != nil {
		s.log.Debug("submission rejected", zap.String("quiz", quizID), zap.String("participant", participant), zap.Error(err))
		return domain.Submission{}, err
	}
	s.log.Info("submission accepted", zap.String("quiz", quizID), zap.String("participant", participant), zap.Int("score", sub.Score))
	return sub, nil
}

// Finalize closes the quiz and returns the frozen winners list.
func (s *ContestService) Finalize(_ context.Context, quizID, caller string) ([]domain.Winner, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return nil, err
	}
	winners, err := quiz.Finalize(caller)
	if err != nil {
		s.log.Info("finalize rejected", zap.String("quiz", quizID), zap.String("caller", caller), zap.Error(err))
		return nil, err
	}
	s.metrics.Settled()
	s.log.Info("quiz finalized", zap.String("quiz", quizID), zap.Int("winners", len(winners)))
	return winners, nil
}

// Claim pays out participant's prize, if any, and returns their certificate.
func (s *ContestService) Claim(ctx context.Context, quizID, participant string) (domain.Certificate, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return domain.Certificate{}, err
	}
	cert, err := quiz.Claim(ctx, participant, s.now(), s.ledger)
	if err != nil {
		s.log.Info("claim rejected", zap.String("quiz", quizID), zap.String("participant", participant), zap.Error(err))
		return domain.Certificate{}, err
	}
	s.metrics.Paid(domain.TransferPrize, cert.Amount)
	s.log.Info("certificate issued",
		zap.String("quiz", quizID),
		zap.String("participant", participant),
		zap.String("certificate", cert.ID),
		zap.Uint64("amount", cert.Amount),
	)
	return cert, nil
}

// WithdrawRemaining sweeps the leftover pool to the creator and returns the amount moved.
func (s *ContestService) WithdrawRemaining(ctx context.Context, quizID, caller string) (uint64, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return 0, err
	}
	amount, err := quiz.WithdrawRemaining(ctx, caller, s.now(), s.ledger)
	if err != nil {
		s.log.Info("withdraw rejected", zap.String("quiz", quizID), zap.String("caller", caller), zap.Error(err))
		return 0, err
	}
	s.metrics.Paid(domain.TransferSweep, amount)
	s.log.Info("remaining pool withdrawn", zap.String("quiz", quizID), zap.Uint64("amount", amount))
	return amount, nil
}

func (s *ContestService) Summary(_ context.Context, quizID string) (domain.Summary, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return domain.Summary{}, err
	}
	return quiz.Summary(), nil
}

func (s *ContestService) PrizeDistribution(_ context.Context, quizID string) ([]domain.PrizeEntry, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return nil, err
	}
	return quiz.PrizeDistribution(), nil
}

func (s *ContestService) Winners(_ context.Context, quizID string) ([]domain.Winner, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return nil, err
	}
	return quiz.Winners(), nil
}

func (s *ContestService) QuestionCount(_ context.Context, quizID string) (int, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return 0, err
	}
	return quiz.QuestionCount(), nil
}

// Question returns question index without its correct answer.
func (s *ContestService) Question(_ context.Context, quizID string, index int) (domain.QuestionView, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return domain.QuestionView{}, err
	}
	return quiz.Question(index)
}

func (s *ContestService) HasSubmitted(_ context.Context, quizID, participant string) (bool, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return false, err
	}
	return quiz.HasSubmitted(participant), nil
}

func (s *ContestService) RemainingBalance(_ context.Context, quizID string) (uint64, error) {
	quiz, err := s.quiz(quizID)
	if err != nil {
		return 0, err
	}
	return quiz.RemainingBalance(), nil
}

// ListQuizzes returns the ids known to the registry.
func (s *ContestService) ListQuizzes(ctx context.Context) ([]string, error) {
	return s.registry.List(ctx)
}

func (s *ContestService) QuizCount(ctx context.Context) (int, error) {
	return s.registry.Count(ctx)
}

func (s *ContestService) quiz(quizID string) (*Quiz, error) {
	quiz, ok := s.quizzes.Get(quizID)
	if !ok {
		return nil, domain.ErrQuizNotFound
	}
	return quiz, nil
}
