package app

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"quiz-contest-service/internal/certificate"
	"quiz-contest-service/internal/domain"
	"quiz-contest-service/internal/escrow"
	"quiz-contest-service/internal/settlement"
	"quiz-contest-service/internal/submission"
)

// Quiz is a single funded contest. All mutations are serialized on mu.
type Quiz struct {
	id          string
	creator     string
	title       string
	description string
	questions   []domain.Question
	prizes      []domain.PrizeEntry
	createdAt   time.Time

	mu          sync.RWMutex
	active      bool
	finalized   bool
	pool        *escrow.Pool
	submissions *submission.Store
	winners     []domain.Winner
	claimed     map[string]struct{}
	newCertID   certificate.IDFunc
}

// NewQuiz validates input and opens a funded, active quiz. Nothing is created
// when any check fails.
func NewQuiz(id, creator string, in domain.CreateQuizInput, now time.Time) (*Quiz, error) {
	if err := validateQuestions(in.Questions); err != nil {
		return nil, err
	}
	if err := validatePrizes(in.PrizeDistribution, in.Deposits); err != nil {
		return nil, err
	}

	pool, err := escrow.Fund(in.Deposits)
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, len(in.Questions))
	for i, q := range in.Questions {
		q.Options = append([]string(nil), q.Options...)
		questions[i] = q
	}

	return &Quiz{
		id:          id,
		creator:     creator,
		title:       in.Title,
		description: in.Description,
		questions:   questions,
		prizes:      append([]domain.PrizeEntry(nil), in.PrizeDistribution...),
		createdAt:   now,
		active:      true,
		pool:        pool,
		submissions: submission.NewStore(),
		claimed:     make(map[string]struct{}),
		newCertID:   certificate.NewID,
	}, nil
}

func validateQuestions(questions []domain.Question) error {
	if len(questions) < domain.MinQuestions || len(questions) > domain.MaxQuestions {
		return domain.ErrQuestionCount
	}
	for i, q := range questions {
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return fmt.Errorf("%w: question %d", domain.ErrCorrectAnswerRange, i)
		}
	}
	return nil
}

func validatePrizes(table []domain.PrizeEntry, deposits []domain.Deposit) error {
	if len(table) < domain.MinPrizeSlots || len(table) > domain.MaxPrizeSlots {
		return domain.ErrPrizeSlotCount
	}
	seen := make(map[int]struct{}, len(table))
	for _, entry := range table {
		if entry.Position < domain.MinPosition || entry.Position > domain.MaxPosition {
			return fmt.Errorf("%w: got %d", domain.ErrPrizePosition, entry.Position)
		}
		if _, dup := seen[entry.Position]; dup {
			return fmt.Errorf("%w: position %d", domain.ErrDuplicatePosition, entry.Position)
		}
		seen[entry.Position] = struct{}{}
	}

	var total uint64
	for _, entry := range table {
		if entry.Amount < domain.MinPrizeAmount {
			return fmt.Errorf("%w: position %d has %d", domain.ErrPrizeBelowMinimum, entry.Position, entry.Amount)
		}
		if entry.Amount > math.MaxUint64-total {
			return domain.ErrInsufficientFunding
		}
		total += entry.Amount
	}

	funded, err := escrow.Total(deposits)
	if err != nil {
		return err
	}
	if total > funded {
		return fmt.Errorf("%w: prizes %d, deposits %d", domain.ErrInsufficientFunding, total, funded)
	}
	return nil
}

func (q *Quiz) ID() string      { return q.id }
func (q *Quiz) Creator() string { return q.creator }

// Submit scores and records participant's answers.
func (q *Quiz) Submit(participant string, answers []int, at time.Time) (domain.Submission, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.active || q.finalized {
		return domain.Submission{}, domain.ErrQuizNotActive
	}
	if q.submissions.Has(participant) {
		return domain.Submission{}, domain.ErrDuplicateSubmission
	}
	if len(answers) != len(q.questions) {
		return domain.Submission{}, fmt.Errorf("%w: got %d, want %d", domain.ErrAnswerCount, len(answers), len(q.questions))
	}
	for i, a := range answers {
		if a < 0 || a >= len(q.questions[i].Options) {
			return domain.Submission{}, fmt.Errorf("%w: question %d", domain.ErrAnswerRange, i)
		}
	}

	sub := domain.Submission{
		Participant: participant,
		Answers:     append([]int(nil), answers...),
		Score:       settlement.Score(q.questions, answers),
		CompletedAt: at,
	}
	if err := q.submissions.Add(sub); err != nil {
		return domain.Submission{}, err
	}
	return sub, nil
}

// Finalize closes the quiz and computes the winners. Only the creator may call it, once.
func (q *Quiz) Finalize(caller string) ([]domain.Winner, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if caller != q.creator {
		return nil, domain.ErrNotCreator
	}
	if q.finalized {
		return nil, domain.ErrAlreadyFinalized
	}

	q.winners = settlement.Settle(q.submissions.All(), q.prizes)
	q.active = false
	q.finalized = true
	return q.winnersLocked(), nil
}

// Claim pays participant's prize, if any, and issues a certificate. Each
// participant may claim once; the transfer and the claimed marker commit together.
func (q *Quiz) Claim(ctx context.Context, participant string, at time.Time, transfer Transferer) (domain.Certificate, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.finalized {
		return domain.Certificate{}, domain.ErrNotFinalized
	}
	if _, ok := q.claimed[participant]; ok {
		return domain.Certificate{}, domain.ErrAlreadyClaimed
	}

	var winner *domain.Winner
	for i := range q.winners {
		if q.winners[i].Participant == participant {
			w := q.winners[i]
			winner = &w
			break
		}
	}
	var sub *domain.Submission
	if s, ok := q.submissions.Get(participant); ok {
		sub = &s
	}

	var paid uint64
	if winner != nil {
		if err := q.payLocked(ctx, participant, winner.Amount, domain.TransferPrize, at, transfer); err != nil {
			return domain.Certificate{}, err
		}
		paid = winner.Amount
	}
	q.claimed[participant] = struct{}{}

	snapshot := certificate.Snapshot{QuizID: q.id, Title: q.title}
	return certificate.Issue(snapshot, participant, winner, sub, paid, at, q.newCertID), nil
}

// WithdrawRemaining sends whatever is left in the pool to the creator.
func (q *Quiz) WithdrawRemaining(ctx context.Context, caller string, at time.Time, transfer Transferer) (uint64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if caller != q.creator {
		return 0, domain.ErrNotCreator
	}
	if !q.finalized {
		return 0, domain.ErrNotFinalized
	}

	payout := q.pool.Sweep()
	if payout.Amount() == 0 {
		q.pool.Settle(payout)
		return 0, nil
	}
	if err := q.deliverLocked(ctx, payout, q.creator, domain.TransferSweep, at, transfer); err != nil {
		return 0, err
	}
	return payout.Amount(), nil
}

func (q *Quiz) payLocked(ctx context.Context, recipient string, amount uint64, kind domain.TransferKind, at time.Time, transfer Transferer) error {
	payout, err := q.pool.Pay(amount)
	if err != nil {
		return err
	}
	return q.deliverLocked(ctx, payout, recipient, kind, at, transfer)
}

// deliverLocked hands payout to the transfer primitive, returning it to the
// pool when the transfer fails.
func (q *Quiz) deliverLocked(ctx context.Context, payout escrow.Payout, recipient string, kind domain.TransferKind, at time.Time, transfer Transferer) error {
	err := transfer.Transfer(ctx, domain.Transfer{
		QuizID:    q.id,
		Recipient: recipient,
		Amount:    payout.Amount(),
		Kind:      kind,
		At:        at,
	})
	if err != nil {
		if refundErr := q.pool.Refund(payout); refundErr != nil {
			return fmt.Errorf("transfer %s: %w (refund: %v)", kind, err, refundErr)
		}
		return fmt.Errorf("transfer %s: %w", kind, err)
	}
	q.pool.Settle(payout)
	return nil
}

// Summary returns the public overview of the quiz.
func (q *Quiz) Summary() domain.Summary {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return domain.Summary{
		ID:          q.id,
		Creator:     q.creator,
		Title:       q.title,
		Description: q.description,
		TotalPrize:  q.pool.Funded(),
		Active:      q.active,
		Finalized:   q.finalized,
		Submissions: q.submissions.Len(),
		CreatedAt:   q.createdAt,
	}
}

func (q *Quiz) PrizeDistribution() []domain.PrizeEntry {
	return append([]domain.PrizeEntry(nil), q.prizes...)
}

// Winners is empty until Finalize runs.
func (q *Quiz) Winners() []domain.Winner {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.winnersLocked()
}

func (q *Quiz) winnersLocked() []domain.Winner {
	return append([]domain.Winner{}, q.winners...)
}

func (q *Quiz) QuestionCount() int {
	return len(q.questions)
}

// Question returns the participant-facing view of question i.
func (q *Quiz) Question(i int) (domain.QuestionView, error) {
	if i < 0 || i >= len(q.questions) {
		return domain.QuestionView{}, fmt.Errorf("%w: index %d", domain.ErrQuestionNotFound, i)
	}
	return q.questions[i].View(i), nil
}

func (q *Quiz) HasSubmitted(participant string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.submissions.Has(participant)
}

// HasClaimed reports whether participant already collected a certificate.
func (q *Quiz) HasClaimed(participant string) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	_, ok := q.claimed[participant]
	return ok
}

func (q *Quiz) RemainingBalance() uint64 {
	return q.pool.Value()
}
