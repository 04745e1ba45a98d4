package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of these so callers
// can match either the kind or the precise condition with errors.Is.
var (
	// ErrValidation marks malformed quiz creation input.
	ErrValidation = errors.New("validation error")
	// ErrState marks an operation attempted in the wrong lifecycle state.
	ErrState = errors.New("state error")
	// ErrUnauthorized marks a creator-only operation called by someone else.
	ErrUnauthorized = errors.New("authorization error")
	// ErrDuplicateSubmission is returned when a participant submits twice.
	ErrDuplicateSubmission = errors.New("participant already submitted")
	// ErrInvalidAnswer marks an answer vector that does not fit the quiz.
	ErrInvalidAnswer = errors.New("invalid answer")
	// ErrNotFound marks an unknown quiz or question.
	ErrNotFound = errors.New("not found")
	// ErrInsufficientFunds is returned when the prize pool cannot cover a payout.
	ErrInsufficientFunds = errors.New("insufficient funds in prize pool")
)

var (
	ErrQuestionCount       = kind(ErrValidation, "question count must be between %d and %d", MinQuestions, MaxQuestions)
	ErrCorrectAnswerRange  = kind(ErrValidation, "correct answer index out of range")
	ErrPrizeSlotCount      = kind(ErrValidation, "prize slot count must be between %d and %d", MinPrizeSlots, MaxPrizeSlots)
	ErrPrizePosition       = kind(ErrValidation, "prize position must be between %d and %d", MinPosition, MaxPosition)
	ErrDuplicatePosition   = kind(ErrValidation, "prize position listed more than once")
	ErrPrizeBelowMinimum   = kind(ErrValidation, "prize amount below minimum of %d", MinPrizeAmount)
	ErrInsufficientFunding = kind(ErrValidation, "deposits do not cover the prize distribution")
	ErrFundingOverflow     = kind(ErrValidation, "funding total overflows")

	ErrQuizNotActive    = kind(ErrState, "quiz is not accepting submissions")
	ErrAlreadyFinalized = kind(ErrState, "quiz already finalized")
	ErrNotFinalized     = kind(ErrState, "quiz not finalized")
	ErrAlreadyClaimed   = kind(ErrState, "participant already claimed")

	ErrNotCreator = kind(ErrUnauthorized, "only the quiz creator may do this")

	ErrAnswerCount = kind(ErrInvalidAnswer, "answer count does not match question count")
	ErrAnswerRange = kind(ErrInvalidAnswer, "answer index out of range")

	ErrQuizNotFound     = kind(ErrNotFound, "quiz not found")
	ErrQuestionNotFound = kind(ErrNotFound, "question not found")
)

func kind(base error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", base, fmt.Sprintf(format, args...))
}

// Kind returns a short machine-readable name for err's kind, or "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrState):
		return "state"
	case errors.Is(err, ErrUnauthorized):
		return "authorization"
	case errors.Is(err, ErrDuplicateSubmission):
		return "duplicate_submission"
	case errors.Is(err, ErrInvalidAnswer):
		return "invalid_answer"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "internal"
	}
}
