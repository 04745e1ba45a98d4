package domain

import "time"

const (
	MinQuestions = 1
	MaxQuestions = 50

	MinPrizeSlots = 1
	MaxPrizeSlots = 10

	MinPosition = 1
	MaxPosition = 10

	// MinPrizeAmount is the floor for every prize distribution entry.
	MinPrizeAmount uint64 = 1_000_000
)

// Question is a multiple-choice question addressed by option index.
type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// View strips the correct answer so the question can be shown to participants.
func (q Question) View(index int) QuestionView {
	return QuestionView{
		Index:   index,
		Text:    q.Text,
		Options: append([]string(nil), q.Options...),
	}
}

// QuestionView is the participant-facing form of a question.
type QuestionView struct {
	Index   int      `json:"index"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// PrizeEntry pays Amount to whoever finishes at Position (1-indexed).
type PrizeEntry struct {
	Position int    `json:"position"`
	Amount   uint64 `json:"amount"`
}

// Deposit is one owned unit of value used to fund a prize pool.
type Deposit struct {
	Owner  string `json:"owner"`
	Amount uint64 `json:"amount"`
}

// Submission is one participant's answer set. Score is computed once on submit.
type Submission struct {
	Participant string    `json:"participant"`
	Answers     []int     `json:"answers"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

// Winner maps a participant to a prize position after settlement.
type Winner struct {
	Participant string `json:"participant"`
	Position    int    `json:"position"`
	Score       int    `json:"score"`
	Amount      uint64 `json:"amount"`
}

// Certificate is the receipt handed out on claim.
type Certificate struct {
	ID          string    `json:"id"`
	QuizID      string    `json:"quizId"`
	QuizTitle   string    `json:"quizTitle"`
	Participant string    `json:"participant"`
	Score       int       `json:"score"`
	HasScore    bool      `json:"hasScore"`
	Position    *int      `json:"position,omitempty"`
	Amount      uint64    `json:"amount"`
	ClaimedAt   time.Time `json:"claimedAt"`
}

// Summary is the public overview of a quiz.
type Summary struct {
	ID          string    `json:"id"`
	Creator     string    `json:"creator"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TotalPrize  uint64    `json:"totalPrize"`
	Active      bool      `json:"active"`
	Finalized   bool      `json:"finalized"`
	Submissions int       `json:"submissions"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateQuizInput carries everything needed to open a funded quiz.
type CreateQuizInput struct {
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	Questions         []Question   `json:"questions"`
	PrizeDistribution []PrizeEntry `json:"prizeDistribution"`
	Deposits          []Deposit    `json:"deposits"`
}

// TransferKind labels why value left a prize pool.
type TransferKind string

const (
	TransferPrize TransferKind = "prize"
	TransferSweep TransferKind = "sweep"
)

// Transfer describes a value movement from a quiz pool to a recipient.
type Transfer struct {
	QuizID    string       `json:"quizId"`
	Recipient string       `json:"recipient"`
	Amount    uint64       `json:"amount"`
	Kind      TransferKind `json:"kind"`
	At        time.Time    `json:"at"`
}
