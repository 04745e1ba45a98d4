// Package settlement scores answer sets and turns ranked submissions into winners.
package settlement

import (
	"sort"

	"quiz-contest-service/internal/domain"
)

// Score counts answers that match each question's correct index.
// Callers validate answers before scoring; extra or missing entries never score.
func Score(questions []domain.Question, answers []int) int {
	score := 0
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.Correct {
			score++
		}
	}
	return score
}

// Rank orders submissions best first: higher score, then earlier completion,
// then participant id. The input slice is left untouched.
func Rank(subs []domain.Submission) []domain.Submission {
	ranked := append([]domain.Submission(nil), subs...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Less(ranked[i], ranked[j])
	})
	return ranked
}

// Less reports whether a ranks ahead of b.
func Less(a, b domain.Submission) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.CompletedAt.Equal(b.CompletedAt) {
		return a.CompletedAt.Before(b.CompletedAt)
	}
	return a.Participant < b.Participant
}

// Settle ranks subs and assigns each distribution entry, in table order, to the
// participant at that position. Positions past the end of the ranking pay nobody.
func Settle(subs []domain.Submission, table []domain.PrizeEntry) []domain.Winner {
	ranked := Rank(subs)
	winners := make([]domain.Winner, 0, len(table))
	for _, entry := range table {
		if entry.Position < 1 || entry.Position > len(ranked) {
			continue
		}
		sub := ranked[entry.Position-1]
		winners = append(winners, domain.Winner{
			Participant: sub.Participant,
			Position:    entry.Position,
			Score:       sub.Score,
			Amount:      entry.Amount,
		})
	}
	return winners
}
