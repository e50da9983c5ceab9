package domain

import "sort"

// ScoredTweet annotates a decided tweet with its priority score. It only
// lives inside ScheduleActions.
type ScoredTweet struct {
	Decided
	Score int
}

// ScheduleActions orders decided tweets for execution and truncates the
// result to maxActions.
//
// Sort order (stable, descending priority):
//  1. number of requested actions, higher first
//  2. at equal counts, tweets the agent wants to like come first
//  3. remaining ties keep their input order
//
// Tweets dropped by the truncation receive no side effects this cycle; they
// stay eligible next cycle because no record is written for them.
func ScheduleActions(decided []Decided, maxActions int) []Decided {
	scored := make([]ScoredTweet, len(decided))
	for i, d := range decided {
		scored[i] = ScoredTweet{Decided: d, Score: d.Decision.ActionCount()}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Decision.Like != scored[j].Decision.Like {
			return scored[i].Decision.Like
		}
		return false
	})

	if maxActions >= 0 && len(scored) > maxActions {
		scored = scored[:maxActions]
	}

	out := make([]Decided, len(scored))
	for i, s := range scored {
		out[i] = s.Decided
	}
	return out
}
