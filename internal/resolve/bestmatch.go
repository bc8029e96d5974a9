// bestmatch.go implements the matching used inside the by-description tools:
// one best candidate across the snapshot, scored independently on title and
// description, or nil when nothing clears the threshold. nil is a
// recoverable "not found", never an error.
package resolve

import (
	"taskory-assistant/internal/fuzzy"
	"taskory-assistant/internal/intent"
	"taskory-assistant/internal/task"
)

// Acceptance thresholds for BestMatch. Title-specific phrasing is assumed
// more reliable, so its bar is the more permissive one.
const (
	bestMatchCutoff              = 0.5
	bestMatchCutoffTitleSpecific = 0.4

	// titleBoost multiplies the title score for title-specific queries
	// before taking the field maximum.
	titleBoost = 1.5
)

// Match describes the winning task of a BestMatch call.
type Match struct {
	TaskID       string
	Score        float64
	MatchedField string // "title" or "description"
	Title        string
}

// BestMatch finds the task best matching a free-text description. Ties keep
// the first-seen task in snapshot order.
func (r *Resolver) BestMatch(description string, tasks []task.Task) *Match {
	if len(tasks) == 0 {
		return nil
	}

	titleSpecific := intent.IsTitleSpecific(description)
	query := fuzzy.Normalize(description)

	var best *Match
	bestScore := 0.0
	for _, t := range tasks {
		titleScore := r.matcher.Similarity(query, t.Title)
		descScore := r.matcher.Similarity(query, t.Description)
		if titleSpecific {
			titleScore *= titleBoost
		}
		score := max(titleScore, descScore)

		if score > bestScore {
			bestScore = score
			// The field reports which operand actually won, boost included.
			field := "description"
			if titleScore >= descScore {
				field = "title"
			}
			best = &Match{
				TaskID:       t.ID,
				Score:        score,
				MatchedField: field,
				Title:        t.Title,
			}
		}
	}

	cutoff := bestMatchCutoff
	if titleSpecific {
		cutoff = bestMatchCutoffTitleSpecific
	}
	if best != nil && bestScore > cutoff {
		return best
	}
	return nil
}
