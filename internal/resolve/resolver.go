// Package resolve maps ambiguous natural-language task references to
// concrete task ids. Strategies run highest-precision first and
// short-circuit: bulk phrasing, positional references, whole-word numbers,
// then weighted fuzzy matching over titles and descriptions.
package resolve

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"taskory-assistant/internal/fuzzy"
	"taskory-assistant/internal/intent"
	"taskory-assistant/internal/task"
)

// Kind tells the caller what a Reference means.
type Kind int

const (
	// KindNone means no target could be identified. Callers must not
	// default to an arbitrary task.
	KindNone Kind = iota
	// KindTask carries a concrete task id.
	KindTask
	// KindBulk means the message targets every task in the snapshot.
	KindBulk
)

// Reference is the transient result of resolution.
type Reference struct {
	Kind   Kind
	TaskID string
}

// Scoring weights and cutoffs for the general fuzzy strategy. The sequence
// ratios are weighted on a 0-150 scale and the token ratios on a 0-150
// scale (ratio*100 times the multiplier); a combined score must clear
// fuzzyScoreCutoff to count as a match. Tuned empirically, lenient on
// purpose.
const (
	titleSeqWeight         = 75.0
	descSeqWeight          = 75.0
	titleSeqWeightSpecific = 150.0
	descSeqWeightSpecific  = 25.0

	titleTokenWeight         = 0.75
	descTokenWeight          = 0.75
	titleTokenWeightSpecific = 1.5
	descTokenWeightSpecific  = 0.25

	fuzzyScoreCutoff = 15.0

	// titleMatchCutoff gates the strict title resolver; title-specific
	// phrasing signals the user expects precision.
	titleMatchCutoff = 0.6
)

var lastKeywords = []string{"last", "most recent", "latest", "recent", "end", "final", "last wala"}
var firstKeywords = []string{"first", "oldest", "beginning", "start", "pehla", "shuru"}
var secondKeywords = []string{"second", "next", "dosra"}
var thirdKeywords = []string{"third", "teesra"}

var wholeNumberRe = regexp.MustCompile(`\b(\d+)\b`)

// Resolver resolves message text against a task snapshot.
type Resolver struct {
	matcher *fuzzy.Matcher
	log     *zap.Logger
}

// New creates a Resolver. log may be nil.
func New(matcher *fuzzy.Matcher, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{matcher: matcher, log: log}
}

// Similarity exposes the underlying matcher's combined score for callers
// that only need raw similarity (title search).
func (r *Resolver) Similarity(query, candidate string) float64 {
	return r.matcher.Similarity(query, candidate)
}

// Resolve identifies which task(s) a message refers to. Bulk phrasing wins
// outright; otherwise positional, numeric and fuzzy strategies run in order
// and the first success is returned. KindNone means nothing matched.
func (r *Resolver) Resolve(message string, tasks []task.Task) Reference {
	if intent.IsBulk(message) {
		return Reference{Kind: KindBulk}
	}
	if len(tasks) == 0 {
		return Reference{Kind: KindNone}
	}

	msg := strings.ToLower(strings.TrimSpace(message))

	if id := resolveByPosition(msg, tasks); id != "" {
		r.log.Debug("resolved by position", zap.String("task_id", id))
		return Reference{Kind: KindTask, TaskID: id}
	}
	if id := resolveByNumber(msg, tasks); id != "" {
		r.log.Debug("resolved by direct number", zap.String("task_id", id))
		return Reference{Kind: KindTask, TaskID: id}
	}
	if id := r.FuzzyMatch(msg, tasks); id != "" {
		r.log.Debug("resolved by fuzzy match", zap.String("task_id", id))
		return Reference{Kind: KindTask, TaskID: id}
	}
	return Reference{Kind: KindNone}
}

func containsAny(message string, words []string) bool {
	for _, w := range words {
		if strings.Contains(message, w) {
			return true
		}
	}
	return false
}

// resolveByPosition maps "first"/"last"/"second"/"third" style references
// (including Roman-Urdu variants) to snapshot positions. Returns "" when the
// referenced position exceeds the snapshot length.
func resolveByPosition(message string, tasks []task.Task) string {
	switch {
	case containsAny(message, lastKeywords):
		return tasks[len(tasks)-1].ID
	case containsAny(message, firstKeywords):
		return tasks[0].ID
	case containsAny(message, secondKeywords):
		if len(tasks) > 1 {
			return tasks[1].ID
		}
	case containsAny(message, thirdKeywords):
		if len(tasks) > 2 {
			return tasks[2].ID
		}
	}
	return ""
}

// resolveByNumber treats whole-word integers as 1-based snapshot indexes.
// The first in-range number wins. A task title that itself contains a number
// can misfire here; that ambiguity is documented and accepted.
func resolveByNumber(message string, tasks []task.Task) string {
	for _, m := range wholeNumberRe.FindAllString(message, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n >= 1 && n <= len(tasks) {
			return tasks[n-1].ID
		}
	}
	return ""
}

// FuzzyMatch scores the whole message against every task's title and
// description. Title-specific phrasing makes title similarity dominant with
// description as tiebreak only; otherwise both fields weigh equally. Returns
// "" when no task clears the cutoff.
func (r *Resolver) FuzzyMatch(message string, tasks []task.Task) string {
	if len(tasks) == 0 {
		return ""
	}

	normalized := fuzzy.Normalize(message)
	titleSpecific := intent.IsTitleSpecific(normalized)

	titleSeqW, descSeqW := titleSeqWeight, descSeqWeight
	titleTokW, descTokW := titleTokenWeight, descTokenWeight
	if titleSpecific {
		titleSeqW, descSeqW = titleSeqWeightSpecific, descSeqWeightSpecific
		titleTokW, descTokW = titleTokenWeightSpecific, descTokenWeightSpecific
	}

	bestID := ""
	bestScore := 0.0
	for _, t := range tasks {
		title := fuzzy.Normalize(t.Title)
		desc := fuzzy.Normalize(t.Description)

		score := 0.0
		if title != "" {
			score += fuzzy.SequenceRatio(normalized, title) * titleSeqW
			score += r.matcher.TokenRatio(normalized, title) * 100 * titleTokW
		}
		if desc != "" {
			score += fuzzy.SequenceRatio(normalized, desc) * descSeqW
			score += r.matcher.TokenRatio(normalized, desc) * 100 * descTokW
		}

		if score > bestScore {
			bestScore = score
			bestID = t.ID
		}
	}

	if bestScore > fuzzyScoreCutoff {
		return bestID
	}
	return ""
}

// FindByTitle is the stricter resolver for title-specific queries. An exact
// normalized match short-circuits with full confidence; otherwise the usual
// similarity blend applies with the higher title cutoff.
func (r *Resolver) FindByTitle(titleQuery string, tasks []task.Task) string {
	query := fuzzy.Normalize(titleQuery)
	if query == "" {
		return ""
	}

	bestID := ""
	bestScore := 0.0
	for _, t := range tasks {
		title := fuzzy.Normalize(t.Title)
		if title == "" {
			continue
		}
		if query == title {
			return t.ID
		}
		if s := r.matcher.Similarity(query, title); s > titleMatchCutoff && s > bestScore {
			bestScore = s
			bestID = t.ID
		}
	}
	return bestID
}
