// Package intent detects mutation and bulk-operation intent in raw chat
// messages and extracts the residual task-reference text. Detection is plain
// case-insensitive substring containment against curated keyword lists in
// English and Roman Urdu; it is a heuristic, not NLU. False negatives fall
// through to the clarification path, false positives only trigger an extra
// resolution attempt.
package intent

import (
	"regexp"
	"sort"
	"strings"
)

// mutationKeywords covers delete, update, complete and create phrasing.
var mutationKeywords = []string{
	// delete
	"delete", "hata", "remove", "clear", "cancel", "terminate", "erase",
	"kill", "drop", "delete task",
	// update
	"update", "edit", "change", "modify", "adjust", "correct", "fix",
	"redesign", "improve", "rename", "updat",
	// complete
	"complete", "done", "finish", "completed", "mark done", "mark complete",
	"done hai", "hogaya", "pura", "kar diya",
	// create
	"add", "create", "new", "make", "add task", "add karo", "ban", "bn", "do",
}

var bulkKeywords = []string{
	"delete all", "sab delete", "clear all", "clear my list", "remove all",
	"all delete", "sab khatam", "sab clear", "complete all", "mark all done",
	"mark everything done", "finish all", "all tasks delete", "all tasks clear",
}

var titleSpecificKeywords = []string{
	"called", "named", "titled", "with title", "with name",
}

// operationVerbs are stripped from a message before treating the remainder as
// a task reference. Longest phrases must be removed first so that e.g.
// "delete task" goes before "delete".
var operationVerbs = []string{
	"add", "create", "new", "make", "add task", "ban", "bn", "create task",
	"delete", "hata", "remove", "clear", "cancel", "terminate", "erase",
	"kill", "drop", "delete task", "hata do", "hata den", "remove karo",
	"khatam karo", "clear karo", "sab delete", "delete saray", "sab khatam",
	"update", "edit", "change", "modify", "adjust", "correct", "fix",
	"redesign", "improve", "rename", "update task", "edit task",
	"complete", "done", "finish", "completed", "mark done", "mark complete",
	"complete task", "done hai", "hogaya", "pura", "kar diya",
}

// connectorPhrases separate the operation from the task reference.
var connectorPhrases = []string{
	"called task", "named task", "titled task", "called", "named", "titled",
	"with title", "with name", "with description", "the task", "task",
	"with name called", "named as", "called as", "with title named",
}

var stopWordRe = regexp.MustCompile(`\b(the|ye|wali|kaam|kar|karo|do|ko|se|ka|ke|ki)\b`)

func containsAny(message string, keywords []string) bool {
	m := strings.ToLower(message)
	for _, kw := range keywords {
		if strings.Contains(m, kw) {
			return true
		}
	}
	return false
}

// IsMutation reports whether the message expresses a create/update/delete/
// complete intent.
func IsMutation(message string) bool {
	return containsAny(message, mutationKeywords)
}

// IsBulk reports whether the message asks for an operation over every task.
func IsBulk(message string) bool {
	return containsAny(message, bulkKeywords)
}

// IsTitleSpecific reports whether the message quotes an exact task title
// ("called X", "named X") rather than describing a task generically.
func IsTitleSpecific(message string) bool {
	return containsAny(message, titleSpecificKeywords)
}

// ExtractReferenceText strips operation verbs, connector phrases and stray
// stop words from the message and returns the residual text, the likely
// title/description fragment. Returns "" when nothing meaningful remains.
//
// The removal is lossy and order-sensitive: phrases are processed longest
// first so "delete task" is consumed before "delete" can mangle it.
func ExtractReferenceText(message string) string {
	s := strings.ToLower(strings.TrimSpace(message))

	verbs := append([]string(nil), operationVerbs...)
	sort.Slice(verbs, func(i, j int) bool { return len(verbs[i]) > len(verbs[j]) })
	for _, v := range verbs {
		if strings.Contains(s, v) {
			s = strings.TrimSpace(strings.ReplaceAll(s, v, ""))
		}
	}

	connectors := append([]string(nil), connectorPhrases...)
	sort.Slice(connectors, func(i, j int) bool { return len(connectors[i]) > len(connectors[j]) })
	for _, phrase := range connectors {
		if !strings.Contains(s, phrase) {
			continue
		}
		// The reference follows the connector: "called groceries" -> "groceries".
		parts := strings.Split(s, phrase)
		if len(parts) > 1 {
			s = strings.TrimSpace(parts[len(parts)-1])
		} else {
			s = strings.TrimSpace(strings.ReplaceAll(s, phrase, ""))
		}
	}

	s = stopWordRe.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// FailureKind categorizes which mutation verb a message carried, for picking
// the wording of a could-not-match failure response.
type FailureKind int

const (
	FailureGeneric FailureKind = iota
	FailureDelete
	FailureComplete
	FailureUpdate
	FailureAdd
)

// ClassifyFailure picks the failure wording for a message whose mutation
// intent could not be fulfilled.
func ClassifyFailure(message string) FailureKind {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "delete") || strings.Contains(m, "hata") || strings.Contains(m, "remove"):
		return FailureDelete
	case strings.Contains(m, "complete") || strings.Contains(m, "done") || strings.Contains(m, "finish"):
		return FailureComplete
	case strings.Contains(m, "update") || strings.Contains(m, "edit") || strings.Contains(m, "change"):
		return FailureUpdate
	case strings.Contains(m, "add") || strings.Contains(m, "create"):
		return FailureAdd
	default:
		return FailureGeneric
	}
}
