// respond.go converts accumulated tool results into one natural-language
// reply: consolidated sentences for clean bulk operations, templated
// per-result sentences otherwise, and explicit failure wording when a
// mutation intent produced nothing. It also detects listing-style phrasing
// so a mutation is never answered with a task listing.
package agent

import (
	"fmt"
	"regexp"
	"strings"

	"taskory-assistant/internal/intent"
)

// listingMarkers flag a response that reads like a task listing.
var listingMarkers = []string{
	"you have", "tasks in your list", "here are your tasks", "here are your",
	"task list", "showing", "tasks:", "total tasks",
}

// Broaden bulk detection for response shaping only. The short hints must
// match as whole words: "all" as a bare substring would fire inside
// "called" or "ball".
var bulkHintRe = regexp.MustCompile(`\b(all|sab|everything|each|every)\b`)
var bulkPhraseHints = []string{"complete list", "my list"}

func hasBulkHint(lower string) bool {
	if bulkHintRe.MatchString(lower) {
		return true
	}
	for _, hint := range bulkPhraseHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func looksLikeListing(response string) bool {
	lower := strings.ToLower(response)
	for _, marker := range listingMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// mutationFailureResponse is the explicit failure text used when a mutation
// intent could not be fulfilled, worded by which verb appeared.
func mutationFailureResponse(message string) string {
	const tail = " I check both task titles and descriptions - please try rephrasing or list your tasks to see available options."
	switch intent.ClassifyFailure(message) {
	case intent.FailureDelete:
		return "I couldn't find a matching task to delete." + tail
	case intent.FailureComplete:
		return "I couldn't find a matching task to complete." + tail
	case intent.FailureUpdate:
		return "I couldn't find a matching task to update." + tail
	case intent.FailureAdd:
		return "I couldn't add your task. Please try rephrasing."
	default:
		return "I couldn't find a matching task." + tail
	}
}

// synthesize builds the reply text from tool results plus the original
// message.
func synthesize(results []ToolResult, message string) string {
	if len(results) == 0 {
		return mutationFailureResponse(message)
	}

	lower := strings.ToLower(message)

	var deletes, completes, adds []ToolResult
	for _, r := range results {
		switch r.Name {
		case "delete_task", "delete_task_by_description":
			deletes = append(deletes, r)
		case "complete_task", "complete_task_by_description":
			completes = append(completes, r)
		case "add_task":
			adds = append(adds, r)
		}
	}

	// Response shaping only: fan-outs phrased like "every task" should still
	// read as one consolidated confirmation. The consolidated sentence claims
	// every task was handled, so it requires a genuine multi-result batch
	// with no errors in it.
	isBulk := intent.IsBulk(lower)
	if !isBulk && (len(deletes) > 0 || len(completes) > 0) {
		isBulk = hasBulkHint(lower)
	}

	if isBulk {
		switch {
		case len(deletes) > 1 && allClean(deletes) &&
			(strings.Contains(lower, "delete") || strings.Contains(lower, "clear")):
			return "All your tasks have been cleared."
		case len(completes) > 1 && allClean(completes) &&
			(strings.Contains(lower, "complete") || strings.Contains(lower, "done")):
			return "All your tasks have been marked as completed."
		}
	}

	sentences := make([]string, 0, len(results))
	for _, r := range results {
		sentences = append(sentences, sentenceFor(r))
	}

	if len(sentences) > 1 {
		// Homogeneous successful batches consolidate into one summary.
		switch {
		case len(deletes) > 1 && allClean(deletes):
			return "All matching tasks have been deleted."
		case len(completes) > 1 && allClean(completes):
			return "All matching tasks have been marked as completed."
		case len(adds) > 1 && allClean(adds):
			return "All your tasks have been added."
		}
		return strings.Join(sentences, " ")
	}
	return sentences[0]
}

func allClean(results []ToolResult) bool {
	for _, r := range results {
		if r.Err() != "" {
			return false
		}
	}
	return true
}

func sentenceFor(r ToolResult) string {
	errMsg := r.Err()
	title, _ := r.Result["title"].(string)

	switch r.Name {
	case "add_task":
		if errMsg != "" {
			return fmt.Sprintf("Sorry, I couldn't add your task: %s", errMsg)
		}
		if title != "" {
			return fmt.Sprintf("Your task '%s' has been added successfully.", title)
		}
		return "I've added your task."

	case "delete_task", "delete_task_by_description":
		if errMsg != "" {
			return fmt.Sprintf("Sorry, I couldn't delete the task: %s", errMsg)
		}
		if title != "" {
			return fmt.Sprintf("Your task '%s' has been deleted.", title)
		}
		return "I've deleted that task for you."

	case "update_task", "update_task_by_description":
		if errMsg != "" {
			return fmt.Sprintf("Sorry, I couldn't update the task: %s", errMsg)
		}
		if title != "" {
			return fmt.Sprintf("I've updated your task '%s'.", title)
		}
		return "I've updated your task."

	case "complete_task", "complete_task_by_description":
		if errMsg != "" {
			return fmt.Sprintf("Sorry, I couldn't complete the task: %s", errMsg)
		}
		if title != "" {
			if status, _ := r.Result["status"].(string); status == "completed" {
				return fmt.Sprintf("I've marked '%s' as completed.", title)
			}
			return fmt.Sprintf("I've marked '%s' as incomplete.", title)
		}
		return "I've updated the task's completion status."

	case "list_tasks":
		if tasks, ok := r.Result["tasks"].([]any); ok {
			switch len(tasks) {
			case 0:
				return "You don't have any tasks right now."
			case 1:
				if first, ok := tasks[0].(map[string]any); ok {
					if t, _ := first["title"].(string); t != "" {
						return fmt.Sprintf("Your task is: '%s'", t)
					}
				}
				return "You have 1 task."
			default:
				return fmt.Sprintf("You have %d tasks.", len(tasks))
			}
		}
		return "Here are your tasks."

	default:
		if errMsg != "" {
			return fmt.Sprintf("Sorry, I had an issue: %s", errMsg)
		}
		return "I've processed your request."
	}
}
