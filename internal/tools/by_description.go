// by_description.go defines the description-matching variants of delete,
// update and complete. These tools encapsulate resolution internally: they
// fetch the user's snapshot, pick the single best match above threshold, and
// act on it. They always target exactly one task; bulk expansion is the
// orchestrator's job.
package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
)

// DeleteByDescriptionArgs is the input for delete_task_by_description.
type DeleteByDescriptionArgs struct {
	TaskDescription string `json:"task_description" jsonschema:"The description or title of the task to delete"`
}

// DeleteByDescriptionOutput echoes the deleted task plus the match details,
// useful when debugging why a particular task was chosen.
type DeleteByDescriptionOutput struct {
	TaskID             string  `json:"task_id"`
	Status             string  `json:"status"`
	Title              string  `json:"title"`
	MatchedDescription string  `json:"matched_description"`
	MatchScore         float64 `json:"match_score"`
}

// UpdateByDescriptionArgs is the input for update_task_by_description.
type UpdateByDescriptionArgs struct {
	TaskDescription string  `json:"task_description" jsonschema:"The description or title of the task to update"`
	Title           *string `json:"title,omitempty" jsonschema:"New title for the task (optional)"`
	Description     *string `json:"description,omitempty" jsonschema:"New description for the task (optional)"`
}

// CompleteByDescriptionArgs is the input for complete_task_by_description.
type CompleteByDescriptionArgs struct {
	TaskDescription string `json:"task_description" jsonschema:"The description or title of the task to complete"`
	Completed       *bool  `json:"completed,omitempty" jsonschema:"Whether to mark as completed (default: true)"`
}

// matchByDescription finds the single task best matching the free-text
// description, or an error when the list is empty, the description is blank,
// or nothing clears the threshold.
func (ts *toolset) matchByDescription(ctx context.Context, description string) (*resolve.Match, []task.Task, error) {
	if strings.TrimSpace(description) == "" {
		return nil, nil, errors.New("task_description is required")
	}
	all, err := ts.svc.List(ctx, ts.userID, "")
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, errors.New("no tasks found for user")
	}
	m := ts.resolver.BestMatch(description, all)
	if m == nil {
		return nil, nil, fmt.Errorf("No task found matching description: '%s'", description)
	}
	ts.log.Debug("matched task by description",
		zap.String("task_id", m.TaskID),
		zap.String("field", m.MatchedField),
		zap.Float64("score", m.Score))
	return m, all, nil
}

func (ts *toolset) deleteTaskByDescription(ctx context.Context, _ *mcp.CallToolRequest, args DeleteByDescriptionArgs) (*mcp.CallToolResult, DeleteByDescriptionOutput, error) {
	m, _, err := ts.matchByDescription(ctx, args.TaskDescription)
	if err != nil {
		return nil, DeleteByDescriptionOutput{}, err
	}

	ok, err := ts.svc.Delete(ctx, m.TaskID, ts.userID)
	if err != nil {
		return nil, DeleteByDescriptionOutput{}, err
	}
	if !ok {
		return nil, DeleteByDescriptionOutput{}, fmt.Errorf("Task with id %s could not be deleted", m.TaskID)
	}

	return nil, DeleteByDescriptionOutput{
		TaskID:             m.TaskID,
		Status:             "deleted",
		Title:              m.Title,
		MatchedDescription: args.TaskDescription,
		MatchScore:         m.Score,
	}, nil
}

func (ts *toolset) updateTaskByDescription(ctx context.Context, _ *mcp.CallToolRequest, args UpdateByDescriptionArgs) (*mcp.CallToolResult, TaskRef, error) {
	if args.Title == nil && args.Description == nil {
		return nil, TaskRef{}, errors.New("at least one of title or description must be provided for update")
	}

	m, _, err := ts.matchByDescription(ctx, args.TaskDescription)
	if err != nil {
		return nil, TaskRef{}, err
	}

	t, err := ts.svc.Update(ctx, m.TaskID, ts.userID, args.Title, args.Description)
	if err != nil {
		return nil, TaskRef{}, err
	}
	if t == nil {
		return nil, TaskRef{}, fmt.Errorf("Task with id %s not found or user not authorized", m.TaskID)
	}
	return nil, TaskRef{TaskID: t.ID, Status: string(t.Status), Title: t.Title}, nil
}

func (ts *toolset) completeTaskByDescription(ctx context.Context, _ *mcp.CallToolRequest, args CompleteByDescriptionArgs) (*mcp.CallToolResult, TaskRef, error) {
	completed := true
	if args.Completed != nil {
		completed = *args.Completed
	}

	m, _, err := ts.matchByDescription(ctx, args.TaskDescription)
	if err != nil {
		return nil, TaskRef{}, err
	}

	t, err := ts.svc.Complete(ctx, m.TaskID, ts.userID, completed)
	if err != nil {
		return nil, TaskRef{}, err
	}
	if t == nil {
		return nil, TaskRef{}, fmt.Errorf("Task with id %s not found or user not authorized", m.TaskID)
	}
	return nil, TaskRef{TaskID: t.ID, Status: string(t.Status), Title: t.Title}, nil
}
