// complete_task.go defines the complete_task tool.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// CompleteTaskArgs is the input for the complete_task tool.
type CompleteTaskArgs struct {
	TaskID string `json:"task_id" jsonschema:"The ID of the task to complete"`
	// Completed defaults to true; the handler resolves the default from *bool.
	Completed *bool `json:"completed,omitempty" jsonschema:"Whether to mark as completed (default: true)"`
}

func (ts *toolset) completeTask(ctx context.Context, _ *mcp.CallToolRequest, args CompleteTaskArgs) (*mcp.CallToolResult, TaskRef, error) {
	if args.TaskID == "" {
		return nil, TaskRef{}, errors.New("task_id is required")
	}
	completed := true
	if args.Completed != nil {
		completed = *args.Completed
	}

	id, err := ts.resolveTaskID(ctx, args.TaskID)
	if err != nil {
		return nil, TaskRef{}, err
	}

	t, err := ts.svc.Complete(ctx, id, ts.userID, completed)
	if err != nil {
		return nil, TaskRef{}, err
	}
	if t == nil {
		return nil, TaskRef{}, fmt.Errorf("Task with id %s not found or user not authorized", args.TaskID)
	}

	ts.log.Debug("task completion updated",
		zap.String("task_id", t.ID),
		zap.Bool("completed", completed))
	return nil, TaskRef{TaskID: t.ID, Status: string(t.Status), Title: t.Title}, nil
}
