// update_task.go defines the update_task tool.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// UpdateTaskArgs is the input for the update_task tool. At least one of
// Title or Description must be provided.
type UpdateTaskArgs struct {
	TaskID      string  `json:"task_id" jsonschema:"The ID of the task to update"`
	Title       *string `json:"title,omitempty" jsonschema:"New title for the task (optional)"`
	Description *string `json:"description,omitempty" jsonschema:"New description for the task (optional)"`
}

func (ts *toolset) updateTask(ctx context.Context, _ *mcp.CallToolRequest, args UpdateTaskArgs) (*mcp.CallToolResult, TaskRef, error) {
	if args.TaskID == "" {
		return nil, TaskRef{}, errors.New("task_id is required")
	}
	if args.Title == nil && args.Description == nil {
		return nil, TaskRef{}, errors.New("at least one of title or description must be provided for update")
	}

	id, err := ts.resolveTaskID(ctx, args.TaskID)
	if err != nil {
		return nil, TaskRef{}, err
	}

	t, err := ts.svc.Update(ctx, id, ts.userID, args.Title, args.Description)
	if err != nil {
		return nil, TaskRef{}, err
	}
	if t == nil {
		return nil, TaskRef{}, fmt.Errorf("Task with id %s not found or user not authorized", args.TaskID)
	}

	ts.log.Debug("task updated", zap.String("task_id", t.ID), zap.String("title", t.Title))
	return nil, TaskRef{TaskID: t.ID, Status: string(t.Status), Title: t.Title}, nil
}
