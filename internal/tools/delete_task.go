// delete_task.go defines the delete_task tool.
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// DeleteTaskArgs is the input for the delete_task tool.
type DeleteTaskArgs struct {
	TaskID string `json:"task_id" jsonschema:"The ID of the task to delete"`
}

// DeleteTaskOutput echoes the deleted task. The title is captured before the
// deletion so the confirmation can name it.
type DeleteTaskOutput struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Title  string `json:"title"`
}

func (ts *toolset) deleteTask(ctx context.Context, _ *mcp.CallToolRequest, args DeleteTaskArgs) (*mcp.CallToolResult, DeleteTaskOutput, error) {
	if args.TaskID == "" {
		return nil, DeleteTaskOutput{}, errors.New("task_id is required")
	}

	id, err := ts.resolveTaskID(ctx, args.TaskID)
	if err != nil {
		return nil, DeleteTaskOutput{}, err
	}

	t, err := ts.svc.Get(ctx, id, ts.userID)
	if err != nil {
		return nil, DeleteTaskOutput{}, err
	}
	if t == nil {
		return nil, DeleteTaskOutput{}, fmt.Errorf("Task with id %s not found or user not authorized", args.TaskID)
	}

	ok, err := ts.svc.Delete(ctx, id, ts.userID)
	if err != nil {
		return nil, DeleteTaskOutput{}, err
	}
	if !ok {
		return nil, DeleteTaskOutput{}, fmt.Errorf("Task with id %s not found or user not authorized", args.TaskID)
	}

	ts.log.Debug("task deleted", zap.String("task_id", t.ID), zap.String("title", t.Title))
	return nil, DeleteTaskOutput{TaskID: t.ID, Status: "deleted", Title: t.Title}, nil
}
