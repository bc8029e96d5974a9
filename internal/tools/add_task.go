// add_task.go defines the add_task tool.
package tools

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// AddTaskArgs is the input for the add_task tool.
type AddTaskArgs struct {
	Title       string `json:"title" jsonschema:"The title of the task"`
	Description string `json:"description,omitempty" jsonschema:"Optional description of the task"`
}

// TaskRef is the structured result shared by the mutation tools: enough to
// confirm what happened without echoing the whole task.
type TaskRef struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
	Title  string `json:"title"`
}

func (ts *toolset) addTask(ctx context.Context, _ *mcp.CallToolRequest, args AddTaskArgs) (*mcp.CallToolResult, TaskRef, error) {
	if strings.TrimSpace(args.Title) == "" {
		return nil, TaskRef{}, errors.New("title is required")
	}

	t, err := ts.svc.Create(ctx, ts.userID, args.Title, args.Description)
	if err != nil {
		return nil, TaskRef{}, err
	}
	ts.log.Debug("task created", zap.String("task_id", t.ID), zap.String("title", t.Title))
	return nil, TaskRef{TaskID: t.ID, Status: string(t.Status), Title: t.Title}, nil
}
