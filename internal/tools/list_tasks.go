// list_tasks.go defines the list_tasks tool.
package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"taskory-assistant/internal/task"
)

// validStatusFilters are the accepted values for the list_tasks status
// argument. "pending" means anything not completed.
var validStatusFilters = []string{"all", "pending", "todo", "in-progress", "in_progress", "progress", "completed"}

// ListTasksArgs is the input for the list_tasks tool.
type ListTasksArgs struct {
	Status string `json:"status,omitempty" jsonschema:"Filter by status: all, pending, completed"`
}

// TaskInfo is one task in a listing.
type TaskInfo struct {
	TaskID      string `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
}

// ListTasksOutput contains the user's tasks in creation order.
type ListTasksOutput struct {
	Tasks []TaskInfo `json:"tasks"`
}

func (ts *toolset) listTasks(ctx context.Context, _ *mcp.CallToolRequest, args ListTasksArgs) (*mcp.CallToolResult, ListTasksOutput, error) {
	filter := strings.ToLower(strings.TrimSpace(args.Status))
	if filter != "" && !validFilter(filter) {
		return nil, ListTasksOutput{}, fmt.Errorf("status must be one of: %s", strings.Join(validStatusFilters, ", "))
	}
	if filter == "all" {
		filter = ""
	}

	tasks, err := ts.svc.List(ctx, ts.userID, filter)
	if err != nil {
		return nil, ListTasksOutput{}, err
	}

	out := ListTasksOutput{Tasks: make([]TaskInfo, 0, len(tasks))}
	for _, t := range tasks {
		out.Tasks = append(out.Tasks, taskInfo(t))
	}
	return nil, out, nil
}

func validFilter(filter string) bool {
	for _, v := range validStatusFilters {
		if filter == v {
			return true
		}
	}
	return false
}

func taskInfo(t task.Task) TaskInfo {
	return TaskInfo{
		TaskID:      t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
}
