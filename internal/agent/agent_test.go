package agent

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskory-assistant/internal/fuzzy"
	"taskory-assistant/internal/llm"
	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
)

// scriptedClient returns a fixed completion (or error) regardless of input.
type scriptedClient struct {
	completion *llm.Completion
	err        error
}

func (c *scriptedClient) Complete(_ context.Context, _ string, _ []llm.Message, _ []json.RawMessage) (*llm.Completion, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.completion, nil
}

func newAgent(t *testing.T, client llm.Client) (*Agent, task.Service) {
	t.Helper()
	svc := task.NewMemoryService()
	resolver := resolve.New(fuzzy.NewMatcher(true), nil)
	return New(client, svc, resolver, nil), svc
}

func seed(t *testing.T, svc task.Service, userID string, titles ...string) []task.Task {
	t.Helper()
	var created []task.Task
	for _, title := range titles {
		tk, err := svc.Create(context.Background(), userID, title, "")
		require.NoError(t, err)
		created = append(created, *tk)
	}
	return created
}

func TestProcessMessageCompletionError(t *testing.T) {
	a, _ := newAgent(t, &scriptedClient{err: errors.New("connection refused")})

	reply := a.ProcessMessage(context.Background(), "u1", "hello", nil)
	assert.Equal(t, upstreamErrorResponse, reply.Response)
	assert.Empty(t, reply.ToolCalls)
}

func TestProcessMessageChitChatPassesThrough(t *testing.T) {
	a, _ := newAgent(t, &scriptedClient{
		completion: &llm.Completion{Content: "Hi! I can help with your tasks."},
	})

	reply := a.ProcessMessage(context.Background(), "u1", "hello there", nil)
	assert.Equal(t, "Hi! I can help with your tasks.", reply.Response)
	assert.Empty(t, reply.ToolCalls)
}

func TestProcessMessageEmptyContentGetsGreeting(t *testing.T) {
	a, _ := newAgent(t, &scriptedClient{completion: &llm.Completion{}})

	reply := a.ProcessMessage(context.Background(), "u1", "hello", nil)
	assert.Equal(t, defaultGreeting, reply.Response)
}

func TestMutationIntentWithNoToolCalls(t *testing.T) {
	// The model answered with prose despite a delete request; the reply must
	// be an explicit failure, never a fabricated confirmation.
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{Content: "Sure, deleted!"},
	})
	seed(t, svc, "u1", "buy groceries")

	reply := a.ProcessMessage(context.Background(), "u1", "delete the groceries task", nil)
	assert.Contains(t, reply.Response, "couldn't find a matching task to delete")

	remaining, _ := svc.List(context.Background(), "u1", "")
	assert.Len(t, remaining, 1, "no mutation may happen without a tool call")
}

func TestAddTask(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "add_task", Arguments: map[string]any{"title": "call mom"}},
		}},
	})

	reply := a.ProcessMessage(context.Background(), "u1", "add a task to call mom", nil)
	assert.Equal(t, "Your task 'call mom' has been added successfully.", reply.Response)
	require.Len(t, reply.ToolCalls, 1)
	assert.Empty(t, reply.ToolCalls[0].Err())

	tasks, _ := svc.List(context.Background(), "u1", "")
	require.Len(t, tasks, 1)
	assert.Equal(t, "call mom", tasks[0].Title)
}

func TestCompleteFirstTaskByPosition(t *testing.T) {
	// The model proposes a bogus task_id; positional resolution against the
	// snapshot must override it.
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "complete_task", Arguments: map[string]any{"task_id": "some-guess"}},
		}},
	})
	created := seed(t, svc, "u1", "buy groceries", "do homework")

	reply := a.ProcessMessage(context.Background(), "u1", "mark the first one as done", nil)
	assert.Equal(t, "I've marked 'buy groceries' as completed.", reply.Response)

	got, _ := svc.Get(context.Background(), created[0].ID, "u1")
	assert.Equal(t, task.StatusCompleted, got.Status)
	got, _ = svc.Get(context.Background(), created[1].ID, "u1")
	assert.Equal(t, task.StatusTodo, got.Status)
}

func TestDeleteByTitleSpecificPhrase(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "delete_task", Arguments: map[string]any{"task_id": "whatever"}},
		}},
	})
	seed(t, svc, "u1", "groceries", "homework")

	reply := a.ProcessMessage(context.Background(), "u1", "delete the task called groceries", nil)
	assert.Contains(t, reply.Response, "deleted")

	remaining, _ := svc.List(context.Background(), "u1", "")
	require.Len(t, remaining, 1)
	assert.Equal(t, "homework", remaining[0].Title)
}

func TestDeleteWithEmptyListFails(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "delete_task", Arguments: map[string]any{"task_id": "whatever"}},
		}},
	})

	reply := a.ProcessMessage(context.Background(), "u1", "delete the task called groceries", nil)
	assert.Contains(t, reply.Response, "couldn't")

	remaining, _ := svc.List(context.Background(), "u1", "")
	assert.Empty(t, remaining)
}

func TestBulkDeleteClearsEverything(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "delete_task", Arguments: map[string]any{"task_id": "whatever"}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta", "gamma")

	reply := a.ProcessMessage(context.Background(), "u1", "clear my list", nil)
	assert.Equal(t, "All your tasks have been cleared.", reply.Response)
	assert.Len(t, reply.ToolCalls, 3)

	remaining, _ := svc.List(context.Background(), "u1", "")
	assert.Empty(t, remaining)
}

func TestBulkDeleteRomanUrdu(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "delete_task_by_description", Arguments: map[string]any{"task_description": "all tasks"}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta")

	reply := a.ProcessMessage(context.Background(), "u1", "sab delete kar do", nil)
	assert.Equal(t, "All your tasks have been cleared.", reply.Response)

	remaining, _ := svc.List(context.Background(), "u1", "")
	assert.Empty(t, remaining)
}

func TestBulkCompleteAll(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "complete_task", Arguments: map[string]any{"task_id": "x"}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta")

	reply := a.ProcessMessage(context.Background(), "u1", "mark all done", nil)
	assert.Equal(t, "All your tasks have been marked as completed.", reply.Response)

	tasks, _ := svc.List(context.Background(), "u1", "")
	for _, tk := range tasks {
		assert.Equal(t, task.StatusCompleted, tk.Status)
	}
}

func TestBulkUpdateIsRefused(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "update_task_by_description", Arguments: map[string]any{
				"task_description": "all tasks", "title": "renamed",
			}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta")

	reply := a.ProcessMessage(context.Background(), "u1", "rename all my tasks", nil)
	require.Len(t, reply.ToolCalls, 1)
	assert.Contains(t, reply.ToolCalls[0].Err(), "Bulk update")

	tasks, _ := svc.List(context.Background(), "u1", "")
	for _, tk := range tasks {
		assert.NotEqual(t, "renamed", tk.Title)
	}
}

func TestListingLeakOverriddenByMutation(t *testing.T) {
	// The model pads a delete with a list_tasks call; the listing wording
	// must not leak into the confirmation of a mutation request.
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "list_tasks", Arguments: map[string]any{}},
			{Name: "delete_task", Arguments: map[string]any{"task_id": "x"}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta")

	reply := a.ProcessMessage(context.Background(), "u1", "delete the first one", nil)
	assert.Equal(t, "Your task 'alpha' has been deleted.", reply.Response)
}

func TestListTasksResponse(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "list_tasks", Arguments: map[string]any{}},
		}},
	})
	seed(t, svc, "u1", "alpha", "beta", "gamma")

	reply := a.ProcessMessage(context.Background(), "u1", "show my tasks", nil)
	assert.Equal(t, "You have 3 tasks.", reply.Response)
}

func TestListTasksSingle(t *testing.T) {
	a, svc := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "list_tasks", Arguments: map[string]any{}},
		}},
	})
	seed(t, svc, "u1", "alpha")

	reply := a.ProcessMessage(context.Background(), "u1", "show my tasks", nil)
	assert.Equal(t, "Your task is: 'alpha'", reply.Response)
}

func TestListTasksEmpty(t *testing.T) {
	a, _ := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "list_tasks", Arguments: map[string]any{}},
		}},
	})

	reply := a.ProcessMessage(context.Background(), "u1", "show my tasks", nil)
	assert.Equal(t, "You don't have any tasks right now.", reply.Response)
}

func TestUnknownToolIsContained(t *testing.T) {
	a, _ := newAgent(t, &scriptedClient{
		completion: &llm.Completion{ToolCalls: []llm.ToolCall{
			{Name: "reboot_server", Arguments: map[string]any{}},
		}},
	})

	reply := a.ProcessMessage(context.Background(), "u1", "show my tasks", nil)
	require.Len(t, reply.ToolCalls, 1)
	assert.Contains(t, reply.ToolCalls[0].Err(), "Unknown tool")
}

func TestMarshalResults(t *testing.T) {
	out := MarshalResults([]ToolResult{
		{Name: "add_task", Arguments: map[string]any{"title": "x"}, Result: map[string]any{"task_id": "1"}},
	})
	assert.Contains(t, out, `"add_task"`)

	assert.Equal(t, "[]", MarshalResults(nil))
}
