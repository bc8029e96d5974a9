// server.go wires the task tools onto an MCP server and exposes an
// in-process connection for the agent. The server is created per user and
// per message-processing cycle, mirroring the stateless-server rule: tools
// carry no memory between turns beyond what the task service stores.
//
// The same server could be mounted on a stdio transport unchanged; the agent
// talks to it over the SDK's in-memory transport pair.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
)

// MutationTools is the set of tool names whose execution mutates the task
// list. The orchestrator uses it to separate mutation results from listing
// results.
var MutationTools = map[string]bool{
	"add_task":                     true,
	"update_task":                  true,
	"update_task_by_description":   true,
	"delete_task":                  true,
	"delete_task_by_description":   true,
	"complete_task":                true,
	"complete_task_by_description": true,
}

// toolset holds the per-user collaborators the handlers close over.
type toolset struct {
	svc      task.Service
	resolver *resolve.Resolver
	userID   string
	log      *zap.Logger
}

// Conn is an in-process client connection to the task tool server.
type Conn struct {
	client *mcp.ClientSession
	server *mcp.ServerSession
}

// NewConn builds the tool server for one user and connects to it over an
// in-memory transport.
func NewConn(ctx context.Context, svc task.Service, resolver *resolve.Resolver, userID string, log *zap.Logger) (*Conn, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ts := &toolset{svc: svc, resolver: resolver, userID: userID, log: log}

	server := mcp.NewServer(&mcp.Implementation{Name: "taskory-tools", Version: "1.0.0"}, nil)
	ts.register(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return nil, fmt.Errorf("connect tool server: %w", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "taskory-agent", Version: "1.0.0"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		serverSession.Close()
		return nil, fmt.Errorf("connect tool client: %w", err)
	}

	return &Conn{client: clientSession, server: serverSession}, nil
}

func (ts *toolset) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a new task to the user's task list",
	}, ts.addTask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks for the user",
	}, ts.listTasks)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed",
	}, ts.completeTask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_task_by_description",
		Description: "Mark a task as completed by matching its description/title",
	}, ts.completeTaskByDescription)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task from the user's task list by ID",
	}, ts.deleteTask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task_by_description",
		Description: "Delete a task from the user's task list by matching its description/title",
	}, ts.deleteTaskByDescription)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update an existing task",
	}, ts.updateTask)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task_by_description",
		Description: "Update a task by matching its description/title",
	}, ts.updateTaskByDescription)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_tasks_by_title",
		Description: "Search for tasks by matching their titles using fuzzy matching",
	}, ts.searchTasksByTitle)
}

// Execute invokes a tool by name. Tool-level failures (validation, no match,
// not found) come back as an error; the caller is expected to fold them into
// a per-call {error} result rather than aborting its batch.
func (c *Conn) Execute(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	res, err := c.client.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, err
	}
	if res.IsError {
		return nil, errors.New(resultText(res))
	}

	if res.StructuredContent != nil {
		raw, err := json.Marshal(res.StructuredContent)
		if err != nil {
			return nil, err
		}
		var out map[string]any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return map[string]any{"result": resultText(res)}, nil
}

// Schemas returns the OpenAI-style function declarations for every
// registered tool, derived from the MCP input schemas so there is a single
// source of truth for the tool surface.
func (c *Conn) Schemas(ctx context.Context) ([]json.RawMessage, error) {
	listed, err := c.client.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return nil, err
	}

	var schemas []json.RawMessage
	for _, t := range listed.Tools {
		params, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil, err
		}
		decl, err := json.Marshal(map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name,
				"description": t.Description,
				"parameters":  json.RawMessage(params),
			},
		})
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, decl)
	}
	return schemas, nil
}

// Close tears down both ends of the in-memory connection.
func (c *Conn) Close() error {
	cerr := c.client.Close()
	serr := c.server.Close()
	if cerr != nil {
		return cerr
	}
	return serr
}

func resultText(res *mcp.CallToolResult) string {
	for _, content := range res.Content {
		if tc, ok := content.(*mcp.TextContent); ok && tc.Text != "" {
			return tc.Text
		}
	}
	return "tool call failed"
}
