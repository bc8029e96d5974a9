// Package agent orchestrates one chat turn: it asks the completion API for
// tool-call proposals, re-derives intent from the raw message (the proposals
// are untrusted), resolves task references against a fresh snapshot,
// dispatches tools with per-call error containment, and synthesizes the
// final reply.
package agent

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"taskory-assistant/internal/intent"
	"taskory-assistant/internal/llm"
	"taskory-assistant/internal/resolve"
	"taskory-assistant/internal/task"
	"taskory-assistant/internal/tools"
)

// Canned degraded responses. Raw error internals never reach the user.
const (
	upstreamErrorResponse   = "Sorry, I'm having trouble connecting to the AI service right now. Please try again in a moment."
	unexpectedErrorResponse = "Sorry, I encountered an issue while processing your request. Could you try rephrasing that?"
	defaultGreeting         = "I'm here to help you manage your tasks. What would you like to do?"
)

// ToolResult records one executed (or attempted) tool call. Failures carry
// {"error": ...} in Result; results are accumulated in arrival order and
// never discarded.
type ToolResult struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
	Result    map[string]any `json:"result"`
}

// Err returns the error message of a failed result, or "".
func (r ToolResult) Err() string {
	if s, ok := r.Result["error"].(string); ok {
		return s
	}
	return ""
}

// Reply is the outcome of one processed message.
type Reply struct {
	Response  string       `json:"response"`
	ToolCalls []ToolResult `json:"tool_calls"`
}

// Agent processes chat messages for task management. It holds no per-turn
// state: the task snapshot is refetched every cycle and discarded.
type Agent struct {
	llm      llm.Client
	svc      task.Service
	resolver *resolve.Resolver
	log      *zap.Logger
}

// New creates an Agent. log may be nil.
func New(client llm.Client, svc task.Service, resolver *resolve.Resolver, log *zap.Logger) *Agent {
	if log == nil {
		log = zap.NewNop()
	}
	return &Agent{llm: client, svc: svc, resolver: resolver, log: log}
}

// ProcessMessage handles one user message with its prior {role, content}
// history and returns the reply. It never returns an error: completion-API
// failures and unexpected defects degrade into apologetic responses, and
// per-tool failures stay contained in their ToolResult.
func (a *Agent) ProcessMessage(ctx context.Context, userID, message string, history []llm.Message) (reply *Reply) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("panic while processing message", zap.Any("panic", r))
			reply = &Reply{Response: unexpectedErrorResponse, ToolCalls: []ToolResult{}}
		}
	}()

	conn, err := tools.NewConn(ctx, a.svc, a.resolver, userID, a.log)
	if err != nil {
		a.log.Error("tool server setup failed", zap.Error(err))
		return &Reply{Response: unexpectedErrorResponse, ToolCalls: []ToolResult{}}
	}
	defer conn.Close()

	schemas, err := conn.Schemas(ctx)
	if err != nil {
		a.log.Error("tool schema listing failed", zap.Error(err))
		return &Reply{Response: unexpectedErrorResponse, ToolCalls: []ToolResult{}}
	}

	msgs := make([]llm.Message, 0, len(history)+1)
	msgs = append(msgs, history...)
	msgs = append(msgs, llm.Message{Role: "user", Content: message})

	completion, err := a.llm.Complete(ctx, systemPrompt, msgs, schemas)
	if err != nil {
		a.log.Error("completion API call failed", zap.Error(err))
		return &Reply{Response: upstreamErrorResponse, ToolCalls: []ToolResult{}}
	}

	mutationIntent := intent.IsMutation(message)

	if len(completion.ToolCalls) == 0 {
		if mutationIntent {
			return &Reply{Response: mutationFailureResponse(message), ToolCalls: []ToolResult{}}
		}
		response := completion.Content
		if response == "" {
			response = defaultGreeting
		}
		return &Reply{Response: response, ToolCalls: []ToolResult{}}
	}

	// One snapshot per cycle; never cached across requests.
	snapshot, err := a.svc.List(ctx, userID, "")
	if err != nil {
		a.log.Warn("task snapshot fetch failed", zap.Error(err))
		snapshot = nil
	}

	d := &dispatcher{
		conn:     conn,
		resolver: a.resolver,
		snapshot: snapshot,
		message:  message,
		log:      a.log,
	}

	results := make([]ToolResult, 0, len(completion.ToolCalls))
	for _, call := range completion.ToolCalls {
		results = append(results, d.dispatch(ctx, call)...)
	}

	response := synthesize(results, message)

	hasMutation := false
	for _, r := range results {
		if tools.MutationTools[r.Name] {
			hasMutation = true
			break
		}
	}

	switch {
	case mutationIntent && hasMutation && looksLikeListing(response):
		// A fallback to listing leaked through; regenerate from the
		// mutation results only.
		var mutations []ToolResult
		for _, r := range results {
			if tools.MutationTools[r.Name] {
				mutations = append(mutations, r)
			}
		}
		if len(mutations) > 0 {
			response = synthesize(mutations, message)
		}
	case mutationIntent && !hasMutation:
		response = mutationFailureResponse(message)
	}

	return &Reply{Response: response, ToolCalls: results}
}

func errorResult(name string, args map[string]any, msg string) ToolResult {
	return ToolResult{Name: name, Arguments: args, Result: map[string]any{"error": msg}}
}

func cloneArgs(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

// MarshalResults renders tool results as JSON for persistence or logging.
// An empty batch renders as an empty array, never as null.
func MarshalResults(results []ToolResult) string {
	if len(results) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return "[]"
	}
	return string(raw)
}
