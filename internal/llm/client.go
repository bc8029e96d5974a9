// Package llm defines the completion-API contract the agent consumes: one
// call taking a system prompt, a {role, content} history, and a set of
// function-tool declarations, returning free text and zero or more proposed
// tool calls. The proposals are untrusted input; the orchestrator
// re-derives intent from the raw message before acting on them.
package llm

import (
	"context"
	"encoding/json"
)

// Message is one turn of conversation context.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ToolCall is a tool invocation proposed by the model. Arguments are raw
// JSON values and must be validated before execution.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Completion is the model's answer to one chat turn.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}

// Client is a chat-completion backend. Tools are OpenAI-style function
// declarations.
type Client interface {
	Complete(ctx context.Context, system string, history []Message, tools []json.RawMessage) (*Completion, error)
}
