// ollama.go implements the completion client against a local or remote
// Ollama instance. Non-streaming: the callback fires once with the full
// message, including any tool calls the model proposed.
package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// Ollama is a Client backed by the Ollama chat API.
type Ollama struct {
	client *api.Client
	model  string
	log    *zap.Logger
}

// NewOllama resolves the host from OLLAMA_HOST (default localhost:11434).
func NewOllama(model string, log *zap.Logger) (*Ollama, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}
	return &Ollama{client: client, model: model, log: log}, nil
}

// Complete sends one chat request with the tool declarations attached and
// collects the model's content and tool calls.
func (o *Ollama) Complete(ctx context.Context, system string, history []Message, tools []json.RawMessage) (*Completion, error) {
	msgs := make([]api.Message, 0, len(history)+1)
	msgs = append(msgs, api.Message{Role: "system", Content: system})
	for _, m := range history {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		msgs = append(msgs, api.Message{Role: role, Content: m.Content})
	}

	// The declarations are already OpenAI-style JSON; round-trip them into
	// the api types rather than hand-building the nested schema structs.
	var apiTools api.Tools
	if len(tools) > 0 {
		raw, err := json.Marshal(tools)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &apiTools); err != nil {
			return nil, fmt.Errorf("tool declarations: %w", err)
		}
	}

	stream := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: msgs,
		Tools:    apiTools,
		Stream:   &stream,
	}

	out := &Completion{}
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		out.Content += resp.Message.Content
		for _, tc := range resp.Message.ToolCalls {
			args := map[string]any{}
			raw, err := json.Marshal(tc.Function.Arguments)
			if err == nil {
				_ = json.Unmarshal(raw, &args)
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				Name:      tc.Function.Name,
				Arguments: args,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat: %w", err)
	}

	o.log.Debug("completion received",
		zap.Int("tool_calls", len(out.ToolCalls)),
		zap.Int("content_len", len(out.Content)))
	return out, nil
}
