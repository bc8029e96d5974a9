// Package chat is the conversational entry point: it loads the conversation
// context, runs the agent, and persists both sides of the exchange.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskory-assistant/internal/agent"
	"taskory-assistant/internal/history"
	"taskory-assistant/internal/llm"
)

// Result is the outcome of one sent message.
type Result struct {
	ConversationID string             `json:"conversation_id"`
	Response       string             `json:"response"`
	ToolCalls      []agent.ToolResult `json:"tool_calls"`
}

// Service wires conversation persistence to the agent.
type Service struct {
	store history.Store
	agent *agent.Agent
	log   *zap.Logger
}

// New creates a Service. log may be nil.
func New(store history.Store, a *agent.Agent, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, agent: a, log: log}
}

// Send processes one user message inside a conversation. An empty
// conversationID starts a new conversation. The user message is persisted
// even when the agent degrades to an apologetic response, so the exchange
// stays replayable.
func (s *Service) Send(ctx context.Context, userID, conversationID, text string) (*Result, error) {
	conv, err := s.store.GetOrCreateConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("conversation: %w", err)
	}

	stored, err := s.store.History(ctx, conv.ID)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	msgs := make([]llm.Message, 0, len(stored))
	for _, m := range stored {
		msgs = append(msgs, llm.Message{Role: m.Role, Content: m.Content})
	}

	if _, err := s.store.AppendMessage(ctx, conv.ID, userID, "user", text); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	reply := s.agent.ProcessMessage(ctx, userID, text, msgs)

	if _, err := s.store.AppendMessage(ctx, conv.ID, userID, "assistant", reply.Response); err != nil {
		// The reply already happened; log and return it anyway.
		s.log.Warn("persist assistant message failed",
			zap.String("conversation_id", conv.ID), zap.Error(err))
	}

	s.log.Info("message processed",
		zap.String("conversation_id", conv.ID),
		zap.String("user_id", userID),
		zap.Int("tool_calls", len(reply.ToolCalls)))

	return &Result{
		ConversationID: conv.ID,
		Response:       reply.Response,
		ToolCalls:      reply.ToolCalls,
	}, nil
}
