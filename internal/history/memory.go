package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. Useful for tests and ephemeral runs.
type MemoryStore struct {
	mu            sync.Mutex
	conversations map[string]*Conversation
	messages      map[string][]Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]*Conversation),
		messages:      make(map[string][]Message),
	}
}

func (s *MemoryStore) GetOrCreateConversation(_ context.Context, userID, conversationID string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conversationID != "" {
		c, ok := s.conversations[conversationID]
		if !ok || c.UserID != userID {
			return nil, ErrConversationNotFound
		}
		out := *c
		return &out, nil
	}

	now := time.Now().UTC()
	c := &Conversation{ID: uuid.NewString(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	s.conversations[c.ID] = c
	out := *c
	return &out, nil
}

func (s *MemoryStore) History(_ context.Context, conversationID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgs := s.messages[conversationID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (s *MemoryStore) AppendMessage(_ context.Context, conversationID, userID, role, content string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], m)
	if c, ok := s.conversations[conversationID]; ok {
		c.UpdatedAt = m.CreatedAt
	}
	return &m, nil
}

func (s *MemoryStore) Close() error { return nil }
