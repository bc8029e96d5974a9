// Package history persists conversations and their messages so a chat turn
// can be replayed as model context. Messages are append-only and returned in
// chronological order.
package history

import (
	"context"
	"errors"
	"time"
)

// ErrConversationNotFound is returned when a conversation id does not exist
// or belongs to another user.
var ErrConversationNotFound = errors.New("conversation not found")

// Conversation groups the messages of one ongoing chat.
type Conversation struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is one stored chat turn.
type Message struct {
	ID             string
	ConversationID string
	UserID         string
	Role           string // "user" or "assistant"
	Content        string
	CreatedAt      time.Time
}

// Store is the conversation persistence contract.
//
// GetOrCreateConversation returns the conversation with the given id for the
// user, creating a fresh one when id is empty. A non-empty id that does not
// exist for the user is ErrConversationNotFound.
type Store interface {
	GetOrCreateConversation(ctx context.Context, userID, conversationID string) (*Conversation, error)
	History(ctx context.Context, conversationID string) ([]Message, error)
	AppendMessage(ctx context.Context, conversationID, userID, role, content string) (*Message, error)
	Close() error
}
