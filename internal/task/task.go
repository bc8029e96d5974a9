// task.go defines the task entity and the contract of the external task CRUD
// service. The assistant only reads snapshots and requests mutations; task
// lifecycle is owned by whatever implements Service.
package task

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Status is the task lifecycle state.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Task is one item in a user's list. IDs are opaque strings (UUIDs here, but
// callers may also address tasks by 1-based position, see the tools layer).
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// ErrNotFound is returned when a task id does not resolve to a task owned by
// the given user.
var ErrNotFound = errors.New("task not found or user not authorized")

// Service is the per-user task CRUD collaborator. Every operation is scoped
// to a user id; cross-user visibility is impossible by construction.
//
// List returns tasks in creation order; positional references ("the first
// task") depend on that ordering.
type Service interface {
	List(ctx context.Context, userID, statusFilter string) ([]Task, error)
	Get(ctx context.Context, taskID, userID string) (*Task, error)
	Create(ctx context.Context, userID, title, description string) (*Task, error)
	Update(ctx context.Context, taskID, userID string, title, description *string) (*Task, error)
	Complete(ctx context.Context, taskID, userID string, completed bool) (*Task, error)
	Delete(ctx context.Context, taskID, userID string) (bool, error)
}

// MatchesFilter reports whether a status passes a list filter. Accepted
// filters: "", "all", "pending" (anything not completed), "todo",
// "in-progress"/"in_progress"/"progress", "completed". Unknown filters match
// everything rather than erroring.
func MatchesFilter(s Status, filter string) bool {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", "all":
		return true
	case "pending":
		return s != StatusCompleted
	case "todo":
		return s == StatusTodo
	case "in-progress", "in_progress", "progress":
		return s == StatusInProgress
	case "completed":
		return s == StatusCompleted
	default:
		return true
	}
}
