// memory.go implements a thread-safe, in-memory task service.
//
// Tasks are stored in a map for O(1) lookup and a separate slice to preserve
// creation order for stable iteration in List; positional resolution relies
// on that order. State is ephemeral; it lives only for the duration of the
// process.
package task

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryService holds all tasks in memory, protected by a mutex. It
// implements Service and backs the CLI and the tests.
type MemoryService struct {
	mu    sync.Mutex
	tasks map[string]*Task
	order []string // creation order for stable iteration
}

// NewMemoryService creates an empty in-memory task service.
func NewMemoryService() *MemoryService {
	return &MemoryService{
		tasks: make(map[string]*Task),
	}
}

// List returns copies of the user's tasks in creation order, filtered by
// status. Copies keep callers from racing with concurrent mutations.
func (s *MemoryService) List(_ context.Context, userID, statusFilter string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []Task
	for _, id := range s.order {
		t := s.tasks[id]
		if t == nil || t.UserID != userID {
			continue
		}
		if !MatchesFilter(t.Status, statusFilter) {
			continue
		}
		result = append(result, *t)
	}
	return result, nil
}

// Get returns a copy of a single task, or nil if the id does not belong to
// the user.
func (s *MemoryService) Get(_ context.Context, taskID, userID string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tasks[taskID]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

// Create inserts a new task with status todo.
func (s *MemoryService) Create(_ context.Context, userID, title, description string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   time.Now(),
	}
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	cp := *t
	return &cp, nil
}

// Update changes title and/or description. Nil fields are left untouched.
// Returns nil when the task does not exist for this user.
func (s *MemoryService) Update(_ context.Context, taskID, userID string, title, description *string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tasks[taskID]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	if title != nil {
		t.Title = *title
	}
	if description != nil {
		t.Description = *description
	}
	cp := *t
	return &cp, nil
}

// Complete marks a task completed (or back to todo). Completing an already
// completed task succeeds and reports the completed state again.
func (s *MemoryService) Complete(_ context.Context, taskID, userID string, completed bool) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tasks[taskID]
	if t == nil || t.UserID != userID {
		return nil, nil
	}
	if completed {
		t.Status = StatusCompleted
	} else {
		t.Status = StatusTodo
	}
	cp := *t
	return &cp, nil
}

// Delete removes a task, reporting whether anything was deleted.
func (s *MemoryService) Delete(_ context.Context, taskID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.tasks[taskID]
	if t == nil || t.UserID != userID {
		return false, nil
	}
	delete(s.tasks, taskID)
	for i, id := range s.order {
		if id == taskID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true, nil
}
