package task

import (
	"context"
	"sync"
	"testing"
)

func mustCreate(t *testing.T, s *MemoryService, userID, title, description string) *Task {
	t.Helper()
	created, err := s.Create(context.Background(), userID, title, description)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

// ---------------------------------------------------------------------------
// Create / Get / List basics
// ---------------------------------------------------------------------------

func TestCreateAndGet(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "buy groceries", "milk and eggs")

	got, err := s.Get(context.Background(), created.ID, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected task, got nil")
	}
	if got.Title != "buy groceries" || got.Description != "milk and eggs" {
		t.Fatalf("unexpected task: %+v", got)
	}
	if got.Status != StatusTodo {
		t.Fatalf("new task should be todo, got %s", got.Status)
	}
}

func TestGetWrongUser(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "buy groceries", "")

	got, err := s.Get(context.Background(), created.ID, "u2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for another user's task")
	}
}

func TestListPreservesCreationOrder(t *testing.T) {
	s := NewMemoryService()
	mustCreate(t, s, "u1", "first", "")
	mustCreate(t, s, "u1", "second", "")
	mustCreate(t, s, "u1", "third", "")

	all, err := s.List(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(all))
	}
	if all[0].Title != "first" || all[1].Title != "second" || all[2].Title != "third" {
		t.Fatalf("unexpected order: %s, %s, %s", all[0].Title, all[1].Title, all[2].Title)
	}
}

func TestListScopedToUser(t *testing.T) {
	s := NewMemoryService()
	mustCreate(t, s, "u1", "mine", "")
	mustCreate(t, s, "u2", "theirs", "")

	got, err := s.List(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Title != "mine" {
		t.Fatalf("expected only u1's task, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Status filters
// ---------------------------------------------------------------------------

func TestListStatusFilter(t *testing.T) {
	s := NewMemoryService()
	a := mustCreate(t, s, "u1", "open one", "")
	b := mustCreate(t, s, "u1", "done one", "")
	if _, err := s.Complete(context.Background(), b.ID, "u1", true); err != nil {
		t.Fatalf("complete: %v", err)
	}

	pending, err := s.List(context.Background(), "u1", "pending")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != a.ID {
		t.Fatalf("pending filter: expected only the open task, got %+v", pending)
	}

	completed, err := s.List(context.Background(), "u1", "completed")
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != b.ID {
		t.Fatalf("completed filter: expected only the done task, got %+v", completed)
	}

	all, err := s.List(context.Background(), "u1", "all")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("all filter: expected 2, got %d", len(all))
	}
}

func TestMatchesFilterVariants(t *testing.T) {
	cases := []struct {
		status Status
		filter string
		want   bool
	}{
		{StatusTodo, "", true},
		{StatusTodo, "all", true},
		{StatusTodo, "pending", true},
		{StatusTodo, "todo", true},
		{StatusInProgress, "pending", true},
		{StatusInProgress, "in_progress", true},
		{StatusInProgress, "in-progress", true},
		{StatusCompleted, "pending", false},
		{StatusCompleted, "completed", true},
		{StatusTodo, "completed", false},
	}
	for _, c := range cases {
		if got := MatchesFilter(c.status, c.filter); got != c.want {
			t.Errorf("MatchesFilter(%s, %q) = %v, want %v", c.status, c.filter, got, c.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestUpdateTitleOnly(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "old title", "keep this")

	newTitle := "new title"
	got, err := s.Update(context.Background(), created.ID, "u1", &newTitle, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got == nil {
		t.Fatal("expected updated task")
	}
	if got.Title != "new title" || got.Description != "keep this" {
		t.Fatalf("unexpected task after update: %+v", got)
	}
}

func TestUpdateWrongUser(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "mine", "")

	title := "hijacked"
	got, err := s.Update(context.Background(), created.ID, "u2", &title, nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for another user's task")
	}

	check, _ := s.Get(context.Background(), created.ID, "u1")
	if check.Title != "mine" {
		t.Fatal("task should be unchanged")
	}
}

// ---------------------------------------------------------------------------
// Complete / reopen
// ---------------------------------------------------------------------------

func TestCompleteAndReopen(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "toggle me", "")

	done, err := s.Complete(context.Background(), created.ID, "u1", true)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}

	// completing again is not an error
	again, err := s.Complete(context.Background(), created.ID, "u1", true)
	if err != nil {
		t.Fatalf("complete twice: %v", err)
	}
	if again.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", again.Status)
	}

	reopened, err := s.Complete(context.Background(), created.ID, "u1", false)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Status != StatusTodo {
		t.Fatalf("expected todo after reopen, got %s", reopened.Status)
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestDeleteRemovesFromOrder(t *testing.T) {
	s := NewMemoryService()
	a := mustCreate(t, s, "u1", "first", "")
	b := mustCreate(t, s, "u1", "second", "")
	_ = a

	ok, err := s.Delete(context.Background(), a.ID, "u1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !ok {
		t.Fatal("delete should report true")
	}

	all, _ := s.List(context.Background(), "u1", "")
	if len(all) != 1 || all[0].ID != b.ID {
		t.Fatalf("expected only second task, got %+v", all)
	}
}

func TestDeleteWrongUser(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "mine", "")

	ok, err := s.Delete(context.Background(), created.ID, "u2")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("delete should report false for another user's task")
	}
}

func TestDeleteNonExistent(t *testing.T) {
	s := NewMemoryService()
	ok, err := s.Delete(context.Background(), "nope", "u1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("delete should report false for missing id")
	}
}

// ---------------------------------------------------------------------------
// Returned values are copies
// ---------------------------------------------------------------------------

func TestReturnedTasksAreCopies(t *testing.T) {
	s := NewMemoryService()
	created := mustCreate(t, s, "u1", "original", "")

	created.Title = "mutated"
	got, _ := s.Get(context.Background(), created.ID, "u1")
	if got.Title != "original" {
		t.Fatal("mutating a returned task should not affect the store")
	}

	list, _ := s.List(context.Background(), "u1", "")
	list[0].Title = "mutated again"
	got, _ = s.Get(context.Background(), created.ID, "u1")
	if got.Title != "original" {
		t.Fatal("mutating a listed task should not affect the store")
	}
}

// ---------------------------------------------------------------------------
// Concurrent access (designed to catch races with -race flag)
// ---------------------------------------------------------------------------

func TestConcurrentAccess(t *testing.T) {
	s := NewMemoryService()
	ctx := context.Background()

	var ids []string
	for i := 0; i < 50; i++ {
		created := mustCreate(t, s, "u1", "task", "")
		ids = append(ids, created.ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(3)
		id := id
		go func() {
			defer wg.Done()
			_, _ = s.Complete(ctx, id, "u1", true)
		}()
		go func() {
			defer wg.Done()
			_, _ = s.List(ctx, "u1", "")
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Delete(ctx, id, "u1")
		}()
	}
	wg.Wait()
}
