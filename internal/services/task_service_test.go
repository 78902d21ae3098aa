package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/storage/memory"
)

func newTestTaskService() TaskService {
	return NewTaskService(zerolog.Nop(), memory.NewTaskStore())
}

func TestTaskAddGetRoundTrip(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	created, err := tasks.Add(ctx, "user-a", "X", "Y")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.UserID != "user-a" {
		t.Fatalf("owner = %q, want %q", created.UserID, "user-a")
	}

	task, err := tasks.Get(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Title != "X" || task.Description != "Y" {
		t.Fatalf("got %q/%q, want X/Y", task.Title, task.Description)
	}
	if task.Completed {
		t.Fatal("new task is completed")
	}
	if task.CreatedAt.IsZero() {
		t.Fatal("creation timestamp not set")
	}
}

func TestTaskOwnerScoping(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	created, err := tasks.Add(ctx, "user-b", "B's task", "private")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	// User A must see user B's task as missing, never as forbidden.
	if _, err := tasks.Get(ctx, "user-a", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Get = %v, want ErrTaskNotFound", err)
	}
	if err := tasks.Update(ctx, "user-a", created.ID, "stolen", "oops"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Update = %v, want ErrTaskNotFound", err)
	}
	if err := tasks.Delete(ctx, "user-a", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Delete = %v, want ErrTaskNotFound", err)
	}

	task, err := tasks.Get(ctx, "user-b", created.ID)
	if err != nil {
		t.Fatalf("owner Get after cross-user attempts: %v", err)
	}
	if task.Title != "B's task" {
		t.Fatalf("title = %q, changed by another user", task.Title)
	}
}

func TestTaskUpdateTouchesOnlyTitleAndDescription(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	created, err := tasks.Add(ctx, "user-a", "before", "old")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	err = tasks.Update(ctx, "user-a", created.ID, "after", "new")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	task, err := tasks.Get(ctx, "user-a", created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if task.Title != "after" || task.Description != "new" {
		t.Fatalf("got %q/%q, want after/new", task.Title, task.Description)
	}
	if task.Completed != created.Completed {
		t.Fatal("update changed the completed flag")
	}
	if !task.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("update changed the creation timestamp: %v != %v", task.CreatedAt, created.CreatedAt)
	}
}

func TestTaskDelete(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	created, err := tasks.Add(ctx, "user-a", "X", "Y")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := tasks.Delete(ctx, "user-a", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := tasks.Get(ctx, "user-a", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("Get after delete = %v, want ErrTaskNotFound", err)
	}
	if err := tasks.Delete(ctx, "user-a", created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second Delete = %v, want ErrTaskNotFound", err)
	}
}

func TestTaskListPagination(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := tasks.Add(ctx, "user-a", fmt.Sprintf("task %d", i), "d")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	// Another user's tasks never leak into the count.
	if _, err := tasks.Add(ctx, "user-b", "other", "d"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    int
		wantPerPage int
		wantCount   int
		wantPages   int64
	}{
		{"defaults", 0, 0, 1, 5, 5, 3},
		{"second page", 2, 5, 2, 5, 5, 3},
		{"last page partial", 3, 5, 3, 5, 2, 3},
		{"beyond last page", 9, 5, 9, 5, 0, 3},
		{"per_page capped to 100", 1, 1000, 1, 100, 12, 1},
		{"per_page zero falls back", 1, 0, 1, 5, 5, 3},
		{"negative values fall back", -3, -1, 1, 5, 5, 3},
		{"exact division", 1, 6, 1, 6, 6, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tasks.List(ctx, "user-a", tt.page, tt.perPage)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if result.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", result.Page, tt.wantPage)
			}
			if result.PerPage != tt.wantPerPage {
				t.Errorf("per_page = %d, want %d", result.PerPage, tt.wantPerPage)
			}
			if result.Total != 12 {
				t.Errorf("total = %d, want 12", result.Total)
			}
			if result.TotalPages != tt.wantPages {
				t.Errorf("total_pages = %d, want %d", result.TotalPages, tt.wantPages)
			}
			if len(result.Tasks) != tt.wantCount {
				t.Errorf("len(tasks) = %d, want %d", len(result.Tasks), tt.wantCount)
			}
		})
	}
}

func TestTaskListOrderedByID(t *testing.T) {
	tasks := newTestTaskService()
	ctx := context.Background()

	for i := 0; i < 8; i++ {
		_, err := tasks.Add(ctx, "user-a", fmt.Sprintf("task %d", i), "d")
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	result, err := tasks.List(ctx, "user-a", 1, 100)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for i := 1; i < len(result.Tasks); i++ {
		if result.Tasks[i-1].ID >= result.Tasks[i].ID {
			t.Fatalf("tasks not ordered by id ascending: %d before %d",
				result.Tasks[i-1].ID, result.Tasks[i].ID)
		}
	}
}

func TestTaskListEmpty(t *testing.T) {
	tasks := newTestTaskService()

	result, err := tasks.List(context.Background(), "user-a", 1, 5)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if result.Total != 0 || result.TotalPages != 0 || len(result.Tasks) != 0 {
		t.Fatalf("empty list: total=%d total_pages=%d len=%d, want zeros",
			result.Total, result.TotalPages, len(result.Tasks))
	}
}
