package storage

import (
	"context"
	"errors"

	"github.com/jmuhoro/todo-api/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore persists user records. Email uniqueness is
// enforced at write time.
type UserStore interface {
	// CreateUser inserts the given user. It returns
	// ErrDuplicateEmail if a user with the same email exists.
	CreateUser(ctx context.Context, user *models.User) error

	// UserByEmail returns ErrNotFound if no user matches.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TaskStore persists task records. Every lookup and mutation
// is scoped by the owning user ID.
type TaskStore interface {
	// CreateTask inserts the task and returns its generated ID.
	CreateTask(ctx context.Context, task *models.Task) (int64, error)

	// TaskByID returns ErrNotFound if no task matches
	// both id and userID.
	TaskByID(ctx context.Context, userID string, id int64) (*models.Task, error)

	// TasksByUser returns the user's tasks ordered by id
	// ascending, sliced by offset and limit.
	TasksByUser(ctx context.Context, userID string, offset, limit uint64) ([]models.Task, error)

	// CountTasksByUser returns the total number of the
	// user's tasks, unaffected by pagination.
	CountTasksByUser(ctx context.Context, userID string) (int64, error)

	// UpdateTask overwrites title and description only. It
	// returns ErrNotFound if no task matches id and userID.
	UpdateTask(ctx context.Context, userID string, id int64, title, description string) error

	// DeleteTask returns ErrNotFound if no task matches
	// id and userID.
	DeleteTask(ctx context.Context, userID string, id int64) error
}
