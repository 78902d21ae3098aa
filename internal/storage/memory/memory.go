// Package memory provides map-backed stores used by tests
// in place of the Postgres implementations.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jmuhoro/todo-api/internal/models"
	"github.com/jmuhoro/todo-api/internal/storage"
)

var (
	_ storage.UserStore = (*UserStore)(nil)
	_ storage.TaskStore = (*TaskStore)(nil)
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by email
}

func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]models.User),
	}
}

func (s *UserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return storage.ErrDuplicateEmail
	}
	s.users[user.Email] = *user
	return nil
}

func (s *UserStore) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[email]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return &user, nil
}

type TaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]models.Task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		nextID: 1,
		tasks:  make(map[int64]models.Task),
	}
}

func (s *TaskStore) CreateTask(_ context.Context, task *models.Task) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := *task
	t.ID = s.nextID
	s.nextID++
	s.tasks[t.ID] = t
	return t.ID, nil
}

func (s *TaskStore) TaskByID(_ context.Context, userID string, id int64) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.UserID != userID {
		return nil, storage.ErrNotFound
	}
	return &task, nil
}

func (s *TaskStore) TasksByUser(_ context.Context, userID string, offset, limit uint64) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make([]models.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if task.UserID == userID {
			owned = append(owned, task)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].ID < owned[j].ID
	})

	if offset >= uint64(len(owned)) {
		return []models.Task{}, nil
	}
	owned = owned[offset:]
	if limit < uint64(len(owned)) {
		owned = owned[:limit]
	}
	return owned, nil
}

func (s *TaskStore) CountTasksByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, task := range s.tasks {
		if task.UserID == userID {
			total++
		}
	}
	return total, nil
}

func (s *TaskStore) UpdateTask(_ context.Context, userID string, id int64, title, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.UserID != userID {
		return storage.ErrNotFound
	}
	task.Title = title
	task.Description = description
	s.tasks[id] = task
	return nil
}

func (s *TaskStore) DeleteTask(_ context.Context, userID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, exists := s.tasks[id]
	if !exists || task.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}
