package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/models"
	"github.com/jmuhoro/todo-api/internal/storage"
)

const (
	defaultPerPage = 5
	maxPerPage     = 100
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  storage.TaskStore
}

func NewTaskService(
	logger zerolog.Logger,
	tasks storage.TaskStore,
) TaskService {
	return &taskServiceImpl{
		logger: logger,
		tasks:  tasks,
	}
}

func (s *taskServiceImpl) Add(ctx context.Context, userID, title, description string) (*models.Task, error) {
	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   time.Now(),
	}

	taskID, err := s.tasks.CreateTask(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to create task")
		return nil, err
	}
	task.ID = taskID

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", userID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) List(ctx context.Context, userID string, page, perPage int) (*TaskPage, error) {
	if page < 1 {
		page = 1
	}
	// perPage < 1 would divide by zero below; fall back to the
	// default instead of rejecting the request.
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total, err := s.tasks.CountTasksByUser(ctx, userID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to count tasks")
		return nil, err
	}

	offset := uint64(page-1) * uint64(perPage)
	tasks, err := s.tasks.TasksByUser(ctx, userID, offset, uint64(perPage))
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to select tasks")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Int64("total", total).
		Str("user_id", userID).
		Msg("listed tasks")
	return &TaskPage{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + int64(perPage) - 1) / int64(perPage),
		Tasks:      tasks,
	}, nil
}

func (s *taskServiceImpl) Get(ctx context.Context, userID string, id int64) (*models.Task, error) {
	task, err := s.tasks.TaskByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", id).
				Str("user_id", userID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to get task")
		return nil, err
	}

	return task, nil
}

func (s *taskServiceImpl) Update(ctx context.Context, userID string, id int64, title, description string) error {
	err := s.tasks.UpdateTask(ctx, userID, id, title, description)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", id).
				Str("user_id", userID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Str("user_id", userID).
		Msg("updated task")
	return nil
}

func (s *taskServiceImpl) Delete(ctx context.Context, userID string, id int64) error {
	err := s.tasks.DeleteTask(ctx, userID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", id).
				Str("user_id", userID).
				Msg("task not found")
			return ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", id).
		Str("user_id", userID).
		Msg("deleted task")
	return nil
}
