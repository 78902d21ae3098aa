package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jmuhoro/todo-api/internal/models"
	"github.com/jmuhoro/todo-api/internal/storage"
)

type taskStoreImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) storage.TaskStore {
	return &taskStoreImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskStoreImpl) CreateTask(ctx context.Context, task *models.Task) (int64, error) {
	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   completed,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	var taskID int64
	err := s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
		task.CreatedAt,
	).Scan(&taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return 0, err
	}
	s.logger.Debug().
		Int64("task_id", taskID).
		Msg("inserted task")

	return taskID, nil
}

func (s *taskStoreImpl) TaskByID(ctx context.Context, userID string, id int64) (*models.Task, error) {
	task := &models.Task{
		ID:     id,
		UserID: userID,
	}

	const selectTaskByIDQuery = `
SELECT title,
       description,
       completed,
       created_at
FROM tasks
WHERE id = $1 AND user_id = $2
`
	err := s.pgPool.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
		task.UserID,
	).Scan(
		&task.Title,
		&task.Description,
		&task.Completed,
		&task.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", id).
				Str("user_id", userID).
				Msg("task not found")
			return nil, storage.ErrNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("selected task by id")

	return task, nil
}

func (s *taskStoreImpl) TasksByUser(ctx context.Context, userID string, offset, limit uint64) ([]models.Task, error) {
	const selectTasksByUserQuery = `
SELECT id,
       title,
       description,
       completed,
       created_at
FROM tasks
WHERE user_id = $1
ORDER BY id
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserQuery,
		userID,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, limit)
	for rows.Next() {
		task := models.Task{UserID: userID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Completed,
			&task.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", userID).
		Msg("selected tasks by user id")

	return tasks, nil
}

func (s *taskStoreImpl) CountTasksByUser(ctx context.Context, userID string) (int64, error) {
	const countTasksByUserQuery = `
SELECT count(*)
FROM tasks
WHERE user_id = $1
`
	var total int64
	err := s.pgPool.QueryRow(
		ctx,
		countTasksByUserQuery,
		userID,
	).Scan(&total)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Msg("failed to count tasks by user id")
		return 0, err
	}

	return total, nil
}

func (s *taskStoreImpl) UpdateTask(ctx context.Context, userID string, id int64, title, description string) error {
	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2
WHERE id = $3 AND user_id = $4
`
	tag, err := s.pgPool.Exec(
		ctx,
		updateTaskQuery,
		title,
		description,
		id,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("task_id", id).
			Str("user_id", userID).
			Msg("task not found")
		return storage.ErrNotFound
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("updated task")

	return nil
}

func (s *taskStoreImpl) DeleteTask(ctx context.Context, userID string, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		id,
		userID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("task_id", id).
			Str("user_id", userID).
			Msg("task not found")
		return storage.ErrNotFound
	}
	s.logger.Debug().
		Int64("task_id", id).
		Msg("deleted task")

	return nil
}
