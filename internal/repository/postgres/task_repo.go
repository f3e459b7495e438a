package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoList/internal/logger"
	"todoList/internal/models/task"
	repo "todoList/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	query := `INSERT INTO tasks
				(id, user_id, title, description, due_date, status, is_deleted)
				VALUES ($1, $2, $3, $4, $5, $6, FALSE)
				RETURNING created_at, updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.ID,
		taskToCreate.UserID,
		taskToCreate.Title,
		taskToCreate.Description,
		taskToCreate.DueDate,
		taskToCreate.Status,
	).Scan(&taskToCreate.CreatedAt, &taskToCreate.UpdatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err)
		return fmt.Errorf("добавление задачи: %w", err)
	}

	s.warnIfSlow("create_task", start, 50*time.Millisecond)
	return nil
}

func (s *Storage) UpdateTask(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
			SET title = $1,
				description = $2,
				due_date = $3,
				status = $4,
				is_deleted = $5,
				updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query,
		taskToUpdate.Title,
		taskToUpdate.Description,
		taskToUpdate.DueDate,
		taskToUpdate.Status,
		taskToUpdate.IsDeleted,
		taskToUpdate.ID,
	).Scan(&taskToUpdate.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err)
		return fmt.Errorf("обновление задачи: %w", err)
	}

	s.warnIfSlow("update_task", start, 100*time.Millisecond)
	return nil
}

// GetTaskByID возвращает неудалённую задачу владельца
func (s *Storage) GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	start := time.Now()

	query := `SELECT
				id,
				user_id,
				title,
				description,
				due_date,
				status,
				is_deleted,
				created_at,
				updated_at
				FROM tasks
				WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE`

	t := &task.Task{}
	err := s.pool.QueryRow(ctx, query, taskID, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.DueDate,
		&t.Status,
		&t.IsDeleted,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	s.warnIfSlow("get_task", start, 100*time.Millisecond)
	return t, nil
}

// GetTasksByUser возвращает все неудалённые задачи владельца
func (s *Storage) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	query := `SELECT
				id,
				user_id,
				title,
				description,
				due_date,
				status,
				is_deleted,
				created_at,
				updated_at
				FROM tasks
				WHERE user_id = $1 AND is_deleted = FALSE
				ORDER BY created_at`

	return s.queryTasks(ctx, query, userID)
}

// GetTasksByUserAndStatus фильтрует задачи владельца по статусу
func (s *Storage) GetTasksByUserAndStatus(ctx context.Context, userID uuid.UUID, status task.Status) ([]*task.Task, error) {
	query := `SELECT
				id,
				user_id,
				title,
				description,
				due_date,
				status,
				is_deleted,
				created_at,
				updated_at
				FROM tasks
				WHERE user_id = $1 AND status = $2 AND is_deleted = FALSE
				ORDER BY created_at`

	return s.queryTasks(ctx, query, userID, status)
}

func (s *Storage) queryTasks(ctx context.Context, query string, args ...any) ([]*task.Task, error) {
	start := time.Now()

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err)
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t := &task.Task{}

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.DueDate,
			&t.Status,
			&t.IsDeleted,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	s.warnIfSlow("list_tasks", start, 100*time.Millisecond)
	return tasks, nil
}

// TaskTitleExists проверяет занятость названия у владельца.
// Удалённые задачи тоже учитываются: название остаётся занятым.
func (s *Storage) TaskTitleExists(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	start := time.Now()

	query := `SELECT EXISTS(SELECT 1 FROM tasks WHERE user_id = $1 AND title = $2)`

	var exists bool
	err := s.pool.QueryRow(ctx, query, userID, title).Scan(&exists)
	if err != nil {
		logger.Error("Repository: Не удалось проверить название задачи", err)
		return false, fmt.Errorf("проверка названия задачи: %w", err)
	}

	s.warnIfSlow("task_title_exists", start, 50*time.Millisecond)
	return exists, nil
}

// SoftDeleteTask помечает задачу удалённой, строка остаётся в таблице
func (s *Storage) SoftDeleteTask(ctx context.Context, taskToDelete *task.Task) error {
	start := time.Now()

	query := `UPDATE tasks
				SET is_deleted = TRUE,
				updated_at = NOW()
			WHERE id = $1 AND is_deleted = FALSE
			RETURNING updated_at`

	err := s.pool.QueryRow(ctx, query, taskToDelete.ID).Scan(&taskToDelete.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Мягкое удаление задачи", err)
		return fmt.Errorf("мягкое удаление: %w", err)
	}
	taskToDelete.IsDeleted = true

	s.warnIfSlow("soft_delete_task", start, 100*time.Millisecond)
	return nil
}
