package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoList/internal/logger"
	"todoList/internal/models/task"
	repo "todoList/internal/repository"
	"todoList/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// здесь происходит проверка бизнес-правил жизненного цикла задач:
// владелец, статус, дедлайн, уникальность названия, мягкое удаление

type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, title, description string, dueDate *time.Time, status task.Status) (*task.Task, error) {
	if err := validateTitle(title); err != nil {
		logger.Warn("Service: Пустое название задачи",
			zap.String("user_id", userID.String()))
		return nil, err
	}

	if !status.Valid() {
		logger.Warn("Service: Неверный статус задачи",
			zap.String("status", string(status)),
			zap.String("user_id", userID.String()))
		return nil, NewValidation(fmt.Sprintf("Invalid Status - %s", status))
	}

	exists, err := s.repo.TaskTitleExists(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("проверка названия задачи: %w", err)
	}
	if exists {
		logger.Warn("Service: Название задачи уже занято",
			zap.String("title", title),
			zap.String("user_id", userID.String()))
		return nil, NewConflict(fmt.Sprintf("Task %s already exists.", title))
	}

	if err := validateDueDate(dueDate); err != nil {
		logger.Warn("Service: Неверный дедлайн задачи",
			zap.String("user_id", userID.String()))
		return nil, err
	}

	newTask := &task.Task{
		ID:          uuid.New(),
		UserID:      &userID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      status,
	}

	if err := s.repo.CreateTask(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.String("task_id", newTask.ID.String()),
		zap.String("user_id", userID.String()))
	return newTask, nil
}

// List возвращает неудалённые задачи владельца.
// Фильтр равен "all" либо одному из статусов задачи.
func (s *TaskService) List(ctx context.Context, userID uuid.UUID, statusFilter string) ([]*task.Task, error) {
	if statusFilter != task.StatusAll && !task.Status(statusFilter).Valid() {
		logger.Warn("Service: Неверный фильтр статуса",
			zap.String("status", statusFilter),
			zap.String("user_id", userID.String()))
		return nil, NewValidation(fmt.Sprintf("Invalid Status - %s", statusFilter))
	}

	var tasks []*task.Task
	var err error
	if statusFilter == task.StatusAll {
		tasks, err = s.repo.GetTasksByUser(ctx, userID)
	} else {
		tasks, err = s.repo.GetTasksByUserAndStatus(ctx, userID, task.Status(statusFilter))
	}
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	found, err := s.repo.GetTaskByID(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена",
				zap.String("task_id", taskID.String()),
				zap.String("user_id", userID.String()))
			return nil, NewNotFound("Task not found.")
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return found, nil
}

// Update полностью заменяет поля задачи значениями из запроса.
// Исключение - пустое описание: оно наследуется от сохранённой задачи.
func (s *TaskService) Update(ctx context.Context, userID, taskID uuid.UUID, title, description string, dueDate *time.Time, status task.Status) (*task.Task, error) {
	existing, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := validateTitle(title); err != nil {
		logger.Warn("Service: Пустое название задачи",
			zap.String("task_id", taskID.String()))
		return nil, err
	}

	if !status.Valid() {
		logger.Warn("Service: Неверный статус задачи",
			zap.String("status", string(status)),
			zap.String("task_id", taskID.String()))
		return nil, NewValidation(fmt.Sprintf("Invalid Status - %s", status))
	}

	if err := validateDueDate(dueDate); err != nil {
		logger.Warn("Service: Неверный дедлайн задачи",
			zap.String("task_id", taskID.String()))
		return nil, err
	}

	options := []task.TaskOption{
		task.WithTitle(title),
		task.WithDescription(description),
		task.WithDueDate(dueDate),
		task.WithStatus(status),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(existing)
	}

	if err := s.repo.UpdateTask(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewNotFound("Task not found.")
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	logger.Info("Service: Задача обновлена",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", userID.String()))
	return existing, nil
}

// Delete помечает задачу удалённой, строка из хранилища не исчезает
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	existing, err := s.GetByID(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDeleteTask(ctx, existing); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewNotFound("Task not found.")
		}
		return fmt.Errorf("мягкое удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена",
		zap.String("task_id", taskID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// название обязательно, пробельные строки приравниваются к пустым
func validateTitle(title string) error {
	fields := map[string]validation.Field{
		"title": {Value: title, Checks: []validation.Check{validation.CheckEmpty}},
	}
	if fieldErrors := validation.Validate(fields); len(fieldErrors) > 0 {
		return NewFieldErrors(fieldErrors)
	}
	return nil
}

// дедлайн разрешён только начиная с завтрашнего дня
func validateDueDate(dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}

	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, now.Location())

	if due.Before(tomorrow) {
		return NewValidation("Invalid Due Date")
	}
	return nil
}
