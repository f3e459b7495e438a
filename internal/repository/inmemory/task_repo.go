package inmemory

import (
	"context"
	"sync"
	"time"

	"todoList/internal/models/task"
	repo "todoList/internal/repository"

	"github.com/google/uuid"
)

type TaskStorage struct {
	storage map[uuid.UUID]*task.Task
	mtx     *sync.RWMutex
	ids     []uuid.UUID
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[uuid.UUID]*task.Task),
		mtx:     &sync.RWMutex{},
		ids:     []uuid.UUID{},
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func (s *TaskStorage) CreateTask(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now

	stored := *taskToCreate
	s.storage[taskToCreate.ID] = &stored
	s.ids = append(s.ids, taskToCreate.ID)
	return nil
}

func (s *TaskStorage) UpdateTask(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[taskToUpdate.ID]; !ok {
		return repo.ErrNotFound
	}

	taskToUpdate.UpdatedAt = time.Now()
	stored := *taskToUpdate
	s.storage[taskToUpdate.ID] = &stored
	return nil
}

func (s *TaskStorage) GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[taskID]
	if !ok || stored.IsDeleted || !ownedBy(stored, userID) {
		return nil, repo.ErrNotFound
	}

	found := *stored
	return &found, nil
}

// GetTasksByUser возвращает неудалённые задачи владельца в порядке добавления
func (s *TaskStorage) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		stored := s.storage[id]
		if stored.IsDeleted || !ownedBy(stored, userID) {
			continue
		}
		found := *stored
		res = append(res, &found)
	}

	return res, nil
}

func (s *TaskStorage) GetTasksByUserAndStatus(ctx context.Context, userID uuid.UUID, status task.Status) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, id := range s.ids {
		stored := s.storage[id]
		if stored.IsDeleted || stored.Status != status || !ownedBy(stored, userID) {
			continue
		}
		found := *stored
		res = append(res, &found)
	}

	return res, nil
}

// TaskTitleExists учитывает и удалённые задачи: название остаётся занятым
func (s *TaskStorage) TaskTitleExists(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, stored := range s.storage {
		if stored.Title == title && ownedBy(stored, userID) {
			return true, nil
		}
	}
	return false, nil
}

// SoftDeleteTask помечает задачу удалённой, запись остаётся в хранилище
func (s *TaskStorage) SoftDeleteTask(ctx context.Context, taskToDelete *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored, ok := s.storage[taskToDelete.ID]
	if !ok || stored.IsDeleted {
		return repo.ErrNotFound
	}

	stored.IsDeleted = true
	stored.UpdatedAt = time.Now()

	taskToDelete.IsDeleted = true
	taskToDelete.UpdatedAt = stored.UpdatedAt
	return nil
}

func ownedBy(t *task.Task, userID uuid.UUID) bool {
	return t.UserID != nil && *t.UserID == userID
}
