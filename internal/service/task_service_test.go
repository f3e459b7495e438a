package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"todoList/internal/models/task"
	repo "todoList/internal/repository"
	"todoList/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) CreateTask(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error) {
	args := m.Called(ctx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) GetTasksByUserAndStatus(ctx context.Context, userID uuid.UUID, status task.Status) ([]*task.Task, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) TaskTitleExists(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	args := m.Called(ctx, userID, title)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) SoftDeleteTask(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

func futureDate(days int) *time.Time {
	d := time.Now().AddDate(0, 0, days)
	return &d
}

// TestTaskService_HealthCheck тестирует HealthCheck
func TestTaskService_HealthCheck(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*MockTaskRepository)
		expectError bool
	}{
		{
			name: "success - health check passes",
			setupMock: func(m *MockTaskRepository) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectError: false,
		},
		{
			name: "error - health check fails",
			setupMock: func(m *MockTaskRepository) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("db connection failed"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := service.NewTaskService(mockRepo)
			err := svc.HealthCheck(context.Background())

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "проверка здоровья сервиса")
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestTaskService_Create тестирует создание задачи
func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success - create task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(false, nil)
		mockRepo.On("CreateTask", mock.Anything, mock.MatchedBy(func(created *task.Task) bool {
			return created.Title == "Buy milk" &&
				created.Status == task.StatusNotStarted &&
				created.UserID != nil && *created.UserID == userID &&
				created.ID != uuid.Nil
		})).Return(nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.Create(ctx, userID, "Buy milk", "2 liters", futureDate(3), task.StatusNotStarted)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, "Buy milk", result.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - no due date", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(false, nil)
		mockRepo.On("CreateTask", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.Create(ctx, userID, "Buy milk", "", nil, task.StatusInProgress)

		assert.NoError(t, err)
		assert.Nil(t, result.DueDate)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - empty title", func(t *testing.T) {
		for _, title := range []string{"", "   "} {
			mockRepo := new(MockTaskRepository)

			svc := service.NewTaskService(mockRepo)
			result, err := svc.Create(ctx, userID, title, "desc", nil, task.StatusNotStarted)

			assert.Nil(t, result)
			var businessErr *service.BusinessError
			assert.ErrorAs(t, err, &businessErr)
			assert.Equal(t, service.CodeValidation, businessErr.Code)
			assert.Equal(t, "title is empty", businessErr.Details["title"])
			mockRepo.AssertExpectations(t)
		}
	})

	t.Run("error - invalid status", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Create(ctx, userID, "Buy milk", "", nil, task.Status("done"))

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeValidation, businessErr.Code)
		assert.Equal(t, "Invalid Status - done", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - duplicate title", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(true, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Create(ctx, userID, "Buy milk", "", nil, task.StatusNotStarted)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeConflict, businessErr.Code)
		assert.Equal(t, "Task Buy milk already exists.", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - due date today", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(false, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Create(ctx, userID, "Buy milk", "", futureDate(0), task.StatusNotStarted)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "Invalid Due Date", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - due date in past", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(false, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Create(ctx, userID, "Buy milk", "", futureDate(-2), task.StatusNotStarted)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "Invalid Due Date", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - due date tomorrow is allowed", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("TaskTitleExists", mock.Anything, userID, "Buy milk").Return(false, nil)
		mockRepo.On("CreateTask", mock.Anything, mock.Anything).Return(nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Create(ctx, userID, "Buy milk", "", futureDate(1), task.StatusNotStarted)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

// TestTaskService_List тестирует получение списка задач
func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("success - all tasks", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		tasks := []*task.Task{
			{ID: uuid.New(), Title: "Task 1", Status: task.StatusNotStarted},
			{ID: uuid.New(), Title: "Task 2", Status: task.StatusCompleted},
		}
		mockRepo.On("GetTasksByUser", mock.Anything, userID).Return(tasks, nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.List(ctx, userID, task.StatusAll)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - filter by status", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		tasks := []*task.Task{
			{ID: uuid.New(), Title: "Task 1", Status: task.StatusInProgress},
		}
		mockRepo.On("GetTasksByUserAndStatus", mock.Anything, userID, task.StatusInProgress).Return(tasks, nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.List(ctx, userID, string(task.StatusInProgress))

		assert.NoError(t, err)
		assert.Len(t, result, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("success - empty list", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetTasksByUser", mock.Anything, userID).Return([]*task.Task{}, nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.List(ctx, userID, task.StatusAll)

		assert.NoError(t, err)
		assert.Empty(t, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - invalid status filter", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.List(ctx, userID, "done")

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeValidation, businessErr.Code)
		assert.Equal(t, "Invalid Status - done", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})
}

// TestTaskService_GetByID тестирует получение задачи
func TestTaskService_GetByID(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("success - task found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{ID: taskID, UserID: &userID, Title: "Buy milk"}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.GetByID(ctx, userID, taskID)

		assert.NoError(t, err)
		assert.Equal(t, taskID, result.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - task not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(nil, repo.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.GetByID(ctx, userID, taskID)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeNotFound, businessErr.Code)
		assert.Equal(t, "Task not found.", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - foreign task is invisible", func(t *testing.T) {
		// чужая задача отдаётся репозиторием как ErrNotFound,
		// наружу утечки о её существовании нет
		mockRepo := new(MockTaskRepository)
		strangerID := uuid.New()
		mockRepo.On("GetTaskByID", mock.Anything, strangerID, taskID).Return(nil, repo.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.GetByID(ctx, strangerID, taskID)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeNotFound, businessErr.Code)
		mockRepo.AssertExpectations(t)
	})
}

// TestTaskService_Update тестирует обновление задачи
func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("success - full update", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{
			ID:          taskID,
			UserID:      &userID,
			Title:       "Old Title",
			Description: "Old Desc",
			Status:      task.StatusNotStarted,
		}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)
		mockRepo.On("UpdateTask", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.Title == "New Title" &&
				updated.Description == "New Desc" &&
				updated.Status == task.StatusCompleted
		})).Return(nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.Update(ctx, userID, taskID, "New Title", "New Desc", futureDate(5), task.StatusCompleted)

		assert.NoError(t, err)
		assert.Equal(t, "New Title", result.Title)
		assert.Equal(t, task.StatusCompleted, result.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty description keeps the stored one", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{
			ID:          taskID,
			UserID:      &userID,
			Title:       "Old Title",
			Description: "Old Desc",
			Status:      task.StatusNotStarted,
		}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)
		mockRepo.On("UpdateTask", mock.Anything, mock.MatchedBy(func(updated *task.Task) bool {
			return updated.Title == "New Title" && updated.Description == "Old Desc"
		})).Return(nil)

		svc := service.NewTaskService(mockRepo)
		result, err := svc.Update(ctx, userID, taskID, "New Title", "", nil, task.StatusInProgress)

		assert.NoError(t, err)
		assert.Equal(t, "Old Desc", result.Description)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - task not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(nil, repo.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Update(ctx, userID, taskID, "New Title", "", nil, task.StatusInProgress)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeNotFound, businessErr.Code)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - empty title", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{ID: taskID, UserID: &userID, Title: "Old Title"}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Update(ctx, userID, taskID, "", "desc", nil, task.StatusInProgress)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeValidation, businessErr.Code)
		assert.Equal(t, "title is empty", businessErr.Details["title"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - invalid status", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{ID: taskID, UserID: &userID, Title: "Old Title"}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Update(ctx, userID, taskID, "New Title", "", nil, task.Status("finished"))

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "Invalid Status - finished", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - past due date", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{ID: taskID, UserID: &userID, Title: "Old Title"}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)

		svc := service.NewTaskService(mockRepo)
		_, err := svc.Update(ctx, userID, taskID, "New Title", "", futureDate(-1), task.StatusInProgress)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, "Invalid Due Date", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})
}

// TestTaskService_Delete тестирует мягкое удаление
func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	taskID := uuid.New()

	t.Run("success - soft delete", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		existing := &task.Task{ID: taskID, UserID: &userID, Title: "Buy milk"}
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(existing, nil)
		mockRepo.On("SoftDeleteTask", mock.Anything, existing).Return(nil)

		svc := service.NewTaskService(mockRepo)
		err := svc.Delete(ctx, userID, taskID)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - already deleted task is not found", func(t *testing.T) {
		// повторное удаление: задача уже скрыта выборкой по is_deleted
		mockRepo := new(MockTaskRepository)
		mockRepo.On("GetTaskByID", mock.Anything, userID, taskID).Return(nil, repo.ErrNotFound)

		svc := service.NewTaskService(mockRepo)
		err := svc.Delete(ctx, userID, taskID)

		var businessErr *service.BusinessError
		assert.ErrorAs(t, err, &businessErr)
		assert.Equal(t, service.CodeNotFound, businessErr.Code)
		assert.Equal(t, "Task not found.", businessErr.Message)
		mockRepo.AssertExpectations(t)
	})
}
