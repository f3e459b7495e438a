package service

import (
	"context"

	"todoList/internal/models/task"
	"todoList/internal/models/user"

	"github.com/google/uuid"
)

// интерфейсы хранилищ объявлены на стороне потребителя,
// реализации лежат в internal/repository/{postgres,inmemory}

type TaskRepository interface {
	CreateTask(context.Context, *task.Task) error
	UpdateTask(context.Context, *task.Task) error
	GetTaskByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error)
	GetTasksByUser(ctx context.Context, userID uuid.UUID) ([]*task.Task, error)
	GetTasksByUserAndStatus(ctx context.Context, userID uuid.UUID, status task.Status) ([]*task.Task, error)
	TaskTitleExists(ctx context.Context, userID uuid.UUID, title string) (bool, error)
	SoftDeleteTask(context.Context, *task.Task) error
	HealthCheck(context.Context) error
}

type UserRepository interface {
	CreateUser(context.Context, *user.User) error
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
