package handlers

import (
	"context"
	"time"

	"todoList/internal/auth"
	"todoList/internal/models/task"
	"todoList/internal/service"

	"github.com/google/uuid"
)

type TaskService interface {
	Create(ctx context.Context, userID uuid.UUID, title, description string, dueDate *time.Time, status task.Status) (*task.Task, error)
	List(ctx context.Context, userID uuid.UUID, statusFilter string) ([]*task.Task, error)
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (*task.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, title, description string, dueDate *time.Time, status task.Status) (*task.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
	HealthCheck(ctx context.Context) error
}

type AuthService interface {
	Signup(ctx context.Context, username, email, password string) (*service.Credentials, error)
	Login(ctx context.Context, email, password, refreshToken string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}
