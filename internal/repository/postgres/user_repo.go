package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoList/internal/logger"
	"todoList/internal/models/user"
	repo "todoList/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	start := time.Now()

	query := `INSERT INTO users
				(id, username, email, password_hash)
				VALUES ($1, $2, $3, $4)
				RETURNING created_at`

	err := s.pool.QueryRow(ctx, query,
		userToCreate.ID,
		userToCreate.Username,
		userToCreate.Email,
		userToCreate.PasswordHash,
	).Scan(&userToCreate.CreatedAt)

	if err != nil {
		logger.Error("Repository: Не удалось добавить пользователя", err)
		return fmt.Errorf("добавление пользователя: %w", err)
	}

	s.warnIfSlow("create_user", start, 50*time.Millisecond)
	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at
				FROM users WHERE email = $1`, email)
}

func (s *Storage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at
				FROM users WHERE id = $1`, id)
}

func (s *Storage) getUser(ctx context.Context, query string, arg any) (*user.User, error) {
	start := time.Now()

	u := &user.User{}
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить пользователя", err)
		return nil, fmt.Errorf("получение пользователя: %w", err)
	}

	s.warnIfSlow("get_user", start, 100*time.Millisecond)
	return u, nil
}

func (s *Storage) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.userExists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (s *Storage) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.userExists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (s *Storage) userExists(ctx context.Context, query string, arg any) (bool, error) {
	start := time.Now()

	var exists bool
	err := s.pool.QueryRow(ctx, query, arg).Scan(&exists)
	if err != nil {
		logger.Error("Repository: Не удалось проверить пользователя", err)
		return false, fmt.Errorf("проверка пользователя: %w", err)
	}

	s.warnIfSlow("user_exists", start, 50*time.Millisecond)
	return exists, nil
}
