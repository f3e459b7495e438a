package service

import (
	"context"
	"errors"
	"fmt"

	"todoList/internal/auth"
	"todoList/internal/logger"
	"todoList/internal/models/user"
	repo "todoList/internal/repository"
	"todoList/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Credentials - ответ регистрации: кто создан и его пара токенов
type Credentials struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Refresh  string    `json:"refresh"`
	Access   string    `json:"access"`
}

type AuthService struct {
	users  UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
}

func NewAuthService(users UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Signup проверяет поля, уникальность имени и почты,
// сохраняет пользователя с bcrypt-хешем пароля и выпускает пару токенов
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*Credentials, error) {
	fields := map[string]validation.Field{
		"username": {Value: username, Checks: []validation.Check{validation.CheckEmpty, validation.CheckUsername}},
		"email":    {Value: email, Checks: []validation.Check{validation.CheckEmpty, validation.CheckEmail}},
		"password": {Value: password, Checks: []validation.Check{validation.CheckEmpty, validation.CheckPassword}},
	}
	if fieldErrors := validation.Validate(fields); len(fieldErrors) > 0 {
		logger.Warn("Service: Ошибка валидации при регистрации",
			zap.Any("errors", fieldErrors))
		return nil, NewFieldErrors(fieldErrors)
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("проверка имени пользователя: %w", err)
	}
	if exists {
		logger.Info("Service: Имя пользователя уже занято", zap.String("username", username))
		return nil, NewConflict("username already exists")
	}

	exists, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("проверка почты: %w", err)
	}
	if exists {
		logger.Info("Service: Почта уже занята", zap.String("email", email))
		return nil, NewConflict("E-mail already exists")
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.users.CreateUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("создание пользователя: %w", err)
	}

	pair, err := s.tokens.IssuePair(newUser)
	if err != nil {
		return nil, fmt.Errorf("выпуск токенов: %w", err)
	}

	logger.Info("Service: Пользователь зарегистрирован",
		zap.String("user_id", newUser.ID.String()),
		zap.String("username", username))

	return &Credentials{
		UserID:   newUser.ID,
		Username: newUser.Username,
		Email:    newUser.Email,
		Refresh:  pair.Refresh,
		Access:   pair.Access,
	}, nil
}

// Login сверяет пароль и выпускает пару токенов.
// Если передан прежний refresh токен, пытаемся продлить его;
// невалидный refresh не ошибка - выпускается новая пара с нуля.
func (s *AuthService) Login(ctx context.Context, email, password, refreshToken string) (*auth.TokenPair, error) {
	found, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Пользователь не найден", zap.String("email", email))
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("поиск пользователя: %w", err)
	}

	if !s.hasher.Verify(password, found.PasswordHash) {
		logger.Warn("Service: Неверный пароль", zap.String("email", email))
		return nil, NewUnauthorized("Invalid Password")
	}

	if refreshToken != "" {
		pair, err := s.tokens.Refresh(refreshToken)
		if err == nil {
			logger.Info("Service: Access токен продлён по refresh",
				zap.String("user_id", found.ID.String()))
			return pair, nil
		}
		logger.Info("Service: Refresh токен невалиден, выпускаем новую пару",
			zap.String("user_id", found.ID.String()))
	}

	pair, err := s.tokens.IssuePair(found)
	if err != nil {
		return nil, fmt.Errorf("выпуск токенов: %w", err)
	}

	logger.Info("Service: Пользователь вошёл", zap.String("user_id", found.ID.String()))
	return pair, nil
}

// Refresh выпускает новый access токен по refresh токену
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		logger.Warn("Service: Невалидный refresh токен", zap.Error(err))
		return nil, fmt.Errorf("продление токена: %w", err)
	}
	return pair, nil
}
