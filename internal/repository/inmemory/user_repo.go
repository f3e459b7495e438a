package inmemory

import (
	"context"
	"sync"
	"time"

	"todoList/internal/models/user"
	repo "todoList/internal/repository"

	"github.com/google/uuid"
)

type UserStorage struct {
	storage map[uuid.UUID]*user.User
	mtx     *sync.RWMutex
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[uuid.UUID]*user.User),
		mtx:     &sync.RWMutex{},
	}
}

func (s *UserStorage) CreateUser(ctx context.Context, userToCreate *user.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	userToCreate.CreatedAt = time.Now()
	stored := *userToCreate
	s.storage[userToCreate.ID] = &stored
	return nil
}

func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, stored := range s.storage {
		if stored.Email == email {
			found := *stored
			return &found, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	stored, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	found := *stored
	return &found, nil
}

func (s *UserStorage) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, stored := range s.storage {
		if stored.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *UserStorage) EmailExists(ctx context.Context, email string) (bool, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, stored := range s.storage {
		if stored.Email == email {
			return true, nil
		}
	}
	return false, nil
}
