package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// AccountStore keeps user records keyed by username.
type AccountStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type memoryAccountStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryAccountStore() AccountStore {
	return &memoryAccountStore{users: make(map[string]models.User)}
}

// Create implements AccountStore.
func (s *memoryAccountStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Username]; exists {
		return ErrAlreadyExists
	}
	s.users[user.Username] = *user
	return nil
}

// FindByUsername implements AccountStore.
func (s *memoryAccountStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountStore {
	return &accountRepository{db: db}
}

// Create implements AccountStore.
func (r *accountRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByUsername implements AccountStore.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}
