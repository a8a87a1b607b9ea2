package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"alfredoptarigan/resume-analyzer/internal/models"
)

// SessionStore maps opaque session tokens to usernames.
// Delete of an unknown token is not an error.
type SessionStore interface {
	Put(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{sessions: make(map[string]models.Session)}
}

// Put implements SessionStore.
func (s *memorySessionStore) Put(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = *session
	return nil
}

// Get implements SessionStore.
func (s *memorySessionStore) Get(_ context.Context, token string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	return &session, nil
}

// Delete implements SessionStore.
func (s *memorySessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionStore {
	return &sessionRepository{db: db}
}

// Put implements SessionStore.
func (r *sessionRepository) Put(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get implements SessionStore.
func (r *sessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// Delete implements SessionStore.
func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

const redisSessionPrefix = "session:"

type redisSessionStore struct {
	rdb *redis.Client
}

// NewRedisSessionStore keeps sessions as plain keys without expiry, matching
// the process-lifetime semantics of the in-memory store.
func NewRedisSessionStore(rdb *redis.Client) SessionStore {
	return &redisSessionStore{rdb: rdb}
}

// Put implements SessionStore.
func (s *redisSessionStore) Put(ctx context.Context, session *models.Session) error {
	if err := s.rdb.HSet(ctx, redisSessionPrefix+session.Token,
		"username", session.Username,
		"created_at", session.CreatedAt.UTC().Format(time.RFC3339Nano),
	).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get implements SessionStore.
func (s *redisSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	fields, err := s.rdb.HGetAll(ctx, redisSessionPrefix+token).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	username, ok := fields["username"]
	if !ok {
		return nil, ErrNotFound
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])
	return &models.Session{
		Token:     token,
		Username:  username,
		CreatedAt: createdAt,
	}, nil
}

// Delete implements SessionStore.
func (s *redisSessionStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisSessionPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
