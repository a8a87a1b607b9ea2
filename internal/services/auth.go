package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/resume-analyzer/internal/models"
	"alfredoptarigan/resume-analyzer/internal/repositories"
)

var (
	ErrCredentialsRequired = errors.New("username and password required")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrInvalidSession      = errors.New("invalid session")
)

type AuthService interface {
	Signup(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	VerifySession(ctx context.Context, token string) (string, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	accounts repositories.AccountStore
	sessions repositories.SessionStore
	hashCost int
}

func NewAuthService(accounts repositories.AccountStore, sessions repositories.SessionStore) AuthService {
	return &authService{
		accounts: accounts,
		sessions: sessions,
		hashCost: bcrypt.DefaultCost,
	}
}

// Signup implements AuthService.
func (s *authService) Signup(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	if _, err := s.accounts.FindByUsername(ctx, username); err == nil {
		return "", ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	return s.openSession(ctx, username)
}

// Login implements AuthService.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrCredentialsRequired
	}

	user, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.openSession(ctx, username)
}

// VerifySession implements AuthService.
func (s *authService) VerifySession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrInvalidSession
		}
		return "", fmt.Errorf("failed to look up session: %w", err)
	}

	return session.Username, nil
}

// Logout implements AuthService.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) openSession(ctx context.Context, username string) (string, error) {
	session := &models.Session{
		Token:     uuid.NewString(),
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sessions.Put(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return session.Token, nil
}
