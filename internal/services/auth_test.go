package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/resume-analyzer/internal/repositories"
)

func newTestAuthService() (AuthService, repositories.AccountStore) {
	accounts := repositories.NewMemoryAccountStore()
	svc := NewAuthService(accounts, repositories.NewMemorySessionStore())
	svc.(*authService).hashCost = bcrypt.MinCost
	return svc, accounts
}

func TestAuthService_SignupAndVerify(t *testing.T) {
	ctx := context.Background()
	svc, accounts := newTestAuthService()

	token, err := svc.Signup(ctx, "alice", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	username, err := svc.VerifySession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	user, err := accounts.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestAuthService_SignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Signup(ctx, "", "pw")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
	_, err = svc.Signup(ctx, "bob", "")
	assert.ErrorIs(t, err, ErrCredentialsRequired)

	_, err = svc.Signup(ctx, "bob", "pw")
	require.NoError(t, err)
	_, err = svc.Signup(ctx, "bob", "other")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	signupToken, err := svc.Signup(ctx, "carol", "pw")
	require.NoError(t, err)

	loginToken, err := svc.Login(ctx, "carol", "pw")
	require.NoError(t, err)
	assert.NotEqual(t, signupToken, loginToken)

	_, err = svc.Login(ctx, "carol", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	token, err := svc.Signup(ctx, "dave", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, token))
	require.NoError(t, svc.Logout(ctx, ""))

	_, err = svc.VerifySession(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.VerifySession(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}
