package service

import (
	"context"
	"testing"
	"time"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/auth"
	"github.com/Mieeelll/Taskflow-To-Do-App/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService() (*UserService, *auth.Credentials) {
	creds := auth.NewCredentials("test-secret", time.Hour)
	return NewUserService(repo.NewMemoryUserRepo(), creds), creds
}

func TestRegisterAndLogin(t *testing.T) {
	svc, creds := newUserService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "ada", "Ada@Example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, "ada", u.Username)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)

	got, token, err := svc.Login(ctx, "ada@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	userID, err := creds.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), userID)
}

func TestLoginEmailCaseInsensitive(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "s3cret!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ADA@EXAMPLE.COM", "s3cret!")
	assert.NoError(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "s3cret!")
	require.NoError(t, err)

	// Same email in a different case is still a duplicate.
	_, err = svc.Register(ctx, "other", "ADA@example.COM", "s3cret!")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ada", "ada@example.com", "s3cret!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ada", "different@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "ada@example.com", "s3cret!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
