package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tastebook/backend/internal/service"
	"github.com/tastebook/backend/internal/testhelpers"
)

func setupAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return service.NewAuthService(db, "test-secret")
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "user1", "user1@example.com", "pass123")
	require.NoError(t, err)

	assert.Equal(t, "user1", user.Username)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "user1@example.com", "pass123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "someone-else", "user1@example.com", "pass123")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestLoginRoundTrip(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "user1", "user1@example.com", "pass123")
	require.NoError(t, err)

	token, err := svc.Login(ctx, "user1@example.com", "pass123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "user1", "user1@example.com", "pass123")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "user1@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "pass123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsForgeries(t *testing.T) {
	svc := setupAuthService(t)
	other := service.NewAuthService(testhelpers.SetupTestDatabase(t), "different-secret")

	user, err := other.Register(context.Background(), "user1", "user1@example.com", "pass123")
	require.NoError(t, err)

	// signed with a different secret
	token, err := other.GenerateToken(user.ID)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)

	// not a token at all
	_, err = svc.ValidateToken("garbage")
	assert.Error(t, err)
}
