package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihanng/techtrove/pkg/helpers"
)

func newAuthService(users *memUsers) *AuthService {
	return &AuthService{
		Users:   users,
		JWT:     helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour),
		Company: "TechTrove",
	}
}

func TestSignupHashesPassword(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)

	u, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestSignupRejectsTakenEmail(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)

	_, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "Imposter", "alice@example.com", "otherpass123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesTokenPair(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)
	_, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	u, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.AccessTokenExpiry.Before(pair.RefreshTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)
	_, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestForgotPasswordHidesUnknownEmail(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)

	// Unknown address: nil error, nothing queued.
	assert.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
}

func TestGetProfile(t *testing.T) {
	users := newMemUsers()
	svc := newAuthService(users)
	u, err := svc.Signup(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	got, err := svc.GetProfile(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	_, err = svc.GetProfile("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
