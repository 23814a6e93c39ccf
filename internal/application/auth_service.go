package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/weihanng/techtrove/internal/domain/entity"
	repo "github.com/weihanng/techtrove/internal/domain/repository"
	"github.com/weihanng/techtrove/pkg/helpers"
	"github.com/weihanng/techtrove/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
)

const (
	sessionTTL    = 24 * time.Hour
	resetTokenTTL = 30 * time.Minute
)

func sessionKey(userID string) string { return "user:session:" + userID }
func resetKey(token string) string    { return "pwd:reset:token:" + token }

// AuthService handles signup, credential login with Redis-backed
// sessions, and the password-reset token flow.
type AuthService struct {
	Users    repo.UserRepository
	JWT      *helpers.JWTManager
	Redis    *redis.Client
	Pub      Publisher
	Logger   *logrus.Logger
	ResetURL string
	Company  string
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// Signup creates a user with a bcrypt password hash. A taken email is
// reported as a field-level error, never a fatal one.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*entity.User, error) {
	if existing, err := s.Users.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login validates credentials, issues a token pair, and records the
// session in Redis.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, ErrInvalidCredentials
	}

	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return nil, TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return u, TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Logout invalidates the server-side session; cookie clearing is the
// handler's job.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

// ForgotPassword issues a reset token and queues the reset email. The
// caller always gets a nil error for unknown emails to avoid account
// enumeration.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(email)
	if err != nil || u == nil {
		return nil
	}
	if s.Redis == nil {
		return errors.New("reset unavailable")
	}
	token, err := genToken(32)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, resetKey(token), u.ID, resetTokenTTL).Err(); err != nil {
		return err
	}

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: "password_reset",
			Data: map[string]any{
				"Name":     u.Name,
				"ResetURL": s.ResetURL + "?token=" + token,
				"Company":  s.Company,
			},
		}
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("queue reset email failed")
		}
	}
	return nil
}

// ResetPassword consumes a reset token and stores a fresh hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if s.Redis == nil {
		return errors.New("reset unavailable")
	}
	uid, err := s.Redis.Get(ctx, resetKey(token)).Result()
	if err != nil || uid == "" {
		return ErrInvalidResetToken
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(uid, hash); err != nil {
		return err
	}
	_ = s.Redis.Del(ctx, resetKey(token)).Err()
	return nil
}

// GetProfile returns the user for the authenticated id.
func (s *AuthService) GetProfile(userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func genToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
