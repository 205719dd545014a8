package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rdrx/rdrx/internal/apperror"
	"github.com/rdrx/rdrx/internal/auth"
	"github.com/rdrx/rdrx/internal/model"
	"github.com/rdrx/rdrx/internal/repository"
)

// Test account seeded by SeedTestUser. Development aid only.
const (
	TestUserEmail    = "test@example.com"
	TestUserName     = "testuser"
	TestUserPassword = "password123"
)

const resetTokenTTL = time.Hour

// AuthService owns the account lifecycle: signup, email verification,
// login, password reset, and the dev-only test account seed.
type AuthService struct {
	users      UserStore
	secret     string
	bcryptCost int
	log        *zap.Logger
}

func NewAuthService(users UserStore, secret string, bcryptCost int, log *zap.Logger) *AuthService {
	return &AuthService{users: users, secret: secret, bcryptCost: bcryptCost, log: log}
}

// Signup creates an unverified account and returns it together with
// the verification token the caller delivers out of band.
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return model.User{}, "", apperror.NewValidation("email, username and password are required")
	}
	if !strings.Contains(email, "@") {
		return model.User{}, "", apperror.NewValidation("invalid email address")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.User{}, "", apperror.NewInternal("hash password", err)
	}
	token := uuid.NewString()
	id, err := s.users.Create(ctx, email, username, hash, token)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return model.User{}, "", apperror.NewConflict("email already registered")
		case errors.Is(err, repository.ErrUsernameExists):
			return model.User{}, "", apperror.NewConflict("username already taken")
		}
		s.log.Error("create user failed", zap.Error(err))
		return model.User{}, "", apperror.NewPersistence("create user", err)
	}
	return model.User{ID: id, Email: email, Username: username}, token, nil
}

// VerifyEmail redeems a verification token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return apperror.NewValidation("token is required")
	}
	err := s.users.VerifyByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFound("unknown verification token")
	}
	if err != nil {
		s.log.Error("verify email failed", zap.Error(err))
		return apperror.NewPersistence("verify email", err)
	}
	return nil
}

// Login checks credentials and issues a session token. Unknown email
// and wrong password are indistinguishable to the caller. A
// successful login against a legacy digest upgrades it to bcrypt.
func (s *AuthService) Login(ctx context.Context, email, password string) (model.User, string, error) {
	if email == "" || password == "" {
		return model.User{}, "", apperror.NewValidation("email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, "", apperror.NewAuth("invalid credentials")
	}
	if err != nil {
		s.log.Error("load user failed", zap.Error(err))
		return model.User{}, "", apperror.NewPersistence("load user", err)
	}
	if !auth.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, "", apperror.NewAuth("invalid credentials")
	}
	if auth.NeedsRehash(u.PasswordHash) {
		if hash, err := auth.HashPassword(password, s.bcryptCost); err == nil {
			if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
				s.log.Warn("legacy digest upgrade failed", zap.Uint64("user_id", u.ID), zap.Error(err))
			}
		}
	}
	token, err := auth.IssueSession(u.ID, u.Email, u.Username, u.IsAdmin, s.secret)
	if err != nil {
		return model.User{}, "", apperror.NewInternal("issue session", err)
	}
	return u, token, nil
}

// Me loads the account behind a set of verified claims.
func (s *AuthService) Me(ctx context.Context, userID uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.User{}, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return model.User{}, apperror.NewPersistence("load user", err)
	}
	return u, nil
}

// RequestPasswordReset stores a fresh reset token with a one hour
// expiry and returns it for out-of-band delivery.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", apperror.NewValidation("email is required")
	}
	token := uuid.NewString()
	err := s.users.SetResetToken(ctx, email, token, time.Now().UTC().Add(resetTokenTTL))
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperror.NewNotFound("unknown email")
	}
	if err != nil {
		s.log.Error("set reset token failed", zap.Error(err))
		return "", apperror.NewPersistence("set reset token", err)
	}
	return token, nil
}

// ResetPassword redeems a live reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return apperror.NewValidation("token and password are required")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperror.NewInternal("hash password", err)
	}
	err = s.users.ResetPassword(ctx, token, hash)
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NewNotFound("unknown or expired reset token")
	}
	if err != nil {
		s.log.Error("reset password failed", zap.Error(err))
		return apperror.NewPersistence("reset password", err)
	}
	return nil
}

// SeedTestUser creates the fixed test account, verified and ready to
// log in. Calling it when the account exists is not an error.
func (s *AuthService) SeedTestUser(ctx context.Context) (model.User, error) {
	hash, err := auth.HashPassword(TestUserPassword, s.bcryptCost)
	if err != nil {
		return model.User{}, apperror.NewInternal("hash password", err)
	}
	token := uuid.NewString()
	_, err = s.users.Create(ctx, TestUserEmail, TestUserName, hash, token)
	switch {
	case err == nil:
		if err := s.users.VerifyByToken(ctx, token); err != nil {
			s.log.Warn("verify seeded user failed", zap.Error(err))
		}
	case errors.Is(err, repository.ErrEmailExists), errors.Is(err, repository.ErrUsernameExists):
		// already seeded
	default:
		s.log.Error("seed test user failed", zap.Error(err))
		return model.User{}, apperror.NewPersistence("seed test user", err)
	}
	u, err := s.users.GetByEmail(ctx, TestUserEmail)
	if err != nil {
		return model.User{}, apperror.NewPersistence("load seeded user", err)
	}
	return u, nil
}
