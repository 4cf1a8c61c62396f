package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Skotchmaster/employee_registry/internal/domain"
	"github.com/Skotchmaster/employee_registry/internal/models"
	"github.com/Skotchmaster/employee_registry/internal/mykafka"
	"github.com/Skotchmaster/employee_registry/internal/transport"
	"github.com/Skotchmaster/employee_registry/pkg/logging"
)

// ErrUserExists is returned when the registration pre-check finds a user with
// the same email or username.
var ErrUserExists = fmt.Errorf("%w: user already exists", domain.ErrDuplicateKey)

type UserStore interface {
	FindUserByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, username, email, password string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type AuthService struct {
	Users  UserStore
	Tokens TokenIssuer
	Events *Notifier
}

type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	req, err := ValidateRegister(req)
	if err != nil {
		l.Warn("register_error", "status", 400, "reason", "validation failed", "error", err)
		return nil, err
	}

	_, err = s.Users.FindUserByEmailOrUsername(ctx, req.Email, req.Username)
	switch {
	case err == nil:
		l.Warn("register_error", "status", 400, "reason", "user already exists", "email", req.Email)
		return nil, ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		l.Error("register_error", "status", 500, "reason", "cannot look up user", "error", err)
		return nil, err
	}

	user, err := s.Users.CreateUser(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			l.Warn("register_error", "status", 400, "reason", "email or username already exists")
		} else {
			l.Error("register_error", "status", 500, "reason", "cannot create user", "error", err)
		}
		return nil, err
	}

	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	s.Events.Publish(ctx, mykafka.TopicUserEvents, user.ID, map[string]any{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})
	l.Info("register_successful", "user_id", user.ID)

	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	if email == "" || req.Password == "" {
		l.Warn("login_failed", "status", 401, "reason", "empty credentials")
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.Users.VerifyPassword(nil, req.Password)
			l.Warn("login_failed", "status", 401, "reason", "user not found")
			return nil, domain.ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}

	if !s.Users.VerifyPassword(user, req.Password) {
		l.Warn("login_failed", "status", 401, "reason", "invalid password")
		return nil, domain.ErrInvalidCredentials
	}

	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, err
	}

	l.Info("login_successful", "user_id", user.ID)
	return &AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}
