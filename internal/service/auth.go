package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/devraikou/portfolio/internal/apperror"
	"github.com/devraikou/portfolio/internal/auth"
)

// AuthService logs the single admin in.
type AuthService struct {
	passwordHash string
	passwords    *auth.PasswordHasher
	tokens       *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates an AuthService that checks logins against
// passwordHash, a bcrypt hash produced by `portfolio hash-password`.
func NewAuthService(passwordHash string, passwords *auth.PasswordHasher, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		passwords:    passwords,
		tokens:       tokens,
		logger:       logger,
	}
}

// Session is an issued admin session.
type Session struct {
	Token   string
	Subject string
}

// Login checks password and issues a session token. A wrong password is
// apperror.ErrUnauthorized.
func (s *AuthService) Login(_ context.Context, password string) (*Session, error) {
	if password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	if err := s.passwords.Verify(s.passwordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("admin login failed")
			return nil, apperror.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	token, err := s.tokens.Generate(auth.AdminSubject)
	if err != nil {
		return nil, fmt.Errorf("service/auth: %w", err)
	}

	s.logger.Info("admin logged in")
	return &Session{Token: token, Subject: auth.AdminSubject}, nil
}
