package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AbhishekS200607/quickaid/internal/utils"
)

var (
	ErrPasswordRequired   = errors.New("password required")
	ErrInvalidCredentials = errors.New("invalid password")
)

// AuthService provides the shared-password admin login
type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
}

type authService struct {
	passwordHash string
	jwtUtil      *utils.JWTUtil
}

// NewAuthService creates a new AuthService checking against a bcrypt hash
func NewAuthService(passwordHash string, jwtUtil *utils.JWTUtil) AuthService {
	return &authService{
		passwordHash: passwordHash,
		jwtUtil:      jwtUtil,
	}
}

// Login compares password with the configured hash and returns an admin token
func (s *authService) Login(ctx context.Context, password string) (string, error) {
	if password == "" {
		return "", ErrPasswordRequired
	}
	if !utils.CheckPasswordHash(password, s.passwordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtUtil.GenerateAdminToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
