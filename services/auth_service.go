package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"drivehub/models"
	"drivehub/repository"
	"drivehub/utils"
)

// AuthService handles account registration and login.
type AuthService struct {
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user account and returns it with an access token.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidArgument)
	}
	if !utils.IsValidEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidArgument)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidArgument)
	}

	// Check if user already exists
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: user with this email already exists", ErrInvalidArgument)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, upstream("user lookup", err)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, upstream("password hash", err)
	}

	now := time.Now()
	user := &models.User{
		Name:      req.Name,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, upstream("user create", err)
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, upstream("token generation", err)
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidArgument)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrPermissionDenied)
		}
		return nil, upstream("user lookup", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: invalid credentials", ErrPermissionDenied)
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, upstream("token generation", err)
	}

	return &models.AuthResponse{User: user, Token: token}, nil
}
