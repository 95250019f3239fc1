package services

import (
	"context"
	"testing"

	"drivehub/models"
	"drivehub/repository"
	"drivehub/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	users := repository.NewMemoryUserRepository()
	svc := NewAuthService(users)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Ada",
		Email:    "Ada@Example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.NotEmpty(t, resp.Token)

	// Email is normalized and the password is stored hashed.
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEqual(t, "secret123", resp.User.Password)

	claims, err := utils.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	login, err := svc.Login(ctx, "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"missing name", models.RegisterRequest{Email: "a@b.com", Password: "secret123"}},
		{"missing email", models.RegisterRequest{Name: "Ada", Password: "secret123"}},
		{"missing password", models.RegisterRequest{Name: "Ada", Email: "a@b.com"}},
		{"bad email", models.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "secret123"}},
		{"short password", models.RegisterRequest{Name: "Ada", Email: "a@b.com", Password: "abc"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, &tc.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	req := &models.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret123"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLoginFailures(t *testing.T) {
	svc := NewAuthService(repository.NewMemoryUserRepository())
	ctx := context.Background()

	_, err := svc.Register(ctx, &models.RegisterRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Unknown accounts fail the same way as bad passwords.
	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
