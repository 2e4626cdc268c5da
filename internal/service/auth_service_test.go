package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
	"todo-be/internal/jwt"
)

func newTestAuthService(t *testing.T) (AuthService, *jwt.JWTService) {
	t.Helper()
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(newFileUserRepo(t), jwtService), jwtService
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, jwtService := newTestAuthService(t)
	ctx := context.Background()

	msg, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, MsgRegistered, msg)

	token, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.NotEmpty(t, claims.UserID)

	verified, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, verified.UserID)
}

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	repo := newFileUserRepo(t)
	svc := NewAuthService(repo, jwt.NewJWTService("s", time.Hour))
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	user, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))

	cost, err := bcrypt.Cost([]byte(user.Password))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@x.com", "another")
	var conflict *apperror.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, apperror.CodeUserExists, conflict.Code)
	assert.Equal(t, 409, apperror.HTTPStatus(err))
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantCode string
	}{
		{name: "unknown user", email: "b@x.com", password: "secret1", wantCode: apperror.CodeUserNotFound},
		{name: "wrong password", email: "a@x.com", password: "wrong!!", wantCode: apperror.CodeInvalidCredentials},
		{name: "email is case sensitive", email: "A@x.com", password: "secret1", wantCode: apperror.CodeUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			var authErr *apperror.AuthenticationError
			require.True(t, errors.As(err, &authErr))
			assert.Equal(t, tt.wantCode, authErr.Code)
			assert.Equal(t, 401, apperror.HTTPStatus(err))
		})
	}
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.VerifyToken("not-a-token")
	var authErr *apperror.AuthenticationError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, apperror.CodeInvalidToken, authErr.Code)

	expired, err := jwt.NewJWTService("test-secret", -time.Minute).GenerateToken("u1", "a@x.com")
	require.NoError(t, err)
	_, err = svc.VerifyToken(expired)
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, apperror.CodeTokenExpired, authErr.Code)
}

func TestAuthService_RegisterStorageFailure(t *testing.T) {
	svc := NewAuthService(failingUserRepo{}, jwt.NewJWTService("s", time.Hour))

	_, err := svc.Register(context.Background(), "a@x.com", "secret1")
	assert.True(t, apperror.IsStorage(err))
}

type failingUserRepo struct{}

func (failingUserRepo) Create(context.Context, *entities.User) (*entities.User, error) {
	return nil, apperror.Storage("failed to write users", errors.New("disk full"))
}

func (failingUserRepo) GetByEmail(context.Context, string) (*entities.User, error) {
	return nil, apperror.Storage("failed to read users", errors.New("disk full"))
}
