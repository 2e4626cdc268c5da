package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"todo-be/internal/apperror"
	"todo-be/internal/entities"
	"todo-be/internal/jwt"
	"todo-be/internal/repository"
)

// Messages returned by the auth endpoints
const (
	MsgRegistered = "User registered successfully"
	MsgLoggedIn   = "Login successfully"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(token string) (*jwt.Claims, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	now        func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a new user account and returns a confirmation message
func (s *authService) Register(ctx context.Context, email, password string) (string, error) {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if existing != nil {
		return "", &apperror.ConflictError{Code: apperror.CodeUserExists, Message: "User already exists"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &entities.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return MsgRegistered, nil
}

// Login checks the credentials and returns a signed JWT
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", apperror.Authentication(apperror.CodeUserNotFound, "Invalid credentials", nil)
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.Authentication(apperror.CodeInvalidCredentials, "Invalid credentials", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// VerifyToken validates a JWT and returns its claims
func (s *authService) VerifyToken(token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, apperror.Authentication(apperror.CodeTokenExpired, "Token has expired", err)
	}
	if err != nil {
		return nil, apperror.Authentication(apperror.CodeInvalidToken, "Invalid token", err)
	}
	return claims, nil
}
