package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"inmobiliaria_api/internal/common"
	"inmobiliaria_api/internal/common/security"
	"inmobiliaria_api/internal/domain/model"
	"inmobiliaria_api/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type LoginRequest struct {
	Username string `json:"username"` // username or email
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string            `json:"token"`
	User  *model.PublicUser `json:"user"`
}

// Login validates credentials and issues a session token. Every failure
// path surfaces the same ErrUnauthorized so callers cannot distinguish an
// unknown user from a wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	loginField := strings.ToLower(strings.TrimSpace(req.Username))
	if loginField == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, loginField)
	if errors.Is(err, common.ErrNotFound) {
		user, err = s.userRepo.FindByEmail(ctx, loginField)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token, User: user.Public()}, nil
}

// CheckUser resolves the user behind a verified token. The account must
// still exist, a deleted admin's token stops working immediately.
func (s *AuthService) CheckUser(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrForbidden
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user.Public(), nil
}

// CreateUser registers an account with a hashed password. Only the seeding
// path uses it today.
func (s *AuthService) CreateUser(ctx context.Context, username, email, password, role string) (*model.PublicUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, common.ErrBadRequest
	}
	if role != model.RoleAdmin {
		role = model.RoleUser
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       username,
		Email:          email,
		HashedPassword: hashed,
		Role:           role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user.Public(), nil
}
