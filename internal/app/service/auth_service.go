package service

import (
	"context"
	"errors"
	"fmt"

	"postboard/internal/common"
	"postboard/internal/common/security"
	"postboard/internal/domain/model"
)

// AuthService registers and authenticates users and issues bearer tokens.
// Signature verification of incoming tokens happens at the router; this
// service re-validates the identity behind verified claims.
type AuthService struct {
	users  *UserService
	tokens *security.TokenManager
}

func NewAuthService(users *UserService, tokens *security.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"access_token"`
}

func (s *AuthService) Register(ctx context.Context, req CreateUserRequest) (*AuthResponse, error) {
	user, err := s.users.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Generic message; never reveal which field was wrong.
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, AccessToken: token}, nil
}

// ValidateClaims re-fetches the user behind a signature-verified claim
// pair. The lookup goes to storage on every authenticated request so a
// token for a deleted account stops working immediately.
func (s *AuthService) ValidateClaims(ctx context.Context, subject, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("account no longer exists: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to validate token: %w", err)
	}
	if user.ID != subject {
		return nil, fmt.Errorf("token subject mismatch: %w", common.ErrUnauthorized)
	}
	user.HashedPassword = ""
	return user, nil
}
