package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"postboard/internal/common"
	"postboard/internal/common/security"
	"postboard/internal/domain/model"
	"postboard/internal/domain/repository"

	"github.com/google/uuid"
)

// UserService owns user records: uniqueness enforcement, password hashing
// and the sanitized views that cross the API boundary.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

func (req *CreateUserRequest) validate() error {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return fmt.Errorf("email, username and password are required: %w", common.ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("email must be a valid address: %w", common.ErrValidation)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("password must be at least 6 characters: %w", common.ErrValidation)
	}
	return nil
}

// Create inserts a new user. The email/username pre-check produces the
// combined conflict message before any hashing work; the unique
// constraints in the schema still backstop concurrent duplicates.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	taken, err := s.EmailOrUsernameTaken(ctx, req.Email, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("user with this email or username already exists: %w", common.ErrConflict)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear before returning
	return user, nil
}

// EmailOrUsernameTaken reports whether either unique field is in use.
func (s *UserService) EmailOrUsernameTaken(ctx context.Context, email, username string) (bool, error) {
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return false, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// FindByEmail returns the raw record including the password hash. The
// result must never be serialized outward; it exists for credential
// verification and token re-validation only.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.FindByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

// Update applies a partial profile update. Email and username are not
// mutable on this path, so no uniqueness re-check is needed.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// Delete removes a user; their posts cascade away at the storage layer.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}
