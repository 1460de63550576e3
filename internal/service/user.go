package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripmate/backend/internal/auth"
	"github.com/tripmate/backend/internal/domain"
	"github.com/tripmate/backend/internal/repo"
)

// minPasswordLen matches the registration rule: shorter passwords are
// rejected before any hashing happens.
const minPasswordLen = 6

// RegisterInput carries the fields for a new account. Email and phone are
// both optional but at least one must be present.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// LoginInput identifies an account by email or phone plus its password.
type LoginInput struct {
	Email    string
	Phone    string
	Password string
}

// UserService implements the identity store: registration, credential
// verification, password changes, and the member-search directory.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Register validates input, checks email/phone uniqueness, hashes the
// password, and persists the account. Duplicate email or phone returns
// domain.ErrConflict.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	if name == "" {
		return domain.User{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if email == "" && phone == "" {
		return domain.User{}, fmt.Errorf("%w: either email or phone number is required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	// Pre-checks give a friendlier error than the unique index; the index
	// still catches races between two simultaneous registrations.
	if email != "" {
		if _, err := s.users.GetByEmail(ctx, email); err == nil {
			return domain.User{}, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
		}
	}
	if phone != "" {
		if _, err := s.users.GetByPhone(ctx, phone); err == nil {
			return domain.User{}, fmt.Errorf("%w: phone already registered", domain.ErrConflict)
		} else if !errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}

	created, err := s.users.Create(ctx, domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.Register: %w", err)
	}
	return created, nil
}

// Authenticate verifies credentials and returns the account. Every failure
// mode — unknown identifier, wrong password, neither email nor phone given —
// maps to domain.ErrUnauthorized so callers cannot probe which accounts exist.
func (s *UserService) Authenticate(ctx context.Context, in LoginInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	phone := strings.TrimSpace(in.Phone)

	var (
		user domain.User
		err  error
	)
	switch {
	case email != "":
		user, err = s.users.GetByEmail(ctx, email)
	case phone != "":
		user, err = s.users.GetByPhone(ctx, phone)
	default:
		return domain.User{}, fmt.Errorf("%w: provide email or phone to login", domain.ErrValidation)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return domain.User{}, fmt.Errorf("service.UserService.Authenticate: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, in.Password) {
		return domain.User{}, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}
	return user, nil
}

// GetByID returns a single user by ID.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.UserService.GetByID: %w", err)
	}
	return user, nil
}

// ChangePassword verifies the current password before storing a new hash.
// A wrong current password returns domain.ErrUnauthorized.
func (s *UserService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < minPasswordLen {
		return fmt.Errorf("%w: new password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("service.UserService.ChangePassword: %w", err)
	}
	return nil
}

// Search finds users by name or email for the add-member picker. Queries
// shorter than two characters are rejected; at most ten matches are
// returned, as display summaries with no credential fields.
func (s *UserService) Search(ctx context.Context, q string) ([]domain.UserSummary, error) {
	q = strings.TrimSpace(q)
	if len(q) < 2 {
		return nil, fmt.Errorf("%w: search query must be at least 2 characters", domain.ErrValidation)
	}

	users, err := s.users.Search(ctx, q, 10)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.Search: %w", err)
	}

	summaries := make([]domain.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}

// List returns every account. Restricted to administrators at the HTTP
// layer. Always returns a non-nil slice.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}
	if users == nil {
		return []domain.User{}, nil
	}
	return users, nil
}
