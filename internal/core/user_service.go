package core

import (
	"context"
	"errors"
	"fmt"

	"hisma-backend-go/internal/db"
	"hisma-backend-go/internal/models"
)

// ErrUserNotFound is returned when a user profile does not exist.
var ErrUserNotFound = errors.New("user not found")

// ErrNoLubricenter is returned when a user neither belongs to nor owns a shop.
var ErrNoLubricenter = errors.New("no lubricenter associated with this user")

// userService implements the UserService interface.
type userService struct {
	userRepo        db.UserRepository
	lubricenterRepo db.LubricenterRepository
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo db.UserRepository, lubricenterRepo db.LubricenterRepository) UserService {
	return &userService{
		userRepo:        userRepo,
		lubricenterRepo: lubricenterRepo,
	}
}

// GetByID retrieves a user by their ID.
func (s *userService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: user with ID '%s'", ErrUserNotFound, userID)
		}
		return nil, fmt.Errorf("failed to get user by ID '%s' from repository: %w", userID, err)
	}
	return user, nil
}

// ResolveLubricenterID determines which shop the user acts for. Employees and
// shop admins carry a direct lubricenterId; owners without one are resolved
// through their first owned shop.
func (s *userService) ResolveLubricenterID(ctx context.Context, userID string) (string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.LubricenterID != "" {
		return user.LubricenterID, nil
	}

	owned, err := s.lubricenterRepo.GetByOwnerID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to look up shops owned by user '%s': %w", userID, err)
	}
	if len(owned) == 0 {
		return "", fmt.Errorf("%w: user '%s'", ErrNoLubricenter, userID)
	}
	return owned[0].ID, nil
}
