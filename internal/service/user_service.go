package service

import (
	"context"
	"errors"
	"fmt"

	"medinbox/internal/domain"
)

// UserService provides user-related operations.
type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) SetStatus(ctx context.Context, id string, status domain.UserStatus) error {
	switch status {
	case domain.StatusOnline, domain.StatusAway, domain.StatusOffline:
	default:
		return fmt.Errorf("status %q: %w", status, domain.ErrInvalidInput)
	}
	return s.users.SetStatus(ctx, id, status)
}

// ResolveSender looks up the author of a message. Ids missing from the
// directory resolve to domain.UnknownSender with fallbackName.
func (s *UserService) ResolveSender(ctx context.Context, id, fallbackName string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.UnknownSender(id, fallbackName), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}
	return u, nil
}
