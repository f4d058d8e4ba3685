package service

import (
	"context"
	"errors"
	"strings"

	apperrors "classroom-qa-demo/backend/pkg/errors"
	"classroom-qa-demo/backend/user/models"
	"classroom-qa-demo/backend/user/repository"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// UserService resolves free-text usernames to stable user identities
type UserService struct {
	repo    repository.UserRepository
	resolve singleflight.Group
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Resolve maps a username to its User record, creating one on first use.
// The lookup-then-create sequence is serialized per name so concurrent calls
// with the same name yield a single row.
func (s *UserService) Resolve(ctx context.Context, name string) (*models.User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, apperrors.NewInvalidInputError("INVALID_IDENTITY", "username must not be empty")
	}

	v, err, _ := s.resolve.Do(trimmed, func() (interface{}, error) {
		user, err := s.repo.GetByUsername(ctx, trimmed)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		user = &models.User{Username: trimmed}
		if createErr := s.repo.Create(ctx, user); createErr != nil {
			// Lost a create race against another instance: the row exists now
			if existing, fetchErr := s.repo.GetByUsername(ctx, trimmed); fetchErr == nil {
				return existing, nil
			}
			return nil, createErr
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.User), nil
}

// Lookup finds a user by name without creating one. Returns nil when the
// name is unknown or blank.
func (s *UserService) Lookup(ctx context.Context, name string) (*models.User, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, nil
	}
	user, err := s.repo.GetByUsername(ctx, trimmed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
