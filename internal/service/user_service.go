package service

import (
	"context"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/repository"
	"github.com/fjod/go_cart/storefront/pkg/logger"
	"go.uber.org/zap"
)

type UserService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, log: log}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetUser(ctx, id)
}

// UpdatePreferences replaces the user's preferences wholesale after validating them.
func (s *UserService) UpdatePreferences(ctx context.Context, id string, prefs domain.Preferences) (*domain.User, error) {
	if err := prefs.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.UpdatePreferences(ctx, id, prefs)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx, s.log).Info("preferences updated",
		zap.String("user_id", id), zap.String("eco_preference", string(prefs.EcoPreference)))
	return user, nil
}
