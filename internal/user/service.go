package user

import (
	"context"

	"lokamart-be/internal/logger"

	"go.uber.org/zap"
)

// Service is the user-lookup capability consumed by the identity resolver
// and the auth handlers.
type Service interface {
	ExistsByID(ctx context.Context, id uint) (bool, error)
	DetailsByID(ctx context.Context, id uint) (*User, error)
	ResolveGoogleLogin(ctx context.Context, profile GoogleProfile) (*User, error)
	StoreRefreshToken(ctx context.Context, token RefreshToken) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return s.repo.ExistsByID(ctx, id)
}

func (s *service) DetailsByID(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetDetailsByID(ctx, id)
}

// ResolveGoogleLogin maps a verified Google profile onto an internal user
// record: match by google id first, then link an existing account by
// email, otherwise create a fresh user. Only the last case marks IsNew.
func (s *service) ResolveGoogleLogin(ctx context.Context, profile GoogleProfile) (*User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ResolveGoogleLogin"),
	)

	u, err := s.repo.FindByGoogleID(ctx, profile.GoogleID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u, err = s.repo.FindByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if u != nil {
		linked, err := s.repo.LinkGoogleAccount(ctx, u.ID, profile.GoogleID, profile.AvatarURL)
		if err != nil {
			return nil, err
		}
		log.Info("linked google account", zap.Uint("user_id", linked.ID))
		return linked, nil
	}

	created, err := s.repo.CreateFromGoogle(ctx, profile)
	if err != nil {
		return nil, err
	}
	created.IsNew = true

	return created, nil
}

func (s *service) StoreRefreshToken(ctx context.Context, token RefreshToken) error {
	return s.repo.InsertRefreshToken(ctx, token)
}
