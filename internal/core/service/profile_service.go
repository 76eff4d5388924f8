package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// ProfileService manages the per-user presentation record.
type ProfileService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, users: users, logger: logger}
}

// Get returns the user's profile, creating a default one from the identity
// record on first access.
func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	profile = &domain.Profile{
		UserID:    user.ID,
		Name:      user.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Msg("profile created on first access")
	return profile, nil
}

// Update applies the patch. Only the owning user or an admin may mutate a
// profile.
func (s *ProfileService) Update(ctx context.Context, userID string, patch ports.ProfilePatch, actor domain.Actor) (*domain.Profile, error) {
	if actor.ID != userID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.AvatarURL != nil {
		profile.AvatarURL = *patch.AvatarURL
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
