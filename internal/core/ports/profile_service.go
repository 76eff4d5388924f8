package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// ProfilePatch carries the mutable profile fields. Nil pointers leave the
// stored value untouched.
type ProfilePatch struct {
	Name      *string
	Bio       *string
	AvatarURL *string
}

// ProfileService manages the lazily created per-user profile.
type ProfileService interface {
	// Get returns the profile for userID, creating a default one from the
	// identity record on first access.
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	// Update applies the patch. Only the owning user or an admin may call it.
	Update(ctx context.Context, userID string, patch ProfilePatch, actor domain.Actor) (*domain.Profile, error)
}
