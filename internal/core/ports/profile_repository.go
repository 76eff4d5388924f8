package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// ProfileRepository persists the per-user presentation record.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}
