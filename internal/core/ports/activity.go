package ports

import (
	"context"
	"time"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// ActivityEventInput is the DTO handed to the activity pipeline when a
// course mutation is observed.
type ActivityEventInput struct {
	CourseID  string
	UserID    string
	Action    string
	Timestamp time.Time
	Source    string
}

// ActivityRecorder accepts fire-and-forget activity events. Implementations
// must not block the caller; failures are logged, never returned.
type ActivityRecorder interface {
	Record(event ActivityEventInput)
}

// ActivityService processes queued activity events.
type ActivityService interface {
	Process(ctx context.Context, event ActivityEventInput) error
}

// ActivityRepository appends audit records.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}
