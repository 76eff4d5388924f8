package ports

import (
	"context"
	"time"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// LessonDraftInput is the DTO passed from the transport layer when saving a
// lesson. An empty LessonID means a new lesson appended at the end of the
// course; a non-empty one replaces the stored lesson in place.
type LessonDraftInput struct {
	LessonID string
	Title    string
	Content  string
	VideoURL string
	Duration string
}

// LessonView is a lesson as seen by a given actor. For actors that fail the
// enrollment gate, Content and VideoURL are withheld and Redacted is true.
type LessonView struct {
	ID         string
	Title      string
	Content    string
	VideoURL   string
	Duration   string
	OrderIndex int
	Redacted   bool
	UpdatedAt  time.Time
}

// LessonService defines use-case operations for a course's ordered lessons.
type LessonService interface {
	// List returns the course's lessons in order. Full content is visible to
	// the owning instructor, admins, and enrolled users; everyone else gets
	// redacted views.
	List(ctx context.Context, courseID string, actor domain.Actor) ([]LessonView, error)
	// Save persists the draft: append when the draft has no id, in-place
	// replace otherwise. Owner or admin only.
	Save(ctx context.Context, courseID string, draft LessonDraftInput, actor domain.Actor) (*LessonView, error)
	// Remove deletes the lesson and renumbers the rest densely.
	Remove(ctx context.Context, courseID, lessonID string, actor domain.Actor) error
	// Reorder moves the lesson at fromIndex to toIndex and renumbers all
	// lessons in one batched write.
	Reorder(ctx context.Context, courseID string, fromIndex, toIndex int, actor domain.Actor) ([]LessonView, error)
}
