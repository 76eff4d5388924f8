package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// LessonRepository defines persistence operations for lessons.
//
// Remove and ReplaceOrder are single batched writes: after either call no
// reader observes duplicate or gapped order indices for the course.
type LessonRepository interface {
	Insert(ctx context.Context, l *domain.Lesson) error
	FindByID(ctx context.Context, id string) (*domain.Lesson, error)
	// ListByCourse returns the course's lessons ordered by order index.
	ListByCourse(ctx context.Context, courseID string) ([]*domain.Lesson, error)
	Update(ctx context.Context, l *domain.Lesson) error
	// Remove deletes the lesson and renumbers the survivors densely.
	Remove(ctx context.Context, courseID, lessonID string) error
	// ReplaceOrder rewrites the order indices so that orderedIDs[i] has
	// index i.
	ReplaceOrder(ctx context.Context, courseID string, orderedIDs []string) error
	// DeleteByCourse removes all lessons of a course (cascade on course delete).
	DeleteByCourse(ctx context.Context, courseID string) error
}
