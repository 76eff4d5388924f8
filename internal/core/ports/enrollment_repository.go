package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// EnrollmentRepository persists the (user, course) join rows.
type EnrollmentRepository interface {
	Find(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	Insert(ctx context.Context, e *domain.Enrollment) error
	Delete(ctx context.Context, userID, courseID string) error
	CountByCourse(ctx context.Context, courseID string) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error)
	// DeleteByCourse removes all enrollments of a course (cascade on course delete).
	DeleteByCourse(ctx context.Context, courseID string) error
}
