package ports

import (
	"context"
	"time"
)

// EnrollResult is returned by Enroll.
type EnrollResult struct {
	CourseID   string
	EnrolledAt time.Time
	// AlreadyEnrolled is true when the (user, course) pair was already on
	// the ledger; the call is an idempotent replay.
	AlreadyEnrolled bool
}

// EnrollmentService defines the ledger's use-case operations.
type EnrollmentService interface {
	// Enroll is idempotent: a second call for the same pair succeeds
	// without creating another row.
	Enroll(ctx context.Context, userID, courseID string) (*EnrollResult, error)
	// Unenroll removes the enrollment; it is a no-op when absent.
	Unenroll(ctx context.Context, userID, courseID string) error
	IsEnrolled(ctx context.Context, userID, courseID string) (bool, error)
	// Count returns the number of students enrolled in the course.
	Count(ctx context.Context, courseID string) (int64, error)
	// CourseIDsForUser returns the ids of the courses the user is enrolled in.
	CourseIDsForUser(ctx context.Context, userID string) ([]string, error)
}
