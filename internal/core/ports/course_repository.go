package ports

import (
	"context"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// ListCoursesFilter carries all query parameters for listing courses.
type ListCoursesFilter struct {
	Query        string // optional: case-insensitive match on title or description
	Category     string // optional: exact category
	Level        string // optional: exact level
	InstructorID string // optional: courses authored by this user
	Page         int    // 1-based
	Limit        int    // max rows per page (capped at 100 by the service)
}

// CourseRepository defines persistence operations for courses.
// List results are ordered by creation time, newest first.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	// List returns a page of courses matching filter and the total count.
	List(ctx context.Context, filter ListCoursesFilter) ([]*domain.Course, int64, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id string) error
}
