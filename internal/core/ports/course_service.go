package ports

import (
	"context"
	"time"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// CreateCourseInput carries all data needed to publish a new course. The
// instructor reference is always taken from the acting user, never from the
// payload.
type CreateCourseInput struct {
	Title       string
	Description string
	Category    string
	Price       float64
	Duration    string
	Level       string
	CoverImage  string
	// Lessons seeds the course's initial ordered lesson list. Indices are
	// assigned densely in slice order.
	Lessons []LessonDraftInput
}

// CoursePatch carries the mutable course fields for an update. Nil pointers
// leave the stored value untouched. Id, instructor, and lessons are never
// patched through this type.
type CoursePatch struct {
	Title       *string
	Description *string
	Category    *string
	Price       *float64
	Duration    *string
	Level       *string
	CoverImage  *string
}

// CourseSummary is the lightweight view used in list responses.
type CourseSummary struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Price        float64
	Free         bool
	Duration     string
	Level        string
	CoverImage   string
	InstructorID string
	Students     int64
	CreatedAt    time.Time
}

// LessonSummary is the lesson view embedded in a course detail. Content is
// withheld; the enrollment gate applies to the lessons endpoint.
type LessonSummary struct {
	ID         string
	Title      string
	Duration   string
	OrderIndex int
}

// CourseDetail is the full course view returned by Get.
type CourseDetail struct {
	ID           string
	Title        string
	Description  string
	Category     string
	Price        float64
	Free         bool
	Duration     string
	Level        string
	CoverImage   string
	InstructorID string
	Students     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Lessons      []LessonSummary
}

// ListCoursesInput carries all parameters for the list endpoint.
type ListCoursesInput struct {
	Query        string
	Category     string
	Level        string
	InstructorID string
	Page         int
	Limit        int
}

// ListCoursesResult is returned by List.
type ListCoursesResult struct {
	Items      []CourseSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// UserCoursesResult pairs the courses a user created with those they are
// enrolled in.
type UserCoursesResult struct {
	Created  []CourseSummary
	Enrolled []CourseSummary
}

// CourseService defines use-case operations for courses.
type CourseService interface {
	Create(ctx context.Context, input CreateCourseInput, actor domain.Actor) (*CourseDetail, error)
	Get(ctx context.Context, id string) (*CourseDetail, error)
	List(ctx context.Context, input ListCoursesInput) (*ListCoursesResult, error)
	// Featured returns the first limit courses of the newest-first list.
	Featured(ctx context.Context, limit int) ([]CourseSummary, error)
	Update(ctx context.Context, id string, patch CoursePatch, actor domain.Actor) (*CourseDetail, error)
	// Delete removes the course and cascades to its lessons and enrollments.
	Delete(ctx context.Context, id string, actor domain.Actor) error
	// CoursesForUser returns the created and enrolled courses for the
	// profile view.
	CoursesForUser(ctx context.Context, userID string) (*UserCoursesResult, error)
}
