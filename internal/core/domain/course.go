package domain

import (
	"errors"
	"strings"
	"time"
)

// CourseLevel is the difficulty label shown in the catalog.
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
	LevelAll          CourseLevel = "All Levels"
)

// ValidLevel reports whether s is a known course level.
func ValidLevel(s string) bool {
	switch CourseLevel(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelAll:
		return true
	}
	return false
}

var ErrCourseNotFound = errors.New("course not found")
var ErrLessonNotFound = errors.New("lesson not found")
var ErrProfileNotFound = errors.New("profile not found")
var ErrEnrollmentNotFound = errors.New("enrollment not found")
var ErrForbidden = errors.New("access forbidden")
var ErrLessonTitleRequired = errors.New("lesson title is required")
var ErrInvalidReorder = errors.New("reorder index out of range")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// Course is an instructor-authored unit of content. Lessons are stored
// separately, keyed by course id. InstructorID is immutable after creation.
type Course struct {
	ID           string      `json:"id" bson:"_id,omitempty"`
	Title        string      `json:"title" bson:"title"`
	Description  string      `json:"description" bson:"description"`
	Category     string      `json:"category" bson:"category"`
	Price        float64     `json:"price" bson:"price"`
	Duration     string      `json:"duration" bson:"duration"`
	Level        CourseLevel `json:"level" bson:"level"`
	CoverImage   string      `json:"cover_image,omitempty" bson:"cover_image,omitempty"`
	InstructorID string      `json:"instructor_id" bson:"instructor_id"`
	CreatedAt    time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" bson:"updated_at"`
}

// Free reports whether the course costs nothing.
func (c *Course) Free() bool { return c.Price == 0 }

// Lesson is an ordered sub-unit of a course. OrderIndex values within a
// course are a dense 0..N-1 permutation after every mutation.
type Lesson struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	CourseID   string    `json:"course_id" bson:"course_id"`
	Title      string    `json:"title" bson:"title"`
	Content    string    `json:"content" bson:"content"`
	VideoURL   string    `json:"video_url,omitempty" bson:"video_url,omitempty"`
	Duration   string    `json:"duration,omitempty" bson:"duration,omitempty"`
	OrderIndex int       `json:"order_index" bson:"order_index"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// LessonDraft is an in-memory, not-yet-persisted lesson being edited.
// LessonID is empty until the draft is first persisted.
type LessonDraft struct {
	LessonID   string
	Title      string
	Content    string
	VideoURL   string
	Duration   string
	OrderIndex int
}

// Validate checks the draft's required fields.
func (d *LessonDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrLessonTitleRequired
	}
	return nil
}

// Renumber assigns dense 0..N-1 order indices to lessons, preserving their
// current slice order.
func Renumber(lessons []*Lesson) {
	for i, l := range lessons {
		l.OrderIndex = i
	}
}

// NextIndex returns the order index for a lesson appended after the given
// ones. It tolerates gapped sequences left behind by an interrupted
// renumbering, so an append never collides with a surviving index.
func NextIndex(lessons []*Lesson) int {
	next := 0
	for _, l := range lessons {
		if l.OrderIndex >= next {
			next = l.OrderIndex + 1
		}
	}
	return next
}

// Reorder moves the lesson at from to position to, returning a new slice in
// the resulting order. Lessons are renumbered in place through the shared
// pointers.
func Reorder(lessons []*Lesson, from, to int) ([]*Lesson, error) {
	if from < 0 || from >= len(lessons) || to < 0 || to >= len(lessons) {
		return nil, ErrInvalidReorder
	}
	moved := lessons[from]
	rest := make([]*Lesson, 0, len(lessons))
	rest = append(rest, lessons[:from]...)
	rest = append(rest, lessons[from+1:]...)

	out := make([]*Lesson, 0, len(lessons))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	Renumber(out)
	return out, nil
}
