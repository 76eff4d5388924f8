package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// EnrollmentCounter provides the per-course student count shown on catalog
// views. EnrollmentService implements it with a read-through count cache.
type EnrollmentCounter interface {
	Count(ctx context.Context, courseID string) (int64, error)
}

// CourseService implements course CRUD and catalog listing.
type CourseService struct {
	courses     ports.CourseRepository
	lessons     ports.LessonRepository
	enrollments ports.EnrollmentRepository
	counter     EnrollmentCounter
	logger      zerolog.Logger
}

func NewCourseService(
	courses ports.CourseRepository,
	lessons ports.LessonRepository,
	enrollments ports.EnrollmentRepository,
	counter EnrollmentCounter,
	logger zerolog.Logger,
) *CourseService {
	return &CourseService{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		counter:     counter,
		logger:      logger,
	}
}

// Create publishes a new course owned by the acting user. Only instructors
// and admins may author courses.
func (s *CourseService) Create(ctx context.Context, input ports.CreateCourseInput, actor domain.Actor) (*ports.CourseDetail, error) {
	if !domain.CanAuthor(actor) {
		return nil, domain.ErrForbidden
	}

	now := time.Now().UTC()
	level := domain.CourseLevel(input.Level)
	if !domain.ValidLevel(input.Level) {
		level = domain.LevelAll
	}

	course := &domain.Course{
		ID:           uuid.NewString(),
		Title:        input.Title,
		Description:  input.Description,
		Category:     input.Category,
		Price:        input.Price,
		Duration:     input.Duration,
		Level:        level,
		CoverImage:   input.CoverImage,
		InstructorID: actor.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.courses.Create(ctx, course); err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return nil, err
	}

	for i, draft := range input.Lessons {
		lesson := &domain.Lesson{
			ID:         uuid.NewString(),
			CourseID:   course.ID,
			Title:      draft.Title,
			Content:    draft.Content,
			VideoURL:   draft.VideoURL,
			Duration:   draft.Duration,
			OrderIndex: i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.lessons.Insert(ctx, lesson); err != nil {
			s.logger.Error().Err(err).Str("course_id", course.ID).Msg("failed to seed lesson")
			return nil, err
		}
	}

	metrics.CoursesCreatedTotal.WithLabelValues(course.Category).Inc()
	s.logger.Info().Str("course_id", course.ID).Str("instructor_id", actor.ID).Msg("course created")

	return s.detail(ctx, course)
}

// Get returns the full course view with ordered lesson summaries.
func (s *CourseService) Get(ctx context.Context, id string) (*ports.CourseDetail, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, course)
}

// List returns a page of catalog entries matching the input filters, newest
// first.
func (s *CourseService) List(ctx context.Context, input ports.ListCoursesInput) (*ports.ListCoursesResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	courses, total, err := s.courses.List(ctx, ports.ListCoursesFilter{
		Query:        input.Query,
		Category:     input.Category,
		Level:        input.Level,
		InstructorID: input.InstructorID,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list courses")
		return nil, err
	}

	items, err := s.summaries(ctx, courses)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListCoursesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Featured returns the first limit courses of the unfiltered newest-first
// list.
func (s *CourseService) Featured(ctx context.Context, limit int) ([]ports.CourseSummary, error) {
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	courses, _, err := s.courses.List(ctx, ports.ListCoursesFilter{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return s.summaries(ctx, courses)
}

// Update merges the patch into the stored course. Only the owning
// instructor or an admin may update; id, instructor, and lessons are never
// touched.
func (s *CourseService) Update(ctx context.Context, id string, patch ports.CoursePatch, actor domain.Actor) (*ports.CourseDetail, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditCourse(actor, course) {
		return nil, domain.ErrForbidden
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	if patch.Price != nil {
		course.Price = *patch.Price
	}
	if patch.Duration != nil {
		course.Duration = *patch.Duration
	}
	if patch.Level != nil && domain.ValidLevel(*patch.Level) {
		course.Level = domain.CourseLevel(*patch.Level)
	}
	if patch.CoverImage != nil {
		course.CoverImage = *patch.CoverImage
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(ctx, course); err != nil {
		s.logger.Error().Err(err).Str("course_id", id).Msg("failed to update course")
		return nil, err
	}
	return s.detail(ctx, course)
}

// Delete removes the course and cascades to its lessons and enrollment rows.
func (s *CourseService) Delete(ctx context.Context, id string, actor domain.Actor) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanEditCourse(actor, course) {
		return domain.ErrForbidden
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("course_id", id).Msg("failed to delete course")
		return err
	}
	if err := s.lessons.DeleteByCourse(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("course_id", id).Msg("failed to cascade lessons")
		return err
	}
	if err := s.enrollments.DeleteByCourse(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("course_id", id).Msg("failed to cascade enrollments")
		return err
	}

	metrics.CoursesDeletedTotal.Inc()
	s.logger.Info().Str("course_id", id).Str("actor_id", actor.ID).Msg("course deleted")
	return nil
}

// CoursesForUser returns the courses the user created and the ones they are
// enrolled in.
func (s *CourseService) CoursesForUser(ctx context.Context, userID string) (*ports.UserCoursesResult, error) {
	created, _, err := s.courses.List(ctx, ports.ListCoursesFilter{InstructorID: userID, Page: 1, Limit: maxPageLimit})
	if err != nil {
		return nil, err
	}
	createdItems, err := s.summaries(ctx, created)
	if err != nil {
		return nil, err
	}

	rows, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	enrolledItems := make([]ports.CourseSummary, 0, len(rows))
	for _, row := range rows {
		course, err := s.courses.FindByID(ctx, row.CourseID)
		if err != nil {
			// Tolerate rows pointing at concurrently deleted courses.
			continue
		}
		item, err := s.summary(ctx, course)
		if err != nil {
			return nil, err
		}
		enrolledItems = append(enrolledItems, item)
	}

	return &ports.UserCoursesResult{Created: createdItems, Enrolled: enrolledItems}, nil
}

func (s *CourseService) summaries(ctx context.Context, courses []*domain.Course) ([]ports.CourseSummary, error) {
	items := make([]ports.CourseSummary, 0, len(courses))
	for _, c := range courses {
		item, err := s.summary(ctx, c)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *CourseService) summary(ctx context.Context, c *domain.Course) (ports.CourseSummary, error) {
	students, err := s.counter.Count(ctx, c.ID)
	if err != nil {
		return ports.CourseSummary{}, err
	}
	return ports.CourseSummary{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		Free:         c.Free(),
		Duration:     c.Duration,
		Level:        string(c.Level),
		CoverImage:   c.CoverImage,
		InstructorID: c.InstructorID,
		Students:     students,
		CreatedAt:    c.CreatedAt,
	}, nil
}

func (s *CourseService) detail(ctx context.Context, c *domain.Course) (*ports.CourseDetail, error) {
	lessons, err := s.lessons.ListByCourse(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	students, err := s.counter.Count(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.LessonSummary, 0, len(lessons))
	for _, l := range lessons {
		summaries = append(summaries, ports.LessonSummary{
			ID:         l.ID,
			Title:      l.Title,
			Duration:   l.Duration,
			OrderIndex: l.OrderIndex,
		})
	}

	return &ports.CourseDetail{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		Price:        c.Price,
		Free:         c.Free(),
		Duration:     c.Duration,
		Level:        string(c.Level),
		CoverImage:   c.CoverImage,
		InstructorID: c.InstructorID,
		Students:     students,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Lessons:      summaries,
	}, nil
}
