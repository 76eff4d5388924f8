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

// LessonService implements the ordered-lesson operations for a course.
// All mutations require course edit rights; reads are gated by enrollment.
type LessonService struct {
	courses     ports.CourseRepository
	lessons     ports.LessonRepository
	enrollments ports.EnrollmentRepository
	recorder    ports.ActivityRecorder // optional
	logger      zerolog.Logger
}

func NewLessonService(
	courses ports.CourseRepository,
	lessons ports.LessonRepository,
	enrollments ports.EnrollmentRepository,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *LessonService {
	return &LessonService{
		courses:     courses,
		lessons:     lessons,
		enrollments: enrollments,
		recorder:    recorder,
		logger:      logger,
	}
}

// List returns the course's lessons in order. Actors outside the enrollment
// gate receive redacted views with content and video withheld.
func (s *LessonService) List(ctx context.Context, courseID string, actor domain.Actor) ([]ports.LessonView, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	enrolled := false
	if actor.ID != "" {
		e, err := s.enrollments.Find(ctx, actor.ID, courseID)
		if err == nil && e != nil {
			enrolled = true
		}
	}
	full := domain.CanViewLessonContent(actor, course, enrolled)

	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.LessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, lessonView(l, full))
	}
	return views, nil
}

// Save persists a lesson draft through the editor state machine: a draft
// without an id is appended at the end of the course, one with an id
// replaces the stored lesson in place without changing its order index.
func (s *LessonService) Save(ctx context.Context, courseID string, draft ports.LessonDraftInput, actor domain.Actor) (*ports.LessonView, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditCourse(actor, course) {
		return nil, domain.ErrForbidden
	}

	editor := domain.NewEditor()
	var original *domain.Lesson
	if draft.LessonID == "" {
		existing, err := s.lessons.ListByCourse(ctx, courseID)
		if err != nil {
			return nil, err
		}
		if err := editor.BeginNew(domain.NextIndex(existing)); err != nil {
			return nil, err
		}
	} else {
		original, err = s.lessons.FindByID(ctx, draft.LessonID)
		if err != nil {
			return nil, err
		}
		if original.CourseID != courseID {
			return nil, domain.ErrLessonNotFound
		}
		if err := editor.BeginEdit(original); err != nil {
			return nil, err
		}
	}

	if err := editor.SetDraft(domain.LessonDraft{
		Title:    draft.Title,
		Content:  draft.Content,
		VideoURL: draft.VideoURL,
		Duration: draft.Duration,
	}); err != nil {
		return nil, err
	}
	committed, err := editor.Commit()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if committed.LessonID == "" {
		lesson := &domain.Lesson{
			ID:         uuid.NewString(),
			CourseID:   courseID,
			Title:      committed.Title,
			Content:    committed.Content,
			VideoURL:   committed.VideoURL,
			Duration:   committed.Duration,
			OrderIndex: committed.OrderIndex,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.lessons.Insert(ctx, lesson); err != nil {
			s.logger.Error().Err(err).Str("course_id", courseID).Msg("failed to insert lesson")
			return nil, err
		}
		metrics.LessonsSavedTotal.WithLabelValues("created").Inc()
		v := lessonView(lesson, true)
		return &v, nil
	}

	original.Title = committed.Title
	original.Content = committed.Content
	original.VideoURL = committed.VideoURL
	original.Duration = committed.Duration
	original.UpdatedAt = now
	if err := s.lessons.Update(ctx, original); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", original.ID).Msg("failed to update lesson")
		return nil, err
	}
	metrics.LessonsSavedTotal.WithLabelValues("updated").Inc()
	v := lessonView(original, true)
	return &v, nil
}

// Remove deletes the lesson and renumbers the survivors to a dense 0..N-1
// sequence in one batched repository write.
func (s *LessonService) Remove(ctx context.Context, courseID, lessonID string, actor domain.Actor) error {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !domain.CanEditCourse(actor, course) {
		return domain.ErrForbidden
	}

	lesson, err := s.lessons.FindByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if lesson.CourseID != courseID {
		return domain.ErrLessonNotFound
	}

	if err := s.lessons.Remove(ctx, courseID, lessonID); err != nil {
		s.logger.Error().Err(err).Str("lesson_id", lessonID).Msg("failed to remove lesson")
		return err
	}
	return nil
}

// Reorder moves the lesson at fromIndex to toIndex and rewrites all order
// indices in one batched write.
func (s *LessonService) Reorder(ctx context.Context, courseID string, fromIndex, toIndex int, actor domain.Actor) ([]ports.LessonView, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !domain.CanEditCourse(actor, course) {
		return nil, domain.ErrForbidden
	}

	lessons, err := s.lessons.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	reordered, err := domain.Reorder(lessons, fromIndex, toIndex)
	if err != nil {
		return nil, err
	}

	orderedIDs := make([]string, len(reordered))
	for i, l := range reordered {
		orderedIDs[i] = l.ID
	}
	if err := s.lessons.ReplaceOrder(ctx, courseID, orderedIDs); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("failed to replace lesson order")
		return nil, err
	}

	metrics.LessonReordersTotal.Inc()
	if s.recorder != nil {
		s.recorder.Record(ports.ActivityEventInput{
			CourseID:  courseID,
			UserID:    actor.ID,
			Action:    domain.ActionLessonsReordered,
			Timestamp: time.Now().UTC(),
			Source:    "editor",
		})
	}

	views := make([]ports.LessonView, 0, len(reordered))
	for _, l := range reordered {
		views = append(views, lessonView(l, true))
	}
	return views, nil
}

func lessonView(l *domain.Lesson, full bool) ports.LessonView {
	v := ports.LessonView{
		ID:         l.ID,
		Title:      l.Title,
		Duration:   l.Duration,
		OrderIndex: l.OrderIndex,
		UpdatedAt:  l.UpdatedAt,
	}
	if full {
		v.Content = l.Content
		v.VideoURL = l.VideoURL
	} else {
		v.Redacted = true
	}
	return v
}
