package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// CountCache abstracts the enrollment-count cache (Redis). A nil cache
// disables caching.
type CountCache interface {
	Get(ctx context.Context, courseID string) (int64, bool, error)
	Set(ctx context.Context, courseID string, count int64) error
	Invalidate(ctx context.Context, courseID string) error
}

// EnrollmentService implements the append-only enrollment ledger.
type EnrollmentService struct {
	enrollments ports.EnrollmentRepository
	courses     ports.CourseRepository
	cache       CountCache             // optional
	recorder    ports.ActivityRecorder // optional
	logger      zerolog.Logger
}

func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	courses ports.CourseRepository,
	cache CountCache,
	recorder ports.ActivityRecorder,
	logger zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		cache:       cache,
		recorder:    recorder,
		logger:      logger,
	}
}

// Enroll adds the (user, course) pair to the ledger. The call is
// idempotent: an existing pair is reported as success without a second row.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		return nil, err
	}

	existing, err := s.enrollments.Find(ctx, userID, courseID)
	if err != nil && !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, err
	}
	if existing != nil {
		metrics.EnrollmentsTotal.WithLabelValues("replay").Inc()
		s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("idempotent enroll replay")
		return &ports.EnrollResult{
			CourseID:        courseID,
			EnrolledAt:      existing.EnrolledAt,
			AlreadyEnrolled: true,
		}, nil
	}

	now := time.Now().UTC()
	enrollment := &domain.Enrollment{
		ID:         uuid.NewString(),
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: now,
	}
	if err := s.enrollments.Insert(ctx, enrollment); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("failed to enroll")
		return nil, err
	}

	s.invalidateCount(ctx, courseID)
	metrics.EnrollmentsTotal.WithLabelValues("created").Inc()
	if s.recorder != nil {
		s.recorder.Record(ports.ActivityEventInput{
			CourseID:  courseID,
			UserID:    userID,
			Action:    domain.ActionEnrolled,
			Timestamp: now,
			Source:    "api",
		})
	}
	s.logger.Info().Str("user_id", userID).Str("course_id", courseID).Msg("user enrolled")

	return &ports.EnrollResult{CourseID: courseID, EnrolledAt: now}, nil
}

// Unenroll removes the pair from the ledger. Absent pairs are a no-op.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	if _, err := s.enrollments.Find(ctx, userID, courseID); err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return nil
		}
		return err
	}

	if err := s.enrollments.Delete(ctx, userID, courseID); err != nil {
		s.logger.Error().Err(err).Str("course_id", courseID).Msg("failed to unenroll")
		return err
	}

	s.invalidateCount(ctx, courseID)
	metrics.UnenrollmentsTotal.Inc()
	if s.recorder != nil {
		s.recorder.Record(ports.ActivityEventInput{
			CourseID:  courseID,
			UserID:    userID,
			Action:    domain.ActionUnenrolled,
			Timestamp: time.Now().UTC(),
			Source:    "api",
		})
	}
	return nil
}

// IsEnrolled reports whether the pair exists on the ledger.
func (s *EnrollmentService) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	if _, err := s.enrollments.Find(ctx, userID, courseID); err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Count returns the number of enrollments for the course, served from the
// cache when warm.
func (s *EnrollmentService) Count(ctx context.Context, courseID string) (int64, error) {
	if s.cache != nil {
		if n, ok, err := s.cache.Get(ctx, courseID); err != nil {
			s.logger.Warn().Err(err).Str("course_id", courseID).Msg("count cache read failed")
		} else if ok {
			return n, nil
		}
	}

	n, err := s.enrollments.CountByCourse(ctx, courseID)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, courseID, n); err != nil {
			s.logger.Warn().Err(err).Str("course_id", courseID).Msg("count cache write failed")
		}
	}
	return n, nil
}

// CourseIDsForUser returns the ids of all courses the user is enrolled in.
func (s *EnrollmentService) CourseIDsForUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CourseID)
	}
	return ids, nil
}

func (s *EnrollmentService) invalidateCount(ctx context.Context, courseID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, courseID); err != nil {
		s.logger.Warn().Err(err).Str("course_id", courseID).Msg("count cache invalidate failed")
	}
}
