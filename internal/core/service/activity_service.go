package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/api/metrics"
	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) for the activity
// pipeline. A nil checker disables deduplication.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, courseID, userID, action string, ts time.Time) (bool, error)
	Mark(ctx context.Context, courseID, userID, action string, ts time.Time) error
}

type activityService struct {
	repo  ports.ActivityRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService implementation.
func NewActivityService(repo ports.ActivityRepository, dedup DedupChecker, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, dedup: dedup, log: log}
}

// Process deduplicates and appends a single activity event. Errors are
// reported to the dispatcher for logging; the originating user action has
// already completed.
func (s *activityService) Process(ctx context.Context, in ports.ActivityEventInput) error {
	start := time.Now()

	if s.dedup != nil {
		isDup, err := s.dedup.IsDuplicate(ctx, in.CourseID, in.UserID, in.Action, in.Timestamp)
		if err != nil {
			s.log.Warn().Err(err).Str("course_id", in.CourseID).Msg("dedup check failed, recording anyway")
		} else if isDup {
			metrics.ActivityDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("course_id", in.CourseID).Str("action", in.Action).Msg("duplicate activity event skipped")
			return nil
		} else {
			metrics.ActivityDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	event := &domain.ActivityEvent{
		CourseID:  in.CourseID,
		UserID:    in.UserID,
		Action:    in.Action,
		Timestamp: in.Timestamp,
		Source:    in.Source,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		metrics.ActivityErrorsTotal.WithLabelValues("insert_failed").Inc()
		metrics.ActivityProcessingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return fmt.Errorf("record activity: %w", err)
	}

	if s.dedup != nil {
		if err := s.dedup.Mark(ctx, in.CourseID, in.UserID, in.Action, in.Timestamp); err != nil {
			s.log.Warn().Err(err).Str("course_id", in.CourseID).Msg("dedup mark failed")
		}
	}

	metrics.ActivityProcessedTotal.WithLabelValues(in.Action).Inc()
	metrics.ActivityProcessingDuration.WithLabelValues(in.Action).Observe(time.Since(start).Seconds())
	return nil
}
