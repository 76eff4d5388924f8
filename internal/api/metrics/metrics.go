// Package metrics defines and registers all custom Prometheus metrics for
// the LearnHub marketplace API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry at import time via
// promauto; the /metrics endpoint is served by echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learnhub"

// ── Course metrics ────────────────────────────────────────────────────────────

// CoursesCreatedTotal counts newly published courses.
// Label:
//   - category: the course category (e.g. "Programming")
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created, by category.",
	},
	[]string{"category"},
)

// CoursesDeletedTotal counts deleted courses (including their cascades).
var CoursesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_deleted_total",
		Help:      "Total number of courses deleted.",
	},
)

// ── Enrollment metrics ────────────────────────────────────────────────────────

// EnrollmentsTotal counts enroll calls.
// Label:
//   - result: "created" (new row) or "replay" (idempotent duplicate)
var EnrollmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_total",
		Help:      "Total number of enroll calls, labelled by result (created/replay).",
	},
	[]string{"result"},
)

// UnenrollmentsTotal counts removed enrollments (no-ops excluded).
var UnenrollmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unenrollments_total",
		Help:      "Total number of enrollments removed.",
	},
)

// ── Lesson metrics ────────────────────────────────────────────────────────────

// LessonsSavedTotal counts persisted lesson drafts.
// Label:
//   - kind: "created" (new lesson) or "updated" (in-place replace)
var LessonsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lessons_saved_total",
		Help:      "Total number of lesson drafts persisted, by kind (created/updated).",
	},
	[]string{"kind"},
)

// LessonReordersTotal counts successful reorder operations.
var LessonReordersTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lesson_reorders_total",
		Help:      "Total number of lesson reorder operations applied.",
	},
)

// ── Activity pipeline metrics ─────────────────────────────────────────────────

// ActivityProcessedTotal counts audit events that completed processing.
// Label:
//   - action: "enrolled", "unenrolled", or "lessons_reordered"
var ActivityProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_processed_total",
		Help:      "Total number of activity events successfully recorded.",
	},
	[]string{"action"},
)

// ActivityErrorsTotal counts audit events that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var ActivityErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_errors_total",
		Help:      "Total number of activity events that failed processing.",
	},
	[]string{"reason"},
)

// ActivityDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped) or "miss" (new event, recorded)
var ActivityDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityProcessingDuration measures how long one event takes end-to-end.
// Label:
//   - action: the event action, or "error" on failure
var ActivityProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "activity_processing_duration_seconds",
		Help:      "Duration of activity event processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"action"},
)
