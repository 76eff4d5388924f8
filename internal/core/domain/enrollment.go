package domain

import "time"

// Enrollment is the append-only relation granting a student access to a
// course's lesson content. At most one row exists per (user, course) pair.
type Enrollment struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	UserID     string    `json:"user_id" bson:"user_id"`
	CourseID   string    `json:"course_id" bson:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at" bson:"enrolled_at"`
}

// Activity actions recorded in the audit trail.
const (
	ActionEnrolled         = "enrolled"
	ActionUnenrolled       = "unenrolled"
	ActionLessonsReordered = "lessons_reordered"
)

// ActivityEvent is a single audit record of a course mutation observed by
// the ledger. Events are appended asynchronously and never updated.
type ActivityEvent struct {
	CourseID  string    `json:"course_id" bson:"course_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Action    string    `json:"action" bson:"action"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	Source    string    `json:"source" bson:"source"`
}
