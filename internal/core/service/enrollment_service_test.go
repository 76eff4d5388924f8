package service

import (
	"context"
	"errors"
	"testing"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

type enrollFixture struct {
	*courseFixture
	cache    *stubCountCache
	recorder *stubRecorder
	svc      *EnrollmentService
	courseID string
}

func newEnrollFixture(t *testing.T) *enrollFixture {
	t.Helper()
	cf := newCourseFixture()
	f := &enrollFixture{
		courseFixture: cf,
		cache:         newStubCountCache(),
		recorder:      &stubRecorder{},
	}
	f.svc = NewEnrollmentService(cf.enrollments, cf.courses, f.cache, f.recorder, discardLogger)

	created, err := cf.svc.Create(context.Background(), courseInput(), instructorA)
	if err != nil {
		t.Fatalf("seed course: %v", err)
	}
	f.courseID = created.ID
	return f
}

func TestEnrollmentService_Enroll_Success(t *testing.T) {
	f := newEnrollFixture(t)

	res, err := f.svc.Enroll(context.Background(), studentB.ID, f.courseID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AlreadyEnrolled {
		t.Error("first enroll must not be a replay")
	}
	if res.EnrolledAt.IsZero() {
		t.Error("EnrolledAt must be set")
	}

	ok, err := f.svc.IsEnrolled(context.Background(), studentB.ID, f.courseID)
	if err != nil || !ok {
		t.Errorf("IsEnrolled: want true, got %v (%v)", ok, err)
	}
}

func TestEnrollmentService_Enroll_Idempotent(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()

	first, err := f.svc.Enroll(ctx, studentB.ID, f.courseID)
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	second, err := f.svc.Enroll(ctx, studentB.ID, f.courseID)
	if err != nil {
		t.Fatalf("replay enroll: %v", err)
	}
	if !second.AlreadyEnrolled {
		t.Error("replay must set AlreadyEnrolled")
	}
	if !second.EnrolledAt.Equal(first.EnrolledAt) {
		t.Error("replay must return the original enrollment time")
	}
	if n, _ := f.svc.Count(ctx, f.courseID); n != 1 {
		t.Errorf("count must stay 1 after replay, got %d", n)
	}
	if len(f.recorder.recorded()) != 1 {
		t.Errorf("replay must not emit a second activity event, got %d", len(f.recorder.recorded()))
	}
}

func TestEnrollmentService_Enroll_UnknownCourse(t *testing.T) {
	f := newEnrollFixture(t)

	_, err := f.svc.Enroll(context.Background(), studentB.ID, "missing")
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestEnrollmentService_Unenroll_RestoresCount(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()

	before, _ := f.svc.Count(ctx, f.courseID)
	_, _ = f.svc.Enroll(ctx, studentB.ID, f.courseID)
	if err := f.svc.Unenroll(ctx, studentB.ID, f.courseID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := f.svc.Count(ctx, f.courseID)
	if after != before {
		t.Errorf("count must return to %d, got %d", before, after)
	}
	ok, _ := f.svc.IsEnrolled(ctx, studentB.ID, f.courseID)
	if ok {
		t.Error("student must no longer be enrolled")
	}
}

func TestEnrollmentService_Unenroll_AbsentIsNoop(t *testing.T) {
	f := newEnrollFixture(t)

	if err := f.svc.Unenroll(context.Background(), studentB.ID, f.courseID); err != nil {
		t.Fatalf("unenroll of absent pair must be a no-op, got %v", err)
	}
}

func TestEnrollmentService_Count_UsesCache(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Enroll(ctx, studentB.ID, f.courseID)

	// First read misses and warms the cache, second read hits it.
	if _, err := f.svc.Count(ctx, f.courseID); err != nil {
		t.Fatal(err)
	}
	setsAfterWarm := f.cache.sets
	if _, err := f.svc.Count(ctx, f.courseID); err != nil {
		t.Fatal(err)
	}
	if f.cache.sets != setsAfterWarm {
		t.Error("second read must be served from the cache")
	}
}

func TestEnrollmentService_MutationsInvalidateCache(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Enroll(ctx, studentB.ID, f.courseID)
	if f.cache.invalidates != 1 {
		t.Errorf("enroll must invalidate the count cache, got %d", f.cache.invalidates)
	}
	_ = f.svc.Unenroll(ctx, studentB.ID, f.courseID)
	if f.cache.invalidates != 2 {
		t.Errorf("unenroll must invalidate the count cache, got %d", f.cache.invalidates)
	}
}

func TestEnrollmentService_ActivityEvents(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()

	_, _ = f.svc.Enroll(ctx, studentB.ID, f.courseID)
	_ = f.svc.Unenroll(ctx, studentB.ID, f.courseID)

	events := f.recorder.recorded()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Action != domain.ActionEnrolled || events[1].Action != domain.ActionUnenrolled {
		t.Errorf("wrong actions: %q, %q", events[0].Action, events[1].Action)
	}
}

func TestEnrollmentService_CourseIDsForUser(t *testing.T) {
	f := newEnrollFixture(t)
	ctx := context.Background()

	other, _ := f.courseFixture.svc.Create(ctx, courseInput(), instructorA)
	_, _ = f.svc.Enroll(ctx, studentB.ID, f.courseID)
	_, _ = f.svc.Enroll(ctx, studentB.ID, other.ID)

	ids, err := f.svc.CourseIDsForUser(ctx, studentB.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("expected 2 course ids, got %d", len(ids))
	}
}
