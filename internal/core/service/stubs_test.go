package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories shared by the service tests. They mirror the
// filtering the real Mongo repositories perform.
// ---------------------------------------------------------------------------

type stubCourseRepo struct {
	byID      map[string]*domain.Course
	createErr error // if set, Create returns this error
	updateErr error
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{byID: make(map[string]*domain.Course)}
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) error {
	if r.createErr != nil {
		return r.createErr
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) List(_ context.Context, f ports.ListCoursesFilter) ([]*domain.Course, int64, error) {
	var matched []*domain.Course
	for _, c := range r.byID {
		if !domain.MatchCourse(c, f.Query) {
			continue
		}
		if f.Category != "" && c.Category != f.Category {
			continue
		}
		if f.Level != "" && string(c.Level) != f.Level {
			continue
		}
		if f.InstructorID != "" && c.InstructorID != f.InstructorID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	domain.SortByNewest(matched)

	total := int64(len(matched))
	limit := f.Limit
	if limit <= 0 {
		limit = len(matched)
	}
	skip := (f.Page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Course{}, total, nil
	}
	end := skip + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubLessonRepo struct {
	byID      map[string]*domain.Lesson
	insertErr error
}

func newStubLessonRepo() *stubLessonRepo {
	return &stubLessonRepo{byID: make(map[string]*domain.Lesson)}
}

func (r *stubLessonRepo) Insert(_ context.Context, l *domain.Lesson) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLessonRepo) FindByID(_ context.Context, id string) (*domain.Lesson, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubLessonRepo) ListByCourse(_ context.Context, courseID string) ([]*domain.Lesson, error) {
	var out []*domain.Lesson
	for _, l := range r.byID {
		if l.CourseID == courseID {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (r *stubLessonRepo) Update(_ context.Context, l *domain.Lesson) error {
	if _, ok := r.byID[l.ID]; !ok {
		return domain.ErrLessonNotFound
	}
	clone := *l
	r.byID[l.ID] = &clone
	return nil
}

func (r *stubLessonRepo) Remove(ctx context.Context, courseID, lessonID string) error {
	if _, ok := r.byID[lessonID]; !ok {
		return domain.ErrLessonNotFound
	}
	delete(r.byID, lessonID)
	rest, _ := r.ListByCourse(ctx, courseID)
	for i, l := range rest {
		l.OrderIndex = i
		r.byID[l.ID] = l
	}
	return nil
}

func (r *stubLessonRepo) ReplaceOrder(_ context.Context, courseID string, orderedIDs []string) error {
	for i, id := range orderedIDs {
		l, ok := r.byID[id]
		if !ok || l.CourseID != courseID {
			return domain.ErrLessonNotFound
		}
		l.OrderIndex = i
	}
	return nil
}

func (r *stubLessonRepo) DeleteByCourse(_ context.Context, courseID string) error {
	for id, l := range r.byID {
		if l.CourseID == courseID {
			delete(r.byID, id)
		}
	}
	return nil
}

type stubEnrollmentRepo struct {
	byKey     map[string]*domain.Enrollment // userID + "|" + courseID
	insertErr error
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{byKey: make(map[string]*domain.Enrollment)}
}

func enrollmentKey(userID, courseID string) string { return userID + "|" + courseID }

func (r *stubEnrollmentRepo) Find(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	e, ok := r.byKey[enrollmentKey(userID, courseID)]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEnrollmentRepo) Insert(_ context.Context, e *domain.Enrollment) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *e
	r.byKey[enrollmentKey(e.UserID, e.CourseID)] = &clone
	return nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, userID, courseID string) error {
	delete(r.byKey, enrollmentKey(userID, courseID))
	return nil
}

func (r *stubEnrollmentRepo) CountByCourse(_ context.Context, courseID string) (int64, error) {
	var n int64
	for _, e := range r.byKey {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *stubEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range r.byKey {
		if e.UserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) DeleteByCourse(_ context.Context, courseID string) error {
	for k, e := range r.byKey {
		if e.CourseID == courseID {
			delete(r.byKey, k)
		}
	}
	return nil
}

type stubUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	key := strings.ToLower(u.Email)
	if _, ok := r.byEmail[key]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *u
	r.byEmail[key] = &clone
	r.byID[u.ID] = &clone
	return &clone, nil
}

type stubProfileRepo struct {
	byUserID map[string]*domain.Profile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (r *stubProfileRepo) FindByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, p *domain.Profile) error {
	clone := *p
	r.byUserID[p.UserID] = &clone
	return nil
}

type stubActivityRepo struct {
	mu        sync.Mutex
	events    []*domain.ActivityEvent
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *e
	r.events = append(r.events, &clone)
	return nil
}

// stubRecorder captures fire-and-forget activity events synchronously.
type stubRecorder struct {
	mu     sync.Mutex
	events []ports.ActivityEventInput
}

func (r *stubRecorder) Record(e ports.ActivityEventInput) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *stubRecorder) recorded() []ports.ActivityEventInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.ActivityEventInput(nil), r.events...)
}

// stubCountCache is an in-memory CountCache with hit/miss accounting.
type stubCountCache struct {
	values      map[string]int64
	gets, sets  int
	invalidates int
}

func newStubCountCache() *stubCountCache {
	return &stubCountCache{values: make(map[string]int64)}
}

func (c *stubCountCache) Get(_ context.Context, courseID string) (int64, bool, error) {
	c.gets++
	n, ok := c.values[courseID]
	return n, ok, nil
}

func (c *stubCountCache) Set(_ context.Context, courseID string, n int64) error {
	c.sets++
	c.values[courseID] = n
	return nil
}

func (c *stubCountCache) Invalidate(_ context.Context, courseID string) error {
	c.invalidates++
	delete(c.values, courseID)
	return nil
}

// stubDedup marks every event and reports duplicates on repeat keys.
type stubDedup struct {
	seen map[string]bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func dedupKey(courseID, userID, action string, ts time.Time) string {
	return courseID + "|" + userID + "|" + action + "|" + ts.UTC().Format(time.RFC3339)
}

func (d *stubDedup) IsDuplicate(_ context.Context, courseID, userID, action string, ts time.Time) (bool, error) {
	return d.seen[dedupKey(courseID, userID, action, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, courseID, userID, action string, ts time.Time) error {
	d.seen[dedupKey(courseID, userID, action, ts)] = true
	return nil
}
