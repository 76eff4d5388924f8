package local

import (
	"context"
	"strings"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on the file store.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range r.s.data.Users {
		if strings.ToLower(u.Email) == email {
			return nil, domain.ErrUserExists
		}
	}

	stored := *user
	stored.Email = email
	r.s.data.Users = append(r.s.data.Users, &stored)
	if err := r.s.persistLocked(); err != nil {
		return nil, err
	}
	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range r.s.data.Users {
		if strings.ToLower(u.Email) == email {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.Users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// ProfileRepository implements ports.ProfileRepository on the file store.
type ProfileRepository struct {
	s *Store
}

func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.data.Profiles {
		if p.UserID == userID {
			out := *p
			return &out, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *profile
	for i, p := range r.s.data.Profiles {
		if p.UserID == profile.UserID {
			r.s.data.Profiles[i] = &stored
			return r.s.persistLocked()
		}
	}
	r.s.data.Profiles = append(r.s.data.Profiles, &stored)
	return r.s.persistLocked()
}

// CourseRepository implements ports.CourseRepository on the file store.
type CourseRepository struct {
	s *Store
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *c
	r.s.data.Courses = append(r.s.data.Courses, &stored)
	return r.s.persistLocked()
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*domain.Course, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.data.Courses {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, domain.ErrCourseNotFound
}

func (r *CourseRepository) List(ctx context.Context, filter ports.ListCoursesFilter) ([]*domain.Course, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := make([]*domain.Course, 0, len(r.s.data.Courses))
	for _, c := range domain.FilterCourses(r.s.data.Courses, filter.Query, filter.Category) {
		if filter.Level != "" && string(c.Level) != filter.Level {
			continue
		}
		if filter.InstructorID != "" && c.InstructorID != filter.InstructorID {
			continue
		}
		clone := *c
		matched = append(matched, &clone)
	}
	domain.SortByNewest(matched)

	total := int64(len(matched))
	if filter.Limit <= 0 {
		return matched, total, nil
	}
	start := 0
	if filter.Page > 1 {
		start = (filter.Page - 1) * filter.Limit
	}
	if start >= len(matched) {
		return nil, total, nil
	}
	return domain.Featured(matched[start:], filter.Limit), total, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, existing := range r.s.data.Courses {
		if existing.ID == c.ID {
			stored := *c
			r.s.data.Courses[i] = &stored
			return r.s.persistLocked()
		}
	}
	return domain.ErrCourseNotFound
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, c := range r.s.data.Courses {
		if c.ID == id {
			r.s.data.Courses = append(r.s.data.Courses[:i], r.s.data.Courses[i+1:]...)
			return r.s.persistLocked()
		}
	}
	return domain.ErrCourseNotFound
}

// LessonRepository implements ports.LessonRepository on the file store.
type LessonRepository struct {
	s *Store
}

func (r *LessonRepository) Insert(ctx context.Context, l *domain.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *l
	r.s.data.Lessons = append(r.s.data.Lessons, &stored)
	return r.s.persistLocked()
}

func (r *LessonRepository) FindByID(ctx context.Context, id string) (*domain.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range r.s.data.Lessons {
		if l.ID == id {
			out := *l
			return &out, nil
		}
	}
	return nil, domain.ErrLessonNotFound
}

func (r *LessonRepository) ListByCourse(ctx context.Context, courseID string) ([]*domain.Lesson, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.listLocked(courseID), nil
}

func (r *LessonRepository) Update(ctx context.Context, l *domain.Lesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, existing := range r.s.data.Lessons {
		if existing.ID == l.ID {
			stored := *l
			r.s.data.Lessons[i] = &stored
			return r.s.persistLocked()
		}
	}
	return domain.ErrLessonNotFound
}

func (r *LessonRepository) Remove(ctx context.Context, courseID, lessonID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	found := false
	kept := r.s.data.Lessons[:0]
	for _, l := range r.s.data.Lessons {
		if l.ID == lessonID && l.CourseID == courseID {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return domain.ErrLessonNotFound
	}
	r.s.data.Lessons = kept
	domain.Renumber(r.listLocked(courseID))
	return r.s.persistLocked()
}

func (r *LessonRepository) ReplaceOrder(ctx context.Context, courseID string, orderedIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	byID := make(map[string]*domain.Lesson, len(r.s.data.Lessons))
	for _, l := range r.s.data.Lessons {
		if l.CourseID == courseID {
			byID[l.ID] = l
		}
	}
	for i, id := range orderedIDs {
		if l, ok := byID[id]; ok {
			l.OrderIndex = i
		}
	}
	return r.s.persistLocked()
}

func (r *LessonRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.data.Lessons[:0]
	for _, l := range r.s.data.Lessons {
		if l.CourseID != courseID {
			kept = append(kept, l)
		}
	}
	r.s.data.Lessons = kept
	return r.s.persistLocked()
}

// listLocked returns the course's lessons sorted by order index. The
// returned slice shares the stored lesson pointers; callers must hold mu.
func (r *LessonRepository) listLocked(courseID string) []*domain.Lesson {
	var lessons []*domain.Lesson
	for _, l := range r.s.data.Lessons {
		if l.CourseID == courseID {
			lessons = append(lessons, l)
		}
	}
	for i := 1; i < len(lessons); i++ {
		for j := i; j > 0 && lessons[j-1].OrderIndex > lessons[j].OrderIndex; j-- {
			lessons[j-1], lessons[j] = lessons[j], lessons[j-1]
		}
	}
	return lessons
}

// EnrollmentRepository implements ports.EnrollmentRepository on the file store.
type EnrollmentRepository struct {
	s *Store
}

func (r *EnrollmentRepository) Find(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, e := range r.s.data.Enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			out := *e
			return &out, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *EnrollmentRepository) Insert(ctx context.Context, e *domain.Enrollment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.data.Enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return nil
		}
	}
	stored := *e
	r.s.data.Enrollments = append(r.s.data.Enrollments, &stored)
	return r.s.persistLocked()
}

func (r *EnrollmentRepository) Delete(ctx context.Context, userID, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i, e := range r.s.data.Enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			r.s.data.Enrollments = append(r.s.data.Enrollments[:i], r.s.data.Enrollments[i+1:]...)
			return r.s.persistLocked()
		}
	}
	return nil
}

func (r *EnrollmentRepository) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, e := range r.s.data.Enrollments {
		if e.CourseID == courseID {
			n++
		}
	}
	return n, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Enrollment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Enrollment
	for _, e := range r.s.data.Enrollments {
		if e.UserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *EnrollmentRepository) DeleteByCourse(ctx context.Context, courseID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.data.Enrollments[:0]
	for _, e := range r.s.data.Enrollments {
		if e.CourseID != courseID {
			kept = append(kept, e)
		}
	}
	r.s.data.Enrollments = kept
	return r.s.persistLocked()
}

// ActivityRepository implements ports.ActivityRepository on the file store.
type ActivityRepository struct {
	s *Store
}

func (r *ActivityRepository) Insert(ctx context.Context, event *domain.ActivityEvent) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *event
	r.s.data.Activity = append(r.s.data.Activity, &stored)
	return r.s.persistLocked()
}
