// Package local provides a single-file JSON storage driver. It backs the
// demo deployment: the whole dataset lives in one document on disk and is
// rewritten on every mutation, so it needs no external services.
package local

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-api/internal/core/domain"
)

// Store owns the on-disk document and serialises all access to it.
type Store struct {
	mu   sync.Mutex
	path string
	data fileData
	log  zerolog.Logger
}

type fileData struct {
	Users       []*domain.User          `json:"users"`
	Profiles    []*domain.Profile       `json:"profiles"`
	Courses     []*domain.Course        `json:"courses"`
	Lessons     []*domain.Lesson        `json:"lessons"`
	Enrollments []*domain.Enrollment    `json:"enrollments"`
	Activity    []*domain.ActivityEvent `json:"activity"`
}

// Open loads the store from path. A missing file is created and seeded with
// the sample catalog.
func Open(path string, log zerolog.Logger) (*Store, error) {
	s := &Store{path: path, log: log}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		s.data = seedData()
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		log.Info().Str("path", path).Msg("created data file with sample catalog")
	default:
		return nil, fmt.Errorf("read data file %s: %w", path, err)
	}

	return s, nil
}

// persistLocked rewrites the whole document. Callers must hold mu (or be
// the only goroutine, as in Open).
func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

// Users returns the identity repository backed by this store.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Profiles returns the profile repository backed by this store.
func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s: s} }

// Courses returns the course repository backed by this store.
func (s *Store) Courses() *CourseRepository { return &CourseRepository{s: s} }

// Lessons returns the lesson repository backed by this store.
func (s *Store) Lessons() *LessonRepository { return &LessonRepository{s: s} }

// Enrollments returns the enrollment repository backed by this store.
func (s *Store) Enrollments() *EnrollmentRepository { return &EnrollmentRepository{s: s} }

// Activity returns the audit repository backed by this store.
func (s *Store) Activity() *ActivityRepository { return &ActivityRepository{s: s} }
