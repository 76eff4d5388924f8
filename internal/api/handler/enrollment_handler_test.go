package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/learnhub/learnhub-api/internal/core/domain"
	"github.com/learnhub/learnhub-api/internal/core/ports"
)

type stubEnrollmentService struct {
	enrollFn     func(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error)
	unenrollFn   func(ctx context.Context, userID, courseID string) error
	isEnrolledFn func(ctx context.Context, userID, courseID string) (bool, error)
}

func (s *stubEnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error) {
	return s.enrollFn(ctx, userID, courseID)
}
func (s *stubEnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	return s.unenrollFn(ctx, userID, courseID)
}
func (s *stubEnrollmentService) IsEnrolled(ctx context.Context, userID, courseID string) (bool, error) {
	if s.isEnrolledFn != nil {
		return s.isEnrolledFn(ctx, userID, courseID)
	}
	return false, nil
}
func (s *stubEnrollmentService) Count(ctx context.Context, courseID string) (int64, error) {
	return 0, nil
}
func (s *stubEnrollmentService) CourseIDsForUser(ctx context.Context, userID string) ([]string, error) {
	return nil, nil
}

func TestEnrollmentHandler_Enroll_New(t *testing.T) {
	e := newTestEcho()
	stub := &stubEnrollmentService{
		enrollFn: func(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error) {
			if userID != "u1" || courseID != "c1" {
				t.Fatalf("unexpected args: %s %s", userID, courseID)
			}
			return &ports.EnrollResult{CourseID: courseID, EnrolledAt: time.Now().UTC()}, nil
		},
	}
	handler := NewEnrollmentHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/courses/c1/enroll", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleStudent)

	if err := handler.Enroll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestEnrollmentHandler_Enroll_Replay(t *testing.T) {
	e := newTestEcho()
	stub := &stubEnrollmentService{
		enrollFn: func(ctx context.Context, userID, courseID string) (*ports.EnrollResult, error) {
			return &ports.EnrollResult{CourseID: courseID, EnrolledAt: time.Now().UTC(), AlreadyEnrolled: true}, nil
		},
	}
	handler := NewEnrollmentHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/v1/courses/c1/enroll", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleStudent)

	if err := handler.Enroll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("replay must answer 200, got %d", rec.Code)
	}
}

func TestEnrollmentHandler_Status(t *testing.T) {
	e := newTestEcho()
	stub := &stubEnrollmentService{
		isEnrolledFn: func(ctx context.Context, userID, courseID string) (bool, error) {
			if userID != "u1" || courseID != "c1" {
				t.Fatalf("unexpected args: %s %s", userID, courseID)
			}
			return true, nil
		},
	}
	handler := NewEnrollmentHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/v1/courses/c1/enroll", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleStudent)

	if err := handler.Status(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if enrolled, _ := resp["enrolled"].(bool); !enrolled {
		t.Fatalf("expected enrolled true, got %v", resp)
	}
}

func TestEnrollmentHandler_Unenroll(t *testing.T) {
	e := newTestEcho()
	called := false
	stub := &stubEnrollmentService{
		unenrollFn: func(ctx context.Context, userID, courseID string) error {
			called = true
			return nil
		},
	}
	handler := NewEnrollmentHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/v1/courses/c1/enroll", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("user_id", "u1")
	c.Set("role", domain.RoleStudent)

	if err := handler.Unenroll(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
