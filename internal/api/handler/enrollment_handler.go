package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// EnrollmentHandler handles HTTP requests against the enrollment ledger.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

type enrollResponse struct {
	CourseID        string    `json:"course_id"`
	EnrolledAt      time.Time `json:"enrolled_at"`
	AlreadyEnrolled bool      `json:"already_enrolled"`
}

// Enroll handles POST /v1/courses/:id/enroll. The operation is idempotent:
// a replay returns 200 instead of 201.
func (h *EnrollmentHandler) Enroll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.Enroll(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.AlreadyEnrolled {
		status = http.StatusOK
	}
	return c.JSON(status, enrollResponse{
		CourseID:        result.CourseID,
		EnrolledAt:      result.EnrolledAt,
		AlreadyEnrolled: result.AlreadyEnrolled,
	})
}

type enrollmentStatusResponse struct {
	CourseID string `json:"course_id"`
	Enrolled bool   `json:"enrolled"`
}

// Status handles GET /v1/courses/:id/enroll — reports whether the caller is
// on the course's ledger.
func (h *EnrollmentHandler) Status(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	enrolled, err := h.service.IsEnrolled(c.Request().Context(), actor.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, enrollmentStatusResponse{
		CourseID: c.Param("id"),
		Enrolled: enrolled,
	})
}

// Unenroll handles DELETE /v1/courses/:id/enroll. Removing an absent
// enrollment is a no-op.
func (h *EnrollmentHandler) Unenroll(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Unenroll(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
