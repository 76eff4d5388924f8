package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/core/ports"
)

const defaultFeaturedLimit = 3

// CourseHandler handles HTTP requests for catalog and course management.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /v1/courses — public catalog browsing with filters.
func (h *CourseHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListCoursesInput{
		Query:        c.QueryParam("q"),
		Category:     c.QueryParam("category"),
		Level:        c.QueryParam("level"),
		InstructorID: c.QueryParam("instructor_id"),
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, courseListResponse{
		Items:      toSummaryResponses(result.Items),
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Featured handles GET /v1/courses/featured — the newest courses for the
// landing page.
func (h *CourseHandler) Featured(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}

	items, err := h.service.Featured(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSummaryResponses(items))
}

// Get handles GET /v1/courses/:id.
func (h *CourseHandler) Get(c echo.Context) error {
	detail, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Create handles POST /v1/courses. Instructors and admins only.
func (h *CourseHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Create(c.Request().Context(), toCreateCourseInput(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toDetailResponse(detail))
}

// Update handles PATCH /v1/courses/:id. Owner or admin only.
func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), toCoursePatch(req), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Delete handles DELETE /v1/courses/:id. Owner or admin only; cascades to
// lessons and enrollments.
func (h *CourseHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MyCourses handles GET /v1/me/courses — the courses the caller created
// and the ones they are enrolled in.
func (h *CourseHandler) MyCourses(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	result, err := h.service.CoursesForUser(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userCoursesResponse{
		Created:  toSummaryResponses(result.Created),
		Enrolled: toSummaryResponses(result.Enrolled),
	})
}
