package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// LessonHandler handles HTTP requests for a course's ordered lessons.
type LessonHandler struct {
	service ports.LessonService
}

func NewLessonHandler(service ports.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

type saveLessonRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
	Duration string `json:"duration"`
}

type reorderRequest struct {
	From int `json:"from_index" validate:"gte=0"`
	To   int `json:"to_index" validate:"gte=0"`
}

type lessonResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content,omitempty"`
	VideoURL   string    `json:"video_url,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	OrderIndex int       `json:"order_index"`
	Redacted   bool      `json:"redacted,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toLessonResponse(v ports.LessonView) lessonResponse {
	return lessonResponse{
		ID:         v.ID,
		Title:      v.Title,
		Content:    v.Content,
		VideoURL:   v.VideoURL,
		Duration:   v.Duration,
		OrderIndex: v.OrderIndex,
		Redacted:   v.Redacted,
		UpdatedAt:  v.UpdatedAt,
	}
}

func toLessonResponses(views []ports.LessonView) []lessonResponse {
	out := make([]lessonResponse, len(views))
	for i, v := range views {
		out[i] = toLessonResponse(v)
	}
	return out
}

// List handles GET /v1/courses/:id/lessons. Content visibility depends on
// the caller's relationship to the course.
func (h *LessonHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	views, err := h.service.List(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLessonResponses(views))
}

// Create handles POST /v1/courses/:id/lessons — appends a new lesson at the
// end of the course.
func (h *LessonHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Save(c.Request().Context(), c.Param("id"), ports.LessonDraftInput{
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toLessonResponse(*view))
}

// Update handles PUT /v1/courses/:id/lessons/:lesson_id — replaces the
// stored lesson in place, keeping its position.
func (h *LessonHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Save(c.Request().Context(), c.Param("id"), ports.LessonDraftInput{
		LessonID: c.Param("lesson_id"),
		Title:    req.Title,
		Content:  req.Content,
		VideoURL: req.VideoURL,
		Duration: req.Duration,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLessonResponse(*view))
}

// Delete handles DELETE /v1/courses/:id/lessons/:lesson_id.
func (h *LessonHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), c.Param("id"), c.Param("lesson_id"), actor); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Reorder handles POST /v1/courses/:id/lessons/reorder — moves one lesson
// and returns the full renumbered list.
func (h *LessonHandler) Reorder(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	views, err := h.service.Reorder(c.Request().Context(), c.Param("id"), req.From, req.To, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLessonResponses(views))
}
