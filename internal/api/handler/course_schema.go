package handler

import (
	"time"

	"github.com/learnhub/learnhub-api/internal/core/ports"
)

// --- Request types ---

type lessonDraftRequest struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
	Duration string `json:"duration"`
}

type createCourseRequest struct {
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Category    string               `json:"category" validate:"required"`
	Price       float64              `json:"price" validate:"gte=0"`
	Duration    string               `json:"duration"`
	Level       string               `json:"level"`
	CoverImage  string               `json:"cover_image"`
	Lessons     []lessonDraftRequest `json:"lessons" validate:"dive"`
}

type updateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *string  `json:"duration"`
	Level       *string  `json:"level"`
	CoverImage  *string  `json:"cover_image"`
}

// --- Response types ---

type courseSummaryResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	Free         bool      `json:"free"`
	Duration     string    `json:"duration"`
	Level        string    `json:"level"`
	CoverImage   string    `json:"cover_image,omitempty"`
	InstructorID string    `json:"instructor_id"`
	Students     int64     `json:"students"`
	CreatedAt    time.Time `json:"created_at"`
}

type lessonSummaryResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Duration   string `json:"duration,omitempty"`
	OrderIndex int    `json:"order_index"`
}

type courseDetailResponse struct {
	courseSummaryResponse
	UpdatedAt time.Time               `json:"updated_at"`
	Lessons   []lessonSummaryResponse `json:"lessons"`
}

type courseListResponse struct {
	Items      []courseSummaryResponse `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

type userCoursesResponse struct {
	Created  []courseSummaryResponse `json:"created"`
	Enrolled []courseSummaryResponse `json:"enrolled"`
}

// --- Mappers ---

func toCreateCourseInput(req createCourseRequest) ports.CreateCourseInput {
	in := ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		CoverImage:  req.CoverImage,
	}
	for _, l := range req.Lessons {
		in.Lessons = append(in.Lessons, ports.LessonDraftInput{
			Title:    l.Title,
			Content:  l.Content,
			VideoURL: l.VideoURL,
			Duration: l.Duration,
		})
	}
	return in
}

func toCoursePatch(req updateCourseRequest) ports.CoursePatch {
	return ports.CoursePatch{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Duration:    req.Duration,
		Level:       req.Level,
		CoverImage:  req.CoverImage,
	}
}

func toSummaryResponse(s ports.CourseSummary) courseSummaryResponse {
	return courseSummaryResponse{
		ID:           s.ID,
		Title:        s.Title,
		Description:  s.Description,
		Category:     s.Category,
		Price:        s.Price,
		Free:         s.Free,
		Duration:     s.Duration,
		Level:        s.Level,
		CoverImage:   s.CoverImage,
		InstructorID: s.InstructorID,
		Students:     s.Students,
		CreatedAt:    s.CreatedAt,
	}
}

func toSummaryResponses(in []ports.CourseSummary) []courseSummaryResponse {
	out := make([]courseSummaryResponse, len(in))
	for i, s := range in {
		out[i] = toSummaryResponse(s)
	}
	return out
}

func toDetailResponse(d *ports.CourseDetail) courseDetailResponse {
	resp := courseDetailResponse{
		courseSummaryResponse: courseSummaryResponse{
			ID:           d.ID,
			Title:        d.Title,
			Description:  d.Description,
			Category:     d.Category,
			Price:        d.Price,
			Free:         d.Free,
			Duration:     d.Duration,
			Level:        d.Level,
			CoverImage:   d.CoverImage,
			InstructorID: d.InstructorID,
			Students:     d.Students,
			CreatedAt:    d.CreatedAt,
		},
		UpdatedAt: d.UpdatedAt,
		Lessons:   make([]lessonSummaryResponse, len(d.Lessons)),
	}
	for i, l := range d.Lessons {
		resp.Lessons[i] = lessonSummaryResponse{
			ID:         l.ID,
			Title:      l.Title,
			Duration:   l.Duration,
			OrderIndex: l.OrderIndex,
		}
	}
	return resp
}
