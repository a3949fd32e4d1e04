package dto

import (
	"time"

	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/pkg/utils"
)

type SubmitTestimonialRequest struct {
	StudentName     string `json:"student_name" form:"student_name" validate:"required"`
	Country         string `json:"country" form:"country" validate:"required"`
	University      string `json:"university" form:"university" validate:"required"`
	Year            string `json:"year" form:"year" validate:"required"` // parsed and range-checked in the service
	TestimonialText string `json:"testimonial_text" form:"testimonial_text" validate:"required"`
	VideoURL        string `json:"video_url" form:"video_url"`
	Tags            string `json:"tags" form:"tags"`
}

// UploadInput carries an attached video file read from the multipart form.
type UploadInput struct {
	Filename string
	Data     []byte
}

type TestimonialResponse struct {
	ID              uint             `json:"id"`
	StudentName     string           `json:"student_name"`
	Country         string           `json:"country"`
	University      string           `json:"university"`
	Year            int              `json:"year"`
	TestimonialText string           `json:"testimonial_text"`
	Tags            []string         `json:"tags,omitempty"`
	Video           *utils.VideoLink `json:"video,omitempty"`
	VideoFileURL    string           `json:"video_file_url,omitempty"`
	IsApproved      bool             `json:"is_approved"`
	CreatedAt       time.Time        `json:"created_at"`
}

type TestimonialListResponse struct {
	Items      []TestimonialResponse     `json:"items"`
	Page       int                       `json:"page"`
	PageSize   int                       `json:"page_size"`
	TotalCount int64                     `json:"total_count"`
	TotalPages int                       `json:"total_pages"`
	Facets     *domain.TestimonialFacets `json:"facets,omitempty"` // public listing only
}

type TestimonialEvent struct {
	Event      string    `json:"event"`
	ID         uint      `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
}
