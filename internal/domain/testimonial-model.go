package domain

import "time"

type Testimonial struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentName     string    `gorm:"type:varchar(255);not null" json:"student_name"`
	Country         string    `gorm:"type:varchar(255);not null;index" json:"country"`
	University      string    `gorm:"type:varchar(255);not null" json:"university"`
	Year            int       `gorm:"not null;index" json:"year"`
	TestimonialText string    `gorm:"type:text;not null" json:"testimonial_text"`
	VideoURL        string    `gorm:"type:text" json:"video_url,omitempty"`
	VideoFile       string    `gorm:"type:varchar(255)" json:"video_file,omitempty"` // upload store public ID
	VideoFileURL    string    `gorm:"type:text" json:"video_file_url,omitempty"`
	Tags            string    `gorm:"type:text" json:"tags,omitempty"` // raw comma-separated labels
	IsApproved      bool      `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UserID          *uint     `json:"user_id,omitempty"` // always nil on the public submission path
}

// TestimonialFilter narrows the public listing. A zero-value field means
// "no restriction"; provided filters combine with AND semantics.
// Tag matching is an unanchored, case-sensitive substring over the raw
// stored tag text, matching the behaviour of the running portal.
type TestimonialFilter struct {
	Country string
	Year    *int
	Tag     string
}

// TestimonialFacets lists the filter values available over the full
// approved set, regardless of the currently selected filters.
type TestimonialFacets struct {
	Countries []string `json:"countries"`
	Years     []int    `json:"years"`
	Tags      []string `json:"tags"`
}

type CountryCount struct {
	Country string `json:"country"`
	Count   int64  `json:"count"`
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}
