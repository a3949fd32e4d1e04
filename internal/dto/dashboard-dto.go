package dto

import "github.com/portaleuropa/testimonial_service/internal/domain"

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int64  `json:"count"`
}

// DashboardResponse is the aggregate view behind the admin dashboard charts.
// Per-country, per-year and per-month counts cover approved records only.
type DashboardResponse struct {
	TotalTestimonials    int64                 `json:"total_testimonials"`
	ApprovedTestimonials int64                 `json:"approved_testimonials"`
	PendingTestimonials  int64                 `json:"pending_testimonials"`
	Countries            []domain.CountryCount `json:"countries"`
	Years                []domain.YearCount    `json:"years"`
	Monthly              []MonthCount          `json:"monthly"`
}
