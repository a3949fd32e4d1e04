package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/internal/dto"
	"github.com/portaleuropa/testimonial_service/internal/interfaces"
	"github.com/portaleuropa/testimonial_service/internal/repository"
	"github.com/portaleuropa/testimonial_service/pkg/utils"
)

const (
	// PublicPageSize is the page size of the public listing;
	// ModerationPageSize of the admin listing.
	PublicPageSize     = 6
	ModerationPageSize = 10

	// First year of the exchange programme; submissions outside
	// [MinYear, current_year+1] are rejected.
	MinYear = 1987

	uploadFolder = "portal/testimonials"

	EventSubmitted = "testimonial.submitted"
	EventApproved  = "testimonial.approved"
	EventDeleted   = "testimonial.deleted"
)

type TestimonialService interface {
	Submit(ctx context.Context, input dto.SubmitTestimonialRequest, file *dto.UploadInput) (uint, error)
	GetPage(filter domain.TestimonialFilter, page int) (*dto.TestimonialListResponse, error)
	ListAllForModeration(page int) (*dto.TestimonialListResponse, error)
	Approve(id uint) error
	Delete(ctx context.Context, id uint) error
	StatsOverview() (*dto.DashboardResponse, error)
}

type testimonialService struct {
	repo     repository.TestimonialRepository
	uploader interfaces.Uploader
	producer interfaces.ProducerHandler
	validate *validator.Validate
}

func NewTestimonialService(
	repo repository.TestimonialRepository,
	uploader interfaces.Uploader,
	producer interfaces.ProducerHandler,
) TestimonialService {
	validate := validator.New()
	// report form field names, not Go struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &testimonialService{
		repo:     repo,
		uploader: uploader,
		producer: producer,
		validate: validate,
	}
}

// Submit validates the testimonial, stores the optional attached video in
// the upload store and persists the record as pending. Validation happens
// before any write; a failed upload aborts the submission.
func (s *testimonialService) Submit(ctx context.Context, input dto.SubmitTestimonialRequest, file *dto.UploadInput) (uint, error) {
	input.StudentName = strings.TrimSpace(input.StudentName)
	input.Country = strings.TrimSpace(input.Country)
	input.University = strings.TrimSpace(input.University)
	input.Year = strings.TrimSpace(input.Year)
	input.TestimonialText = strings.TrimSpace(input.TestimonialText)
	input.VideoURL = strings.TrimSpace(input.VideoURL)
	input.Tags = strings.TrimSpace(input.Tags)

	verr := domain.NewValidationError()
	if err := s.validate.Struct(input); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return 0, err
		}
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), "is required")
		}
	}

	year := 0
	if input.Year != "" {
		n, err := strconv.Atoi(input.Year)
		if err != nil {
			verr.Add("year", "must be a whole number")
		} else if maxYear := time.Now().Year() + 1; n < MinYear || n > maxYear {
			verr.Add("year", fmt.Sprintf("must be between %d and %d", MinYear, maxYear))
		} else {
			year = n
		}
	}

	if verr.HasErrors() {
		return 0, verr
	}

	t := &domain.Testimonial{
		StudentName:     input.StudentName,
		Country:         input.Country,
		University:      input.University,
		Year:            year,
		TestimonialText: input.TestimonialText,
		VideoURL:        input.VideoURL,
		Tags:            input.Tags,
		IsApproved:      false,
	}

	if file != nil && len(file.Data) > 0 {
		stored, err := s.uploader.UploadBytes(ctx, uploadFolder, uuid.NewString(), file.Data)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrUpload, err)
		}
		t.VideoFile = stored.PublicID
		t.VideoFileURL = stored.URL
	}

	created, err := s.repo.Create(t)
	if err != nil {
		return 0, err
	}

	s.publishEvent(EventSubmitted, created.ID)
	return created.ID, nil
}

// GetPage returns one page of the approved public listing plus the facet
// values computed over the whole approved set. Pages below 1 are clamped.
func (s *testimonialService) GetPage(filter domain.TestimonialFilter, page int) (*dto.TestimonialListResponse, error) {
	page = clampPage(page)

	items, total, err := s.repo.ListApproved(filter, PublicPageSize, (page-1)*PublicPageSize)
	if err != nil {
		return nil, err
	}

	facets, err := s.repo.Facets()
	if err != nil {
		return nil, err
	}

	resp := buildListResponse(items, page, PublicPageSize, total)
	resp.Facets = facets
	return resp, nil
}

func (s *testimonialService) ListAllForModeration(page int) (*dto.TestimonialListResponse, error) {
	page = clampPage(page)

	items, total, err := s.repo.ListAll(ModerationPageSize, (page-1)*ModerationPageSize)
	if err != nil {
		return nil, err
	}
	return buildListResponse(items, page, ModerationPageSize, total), nil
}

// Approve flips a pending testimonial to approved. Approving an approved
// record is a no-op success; a missing id reports domain.ErrNotFound.
// Authorization is the caller's responsibility (admin middleware).
func (s *testimonialService) Approve(id uint) error {
	found, err := s.repo.SetApproved(id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}

	s.publishEvent(EventApproved, id)
	return nil
}

// Delete removes the record and releases any stored upload. The release is
// best-effort: a failure is logged and the row is deleted regardless.
func (s *testimonialService) Delete(ctx context.Context, id uint) error {
	t, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}

	if t.VideoFile != "" {
		if err := s.uploader.Destroy(ctx, t.VideoFile); err != nil {
			log.Printf("release upload %s for testimonial %d failed: %v", t.VideoFile, id, err)
		}
	}

	found, err := s.repo.DeleteByID(id)
	if err != nil {
		return err
	}
	if !found {
		// deleted by a concurrent moderator between the read and the delete
		return domain.ErrNotFound
	}

	s.publishEvent(EventDeleted, id)
	return nil
}

func (s *testimonialService) StatsOverview() (*dto.DashboardResponse, error) {
	total, approved, pending, err := s.repo.StatusCounts()
	if err != nil {
		return nil, err
	}

	countries, err := s.repo.CountByCountry()
	if err != nil {
		return nil, err
	}

	years, err := s.repo.CountByYear()
	if err != nil {
		return nil, err
	}

	times, err := s.repo.ApprovedCreationTimes()
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		TotalTestimonials:    total,
		ApprovedTestimonials: approved,
		PendingTestimonials:  pending,
		Countries:            countries,
		Years:                years,
		Monthly:              groupByMonth(times),
	}, nil
}

func (s *testimonialService) publishEvent(event string, id uint) {
	if s.producer == nil {
		return
	}
	payload, err := json.Marshal(dto.TestimonialEvent{
		Event:      event,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("marshal %s event error: %v", event, err)
		return
	}
	if err := s.producer.PublishMessage([]byte(event), payload); err != nil {
		log.Printf("publish %s event error: %v", event, err)
	}
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func buildListResponse(items []domain.Testimonial, page, pageSize int, total int64) *dto.TestimonialListResponse {
	out := make([]dto.TestimonialResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTestimonialResponse(t))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &dto.TestimonialListResponse{
		Items:      out,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}

func toTestimonialResponse(t domain.Testimonial) dto.TestimonialResponse {
	return dto.TestimonialResponse{
		ID:              t.ID,
		StudentName:     t.StudentName,
		Country:         t.Country,
		University:      t.University,
		Year:            t.Year,
		TestimonialText: t.TestimonialText,
		Tags:            utils.SplitTags(t.Tags),
		Video:           utils.ParseVideoLink(t.VideoURL), // video_url wins over video_file for display
		VideoFileURL:    t.VideoFileURL,
		IsApproved:      t.IsApproved,
		CreatedAt:       t.CreatedAt,
	}
}

func groupByMonth(times []time.Time) []dto.MonthCount {
	counts := map[string]int64{}
	var order []string
	for _, ts := range times {
		month := ts.Format("2006-01")
		if _, seen := counts[month]; !seen {
			order = append(order, month)
		}
		counts[month]++
	}

	out := make([]dto.MonthCount, 0, len(order))
	for _, month := range order {
		out = append(out, dto.MonthCount{Month: month, Count: counts[month]})
	}
	return out
}
