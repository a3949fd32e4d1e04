package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/pkg/utils"
)

type TestimonialRepository interface {
	Create(t *domain.Testimonial) (*domain.Testimonial, error)
	FindByID(id uint) (*domain.Testimonial, error)
	ListApproved(filter domain.TestimonialFilter, limit, offset int) ([]domain.Testimonial, int64, error)
	ListAll(limit, offset int) ([]domain.Testimonial, int64, error)
	SetApproved(id uint) (bool, error)
	DeleteByID(id uint) (bool, error)
	Facets() (*domain.TestimonialFacets, error)

	StatusCounts() (total, approved, pending int64, err error)
	CountByCountry() ([]domain.CountryCount, error)
	CountByYear() ([]domain.YearCount, error)
	ApprovedCreationTimes() ([]time.Time, error)
}

type testimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStorage, op, err)
}

func (r *testimonialRepository) Create(t *domain.Testimonial) (*domain.Testimonial, error) {
	if t == nil {
		return nil, errors.New("nil testimonial")
	}
	if err := r.db.Create(t).Error; err != nil {
		return nil, storageErr("create testimonial", err)
	}
	return t, nil
}

func (r *testimonialRepository) FindByID(id uint) (*domain.Testimonial, error) {
	t := &domain.Testimonial{}
	if err := r.db.First(t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("find testimonial", err)
	}
	return t, nil
}

// approvedScope applies the public-listing predicate: approved records only,
// narrowed by any provided filters (AND semantics). Tag filtering is an
// unanchored LIKE over the raw tag text.
func (r *testimonialRepository) approvedScope(filter domain.TestimonialFilter) *gorm.DB {
	q := r.db.Model(&domain.Testimonial{}).Where("is_approved = ?", true)
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if filter.Year != nil {
		q = q.Where("year = ?", *filter.Year)
	}
	if filter.Tag != "" {
		q = q.Where("tags LIKE ?", "%"+filter.Tag+"%")
	}
	return q
}

func (r *testimonialRepository) ListApproved(filter domain.TestimonialFilter, limit, offset int) ([]domain.Testimonial, int64, error) {
	var total int64
	if err := r.approvedScope(filter).Count(&total).Error; err != nil {
		return nil, 0, storageErr("count approved testimonials", err)
	}

	var items []domain.Testimonial
	err := r.approvedScope(filter).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, storageErr("list approved testimonials", err)
	}
	return items, total, nil
}

func (r *testimonialRepository) ListAll(limit, offset int) ([]domain.Testimonial, int64, error) {
	var total int64
	if err := r.db.Model(&domain.Testimonial{}).Count(&total).Error; err != nil {
		return nil, 0, storageErr("count testimonials", err)
	}

	var items []domain.Testimonial
	err := r.db.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, 0, storageErr("list testimonials", err)
	}
	return items, total, nil
}

// SetApproved flips the moderation flag. Approving an already-approved
// record still matches the row, so the operation stays idempotent; only a
// missing id reports false.
func (r *testimonialRepository) SetApproved(id uint) (bool, error) {
	res := r.db.Model(&domain.Testimonial{}).
		Where("id = ?", id).
		Update("is_approved", true)
	if res.Error != nil {
		return false, storageErr("approve testimonial", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *testimonialRepository) DeleteByID(id uint) (bool, error) {
	res := r.db.Delete(&domain.Testimonial{}, id)
	if res.Error != nil {
		return false, storageErr("delete testimonial", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Facets enumerates distinct filter values over the whole approved set, so
// a filtered listing still offers every other value to pivot to.
func (r *testimonialRepository) Facets() (*domain.TestimonialFacets, error) {
	var countries []string
	err := r.db.Model(&domain.Testimonial{}).
		Where("is_approved = ?", true).
		Distinct("country").
		Order("country ASC").
		Pluck("country", &countries).Error
	if err != nil {
		return nil, storageErr("list countries", err)
	}

	var years []int
	err = r.db.Model(&domain.Testimonial{}).
		Where("is_approved = ?", true).
		Distinct("year").
		Order("year DESC").
		Pluck("year", &years).Error
	if err != nil {
		return nil, storageErr("list years", err)
	}

	var rawTags []string
	err = r.db.Model(&domain.Testimonial{}).
		Where("is_approved = ? AND tags <> ''", true).
		Pluck("tags", &rawTags).Error
	if err != nil {
		return nil, storageErr("list tags", err)
	}

	return &domain.TestimonialFacets{
		Countries: countries,
		Years:     years,
		Tags:      utils.CollectTagFacet(rawTags),
	}, nil
}

func (r *testimonialRepository) StatusCounts() (total, approved, pending int64, err error) {
	if err = r.db.Model(&domain.Testimonial{}).Count(&total).Error; err != nil {
		return 0, 0, 0, storageErr("count testimonials", err)
	}
	if err = r.db.Model(&domain.Testimonial{}).Where("is_approved = ?", true).Count(&approved).Error; err != nil {
		return 0, 0, 0, storageErr("count approved testimonials", err)
	}
	return total, approved, total - approved, nil
}

func (r *testimonialRepository) CountByCountry() ([]domain.CountryCount, error) {
	var rows []domain.CountryCount
	err := r.db.Model(&domain.Testimonial{}).
		Select("country, COUNT(*) AS count").
		Where("is_approved = ?", true).
		Group("country").
		Order("count DESC, country ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("count by country", err)
	}
	return rows, nil
}

func (r *testimonialRepository) CountByYear() ([]domain.YearCount, error) {
	var rows []domain.YearCount
	err := r.db.Model(&domain.Testimonial{}).
		Select("year, COUNT(*) AS count").
		Where("is_approved = ?", true).
		Group("year").
		Order("year DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, storageErr("count by year", err)
	}
	return rows, nil
}

// ApprovedCreationTimes feeds the monthly submissions chart; grouping into
// YYYY-MM buckets happens in the service so the query stays portable across
// postgres and the sqlite test driver.
func (r *testimonialRepository) ApprovedCreationTimes() ([]time.Time, error) {
	var times []time.Time
	err := r.db.Model(&domain.Testimonial{}).
		Where("is_approved = ?", true).
		Order("created_at ASC").
		Pluck("created_at", &times).Error
	if err != nil {
		return nil, storageErr("list creation times", err)
	}
	return times, nil
}
