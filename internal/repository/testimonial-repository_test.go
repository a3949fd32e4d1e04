package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/portaleuropa/testimonial_service/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a pooled second connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Testimonial{}))
	return db
}

func intPtr(n int) *int { return &n }

func seedTestimonial(t *testing.T, repo TestimonialRepository, country string, year int, tags string, approved bool, createdAt time.Time) uint {
	t.Helper()

	created, err := repo.Create(&domain.Testimonial{
		StudentName:     "Student " + country,
		Country:         country,
		University:      "Universidade de " + country,
		Year:            year,
		TestimonialText: "uma experiencia incrivel",
		Tags:            tags,
		IsApproved:      approved,
		CreatedAt:       createdAt,
	})
	require.NoError(t, err)
	return created.ID
}

func TestCreateStartsPending(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))

	created, err := repo.Create(&domain.Testimonial{
		StudentName:     "Maria",
		Country:         "Portugal",
		University:      "Universidade do Porto",
		Year:            2023,
		TestimonialText: "adorei",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	items, total, err := repo.ListAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsApproved)
	assert.Equal(t, domain.ModerationPending, items[0].State())
}

func TestSetApprovedIdempotent(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	id := seedTestimonial(t, repo, "Portugal", 2023, "", false, time.Now())

	found, err := repo.SetApproved(id)
	require.NoError(t, err)
	assert.True(t, found)

	// second approval is a no-op success
	found, err = repo.SetApproved(id)
	require.NoError(t, err)
	assert.True(t, found)

	got, err := repo.FindByID(id)
	require.NoError(t, err)
	assert.True(t, got.IsApproved)
}

func TestSetApprovedMissing(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))

	found, err := repo.SetApproved(9999)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeleteByIDTwice(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	id := seedTestimonial(t, repo, "Portugal", 2023, "", true, time.Now())

	found, err := repo.DeleteByID(id)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.DeleteByID(id)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = repo.FindByID(id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListApprovedFilters(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	now := time.Now()

	seedTestimonial(t, repo, "Portugal", 2023, "cultura, amizades", true, now)
	seedTestimonial(t, repo, "Spain", 2022, "gastronomia", true, now.Add(time.Minute))
	seedTestimonial(t, repo, "Portugal", 2021, "cultura", false, now.Add(2*time.Minute)) // pending, must stay hidden

	items, total, err := repo.ListApproved(domain.TestimonialFilter{Country: "Portugal"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, 2023, items[0].Year)

	items, total, err = repo.ListApproved(domain.TestimonialFilter{Country: "Spain"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Spain", items[0].Country)

	// filters compose with AND
	_, total, err = repo.ListApproved(domain.TestimonialFilter{Country: "Portugal", Year: intPtr(2022)}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)

	items, total, err = repo.ListApproved(domain.TestimonialFilter{Tag: "cultura"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Portugal", items[0].Country)

	// substring policy: a tag fragment still matches
	_, total, err = repo.ListApproved(domain.TestimonialFilter{Tag: "cult"}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	_, total, err = repo.ListApproved(domain.TestimonialFilter{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestListApprovedPagination(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	seedTestimonial(t, repo, "Portugal", 2021, "", true, base)
	seedTestimonial(t, repo, "Spain", 2022, "", true, base.Add(time.Hour))
	seedTestimonial(t, repo, "France", 2023, "", true, base.Add(2*time.Hour))

	page1, total, err := repo.ListApproved(domain.TestimonialFilter{}, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page1, 2)
	assert.Equal(t, 2023, page1[0].Year)
	assert.Equal(t, 2022, page1[1].Year)

	page2, total, err := repo.ListApproved(domain.TestimonialFilter{}, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page2, 1)
	assert.Equal(t, 2021, page2[0].Year)

	// beyond the last page: empty items, same total
	page3, total, err := repo.ListApproved(domain.TestimonialFilter{}, 2, 4)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Empty(t, page3)

	// total equals the concatenation of all pages
	assert.EqualValues(t, int(total), len(page1)+len(page2)+len(page3))
}

func TestListAllIncludesPendingAndBreaksTiesByID(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	ts := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	first := seedTestimonial(t, repo, "Portugal", 2023, "", false, ts)
	second := seedTestimonial(t, repo, "Spain", 2022, "", true, ts)

	items, total, err := repo.ListAll(10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	// same created_at: newest insertion first
	assert.Equal(t, second, items[0].ID)
	assert.Equal(t, first, items[1].ID)
}

func TestFacets(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	now := time.Now()

	seedTestimonial(t, repo, "Spain", 2022, "a, b, a", true, now)
	seedTestimonial(t, repo, "Portugal", 2023, "cultura", true, now)
	seedTestimonial(t, repo, "Portugal", 2021, "", true, now)
	seedTestimonial(t, repo, "Italy", 2020, "escondido", false, now) // pending, excluded

	facets, err := repo.Facets()
	require.NoError(t, err)

	assert.Equal(t, []string{"Portugal", "Spain"}, facets.Countries)
	assert.Equal(t, []int{2023, 2022, 2021}, facets.Years)
	assert.Equal(t, []string{"a", "b", "cultura"}, facets.Tags)
}

func TestStatusCounts(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	now := time.Now()

	seedTestimonial(t, repo, "Portugal", 2023, "", true, now)
	seedTestimonial(t, repo, "Spain", 2022, "", true, now)
	seedTestimonial(t, repo, "France", 2021, "", false, now)

	total, approved, pending, err := repo.StatusCounts()
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 2, approved)
	assert.EqualValues(t, 1, pending)
}

func TestCountByCountryAndYear(t *testing.T) {
	repo := NewTestimonialRepository(newTestDB(t))
	now := time.Now()

	seedTestimonial(t, repo, "Portugal", 2023, "", true, now)
	seedTestimonial(t, repo, "Portugal", 2022, "", true, now)
	seedTestimonial(t, repo, "Spain", 2023, "", true, now)
	seedTestimonial(t, repo, "Spain", 2020, "", false, now) // pending, excluded

	byCountry, err := repo.CountByCountry()
	require.NoError(t, err)
	require.Len(t, byCountry, 2)
	assert.Equal(t, domain.CountryCount{Country: "Portugal", Count: 2}, byCountry[0])
	assert.Equal(t, domain.CountryCount{Country: "Spain", Count: 1}, byCountry[1])

	byYear, err := repo.CountByYear()
	require.NoError(t, err)
	require.Len(t, byYear, 2)
	assert.Equal(t, domain.YearCount{Year: 2023, Count: 2}, byYear[0])
	assert.Equal(t, domain.YearCount{Year: 2022, Count: 1}, byYear[1])
}
