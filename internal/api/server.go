package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/portaleuropa/testimonial_service/config"
	"github.com/portaleuropa/testimonial_service/infra/queue"
	"github.com/portaleuropa/testimonial_service/internal/api/rest/handlers"
	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/internal/helper"
	"github.com/portaleuropa/testimonial_service/internal/repository"
	"github.com/portaleuropa/testimonial_service/internal/services"
	"github.com/portaleuropa/testimonial_service/pkg/cloudinary"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // testimonial videos up to 100MB
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.BaseURL,
		AllowHeaders:     "Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	const migrateLockID int64 = 20240915

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Testimonial{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}
	log.Println("migration successful")

	authHelper := helper.SetupAuth(cfg.AccessSecret)
	seedAdmin(db, authHelper, cfg.AdminUsername, cfg.AdminPassword)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New(cfg.CloudinaryUrl)
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	// ---------- Repositories ----------
	testimonialRepo := repository.NewTestimonialRepository(db)
	userRepo := repository.NewUserRepository(db)

	// ---------- Services ----------
	testimonialSvc := services.NewTestimonialService(testimonialRepo, up, kafkaProducer)
	userSvc := services.NewUserService(userRepo, authHelper)

	// ---------- Handlers ----------
	handlers.NewAuthHandler(userSvc).SetupRoutes(app)
	handlers.NewTestimonialHandler(testimonialSvc).SetupRoutes(app, authHelper, userSvc)
	handlers.NewDashboardHandler(testimonialSvc).SetupRoutes(app, authHelper, userSvc)

	// ---------- Health ----------
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

// seedAdmin guarantees the moderation account exists on first boot.
func seedAdmin(db *gorm.DB, auth helper.Auth, username, password string) {
	if username == "" || password == "" {
		log.Println("admin seed skipped: no credentials configured")
		return
	}

	var existing domain.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("admin seed lookup error: %v", err)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("admin seed hash error: %v", err)
		return
	}

	if err := db.Create(&domain.User{
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      true,
	}).Error; err != nil {
		log.Printf("admin seed create error: %v", err)
		return
	}
	log.Printf("seeded admin account %q", username)
}
