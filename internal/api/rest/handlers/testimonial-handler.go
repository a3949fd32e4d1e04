package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/portaleuropa/testimonial_service/internal/api/rest/middleware"
	"github.com/portaleuropa/testimonial_service/internal/domain"
	"github.com/portaleuropa/testimonial_service/internal/dto"
	"github.com/portaleuropa/testimonial_service/internal/helper"
	"github.com/portaleuropa/testimonial_service/internal/services"
	pkgutils "github.com/portaleuropa/testimonial_service/pkg/utils"
)

// matches the portal's historic 100MB upload cap
const maxVideoUploadBytes = 100 * 1024 * 1024

var allowedVideoExt = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".webm": true,
	".mkv":  true,
	".avi":  true,
}

type TestimonialHandler struct {
	svc services.TestimonialService
}

func NewTestimonialHandler(svc services.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{svc: svc}
}

func (h *TestimonialHandler) SetupRoutes(app *fiber.App, auth helper.Auth, users services.UserService) {
	api := app.Group("/api")

	// public
	api.Get("/testimonials", h.List)
	api.Post("/testimonial/add", h.Submit)

	// moderation, admin only
	moderation := api.Group("", middleware.AuthMiddleware(auth), middleware.AdminOnly(users))
	moderation.Get("/admin/testimonials", h.ListForModeration)
	moderation.Post("/testimonial/approve/:id", h.Approve)
	moderation.Post("/testimonial/delete/:id", h.Delete)
}

// GET /api/testimonials?country=&year=&tag=&page=
func (h *TestimonialHandler) List(ctx *fiber.Ctx) error {
	filter := domain.TestimonialFilter{
		Country: ctx.Query("country"),
		Tag:     ctx.Query("tag"),
	}

	if y := strings.TrimSpace(ctx.Query("year")); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":  "year filter must be a whole number",
				"fields": fiber.Map{"year": "must be a whole number"},
			})
		}
		filter.Year = &n
	}

	resp, err := h.svc.GetPage(filter, ctx.QueryInt("page", 1))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load testimonials",
		})
	}
	return ctx.JSON(resp)
}

// POST /api/testimonial/add
// multipart form: student_name, country, university, year, testimonial_text,
// optional video_url, tags, video_file
func (h *TestimonialHandler) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitTestimonialRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Please provide valid inputs",
		})
	}

	var file *dto.UploadInput
	if fh, err := ctx.FormFile("video_file"); err == nil && fh != nil && fh.Filename != "" {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedVideoExt[ext] {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Please fix the highlighted fields",
				"fields":  fiber.Map{"video_file": "only mp4/mov/webm/mkv/avi allowed"},
			})
		}

		f, err := fh.Open()
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong, please try again",
			})
		}
		data, err := pkgutils.ReadAllLimit(f, maxVideoUploadBytes)
		f.Close()
		if err != nil {
			if errors.Is(err, pkgutils.ErrTooLarge) {
				return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"message": "Please fix the highlighted fields",
					"fields":  fiber.Map{"video_file": "file too large (max 100MB)"},
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"message": "Something went wrong, please try again",
			})
		}
		file = &dto.UploadInput{Filename: fh.Filename, Data: data}
	}

	id, err := h.svc.Submit(ctx.UserContext(), req, file)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Please fix the highlighted fields",
				"fields":  verr.Fields,
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Something went wrong, please try again",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      id,
		"message": "Testimonial submitted, awaiting approval",
	})
}

// GET /api/admin/testimonials?page=
func (h *TestimonialHandler) ListForModeration(ctx *fiber.Ctx) error {
	resp, err := h.svc.ListAllForModeration(ctx.QueryInt("page", 1))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load testimonials",
		})
	}
	return ctx.JSON(resp)
}

// POST /api/testimonial/approve/:id
func (h *TestimonialHandler) Approve(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	if err := h.svc.Approve(uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
	}
	return ctx.JSON(fiber.Map{"success": true})
}

// POST /api/testimonial/delete/:id
func (h *TestimonialHandler) Delete(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false})
	}

	if err := h.svc.Delete(ctx.UserContext(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false})
	}
	return ctx.JSON(fiber.Map{"success": true})
}
