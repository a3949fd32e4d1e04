package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/portaleuropa/testimonial_service/internal/api/rest/middleware"
	"github.com/portaleuropa/testimonial_service/internal/helper"
	"github.com/portaleuropa/testimonial_service/internal/services"
)

type DashboardHandler struct {
	svc services.TestimonialService
}

func NewDashboardHandler(svc services.TestimonialService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) SetupRoutes(app *fiber.App, auth helper.Auth, users services.UserService) {
	app.Get("/api/admin/dashboard",
		middleware.AuthMiddleware(auth),
		middleware.AdminOnly(users),
		h.Overview,
	)
}

func (h *DashboardHandler) Overview(ctx *fiber.Ctx) error {
	stats, err := h.svc.StatsOverview()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "could not load statistics",
		})
	}
	return ctx.JSON(stats)
}
