package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CapabilityHandler struct {
	svc     services.CapabilityService
	userSvc services.UserService
}

func NewCapabilityHandler(svc services.CapabilityService, userSvc services.UserService) *CapabilityHandler {
	return &CapabilityHandler{svc: svc, userSvc: userSvc}
}

func (h *CapabilityHandler) SetupRoutes(r fiber.Router) {
	adminOnly := middleware.AdminOnly(h.userSvc)

	caps := r.Group("/user-investment-accounts")
	caps.Get("/", h.List)
	caps.Post("/", adminOnly, h.Create)
	caps.Get("/:capID", h.Get)
	caps.Put("/:capID", adminOnly, h.Update)
	caps.Delete("/:capID", adminOnly, h.Delete)
}

func (h *CapabilityHandler) List(ctx *fiber.Ctx) error {
	isAdmin, err := middleware.IsAdmin(ctx, h.userSvc)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}

	caps, err := h.svc.List(middleware.CurrentUserID(ctx), isAdmin)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, caps)
}

func (h *CapabilityHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CapabilityCreateRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	c, err := h.svc.Create(middleware.CurrentUserID(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, c)
}

func (h *CapabilityHandler) Get(ctx *fiber.Ctx) error {
	capID, err := paramID(ctx, "capID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	isAdmin, err := middleware.IsAdmin(ctx, h.userSvc)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}

	c, err := h.svc.Get(middleware.CurrentUserID(ctx), isAdmin, capID)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, c)
}

func (h *CapabilityHandler) Update(ctx *fiber.Ctx) error {
	capID, err := paramID(ctx, "capID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	var requestBody dto.CapabilityFlags
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	c, err := h.svc.Update(middleware.CurrentUserID(ctx), capID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, c)
}

func (h *CapabilityHandler) Delete(ctx *fiber.Ctx) error {
	capID, err := paramID(ctx, "capID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	if err := h.svc.Delete(middleware.CurrentUserID(ctx), capID); err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}
