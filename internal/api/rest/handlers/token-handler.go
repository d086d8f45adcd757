package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TokenHandler struct {
	svc services.UserService
}

func NewTokenHandler(svc services.UserService) *TokenHandler {
	return &TokenHandler{svc: svc}
}

func (h *TokenHandler) SetupRoutes(r fiber.Router) {
	token := r.Group("/api/token")
	token.Post("/", h.Obtain)
	token.Post("/refresh", h.Refresh)
}

// Obtain exchanges username/password for an access + refresh pair.
func (h *TokenHandler) Obtain(ctx *fiber.Ctx) error {
	var requestBody dto.TokenObtainRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}
	if requestBody.Username == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "username and password are required")
	}

	pair, err := h.svc.IssueTokens(requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, pair)
}

func (h *TokenHandler) Refresh(ctx *fiber.Ctx) error {
	var requestBody dto.TokenRefreshRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Refresh == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "refresh is required")
	}

	access, err := h.svc.RefreshAccessToken(requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, access)
}
