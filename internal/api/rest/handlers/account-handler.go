package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	svc     services.AccountService
	userSvc services.UserService
}

func NewAccountHandler(svc services.AccountService, userSvc services.UserService) *AccountHandler {
	return &AccountHandler{svc: svc, userSvc: userSvc}
}

func (h *AccountHandler) SetupRoutes(r fiber.Router) {
	accounts := r.Group("/investment-accounts")
	accounts.Get("/", h.List)
	accounts.Post("/", middleware.AdminOnly(h.userSvc), h.Create)
	accounts.Get("/:accountID", h.Get)
	accounts.Put("/:accountID", h.Update)
	accounts.Delete("/:accountID", h.Delete)
}

func (h *AccountHandler) List(ctx *fiber.Ctx) error {
	accounts, err := h.svc.List(middleware.CurrentUserID(ctx))
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *AccountHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.AccountRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	account, err := h.svc.Create(middleware.CurrentUserID(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, toAccountResponse(account))
}

func (h *AccountHandler) Get(ctx *fiber.Ctx) error {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	account, err := h.svc.Get(middleware.CurrentUserID(ctx), accountID)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) Update(ctx *fiber.Ctx) error {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	var requestBody dto.AccountRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	account, err := h.svc.Update(middleware.CurrentUserID(ctx), accountID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toAccountResponse(account))
}

func (h *AccountHandler) Delete(ctx *fiber.Ctx) error {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	if err := h.svc.Delete(middleware.CurrentUserID(ctx), accountID); err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func toAccountResponse(a *domain.InvestmentAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:            a.ID,
		AccountName:   a.AccountName,
		AccountNumber: a.AccountNumber,
		Balance:       dto.NewMoney(a.Balance),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
