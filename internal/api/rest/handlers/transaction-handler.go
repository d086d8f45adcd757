package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	svc services.TransactionService
}

func NewTransactionHandler(svc services.TransactionService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

func (h *TransactionHandler) SetupRoutes(r fiber.Router) {
	txs := r.Group("/investment-accounts/:accountID/transactions")
	txs.Get("/", h.List)
	txs.Post("/", h.Create)
	txs.Get("/:txID", h.Get)
	txs.Put("/:txID", h.Update)
	txs.Delete("/:txID", h.Delete)
}

func (h *TransactionHandler) List(ctx *fiber.Ctx) error {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	txs, err := h.svc.List(middleware.CurrentUserID(ctx), accountID)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, toTransactionResponse(&txs[i]))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

// Create takes the account from the path; an investment_account key in the
// body is ignored whatever its type.
func (h *TransactionHandler) Create(ctx *fiber.Ctx) error {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	var requestBody dto.TransactionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	tx, err := h.svc.Create(middleware.CurrentUserID(ctx), accountID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, toTransactionResponse(tx))
}

func (h *TransactionHandler) Get(ctx *fiber.Ctx) error {
	accountID, txID, err := txParams(ctx)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	tx, err := h.svc.Get(middleware.CurrentUserID(ctx), accountID, txID)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) Update(ctx *fiber.Ctx) error {
	accountID, txID, err := txParams(ctx)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	var requestBody dto.TransactionRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	tx, err := h.svc.Update(middleware.CurrentUserID(ctx), accountID, txID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toTransactionResponse(tx))
}

func (h *TransactionHandler) Delete(ctx *fiber.Ctx) error {
	accountID, txID, err := txParams(ctx)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	if err := h.svc.Delete(middleware.CurrentUserID(ctx), accountID, txID); err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func txParams(ctx *fiber.Ctx) (uint, uint, error) {
	accountID, err := paramID(ctx, "accountID")
	if err != nil {
		return 0, 0, err
	}
	txID, err := paramID(ctx, "txID")
	if err != nil {
		return 0, 0, err
	}
	return accountID, txID, nil
}

func toTransactionResponse(t *domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:                t.ID,
		InvestmentAccount: t.InvestmentAccountID,
		TransactionType:   string(t.TransactionType),
		Amount:            dto.NewMoney(t.Amount),
		Timestamp:         t.Timestamp,
	}
}
