package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	reportSvc services.ReportService
	auditSvc  services.AuditService
	userSvc   services.UserService
}

func NewAdminHandler(reportSvc services.ReportService, auditSvc services.AuditService, userSvc services.UserService) *AdminHandler {
	return &AdminHandler{reportSvc: reportSvc, auditSvc: auditSvc, userSvc: userSvc}
}

func (h *AdminHandler) SetupRoutes(r fiber.Router) {
	admin := r.Group("/admin", middleware.AdminOnly(h.userSvc))
	admin.Get("/user-transactions/:userID", h.UserTransactions)
	admin.Get("/audit-logs", h.AuditLogs)
}

// GET /admin/user-transactions/:userID?start_date=&end_date=
func (h *AdminHandler) UserTransactions(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	start, err := queryTime(ctx, "start_date")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	end, err := queryTime(ctx, "end_date")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}

	report, err := h.reportSvc.UserTransactions(userID, dto.DateRange{Start: start, End: end})
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, report)
}

func (h *AdminHandler) AuditLogs(ctx *fiber.Ctx) error {
	logs, err := h.auditSvc.List(ctx.QueryInt("limit"), ctx.QueryInt("offset"))
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, logs)
}
