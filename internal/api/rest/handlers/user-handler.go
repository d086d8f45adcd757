package handlers

import (
	"github.com/SundayYogurt/investment_service/internal/api/rest/middleware"
	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper/utils"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) SetupRoutes(r fiber.Router) {
	adminOnly := middleware.AdminOnly(h.svc)

	users := r.Group("/users")
	users.Get("/", h.List)
	users.Post("/", adminOnly, h.Create)
	users.Get("/:userID", h.Get)
	users.Delete("/:userID", adminOnly, h.Delete)

	// Role management
	users.Put("/:userID/roles", adminOnly, h.SetRoles)
}

func (h *UserHandler) List(ctx *fiber.Ctx) error {
	users, err := h.svc.ListUsers()
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, out)
}

func (h *UserHandler) Create(ctx *fiber.Ctx) error {
	var requestBody dto.CreateUserRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	user, err := h.svc.CreateUser(middleware.CurrentUserID(ctx), requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, toUserResponse(user))
}

func (h *UserHandler) Get(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	user, err := h.svc.GetUser(userID)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, toUserResponse(user))
}

func (h *UserHandler) Delete(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	if err := h.svc.DeleteUser(middleware.CurrentUserID(ctx), userID); err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) SetRoles(ctx *fiber.Ctx) error {
	userID, err := paramID(ctx, "userID")
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	var requestBody dto.SetRolesRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "roles are required")
	}

	roles, err := h.svc.SetRoles(middleware.CurrentUserID(ctx), userID, requestBody)
	if err != nil {
		return utils.ResponseServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, roles)
}

func toUserResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Username: u.Username, Email: u.Email}
}
