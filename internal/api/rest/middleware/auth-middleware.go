package middleware

import (
	"errors"
	"strings"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/helper"
	"github.com/SundayYogurt/investment_service/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	LocalUserID  = "userID"
	LocalIsAdmin = "isAdmin"
)

// AuthMiddleware accepts a valid access token whose user still exists.
func AuthMiddleware(auth helper.Auth, userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenStr := strings.TrimSpace(ctx.Get(fiber.HeaderAuthorization))

		user, err := auth.VerifyToken(tokenStr)
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if _, err := userSvc.GetUser(user.UserID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "user no longer exists",
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		ctx.Locals(LocalUserID, user.UserID)
		return ctx.Next()
	}
}

func AdminOnly(userSvc services.UserService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if CurrentUserID(ctx) == 0 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		isAdmin, err := IsAdmin(ctx, userSvc)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if !isAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin only",
			})
		}
		return ctx.Next()
	}
}

// IsAdmin reports whether the caller holds the ADMIN role. The role lookup
// happens at most once per request; the answer is kept in Locals.
func IsAdmin(ctx *fiber.Ctx, userSvc services.UserService) (bool, error) {
	if isAdmin, ok := ctx.Locals(LocalIsAdmin).(bool); ok {
		return isAdmin, nil
	}

	isAdmin, err := userSvc.IsAdmin(CurrentUserID(ctx))
	if err != nil {
		return false, err
	}
	ctx.Locals(LocalIsAdmin, isAdmin)
	return isAdmin, nil
}

// CurrentUserID reads the id stored by AuthMiddleware.
func CurrentUserID(ctx *fiber.Ctx) uint {
	userID, _ := ctx.Locals(LocalUserID).(uint)
	return userID
}
