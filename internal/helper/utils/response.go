package utils

import (
	"errors"
	"log"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"error": msg,
	})
}

// create a generic response function for success
func ResponseSuccess(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{"data": data})
}

// ResponseServiceError maps the domain error taxonomy onto HTTP status codes.
func ResponseServiceError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return ResponseError(ctx, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		return ResponseError(ctx, fiber.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return ResponseError(ctx, fiber.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return ResponseError(ctx, fiber.StatusBadRequest, err.Error())
	}
	log.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
	return ResponseError(ctx, fiber.StatusInternalServerError, "internal server error")
}
