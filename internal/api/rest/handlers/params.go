package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/gofiber/fiber/v2"
)

func paramID(ctx *fiber.Ctx, name string) (uint, error) {
	raw := ctx.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, raw)
	}
	return uint(id), nil
}

var queryTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// queryTime parses an optional timestamp query parameter. Values without a
// zone are read as UTC; a bare date means midnight.
func queryTime(ctx *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return nil, nil
	}

	candidates := []string{raw}
	// an unescaped "+" in the zone offset arrives as a space
	if strings.Contains(raw, " ") {
		candidates = append([]string{strings.ReplaceAll(raw, " ", "+")}, raw)
	}
	for _, c := range candidates {
		for _, layout := range queryTimeLayouts {
			if t, err := time.ParseInLocation(layout, c, time.UTC); err == nil {
				t = t.UTC()
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s must be an ISO 8601 date or datetime", domain.ErrValidation, name)
}
