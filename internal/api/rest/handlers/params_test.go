package handlers

import (
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runQueryTime calls queryTime inside a real request so the query string is
// decoded by fiber.
func runQueryTime(t *testing.T, rawQuery string) (*time.Time, error) {
	t.Helper()

	var (
		got *time.Time
		err error
	)
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got, err = queryTime(c, "start_date")
		return nil
	})
	_, testErr := app.Test(httptest.NewRequest("GET", "/?"+rawQuery, nil), -1)
	require.NoError(t, testErr)
	return got, err
}

func TestQueryTime(t *testing.T) {
	cases := map[string]time.Time{
		"start_date=2024-01-02":                                      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		"start_date=2024-01-02T03:04:05Z":                            time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"start_date=2024-01-02T03:04:05":                             time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"start_date=" + url.QueryEscape("2024-01-02T05:04:05+02:00"): time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"start_date=2024-01-02T05:04:05+02:00":                       time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	for q, want := range cases {
		t.Run(q, func(t *testing.T) {
			got, err := runQueryTime(t, q)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.True(t, got.Equal(want), got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestQueryTimeAbsentOrInvalid(t *testing.T) {
	got, err := runQueryTime(t, "")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = runQueryTime(t, "start_date=last-week")
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestParamID(t *testing.T) {
	app := fiber.New()
	app.Get("/:id", func(c *fiber.Ctx) error {
		id, err := paramID(c, "id")
		if err != nil {
			return c.SendStatus(fiber.StatusBadRequest)
		}
		if id != 42 {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	for path, want := range map[string]int{"/42": 200, "/0": 400, "/-1": 400, "/abc": 400} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, path)
	}
}
