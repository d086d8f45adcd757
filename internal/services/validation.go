package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/helper"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// money columns are decimal(12,2)
const (
	moneyMaxDigits = 12
	moneyScale     = 2
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(what string) error {
	return fmt.Errorf("%w: %s", domain.ErrNotFound, what)
}

// translateRepoError turns storage errors into the domain taxonomy.
func translateRepoError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	if helper.IsDuplicateKey(err) {
		return validationError("%s already exists", what)
	}
	return err
}

func validateMoney(field string, v *decimal.Decimal) error {
	if v == nil {
		return validationError("%s is required", field)
	}
	if !v.Equal(v.Round(moneyScale)) {
		return validationError("%s must have at most %d decimal places", field, moneyScale)
	}
	limit := decimal.New(1, moneyMaxDigits-moneyScale)
	if v.Abs().GreaterThanOrEqual(limit) {
		return validationError("%s must have at most %d digits", field, moneyMaxDigits)
	}
	return nil
}

func validateText(field, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", validationError("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return "", validationError("%s must be at most %d characters", field, max)
	}
	return value, nil
}

func validateEmail(email string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", nil
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("email is not valid")
	}
	return email, nil
}
