package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AccountRequest struct {
	AccountName   string           `json:"account_name"`
	AccountNumber string           `json:"account_number"`
	Balance       *decimal.Decimal `json:"balance"`
}

type AccountResponse struct {
	ID            uint      `json:"id"`
	AccountName   string    `json:"account_name"`
	AccountNumber string    `json:"account_number"`
	Balance       Money     `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
