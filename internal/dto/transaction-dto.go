package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest has no account field: the account always comes from the
// URL, so an investment_account key in the body is never decoded.
type TransactionRequest struct {
	TransactionType string           `json:"transaction_type"`
	Amount          *decimal.Decimal `json:"amount"`
}

type TransactionResponse struct {
	ID                uint      `json:"id"`
	InvestmentAccount uint      `json:"investment_account"`
	TransactionType   string    `json:"transaction_type"`
	Amount            Money     `json:"amount"`
	Timestamp         time.Time `json:"timestamp"`
}
