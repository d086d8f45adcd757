package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentAccount struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AccountName   string          `gorm:"type:varchar(255);not null" json:"account_name"`
	AccountNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"account_number"`
	Balance       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"balance"` // stored as-is, never derived from transactions
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
