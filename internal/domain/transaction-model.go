package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
)

func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

type Transaction struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	InvestmentAccountID uint            `gorm:"not null;index" json:"investment_account"`
	TransactionType     TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Timestamp           time.Time       `gorm:"not null;index;autoCreateTime" json:"timestamp"`

	InvestmentAccount InvestmentAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
