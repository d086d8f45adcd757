package dto

import "time"

// DateRange bounds are inclusive; a nil bound is open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type AdminAccountResponse struct {
	ID               uint   `json:"id"`
	AccountName      string `json:"account_name"`
	AccountNumber    string `json:"account_number"`
	Balance          Money  `json:"balance"`
	TransactionTotal Money  `json:"transaction_total"`
}

type AdminTransactionResponse struct {
	ID                uint      `json:"id"`
	InvestmentAccount uint      `json:"investment_account"`
	TransactionType   string    `json:"transaction_type"`
	Amount            Money     `json:"amount"`
	Timestamp         time.Time `json:"timestamp"`
}

type AdminUserTransactionsResponse struct {
	UserID       uint                       `json:"user_id"`
	TotalBalance Money                      `json:"total_balance"`
	Accounts     []AdminAccountResponse     `json:"accounts"`
	Transactions []AdminTransactionResponse `json:"transactions"`
}
