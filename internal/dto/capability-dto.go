package dto

import "time"

type CapabilityFlags struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

type CapabilityCreateRequest struct {
	User              uint `json:"user"`
	InvestmentAccount uint `json:"investment_account"`
	CapabilityFlags
}

type CapabilityResponse struct {
	ID                  uint   `json:"id"`
	UserID              uint   `json:"user_id"`
	User                string `json:"user"` // username
	InvestmentAccountID uint   `json:"investment_account_id"`
	InvestmentAccount   string `json:"investment_account"` // account name
	CapabilityFlags
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
