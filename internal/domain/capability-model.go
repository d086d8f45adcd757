package domain

import "time"

// Capability is the user <-> investment account join row. A missing row
// means no access at all.
type Capability struct {
	ID                  uint `gorm:"primaryKey" json:"id"`
	UserID              uint `gorm:"uniqueIndex:uidx_user_investment_accounts_pair;not null" json:"user_id"`
	InvestmentAccountID uint `gorm:"uniqueIndex:uidx_user_investment_accounts_pair;index;not null" json:"investment_account_id"`

	CanView   bool `gorm:"not null;default:false" json:"can_view"`
	CanCreate bool `gorm:"not null;default:false" json:"can_create"`
	CanUpdate bool `gorm:"not null;default:false" json:"can_update"`
	CanDelete bool `gorm:"not null;default:false" json:"can_delete"`

	User              User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	InvestmentAccount InvestmentAccount `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Capability) TableName() string {
	return "user_investment_accounts"
}

type Operation string

const (
	OperationView   Operation = "view"
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Column returns the capability flag column gating op.
func (op Operation) Column() (string, bool) {
	switch op {
	case OperationView:
		return "can_view", true
	case OperationCreate:
		return "can_create", true
	case OperationUpdate:
		return "can_update", true
	case OperationDelete:
		return "can_delete", true
	}
	return "", false
}
