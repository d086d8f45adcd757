package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Role struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // ADMIN | USER
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type UserRole struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex:uidx_user_roles_user_role;not null" json:"user_id"`
	RoleID uint `gorm:"uniqueIndex:uidx_user_roles_user_role;not null" json:"role_id"`

	User User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Role Role `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
