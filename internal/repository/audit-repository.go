package repository

import (
	"github.com/SundayYogurt/investment_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(entry *domain.AuditLog) error
	List(limit, offset int) ([]domain.AuditLog, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (a auditRepository) Create(entry *domain.AuditLog) error {
	return a.db.Create(entry).Error
}

func (a auditRepository) List(limit, offset int) ([]domain.AuditLog, error) {
	logs := []domain.AuditLog{}
	err := a.db.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
