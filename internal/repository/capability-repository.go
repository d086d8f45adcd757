package repository

import (
	"errors"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"gorm.io/gorm"
)

type CapabilityRepository interface {
	Create(c *domain.Capability) error
	FindByID(id uint) (*domain.Capability, error)
	FindByPair(userID, accountID uint) (*domain.Capability, error)
	List() ([]domain.Capability, error)
	ListByUserID(userID uint) ([]domain.Capability, error)
	UpdateFlags(c *domain.Capability) error
	Delete(id uint) error

	HasFlag(userID, accountID uint, column string) (bool, error)
	AccountIDsWithFlag(userID uint, column string) ([]uint, error)
}

type capabilityRepository struct {
	db *gorm.DB
}

func NewCapabilityRepository(db *gorm.DB) CapabilityRepository {
	return &capabilityRepository{db: db}
}

// flag columns accepted by HasFlag / AccountIDsWithFlag
var flagColumns = map[string]bool{
	"can_view":   true,
	"can_create": true,
	"can_update": true,
	"can_delete": true,
}

func (r *capabilityRepository) Create(c *domain.Capability) error {
	return r.db.Omit("User", "InvestmentAccount").Create(c).Error
}

func (r *capabilityRepository) FindByID(id uint) (*domain.Capability, error) {
	var c domain.Capability
	if err := r.db.Preload("User").Preload("InvestmentAccount").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *capabilityRepository) FindByPair(userID, accountID uint) (*domain.Capability, error) {
	var c domain.Capability
	err := r.db.
		Where("user_id = ? AND investment_account_id = ?", userID, accountID).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *capabilityRepository) List() ([]domain.Capability, error) {
	caps := []domain.Capability{}
	if err := r.db.Preload("User").Preload("InvestmentAccount").Order("id ASC").Find(&caps).Error; err != nil {
		return nil, err
	}
	return caps, nil
}

func (r *capabilityRepository) ListByUserID(userID uint) ([]domain.Capability, error) {
	caps := []domain.Capability{}
	err := r.db.Preload("User").Preload("InvestmentAccount").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&caps).Error
	if err != nil {
		return nil, err
	}
	return caps, nil
}

func (r *capabilityRepository) UpdateFlags(c *domain.Capability) error {
	return r.db.Model(c).
		Select("can_view", "can_create", "can_update", "can_delete", "updated_at").
		Updates(map[string]any{
			"can_view":   c.CanView,
			"can_create": c.CanCreate,
			"can_update": c.CanUpdate,
			"can_delete": c.CanDelete,
		}).Error
}

func (r *capabilityRepository) Delete(id uint) error {
	res := r.db.Delete(&domain.Capability{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasFlag is the filtered existence query behind every permission check.
func (r *capabilityRepository) HasFlag(userID, accountID uint, column string) (bool, error) {
	if !flagColumns[column] {
		return false, errors.New("unknown capability column")
	}
	var count int64
	err := r.db.
		Model(&domain.Capability{}).
		Where("user_id = ? AND investment_account_id = ?", userID, accountID).
		Where(column+" = ?", true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *capabilityRepository) AccountIDsWithFlag(userID uint, column string) ([]uint, error) {
	if !flagColumns[column] {
		return nil, errors.New("unknown capability column")
	}
	ids := []uint{}
	err := r.db.
		Model(&domain.Capability{}).
		Where("user_id = ?", userID).
		Where(column+" = ?", true).
		Order("investment_account_id ASC").
		Pluck("investment_account_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
