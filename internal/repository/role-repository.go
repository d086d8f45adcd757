package repository

import (
	"github.com/SundayYogurt/investment_service/internal/domain"
	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByCode(code string) (*domain.Role, error)
	FindByCodes(codes []string) ([]domain.Role, error)
	List() ([]domain.Role, error)
	EnsureRole(code, name string) error
}

type roleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByCode(code string) (*domain.Role, error) {
	var role domain.Role
	if err := r.db.Where("code = ?", code).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepository) FindByCodes(codes []string) ([]domain.Role, error) {
	var roles []domain.Role
	if len(codes) == 0 {
		return roles, nil
	}
	if err := r.db.Where("code IN ?", codes).Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepository) List() ([]domain.Role, error) {
	var roles []domain.Role
	if err := r.db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// EnsureRole inserts the role unless a row with the same code exists.
func (r *roleRepository) EnsureRole(code, name string) error {
	role := domain.Role{Code: code, Name: name}
	return r.db.Where(domain.Role{Code: code}).FirstOrCreate(&role).Error
}
