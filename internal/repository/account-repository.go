package repository

import (
	"github.com/SundayYogurt/investment_service/internal/domain"
	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(account *domain.InvestmentAccount) error
	FindByID(id uint) (*domain.InvestmentAccount, error)
	FindByNumber(number string) (*domain.InvestmentAccount, error)
	ListByIDs(ids []uint) ([]domain.InvestmentAccount, error)
	ListReachableByUser(userID uint) ([]domain.InvestmentAccount, error)
	Save(account *domain.InvestmentAccount) error
	Delete(id uint) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *domain.InvestmentAccount) error {
	return r.db.Create(account).Error
}

func (r *accountRepository) FindByID(id uint) (*domain.InvestmentAccount, error) {
	var account domain.InvestmentAccount
	if err := r.db.First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByNumber(number string) (*domain.InvestmentAccount, error) {
	var account domain.InvestmentAccount
	if err := r.db.Where("account_number = ?", number).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListByIDs(ids []uint) ([]domain.InvestmentAccount, error) {
	accounts := []domain.InvestmentAccount{}
	if len(ids) == 0 {
		return accounts, nil
	}
	if err := r.db.Where("id IN ?", ids).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListReachableByUser returns every account the user holds a capability row
// for, whatever its flags.
func (r *accountRepository) ListReachableByUser(userID uint) ([]domain.InvestmentAccount, error) {
	accounts := []domain.InvestmentAccount{}
	err := r.db.
		Model(&domain.InvestmentAccount{}).
		Joins("JOIN user_investment_accounts ON user_investment_accounts.investment_account_id = investment_accounts.id").
		Where("user_investment_accounts.user_id = ?", userID).
		Order("investment_accounts.id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Save(account *domain.InvestmentAccount) error {
	return r.db.Model(account).
		Select("account_name", "account_number", "balance", "updated_at").
		Updates(account).Error
}

// Delete removes the account with its transactions and capability rows.
func (r *accountRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("investment_account_id = ?", id).Delete(&domain.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("investment_account_id = ?", id).Delete(&domain.Capability{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.InvestmentAccount{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
