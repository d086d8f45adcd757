package repository

import (
	"time"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(t *domain.Transaction) error
	FindInAccount(accountID, id uint) (*domain.Transaction, error)
	ListByAccount(accountID uint) ([]domain.Transaction, error)
	ListByAccounts(accountIDs []uint, start, end *time.Time) ([]domain.Transaction, error)
	SumAmountsByAccount(accountIDs []uint) (map[uint]decimal.Decimal, error)
	Update(t *domain.Transaction) error
	Delete(accountID, id uint) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(t *domain.Transaction) error {
	return r.db.Omit("InvestmentAccount").Create(t).Error
}

func (r *transactionRepository) FindInAccount(accountID, id uint) (*domain.Transaction, error) {
	var t domain.Transaction
	err := r.db.
		Where("id = ? AND investment_account_id = ?", id, accountID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *transactionRepository) ListByAccount(accountID uint) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	err := r.db.
		Where("investment_account_id = ?", accountID).
		Order("timestamp ASC, id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, err
	}
	return txs, nil
}

// ListByAccounts filters on start <= timestamp <= end; nil bounds are open.
func (r *transactionRepository) ListByAccounts(accountIDs []uint, start, end *time.Time) ([]domain.Transaction, error) {
	txs := []domain.Transaction{}
	if len(accountIDs) == 0 {
		return txs, nil
	}

	q := r.db.Where("investment_account_id IN ?", accountIDs)
	if start != nil {
		q = q.Where("timestamp >= ?", start.UTC())
	}
	if end != nil {
		q = q.Where("timestamp <= ?", end.UTC())
	}
	if err := q.Order("timestamp ASC, id ASC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (r *transactionRepository) SumAmountsByAccount(accountIDs []uint) (map[uint]decimal.Decimal, error) {
	sums := make(map[uint]decimal.Decimal, len(accountIDs))
	if len(accountIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		InvestmentAccountID uint
		Amount              decimal.Decimal
	}
	err := r.db.
		Model(&domain.Transaction{}).
		Select("investment_account_id, amount").
		Where("investment_account_id IN ?", accountIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		sums[row.InvestmentAccountID] = sums[row.InvestmentAccountID].Add(row.Amount)
	}
	return sums, nil
}

// Update only ever touches type and amount; account and timestamp are fixed
// at creation.
func (r *transactionRepository) Update(t *domain.Transaction) error {
	return r.db.Model(t).
		Select("transaction_type", "amount").
		Updates(map[string]any{
			"transaction_type": t.TransactionType,
			"amount":           t.Amount,
		}).Error
}

func (r *transactionRepository) Delete(accountID, id uint) error {
	res := r.db.
		Where("investment_account_id = ?", accountID).
		Delete(&domain.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
