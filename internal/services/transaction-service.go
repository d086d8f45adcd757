package services

import (
	"log"
	"strings"
	"time"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
	"github.com/SundayYogurt/investment_service/internal/repository"
	"github.com/shopspring/decimal"
)

type TransactionService interface {
	List(userID, accountID uint) ([]domain.Transaction, error)
	Get(userID, accountID, txID uint) (*domain.Transaction, error)
	Create(userID, accountID uint, input dto.TransactionRequest) (*domain.Transaction, error)
	Update(userID, accountID, txID uint, input dto.TransactionRequest) (*domain.Transaction, error)
	Delete(userID, accountID, txID uint) error
}

type transactionService struct {
	repo     repository.TransactionRepository
	perm     PermissionService
	producer interfaces.ProducerHandler
	now      func() time.Time
}

func NewTransactionService(repo repository.TransactionRepository, perm PermissionService, producer interfaces.ProducerHandler) TransactionService {
	return &transactionService{
		repo:     repo,
		perm:     perm,
		producer: producer,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *transactionService) List(userID, accountID uint) ([]domain.Transaction, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationView); err != nil {
		return nil, err
	}
	return s.repo.ListByAccount(accountID)
}

func (s *transactionService) Get(userID, accountID, txID uint) (*domain.Transaction, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationView); err != nil {
		return nil, err
	}
	tx, err := s.repo.FindInAccount(accountID, txID)
	if err != nil {
		return nil, translateRepoError(err, "transaction")
	}
	return tx, nil
}

// Create always files the transaction under accountID from the URL; the
// investment_account field of the body is ignored.
func (s *transactionService) Create(userID, accountID uint, input dto.TransactionRequest) (*domain.Transaction, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationCreate); err != nil {
		return nil, err
	}

	txType, amount, err := validateTransaction(input)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		InvestmentAccountID: accountID,
		TransactionType:     txType,
		Amount:              amount,
		Timestamp:           s.now(),
	}
	if err := s.repo.Create(tx); err != nil {
		log.Printf("create transaction error: %v", err)
		return nil, translateRepoError(err, "transaction")
	}

	publishEvent(s.producer, "transaction.created", EntityTransaction, tx.ID, userID)
	return tx, nil
}

func (s *transactionService) Update(userID, accountID, txID uint, input dto.TransactionRequest) (*domain.Transaction, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationUpdate); err != nil {
		return nil, err
	}
	tx, err := s.repo.FindInAccount(accountID, txID)
	if err != nil {
		return nil, translateRepoError(err, "transaction")
	}

	txType, amount, err := validateTransaction(input)
	if err != nil {
		return nil, err
	}
	tx.TransactionType = txType
	tx.Amount = amount

	if err := s.repo.Update(tx); err != nil {
		log.Printf("update transaction error: %v", err)
		return nil, translateRepoError(err, "transaction")
	}

	publishEvent(s.producer, "transaction.updated", EntityTransaction, tx.ID, userID)
	return tx, nil
}

func (s *transactionService) Delete(userID, accountID, txID uint) error {
	if err := s.perm.Require(userID, accountID, domain.OperationDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(accountID, txID); err != nil {
		return translateRepoError(err, "transaction")
	}

	publishEvent(s.producer, "transaction.deleted", EntityTransaction, txID, userID)
	return nil
}

func validateTransaction(input dto.TransactionRequest) (domain.TransactionType, decimal.Decimal, error) {
	txType := domain.TransactionType(strings.ToLower(strings.TrimSpace(input.TransactionType)))
	if !txType.Valid() {
		return "", decimal.Zero, validationError("transaction_type must be one of deposit, withdrawal")
	}
	if err := validateMoney("amount", input.Amount); err != nil {
		return "", decimal.Zero, err
	}
	if !input.Amount.IsPositive() {
		return "", decimal.Zero, validationError("amount must be greater than zero")
	}
	return txType, input.Amount.Round(moneyScale), nil
}
