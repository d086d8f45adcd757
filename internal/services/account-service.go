package services

import (
	"log"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/interfaces"
	"github.com/SundayYogurt/investment_service/internal/repository"
)

type AccountService interface {
	List(userID uint) ([]domain.InvestmentAccount, error)
	Create(actorID uint, input dto.AccountRequest) (*domain.InvestmentAccount, error)
	Get(userID, accountID uint) (*domain.InvestmentAccount, error)
	Update(userID, accountID uint, input dto.AccountRequest) (*domain.InvestmentAccount, error)
	Delete(userID, accountID uint) error
}

type accountService struct {
	repo     repository.AccountRepository
	perm     PermissionService
	producer interfaces.ProducerHandler
}

func NewAccountService(repo repository.AccountRepository, perm PermissionService, producer interfaces.ProducerHandler) AccountService {
	return &accountService{
		repo:     repo,
		perm:     perm,
		producer: producer,
	}
}

// List returns only the accounts the user holds can_view on.
func (s *accountService) List(userID uint) ([]domain.InvestmentAccount, error) {
	ids, err := s.perm.ViewableAccountIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByIDs(ids)
}

func (s *accountService) Create(actorID uint, input dto.AccountRequest) (*domain.InvestmentAccount, error) {
	account := &domain.InvestmentAccount{}
	if err := s.apply(account, input); err != nil {
		return nil, err
	}

	if err := s.repo.Create(account); err != nil {
		log.Printf("create investment account error: %v", err)
		return nil, translateRepoError(err, "investment account")
	}

	publishEvent(s.producer, "investment_account.created", EntityAccount, account.ID, actorID)
	return account, nil
}

func (s *accountService) Get(userID, accountID uint) (*domain.InvestmentAccount, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationView); err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(accountID)
	if err != nil {
		return nil, translateRepoError(err, "investment account")
	}
	return account, nil
}

func (s *accountService) Update(userID, accountID uint, input dto.AccountRequest) (*domain.InvestmentAccount, error) {
	if err := s.perm.Require(userID, accountID, domain.OperationUpdate); err != nil {
		return nil, err
	}
	account, err := s.repo.FindByID(accountID)
	if err != nil {
		return nil, translateRepoError(err, "investment account")
	}

	if err := s.apply(account, input); err != nil {
		return nil, err
	}
	if err := s.repo.Save(account); err != nil {
		log.Printf("update investment account error: %v", err)
		return nil, translateRepoError(err, "investment account")
	}

	publishEvent(s.producer, "investment_account.updated", EntityAccount, account.ID, userID)
	return account, nil
}

func (s *accountService) Delete(userID, accountID uint) error {
	if err := s.perm.Require(userID, accountID, domain.OperationDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(accountID); err != nil {
		return translateRepoError(err, "investment account")
	}

	publishEvent(s.producer, "investment_account.deleted", EntityAccount, accountID, userID)
	return nil
}

// apply validates input and copies it onto account. The account number must
// stay unique, so a clash with another account is a validation error.
func (s *accountService) apply(account *domain.InvestmentAccount, input dto.AccountRequest) error {
	name, err := validateText("account_name", input.AccountName, 255)
	if err != nil {
		return err
	}
	number, err := validateText("account_number", input.AccountNumber, 20)
	if err != nil {
		return err
	}
	if err := validateMoney("balance", input.Balance); err != nil {
		return err
	}

	if existing, err := s.repo.FindByNumber(number); err == nil && existing.ID != account.ID {
		return validationError("investment account with account_number %s already exists", number)
	}

	account.AccountName = name
	account.AccountNumber = number
	account.Balance = input.Balance.Round(moneyScale)
	return nil
}
