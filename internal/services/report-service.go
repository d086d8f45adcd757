package services

import (
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/repository"
	"github.com/shopspring/decimal"
)

// ReportService builds the admin view of everything a user can reach.
type ReportService interface {
	UserTransactions(userID uint, rng dto.DateRange) (*dto.AdminUserTransactionsResponse, error)
}

type reportService struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	txRepo      repository.TransactionRepository
}

func NewReportService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	txRepo repository.TransactionRepository,
) ReportService {
	return &reportService{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		txRepo:      txRepo,
	}
}

// UserTransactions sums the stored balances of the accounts reachable through
// any capability row of userID and lists their transactions inside rng.
// total_balance never looks at transactions.
func (s *reportService) UserTransactions(userID uint, rng dto.DateRange) (*dto.AdminUserTransactionsResponse, error) {
	if rng.Start != nil && rng.End != nil && rng.Start.After(*rng.End) {
		return nil, validationError("start_date must not be after end_date")
	}
	if _, err := s.userRepo.FindUserById(userID); err != nil {
		return nil, translateRepoError(err, "user")
	}

	accounts, err := s.accountRepo.ListReachableByUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	sums, err := s.txRepo.SumAmountsByAccount(ids)
	if err != nil {
		return nil, err
	}
	txs, err := s.txRepo.ListByAccounts(ids, rng.Start, rng.End)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	resp := &dto.AdminUserTransactionsResponse{
		UserID:       userID,
		Accounts:     make([]dto.AdminAccountResponse, 0, len(accounts)),
		Transactions: make([]dto.AdminTransactionResponse, 0, len(txs)),
	}
	for _, a := range accounts {
		total = total.Add(a.Balance)
		resp.Accounts = append(resp.Accounts, dto.AdminAccountResponse{
			ID:               a.ID,
			AccountName:      a.AccountName,
			AccountNumber:    a.AccountNumber,
			Balance:          dto.NewMoney(a.Balance),
			TransactionTotal: dto.NewMoney(sums[a.ID]),
		})
	}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, dto.AdminTransactionResponse{
			ID:                t.ID,
			InvestmentAccount: t.InvestmentAccountID,
			TransactionType:   string(t.TransactionType),
			Amount:            dto.NewMoney(t.Amount),
			Timestamp:         t.Timestamp,
		})
	}
	resp.TotalBalance = dto.NewMoney(total)
	return resp, nil
}
