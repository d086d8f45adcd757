package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SundayYogurt/investment_service/internal/domain"
	"github.com/SundayYogurt/investment_service/internal/dto"
	"github.com/SundayYogurt/investment_service/internal/helper"
	"github.com/SundayYogurt/investment_service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	users    repository.UserRepository
	accounts repository.AccountRepository
	caps     repository.CapabilityRepository
	txs      repository.TransactionRepository
	perm     PermissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "svc.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRole{},
		&domain.InvestmentAccount{},
		&domain.Capability{},
		&domain.Transaction{},
		&domain.AuditLog{},
	))

	caps := repository.NewCapabilityRepository(db)
	return &testEnv{
		db:       db,
		users:    repository.NewUserRepository(db),
		accounts: repository.NewAccountRepository(db),
		caps:     caps,
		txs:      repository.NewTransactionRepository(db),
		perm:     NewPermissionService(caps),
	}
}

func (e *testEnv) user(t *testing.T, name string) *domain.User {
	t.Helper()
	u, err := e.users.CreateUser(&domain.User{Username: name, PasswordHash: "x"})
	require.NoError(t, err)
	return u
}

func (e *testEnv) account(t *testing.T, number string, balance int64) *domain.InvestmentAccount {
	t.Helper()
	a := &domain.InvestmentAccount{AccountName: "acc " + number, AccountNumber: number, Balance: decimal.NewFromInt(balance)}
	require.NoError(t, e.accounts.Create(a))
	return a
}

func (e *testEnv) grant(t *testing.T, c domain.Capability) {
	t.Helper()
	require.NoError(t, e.caps.Create(&c))
}

func (e *testEnv) tx(t *testing.T, accountID uint, amount int64, at time.Time) *domain.Transaction {
	t.Helper()
	tx := &domain.Transaction{
		InvestmentAccountID: accountID,
		TransactionType:     domain.TransactionDeposit,
		Amount:              decimal.NewFromInt(amount),
		Timestamp:           at,
	}
	require.NoError(t, e.txs.Create(tx))
	return tx
}

type captureProducer struct {
	events []dto.AuditEvent
	err    error
}

func (c *captureProducer) PublishMessage(_ context.Context, key, value []byte) error {
	var ev dto.AuditEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return err
	}
	c.events = append(c.events, ev)
	return c.err
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPermissionMissingRowDeniesEverything(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)

	for _, op := range []domain.Operation{domain.OperationView, domain.OperationCreate, domain.OperationUpdate, domain.OperationDelete} {
		ok, err := env.perm.Allowed(u.ID, a.ID, op)
		require.NoError(t, err)
		assert.False(t, ok, op)

		err = env.perm.Require(u.ID, a.ID, op)
		assert.True(t, errors.Is(err, domain.ErrPermissionDenied), op)
	}
}

func TestPermissionFlagsAreIndependent(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a.ID, CanView: true, CanDelete: true})

	want := map[domain.Operation]bool{
		domain.OperationView:   true,
		domain.OperationCreate: false,
		domain.OperationUpdate: false,
		domain.OperationDelete: true,
	}
	for op, expected := range want {
		ok, err := env.perm.Allowed(u.ID, a.ID, op)
		require.NoError(t, err)
		assert.Equal(t, expected, ok, op)
	}

	_, err := env.perm.Allowed(u.ID, a.ID, domain.Operation("admin"))
	assert.Error(t, err)
}

func TestViewableAccountIDs(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a1 := env.account(t, "1", 10)
	a2 := env.account(t, "2", 10)
	a3 := env.account(t, "3", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a1.ID, CanView: true})
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a2.ID, CanCreate: true})
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a3.ID, CanView: true, CanUpdate: true})

	ids, err := env.perm.ViewableAccountIDs(u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{a1.ID, a3.ID}, ids)
}

func TestTransactionCreateStampsNowAndPathAccount(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	mine := env.account(t, "1", 10)
	other := env.account(t, "2", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: mine.ID, CanCreate: true})

	producer := &captureProducer{err: errors.New("broker down")}
	svc := NewTransactionService(env.txs, env.perm, producer).(*transactionService)
	fixed := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	tx, err := svc.Create(u.ID, mine.ID, dto.TransactionRequest{
		TransactionType: " Deposit ",
		Amount:          money("12.50"),
	})
	require.NoError(t, err, "a failing broker must not fail the request")
	assert.Equal(t, mine.ID, tx.InvestmentAccountID)
	assert.Equal(t, domain.TransactionDeposit, tx.TransactionType)
	assert.True(t, tx.Timestamp.Equal(fixed))

	require.Len(t, producer.events, 1)
	assert.Equal(t, "transaction.created", producer.events[0].Action)
	assert.Equal(t, tx.ID, producer.events[0].EntityID)
	assert.Equal(t, u.ID, producer.events[0].ActorID)

	// no create flag on the other account
	_, err = svc.Create(u.ID, other.ID, dto.TransactionRequest{TransactionType: "deposit", Amount: money("1")})
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestTransactionUpdateKeepsAccountAndTimestamp(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a.ID, CanView: true, CanUpdate: true})
	at := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	orig := env.tx(t, a.ID, 100, at)

	svc := NewTransactionService(env.txs, env.perm, nil)
	_, err := svc.Update(u.ID, a.ID, orig.ID, dto.TransactionRequest{TransactionType: "withdrawal", Amount: money("99.99")})
	require.NoError(t, err)

	got, err := svc.Get(u.ID, a.ID, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TransactionWithdrawal, got.TransactionType)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, a.ID, got.InvestmentAccountID)
	assert.True(t, got.Timestamp.Equal(at))
}

func TestValidateMoney(t *testing.T) {
	cases := []struct {
		in      *decimal.Decimal
		wantErr bool
	}{
		{nil, true},
		{money("0"), false},
		{money("12.34"), false},
		{money("12.340"), false},
		{money("12.345"), true},
		{money("9999999999.99"), false},
		{money("10000000000"), true},
		{money("-9999999999.99"), false},
	}
	for _, c := range cases {
		err := validateMoney("amount", c.in)
		if c.wantErr {
			assert.True(t, errors.Is(err, domain.ErrValidation), c.in)
		} else {
			assert.NoError(t, err, c.in)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	got, err := validateEmail("  Alice@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got)

	got, err = validateEmail("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"alice", "Alice <alice@example.com>", "a@"} {
		_, err := validateEmail(bad)
		assert.True(t, errors.Is(err, domain.ErrValidation), bad)
	}
}

func TestAccountServiceRejectsDuplicateNumber(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts, env.perm, nil)

	_, err := svc.Create(1, dto.AccountRequest{AccountName: "a", AccountNumber: "42", Balance: money("1")})
	require.NoError(t, err)

	_, err = svc.Create(1, dto.AccountRequest{AccountName: "b", AccountNumber: "42", Balance: money("1")})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Create(1, dto.AccountRequest{AccountName: "c", AccountNumber: "123456789012345678901", Balance: money("1")})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestAccountServiceChecksCapabilityBeforeLookup(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAccountService(env.accounts, env.perm, nil)
	u := env.user(t, "u")

	_, err := svc.Get(u.ID, 12345)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
	err = svc.Delete(u.ID, 12345)
	assert.True(t, errors.Is(err, domain.ErrPermissionDenied))
}

func TestAccountDeleteCascades(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a.ID, CanDelete: true})
	env.tx(t, a.ID, 5, time.Now().UTC())

	producer := &captureProducer{}
	svc := NewAccountService(env.accounts, env.perm, producer)
	require.NoError(t, svc.Delete(u.ID, a.ID))

	var n int64
	require.NoError(t, env.db.Model(&domain.Transaction{}).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, env.db.Model(&domain.Capability{}).Count(&n).Error)
	assert.Zero(t, n)
	require.Len(t, producer.events, 1)
	assert.Equal(t, EntityAccount, producer.events[0].Entity)
}

func TestReportTotalsUseStoredBalances(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a1 := env.account(t, "1", 1000)
	a2 := env.account(t, "2", 2000)
	unrelated := env.account(t, "3", 5000)
	// flags do not matter for reachability
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a1.ID})
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a2.ID, CanView: true})

	now := time.Now().UTC()
	env.tx(t, a1.ID, 70, now)
	env.tx(t, a1.ID, 30, now)
	env.tx(t, a2.ID, 1, now)
	env.tx(t, unrelated.ID, 999, now)

	svc := NewReportService(env.users, env.accounts, env.txs)
	report, err := svc.UserTransactions(u.ID, dto.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, u.ID, report.UserID)
	assert.True(t, report.TotalBalance.Equal(decimal.NewFromInt(3000)), report.TotalBalance.String())
	require.Len(t, report.Accounts, 2)
	assert.True(t, report.Accounts[0].TransactionTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, report.Accounts[1].TransactionTotal.Equal(decimal.NewFromInt(1)))
	assert.Len(t, report.Transactions, 3)
}

func TestReportDateRange(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)
	env.grant(t, domain.Capability{UserID: u.ID, InvestmentAccountID: a.ID})

	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	env.tx(t, a.ID, 1, day(1))
	env.tx(t, a.ID, 1, day(2))
	env.tx(t, a.ID, 1, day(3))
	env.tx(t, a.ID, 1, day(4))

	svc := NewReportService(env.users, env.accounts, env.txs)
	start, end := day(2), day(3)

	report, err := svc.UserTransactions(u.ID, dto.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, report.Transactions, 2)
	assert.True(t, report.Transactions[0].Timestamp.Equal(start))
	assert.True(t, report.Transactions[1].Timestamp.Equal(end))

	report, err = svc.UserTransactions(u.ID, dto.DateRange{Start: &end})
	require.NoError(t, err)
	assert.Len(t, report.Transactions, 2)

	report, err = svc.UserTransactions(u.ID, dto.DateRange{End: &start})
	require.NoError(t, err)
	assert.Len(t, report.Transactions, 2)

	_, err = svc.UserTransactions(u.ID, dto.DateRange{Start: &end, End: &start})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.UserTransactions(u.ID+100, dto.DateRange{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReportForUserWithoutAccounts(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "lonely")

	report, err := NewReportService(env.users, env.accounts, env.txs).UserTransactions(u.ID, dto.DateRange{})
	require.NoError(t, err)
	assert.True(t, report.TotalBalance.IsZero())
	assert.Empty(t, report.Accounts)
	assert.Empty(t, report.Transactions)
}

func TestCapabilityServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	u := env.user(t, "u")
	a := env.account(t, "1", 10)
	svc := NewCapabilityService(env.caps, env.users, env.accounts, nil)

	c, err := svc.Create(99, dto.CapabilityCreateRequest{User: u.ID, InvestmentAccount: a.ID, CapabilityFlags: dto.CapabilityFlags{CanView: true}})
	require.NoError(t, err)
	assert.Equal(t, "u", c.User)
	assert.Equal(t, "acc 1", c.InvestmentAccount)
	assert.True(t, c.CanView)

	_, err = svc.Create(99, dto.CapabilityCreateRequest{User: u.ID, InvestmentAccount: a.ID})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = svc.Create(99, dto.CapabilityCreateRequest{User: u.ID + 50, InvestmentAccount: a.ID})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = svc.Create(99, dto.CapabilityCreateRequest{InvestmentAccount: a.ID})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestUserServiceRolesAndRefresh(t *testing.T) {
	env := newTestEnv(t)
	auth := helper.SetupAuth("svc-secret", time.Minute, time.Hour)
	svc := NewUserService(env.users, repository.NewRoleRepository(env.db), repository.NewUserRoleRepository(env.db), auth, nil)
	require.NoError(t, svc.SeedRoles())
	require.NoError(t, svc.SeedRoles(), "seeding twice is harmless")

	require.NoError(t, svc.EnsureAdmin("root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin("root", "rootpass"))
	require.NoError(t, svc.EnsureAdmin("", ""))

	root, err := env.users.FindUserByUsername("root")
	require.NoError(t, err)
	isAdmin, err := svc.IsAdmin(root.ID)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	plain, err := svc.CreateUser(root.ID, dto.CreateUserRequest{Username: "plain", Password: "password"})
	require.NoError(t, err)
	isAdmin, err = svc.IsAdmin(plain.ID)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	_, err = svc.CreateUser(root.ID, dto.CreateUserRequest{Username: "plain", Password: "password"})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	pair, err := svc.IssueTokens(dto.TokenObtainRequest{Username: "plain", Password: "password"})
	require.NoError(t, err)
	_, err = svc.IssueTokens(dto.TokenObtainRequest{Username: "plain", Password: "nope"})
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))
	_, err = svc.IssueTokens(dto.TokenObtainRequest{Username: "ghost", Password: "password"})
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))

	access, err := svc.RefreshAccessToken(dto.TokenRefreshRequest{Refresh: pair.Refresh})
	require.NoError(t, err)
	claims, err := auth.VerifyToken(access.Access)
	require.NoError(t, err)
	assert.Equal(t, plain.ID, claims.UserID)

	// refresh stops working once the user is gone
	require.NoError(t, svc.DeleteUser(root.ID, plain.ID))
	_, err = svc.RefreshAccessToken(dto.TokenRefreshRequest{Refresh: pair.Refresh})
	assert.True(t, errors.Is(err, domain.ErrUnauthenticated))

	assert.True(t, errors.Is(svc.DeleteUser(root.ID, root.ID), domain.ErrValidation))
	assert.True(t, errors.Is(svc.DeleteUser(root.ID, plain.ID), domain.ErrNotFound))
}

func TestAuditServiceHandleMessage(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAuditService(repository.NewAuditRepository(env.db))
	at := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)

	payload, err := json.Marshal(dto.AuditEvent{Entity: EntityTransaction, EntityID: 4, ActorID: 2, At: at})
	require.NoError(t, err)
	require.NoError(t, svc.HandleMessage(context.Background(), []byte("transaction.deleted"), payload))

	assert.Error(t, svc.HandleMessage(context.Background(), nil, []byte("{")))
	assert.Error(t, svc.HandleMessage(context.Background(), nil, []byte(`{"entity":"x"}`)))

	logs, err := svc.List(0, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "transaction.deleted", logs[0].Action)
	assert.Equal(t, uint(4), logs[0].EntityID)
	assert.True(t, logs[0].CreatedAt.Equal(at))

	_, err = svc.List(10, -1)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}
