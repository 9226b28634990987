package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
	"github.com/bookkeepr/ledger_app/internal/core/services"
	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
	"github.com/bookkeepr/ledger_app/internal/repositories/memory"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*models.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]models.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]models.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account models.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*models.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindTransactionsByJournalID(ctx context.Context, journalID string) ([]models.Transaction, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, limit, offset int) ([]models.Journal, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Transaction), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal models.Journal, lines []models.Transaction, accounts []models.Account) error {
	args := m.Called(ctx, journal, lines, accounts)
	return args.Error(0)
}

// --- Test Suite ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.JournalSvcFacade

	cashID    string
	revenueID string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, domain.DefaultRegistry())
	suite.cashID = uuid.NewString()
	suite.revenueID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) ledgerAccounts() map[string]models.Account {
	return map[string]models.Account{
		suite.cashID: {
			AccountID:     suite.cashID,
			Name:          "Cash",
			AccountType:   models.Asset,
			CurrencyCode:  "USD",
			DebitPositive: true,
			MoneyMode:     true,
			Balance:       decimal.RequireFromString("1000"),
		},
		suite.revenueID: {
			AccountID:     suite.revenueID,
			Name:          "Sales Revenue",
			AccountType:   models.Income,
			CurrencyCode:  "USD",
			DebitPositive: false,
			MoneyMode:     true,
			Balance:       decimal.RequireFromString("0"),
		},
	}
}

func (suite *JournalServiceTestSuite) TestPostJournal_Success() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Description: "Cash sale",
		Lines: []dto.CreateJournalLine{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString("500"), Type: "DEBIT"},
			{AccountID: suite.revenueID, Amount: decimal.RequireFromString("500"), Type: "CREDIT"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.ledgerAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("models.Journal"), mock.AnythingOfType("[]models.Transaction"), mock.MatchedBy(func(accounts []models.Account) bool {
		balances := make(map[string]decimal.Decimal, len(accounts))
		for _, a := range accounts {
			balances[a.AccountID] = a.Balance
		}
		return balances[suite.cashID].Equal(decimal.RequireFromString("1500")) &&
			balances[suite.revenueID].Equal(decimal.RequireFromString("500"))
	})).Return(nil).Once()

	journal, lines, err := suite.service.PostJournal(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(journal)
	suite.True(journal.Committed)
	suite.Equal("Cash sale", journal.Description)
	suite.Require().Len(lines, 2)
	suite.Equal(journal.JournalID, lines[0].JournalID)
	suite.Equal(models.Debit, lines[0].TransactionType)
	suite.Equal("USD", lines[0].CurrencyCode)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostJournal_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Description: "Broken entry",
		Lines: []dto.CreateJournalLine{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString("600"), Type: "DEBIT"},
			{AccountID: suite.revenueID, Amount: decimal.RequireFromString("500"), Type: "CREDIT"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.ledgerAccounts(), nil).Once()

	journal, lines, err := suite.service.PostJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnbalancedEntry)
	suite.Nil(journal)
	suite.Nil(lines)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_CurrencyMismatch() {
	ctx := context.Background()
	req := dto.CreateJournalRequest{
		Description: "Mixed currencies",
		Lines: []dto.CreateJournalLine{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString("100"), Type: "DEBIT", CurrencyCode: "EUR"},
			{AccountID: suite.revenueID, Amount: decimal.RequireFromString("100"), Type: "CREDIT"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.ledgerAccounts(), nil).Once()

	journal, _, err := suite.service.PostJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrCurrencyMismatch)
	suite.Nil(journal)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostJournal_UnknownAccount() {
	ctx := context.Background()
	missingID := uuid.NewString()
	req := dto.CreateJournalRequest{
		Description: "Dangling reference",
		Lines: []dto.CreateJournalLine{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString("100"), Type: "DEBIT"},
			{AccountID: missingID, Amount: decimal.RequireFromString("100"), Type: "CREDIT"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	journal, _, err := suite.service.PostJournal(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAccountReference)
	suite.Nil(journal)
}

func (suite *JournalServiceTestSuite) TestPostJournal_CustomDate() {
	ctx := context.Background()
	date := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalRequest{
		Description: "Backdated entry",
		Date:        &date,
		Lines: []dto.CreateJournalLine{
			{AccountID: suite.cashID, Amount: decimal.RequireFromString("50"), Type: "DEBIT"},
			{AccountID: suite.revenueID, Amount: decimal.RequireFromString("50"), Type: "CREDIT"},
		},
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(suite.ledgerAccounts(), nil).Once()
	suite.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	journal, _, err := suite.service.PostJournal(ctx, req)

	suite.Require().NoError(err)
	suite.True(journal.JournalDate.Equal(date))
}

func (suite *JournalServiceTestSuite) TestGetJournalWithTransactions() {
	ctx := context.Background()
	journalID := uuid.NewString()
	expectedJournal := &models.Journal{JournalID: journalID, Description: "stored", Committed: true}
	expectedTxns := []models.Transaction{{TransactionID: uuid.NewString(), JournalID: journalID}}

	suite.mockJournalRepo.On("FindJournalByID", ctx, journalID).Return(expectedJournal, nil).Once()
	suite.mockJournalRepo.On("FindTransactionsByJournalID", ctx, journalID).Return(expectedTxns, nil).Once()

	journal, txns, err := suite.service.GetJournalWithTransactions(ctx, journalID)

	suite.Require().NoError(err)
	suite.Equal(expectedJournal, journal)
	suite.Equal(expectedTxns, txns)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

// Concurrent postings against shared accounts must serialize: with 50
// goroutines each moving 10 from cash to revenue, the final balances have to
// land exactly, not approximately.
func TestPostJournal_ConcurrentPostingsSerialize(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewProvider()
	container := services.NewServiceContainer(repos, domain.DefaultRegistry(), "USD")

	cash, err := container.Account.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:           "Cash",
		AccountType:    "ASSET",
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("1000"),
	})
	require.NoError(t, err)
	revenue, err := container.Account.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:         "Sales Revenue",
		AccountType:  "INCOME",
		CurrencyCode: "USD",
	})
	require.NoError(t, err)

	const workers = 50
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := container.Journal.PostJournal(ctx, dto.CreateJournalRequest{
				Description: "Concurrent sale",
				Lines: []dto.CreateJournalLine{
					{AccountID: cash.AccountID, Amount: decimal.RequireFromString("10"), Type: "DEBIT"},
					{AccountID: revenue.AccountID, Amount: decimal.RequireFromString("10"), Type: "CREDIT"},
				},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	gotCash, err := container.Account.GetAccountByID(ctx, cash.AccountID)
	require.NoError(t, err)
	gotRevenue, err := container.Account.GetAccountByID(ctx, revenue.AccountID)
	require.NoError(t, err)
	require.True(t, gotCash.Balance.Equal(decimal.RequireFromString("1500")), "cash balance = %s", gotCash.Balance)
	require.True(t, gotRevenue.Balance.Equal(decimal.RequireFromString("500")), "revenue balance = %s", gotRevenue.Balance)
}
