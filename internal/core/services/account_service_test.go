package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	"github.com/bookkeepr/ledger_app/internal/core/domain"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
	"github.com/bookkeepr/ledger_app/internal/core/services"
	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/models"
)

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo, domain.DefaultRegistry(), "USD")
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Cash",
		AccountType:    "ASSET",
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("1000"),
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a models.Account) bool {
		return a.Name == "Cash" &&
			a.AccountType == models.Asset &&
			a.CurrencyCode == "USD" &&
			a.DebitPositive &&
			a.MoneyMode &&
			a.Balance.Equal(decimal.RequireFromString("1000"))
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.False(account.CreatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultCurrencyIsNumberMode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Owner Equity",
		AccountType: "EQUITY",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a models.Account) bool {
		return a.CurrencyCode == "USD" && !a.MoneyMode && !a.DebitPositive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("USD", account.CurrencyCode)
	suite.False(account.MoneyMode)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NegativeInitialBalance() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:           "Cash",
		AccountType:    "ASSET",
		InitialBalance: decimal.RequireFromString("-1"),
	}

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNegativeAmount)
	suite.Nil(account)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveError() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:        "Cash",
		AccountType: "ASSET",
	}
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("models.Account")).Return(expectedErr).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, expectedErr)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
}

func (suite *AccountServiceTestSuite) TestListAccounts_EmptyIsNotNil() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, 50, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, dto.ListParams{Limit: 50})

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
