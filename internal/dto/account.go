package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/ledger_app/internal/models"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	AccountType    string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	AccountType   string          `json:"accountType"`
	CurrencyCode  string          `json:"currencyCode"`
	DebitPositive bool            `json:"debitPositive"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToAccountResponse converts an account snapshot to its response DTO.
func ToAccountResponse(m *models.Account) AccountResponse {
	return AccountResponse{
		AccountID:     m.AccountID,
		Name:          m.Name,
		AccountType:   string(m.AccountType),
		CurrencyCode:  m.CurrencyCode,
		DebitPositive: m.DebitPositive,
		Balance:       m.Balance,
		CreatedAt:     m.CreatedAt,
	}
}

// ToAccountResponses converts a slice of account snapshots.
func ToAccountResponses(ms []models.Account) []AccountResponse {
	responses := make([]AccountResponse, len(ms))
	for i := range ms {
		responses[i] = ToAccountResponse(&ms[i])
	}
	return responses
}

// ListParams carries common pagination parameters.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"omitempty,gte=1,lte=500"`
	Offset int `form:"offset,default=0" binding:"omitempty,gte=0"`
}
