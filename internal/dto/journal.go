package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookkeepr/ledger_app/internal/models"
)

// CreateJournalLine is a single debit or credit line of a journal request.
// CurrencyCode defaults to the referenced account's currency.
type CreateJournalLine struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=DEBIT CREDIT"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currency"`
}

// CreateJournalRequest defines the payload for posting a balanced journal.
type CreateJournalRequest struct {
	Description string              `json:"description" binding:"required"`
	Date        *time.Time          `json:"date"`
	Lines       []CreateJournalLine `json:"lines" binding:"required,min=2,dive"`
}

// TransactionResponse defines the data returned for a journal line.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	CurrencyCode  string          `json:"currencyCode"`
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID   string    `json:"journalID"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Committed   bool      `json:"committed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GetJournalResponse combines a journal and its lines.
type GetJournalResponse struct {
	Journal      JournalResponse       `json:"journal"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionResponse converts a line snapshot to its response DTO.
func ToTransactionResponse(txn *models.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		Amount:        txn.Amount,
		Type:          string(txn.TransactionType),
		CurrencyCode:  txn.CurrencyCode,
	}
}

// ToTransactionResponses converts a slice of line snapshots.
func ToTransactionResponses(txns []models.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ToJournalResponse converts a journal snapshot to its response DTO.
func ToJournalResponse(j *models.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Date:        j.JournalDate,
		Description: j.Description,
		Committed:   j.Committed,
		CreatedAt:   j.CreatedAt,
	}
}

// ToJournalResponses converts a slice of journal snapshots.
func ToJournalResponses(js []models.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(js))
	for i := range js {
		responses[i] = ToJournalResponse(&js[i])
	}
	return responses
}
