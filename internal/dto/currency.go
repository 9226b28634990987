package dto

import "github.com/bookkeepr/ledger_app/internal/models"

// CreateCurrencyRequest defines the payload for registering a currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name" binding:"required"`
	Precision    int    `json:"precision" binding:"gte=0,lte=18"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	Precision    int    `json:"precision"`
}

// ToCurrencyResponse converts a currency record to its response DTO.
func ToCurrencyResponse(m *models.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode: m.CurrencyCode,
		Symbol:       m.Symbol,
		Name:         m.Name,
		Precision:    m.Precision,
	}
}

// ToCurrencyResponses converts a slice of currency records.
func ToCurrencyResponses(ms []models.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(ms))
	for i := range ms {
		responses[i] = ToCurrencyResponse(&ms[i])
	}
	return responses
}
