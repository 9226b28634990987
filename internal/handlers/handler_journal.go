package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookkeepr/ledger_app/internal/apperrors"
	portssvc "github.com/bookkeepr/ledger_app/internal/core/ports/services"
	"github.com/bookkeepr/ledger_app/internal/dto"
	"github.com/bookkeepr/ledger_app/internal/middleware"
)

// journalHandler handles HTTP requests for posting and reading journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
	}
}

// journalRequestErrors are posting failures caused by the request itself.
var journalRequestErrors = []error{
	apperrors.ErrValidation,
	apperrors.ErrEmptyJournalEntry,
	apperrors.ErrUnbalancedEntry,
	apperrors.ErrCurrencyMismatch,
	apperrors.ErrInvalidEntryType,
	apperrors.ErrNegativeAmount,
	apperrors.ErrInvalidAmount,
}

func isJournalRequestError(err error) bool {
	for _, target := range journalRequestErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h *journalHandler) postJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PostJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to post journal", slog.String("description", req.Description), slog.Int("lines", len(req.Lines)))

	journal, txns, err := h.journalService.PostJournal(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAccountReference):
			logger.Warn("Journal references unknown account", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case isJournalRequestError(err):
			logger.Warn("Journal rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to post journal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post journal"})
		}
		return
	}

	logger.Info("Journal posted successfully", slog.String("journal_id", journal.JournalID))
	c.JSON(http.StatusCreated, dto.GetJournalResponse{
		Journal:      dto.ToJournalResponse(journal),
		Transactions: dto.ToTransactionResponses(txns),
	})
}

func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	journal, txns, err := h.journalService.GetJournalWithTransactions(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else {
			logger.Error("Failed to get journal", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.GetJournalResponse{
		Journal:      dto.ToJournalResponse(journal),
		Transactions: dto.ToTransactionResponses(txns),
	})
}

func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	journals, err := h.journalService.ListJournals(c.Request.Context(), params)
	if err != nil {
		logger.Error("Failed to list journals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponses(journals))
}
