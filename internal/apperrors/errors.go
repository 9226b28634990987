package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// Monetary value errors.
var (
	// ErrInvalidAmount indicates a non-numeric or otherwise unparseable monetary input.
	ErrInvalidAmount = errors.New("invalid monetary amount")

	// ErrNegativeAmount indicates a negative amount where only non-negative values are valid.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrRangeExceeded indicates a value whose scaled-integer representation would
	// overflow the safe integer range.
	ErrRangeExceeded = errors.New("amount exceeds safe integer range")

	// ErrCurrencyMismatch indicates an operation combining values of different currencies.
	ErrCurrencyMismatch = errors.New("currency mismatch")

	// ErrDivisionByZero indicates a monetary division by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrEmptyCollection indicates an aggregate operation over an empty collection.
	ErrEmptyCollection = errors.New("empty collection")

	// ErrParse indicates unparseable monetary text.
	ErrParse = errors.New("unable to parse monetary text")
)

// Journal entry errors.
var (
	// ErrInvalidAccountReference indicates an entry line referencing a nil or unusable account.
	ErrInvalidAccountReference = errors.New("invalid account reference")

	// ErrInvalidEntryType indicates an entry line type other than DEBIT or CREDIT.
	ErrInvalidEntryType = errors.New("invalid entry type")

	// ErrEmptyJournalEntry indicates a commit with no lines, or a missing debit or credit side.
	ErrEmptyJournalEntry = errors.New("journal entry must have at least one debit and one credit line")

	// ErrUnbalancedEntry indicates a commit where debit and credit totals differ.
	ErrUnbalancedEntry = errors.New("journal entry does not balance")

	// ErrAlreadyCommitted indicates an operation on a journal entry that has already been committed.
	ErrAlreadyCommitted = errors.New("journal entry already committed")
)

// AppError wraps an underlying error with a status code and message for the
// adapter layers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error, enabling errors.Is/errors.As checks.
func (e *AppError) Unwrap() error {
	return e.Err
}
