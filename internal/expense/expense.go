package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

var (
	ErrNotFound         = errors.New("expense not found")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyCategory    = errors.New("category is required")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingDate      = errors.New("date is required")
)

// Expense is a single dated spend. Amount is a positive magnitude with no
// currency attached.
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        calendar.Date
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// Validate checks the record-level invariants. Category membership is checked
// by the Service because it needs the store.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}

	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}

	if e.Date.IsZero() {
		return ErrMissingDate
	}

	return nil
}

// IsValidation reports whether err is one of the input validation errors,
// as opposed to a storage failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrMissingDate)
}
