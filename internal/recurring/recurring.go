package recurring

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

var (
	ErrNotFound         = errors.New("recurring expense not found")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrEmptyDescription = errors.New("description is required")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrEmptyCategory    = errors.New("category is required")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrMissingStartDate = errors.New("start date is required")
	ErrEndBeforeStart   = errors.New("end date is before start date")
	ErrInvalidRange     = errors.New("invalid date range")
	ErrRangeTooLarge    = errors.New("date range too large")
)

type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Quarterly  Frequency = "quarterly"
	Biannually Frequency = "biannually"
	Annually   Frequency = "annually"
)

// Frequencies lists every supported frequency, shortest period first.
var Frequencies = []Frequency{Daily, Weekly, Biweekly, Monthly, Quarterly, Biannually, Annually}

func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFrequency, s)
	}

	return f, nil
}

func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Quarterly, Biannually, Annually:
		return true
	}

	return false
}

// step returns the period as a number of days or a number of months. Exactly
// one of the two is non-zero for a valid frequency.
func (f Frequency) step() (days, months int) {
	switch f {
	case Daily:
		return 1, 0
	case Weekly:
		return 7, 0
	case Biweekly:
		return 14, 0
	case Monthly:
		return 0, 1
	case Quarterly:
		return 0, 3
	case Biannually:
		return 0, 6
	case Annually:
		return 0, 12
	}

	return 0, 0
}

// Template describes an expense that repeats on a schedule anchored on
// StartDate. EndDate is inclusive. LastGenerated is the last day the
// generator materialized occurrences through.
type Template struct {
	ID            uuid.UUID
	Description   string
	Amount        decimal.Decimal
	Category      string
	Frequency     Frequency
	StartDate     calendar.Date
	EndDate       *calendar.Date
	Notes         string
	LastGenerated *calendar.Date
	CreatedAt     time.Time
}

func (t *Template) Validate() error {
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyDescription
	}

	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}

	if !t.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFrequency, t.Frequency)
	}

	if t.StartDate.IsZero() {
		return ErrMissingStartDate
	}

	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return ErrEndBeforeStart
	}

	return nil
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidFrequency) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrMissingStartDate) ||
		errors.Is(err, ErrEndBeforeStart) ||
		errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrRangeTooLarge)
}

// GeneratedNotes is the note attached to every expense the generator creates.
func GeneratedNotes(t *Template) string {
	return "Automated recurring expense: " + t.Notes
}
