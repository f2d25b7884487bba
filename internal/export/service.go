package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// Header is the column layout of an export. The importer reads it back.
var Header = []string{"date", "description", "amount", "category", "notes"}

type Lister interface {
	ListRange(ctx context.Context, from, to *calendar.Date) ([]*expense.Expense, error)
}

// Service writes expenses as semicolon separated CSV.
type Service struct {
	expenses Lister
}

func NewService(expenses Lister) *Service {
	return &Service{expenses: expenses}
}

// Export writes the expenses between from and to (inclusive, nil is open)
// ordered by date. It returns the number of rows written.
func (s *Service) Export(ctx context.Context, w io.Writer, from, to *calendar.Date) (int, error) {
	list, err := s.expenses.ListRange(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("listing expenses: %w", err)
	}

	if err := Write(w, list); err != nil {
		return 0, err
	}

	return len(list), nil
}

func Write(w io.Writer, list []*expense.Expense) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range list {
		record := []string{
			e.Date.Key(),
			e.Description,
			e.Amount.StringFixed(2),
			e.Category,
			e.Notes,
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// Filename names an export file after its date range.
func Filename(from, to *calendar.Date) string {
	switch {
	case from != nil && to != nil:
		return fmt.Sprintf("expenses_%s_%s.csv", from.Format("20060102"), to.Format("20060102"))
	case from != nil:
		return fmt.Sprintf("expenses_from_%s.csv", from.Format("20060102"))
	case to != nil:
		return fmt.Sprintf("expenses_until_%s.csv", to.Format("20060102"))
	default:
		return "expenses.csv"
	}
}
