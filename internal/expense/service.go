package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

var ErrInvalidMonth = errors.New("invalid month")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id uuid.UUID) error

	ListExpenses(ctx context.Context, filter ListFilter) ([]*Expense, error)
	CountExpenses(ctx context.Context) (int, error)

	BeginImport(ctx context.Context, minDate, maxDate calendar.Date) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Expense, error)
	CreateExpenses(ctx context.Context, es []*Expense) error
	Commit() error
	Rollback() error
}

// Categories answers whether a category belongs to the known set.
type Categories interface {
	Exists(ctx context.Context, name string) (bool, error)
}

type Service struct {
	repo       Repository
	categories Categories
}

func NewService(repo Repository, categories Categories) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Category    string
	Date        calendar.Date
	Notes       string
}

// ListFilter narrows a store query. Both bounds are inclusive.
type ListFilter struct {
	From   *calendar.Date
	To     *calendar.Date
	Newest bool
}

func (p CreateParams) toExpense() *Expense {
	return &Expense{
		Description: strings.TrimSpace(p.Description),
		Amount:      p.Amount,
		Category:    strings.TrimSpace(p.Category),
		Date:        p.Date,
		Notes:       p.Notes,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	e := params.toExpense()
	if err := s.validate(ctx, e); err != nil {
		return nil, err
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// List returns every expense, newest first.
func (s *Service) List(ctx context.Context) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, ListFilter{Newest: true})
}

// ListRange returns expenses between two dates (inclusive), oldest first.
// A nil bound is open.
func (s *Service) ListRange(ctx context.Context, from, to *calendar.Date) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, ListFilter{From: from, To: to})
}

// ListMonth returns the expenses of one month (1-12), oldest first.
func (s *Service) ListMonth(ctx context.Context, year int, month time.Month) ([]*Expense, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}

	m := calendar.Month{Year: year, Month: month}
	first, last := m.First(), m.Last()

	return s.repo.ListExpenses(ctx, ListFilter{From: &first, To: &last})
}

func (s *Service) ListDay(ctx context.Context, day calendar.Date) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, ListFilter{From: &day, To: &day})
}

// Update replaces the stored record with params. The category is only checked
// against the known set when it changes, so records keep categories that were
// valid when they were created.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params CreateParams) (*Expense, error) {
	existing, err := s.repo.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	e := params.toExpense()
	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if e.Category != existing.Category {
		if err := s.checkCategory(ctx, e.Category); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.CountExpenses(ctx)
}

// Overview is the dashboard payload: the full list plus its aggregate series.
type Overview struct {
	Expenses []*Expense
	Summary  Summary
}

func (s *Service) Overview(ctx context.Context, today calendar.Date) (*Overview, error) {
	expenses, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	return &Overview{
		Expenses: expenses,
		Summary:  Summarize(expenses, today),
	}, nil
}

type ImportResult struct {
	Imported  []*Expense
	New       []CreateParams
	Conflicts []Conflict
}

// Conflict pairs an incoming row with a stored expense that looks the same.
type Conflict struct {
	Incoming CreateParams
	Existing *Expense
}

// ImportBatch stores params unless some of them duplicate stored expenses
// (same date, amount and description). On duplicates nothing is written and
// the result splits the rows into New and Conflicts for the caller to decide.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	if err := s.validateBatch(ctx, params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[DupKey]*Expense, len(duplicates))
	for _, d := range duplicates {
		lookup[KeyOf(d.Date, d.Amount, d.Description)] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		existing, found := lookup[KeyOf(p.Date, p.Amount, p.Description)]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	es := paramsToExpenses(newParams)
	if err := itx.CreateExpenses(ctx, es); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: es}, nil
}

// CreateBatch stores params in one transaction without duplicate detection.
// It is used to confirm an import after conflicts were reviewed.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	if err := s.validateBatch(ctx, params); err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	es := paramsToExpenses(params)
	if err := itx.CreateExpenses(ctx, es); err != nil {
		return nil, fmt.Errorf("create expenses: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return es, nil
}

func (s *Service) validate(ctx context.Context, e *Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}

	return s.checkCategory(ctx, e.Category)
}

func (s *Service) validateBatch(ctx context.Context, params []CreateParams) error {
	for i, p := range params {
		if err := s.validate(ctx, p.toExpense()); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Service) checkCategory(ctx context.Context, name string) error {
	ok, err := s.categories.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("checking category: %w", err)
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, name)
	}

	return nil
}

// DupKey identifies expenses that an import treats as the same entry.
type DupKey struct {
	Date        string
	Amount      string
	Description string
}

func KeyOf(date calendar.Date, amount decimal.Decimal, description string) DupKey {
	return DupKey{
		Date:        date.Key(),
		Amount:      amount.StringFixed(2),
		Description: strings.ToLower(strings.TrimSpace(description)),
	}
}

func dateRange(params []CreateParams) (calendar.Date, calendar.Date) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToExpenses(params []CreateParams) []*Expense {
	es := make([]*Expense, len(params))
	for i, p := range params {
		es[i] = p.toExpense()
	}

	return es
}
