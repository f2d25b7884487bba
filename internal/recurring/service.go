package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// maxPreviewDays bounds the range an occurrences preview may span.
const maxPreviewDays = 366 * 5

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recurring
type Repository interface {
	CreateTemplate(ctx context.Context, t *Template) error
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context) ([]*Template, error)
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	// Materialize stores es and moves the template's LastGenerated to through,
	// atomically.
	Materialize(ctx context.Context, id uuid.UUID, es []*expense.Expense, through calendar.Date) error
}

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
	Frequency   Frequency
	StartDate   calendar.Date
	EndDate     *calendar.Date
	Notes       string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Template, error) {
	t := &Template{
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Category:    strings.TrimSpace(params.Category),
		Frequency:   params.Frequency,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Notes:       params.Notes,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.categories.Exists(ctx, t.Category)
	if err != nil {
		return nil, fmt.Errorf("checking category: %w", err)
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, t.Category)
	}

	if err := s.repo.CreateTemplate(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

// List returns every template ordered by description.
func (s *Service) List(ctx context.Context) ([]*Template, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteTemplate(ctx, id)
}

// Occurrences previews the dates a template produces within [from, to].
func (s *Service) Occurrences(ctx context.Context, id uuid.UUID, from, to calendar.Date) ([]calendar.Date, error) {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrInvalidRange
	}

	if to.After(from.AddDays(maxPreviewDays)) {
		return nil, ErrRangeTooLarge
	}

	t, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	dates := Occurrences(t, from, to)
	if dates == nil {
		dates = []calendar.Date{}
	}

	return dates, nil
}

// Generate materializes every due occurrence of every template as an expense
// and returns how many expenses were created. A failing template is logged
// and skipped so the others still run.
func (s *Service) Generate(ctx context.Context, today calendar.Date) (int, error) {
	templates, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing recurring expenses: %w", err)
	}

	created := 0

	for _, t := range templates {
		dates := Due(t, today)
		if len(dates) == 0 {
			continue
		}

		es := make([]*expense.Expense, len(dates))
		for i, d := range dates {
			es[i] = &expense.Expense{
				Description: t.Description,
				Amount:      t.Amount,
				Category:    t.Category,
				Date:        d,
				Notes:       GeneratedNotes(t),
			}
		}

		if err := s.repo.Materialize(ctx, t.ID, es, today); err != nil {
			slog.ErrorContext(ctx, "failed to generate recurring expenses",
				"recurring_id", t.ID,
				"description", t.Description,
				"error", err)

			continue
		}

		created += len(es)
	}

	return created, nil
}
