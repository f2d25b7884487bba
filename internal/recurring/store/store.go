package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, description, amount, category, frequency, start_date, end_date, notes, last_generated, created_at
func scanTemplate(s scanner) (*recurring.Template, error) {
	var t recurring.Template

	var frequency string

	var notes sql.NullString

	var endDate, lastGenerated calendar.Date

	if err := s.Scan(
		&t.ID, &t.Description, &t.Amount, &t.Category, &frequency,
		&t.StartDate, &endDate, &notes, &lastGenerated, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	t.Frequency = recurring.Frequency(frequency)
	t.Notes = notes.String

	if !endDate.IsZero() {
		t.EndDate = &endDate
	}

	if !lastGenerated.IsZero() {
		t.LastGenerated = &lastGenerated
	}

	return &t, nil
}

const selectTemplateColumns = `
	id, description, amount, category, frequency, start_date, end_date, notes, last_generated, created_at
`

func (s *Store) CreateTemplate(ctx context.Context, t *recurring.Template) error {
	query := `
		INSERT INTO recurring_expenses (description, amount, category, frequency, start_date, end_date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.Description,
		t.Amount,
		t.Category,
		string(t.Frequency),
		t.StartDate,
		t.EndDate,
		t.Notes,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating recurring expense: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id uuid.UUID) (*recurring.Template, error) {
	query := `SELECT ` + selectTemplateColumns + ` FROM recurring_expenses WHERE id = $1`

	t, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recurring.ErrNotFound
		}

		return nil, fmt.Errorf("getting recurring expense: %w", err)
	}

	return t, nil
}

func (s *Store) ListTemplates(ctx context.Context) ([]*recurring.Template, error) {
	query := `SELECT ` + selectTemplateColumns + ` FROM recurring_expenses ORDER BY description ASC, created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing recurring expenses: %w", err)
	}
	defer rows.Close()

	var ts []*recurring.Template

	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recurring expense: %w", err)
		}

		ts = append(ts, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring expense rows: %w", err)
	}

	return ts, nil
}

func (s *Store) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recurring_expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting recurring expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting recurring expense: %w", err)
	}

	if n == 0 {
		return recurring.ErrNotFound
	}

	return nil
}

// Materialize inserts the generated expenses and advances last_generated in
// one transaction. The row is locked first so two generators cannot emit the
// same occurrences.
func (s *Store) Materialize(ctx context.Context, id uuid.UUID, es []*expense.Expense, through calendar.Date) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var last calendar.Date

	err = dbTx.QueryRowContext(ctx,
		`SELECT last_generated FROM recurring_expenses WHERE id = $1 FOR UPDATE`, id,
	).Scan(&last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return recurring.ErrNotFound
		}

		return fmt.Errorf("locking recurring expense: %w", err)
	}

	insert := `
		INSERT INTO expenses (description, amount, category, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	for _, e := range es {
		// Another generator already covered this day.
		if !last.IsZero() && !e.Date.After(last) {
			continue
		}

		err := dbTx.QueryRowContext(ctx, insert,
			e.Description,
			e.Amount,
			e.Category,
			e.Date,
			e.Notes,
		).Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	update := `UPDATE recurring_expenses SET last_generated = $1 WHERE id = $2`
	if _, err := dbTx.ExecContext(ctx, update, through, id); err != nil {
		return fmt.Errorf("updating last generated: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
