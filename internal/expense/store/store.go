package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Expected column order: id, description, amount, category, date, notes, created_at, updated_at
func scanExpense(s scanner) (*expense.Expense, error) {
	var e expense.Expense

	var notes sql.NullString

	if err := s.Scan(
		&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date, &notes,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	e.Notes = notes.String

	return &e, nil
}

const selectExpenseColumns = `id, description, amount, category, date, notes, created_at, updated_at`

const insertExpense = `
	INSERT INTO expenses (description, amount, category, date, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, NOW())
	RETURNING id, created_at
`

func insert(ctx context.Context, q querier, e *expense.Expense) error {
	err := q.QueryRowContext(ctx, insertExpense,
		e.Description,
		e.Amount,
		e.Category,
		e.Date,
		e.Notes,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

func list(ctx context.Context, q querier, query string, args ...any) ([]*expense.Expense, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var es []*expense.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		es = append(es, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return es, nil
}

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	return insert(ctx, s.db, e)
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argIdx)

		args = append(args, *filter.To)
	}

	if filter.Newest {
		query += " ORDER BY date DESC, created_at DESC"
	} else {
		query += " ORDER BY date ASC, created_at ASC"
	}

	return list(ctx, s.db, query, args...)
}

func (s *Store) CountExpenses(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting expenses: %w", err)
	}

	return n, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *expense.Expense) error {
	query := `
		UPDATE expenses
		SET description = $1, amount = $2, category = $3, date = $4, notes = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.Description,
		e.Amount,
		e.Category,
		e.Date,
		e.Notes,
		e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return expense.ErrNotFound
		}

		return fmt.Errorf("updating expense: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

func importLockKey(minDate, maxDate calendar.Date) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Key()))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Key()))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens a transaction holding an advisory lock keyed on the date
// range, so two imports of the same statement cannot interleave.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate calendar.Date) (expense.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []expense.CreateParams) ([]*expense.Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[expense.DupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[expense.KeyOf(p.Date, p.Amount, p.Description)] = struct{}{}
	}

	query := `SELECT ` + selectExpenseColumns + `
		FROM expenses
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC`

	candidates, err := list(ctx, itx.tx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	var duplicates []*expense.Expense

	for _, e := range candidates {
		if _, found := keySet[expense.KeyOf(e.Date, e.Amount, e.Description)]; found {
			duplicates = append(duplicates, e)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateExpenses(ctx context.Context, es []*expense.Expense) error {
	for _, e := range es {
		if err := insert(ctx, itx.tx, e); err != nil {
			return err
		}
	}

	return nil
}
