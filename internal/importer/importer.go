package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/expense"
)

// MaxFileSize bounds how much of an upload the parser reads.
const MaxFileSize = 10 << 20

var (
	ErrNoHeader     = errors.New("no recognised header: expected date, description and amount columns")
	ErrFileTooLarge = errors.New("file too large")
)

var delimiters = []rune{';', ',', '\t'}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
}

// Parser reads CSV exports into expense params. The delimiter and the column
// layout are detected from the header row, which may be preceded by any
// number of preamble lines.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(utf8r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, ErrNoHeader
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, its resolved columns and the header row index.
func detectProfile(rows [][]string) (*Profile, columns, int) {
	for rowIdx, row := range rows {
		for i := range profiles {
			if cols, ok := profiles[i].resolve(row); ok {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, columns{}, 0
}

// parseRows extracts expenses from data rows. headerRowNum is the 0-based
// index of the header in the file, used for 1-based row numbers in errors.
func parseRows(p *Profile, cols columns, rows [][]string, headerRowNum int) ([]expense.CreateParams, error) {
	var out []expense.CreateParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		date, ok := parseDate(cellValue(row, cols.date))
		if !ok {
			// Footer, subtotal or blank line.
			continue
		}

		desc := cellValue(row, cols.desc)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok, err := rowAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !ok {
			continue
		}

		out = append(out, expense.CreateParams{
			Description: desc,
			Amount:      amount,
			Category:    cellValue(row, cols.category),
			Date:        date,
			Notes:       cellValue(row, cols.notes),
		})
	}

	return out, nil
}

// rowAmount returns the positive expense amount of a row. ok is false for
// rows that are not expenses (credits in a statement).
func rowAmount(p *Profile, cols columns, row []string) (decimal.Decimal, bool, error) {
	switch p.AmountMode {
	case amountSplit:
		debit := cellValue(row, cols.debit)
		if debit == "" {
			return decimal.Zero, false, nil
		}

		return positive(debit)
	default:
		return positive(cellValue(row, cols.amount))
	}
}

func positive(s string) (decimal.Decimal, bool, error) {
	d, err := parseAmount(s)
	if err != nil {
		return d, false, fmt.Errorf("invalid amount %q", s)
	}

	d = d.Abs()
	if d.IsZero() {
		return d, false, expense.ErrInvalidAmount
	}

	return d, true, nil
}

func parseDate(s string) (calendar.Date, bool) {
	if s == "" {
		return calendar.Date{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return calendar.FromTime(t), true
		}
	}

	if d, err := calendar.ParseDate(s); err == nil {
		return d, true
	}

	return calendar.Date{}, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
