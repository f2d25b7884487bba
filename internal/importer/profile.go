package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle means one amount column; a leading minus is dropped.
	amountSingle amountMode = iota
	// amountSplit means separate debit and credit columns. Only debits are
	// expenses.
	amountSplit
)

// Profile describes a CSV layout by the header names each column may carry.
// Header matching is case-insensitive.
type Profile struct {
	Name       string
	Date       []string
	Desc       []string
	AmountMode amountMode
	Amount     []string // used when AmountMode == amountSingle
	Debit      []string // used when AmountMode == amountSplit
	Credit     []string // used when AmountMode == amountSplit
	Category   []string // optional
	Notes      []string // optional
}

// columns holds resolved column indices; -1 means absent.
type columns struct {
	date, desc, amount, debit, credit, category, notes int
}

func (p *Profile) resolve(header []string) (columns, bool) {
	index := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if name == "" {
			continue
		}

		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	find := func(names []string) int {
		for _, n := range names {
			if i, ok := index[strings.ToLower(n)]; ok {
				return i
			}
		}

		return -1
	}

	c := columns{
		date:     find(p.Date),
		desc:     find(p.Desc),
		amount:   find(p.Amount),
		debit:    find(p.Debit),
		credit:   find(p.Credit),
		category: find(p.Category),
		notes:    find(p.Notes),
	}

	if c.date < 0 || c.desc < 0 {
		return c, false
	}

	switch p.AmountMode {
	case amountSingle:
		return c, c.amount >= 0
	case amountSplit:
		return c, c.debit >= 0
	}

	return c, false
}

// profiles is tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:       "statement",
		Date:       []string{"date", "data", "data mov.", "transaction date", "posting date"},
		Desc:       []string{"description", "descrição", "details", "narration"},
		AmountMode: amountSplit,
		Debit:      []string{"debit", "débito", "withdrawal", "withdrawal amt."},
		Credit:     []string{"credit", "crédito", "deposit", "deposit amt."},
		Category:   []string{"category", "categoria"},
		Notes:      []string{"notes", "memo", "reference"},
	},
	{
		Name:       "tally",
		Date:       []string{"date", "data", "data mov.", "transaction date"},
		Desc:       []string{"description", "descrição", "details", "narration"},
		AmountMode: amountSingle,
		Amount:     []string{"amount", "montante", "value", "movimento"},
		Category:   []string{"category", "categoria"},
		Notes:      []string{"notes", "memo", "reference"},
	},
}
