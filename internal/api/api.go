// Package api holds the JSON bodies exchanged between the expense store and
// its clients.
package api

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

func init() {
	// Amounts travel as JSON numbers. Decoding accepts numbers and strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type Message struct {
	Message string `json:"message"`
}

type Expense struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        calendar.Date   `json:"date"`
	Notes       string          `json:"notes"`
}

func FromExpense(e *expense.Expense) Expense {
	return Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

func FromExpenses(list []*expense.Expense) []Expense {
	out := make([]Expense, len(list))
	for i, e := range list {
		out[i] = FromExpense(e)
	}

	return out
}

func (e Expense) ToDomain() *expense.Expense {
	return &expense.Expense{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

func ToDomain(list []Expense) []*expense.Expense {
	out := make([]*expense.Expense, len(list))
	for i, e := range list {
		out[i] = e.ToDomain()
	}

	return out
}

// ExpenseRequest is the body of add and update calls. Updates replace the
// whole record.
type ExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        calendar.Date   `json:"date"`
	Notes       string          `json:"notes"`
}

func (r ExpenseRequest) Params() expense.CreateParams {
	return expense.CreateParams{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
		Date:        r.Date,
		Notes:       r.Notes,
	}
}

func FromParams(p expense.CreateParams) ExpenseRequest {
	return ExpenseRequest{
		Description: p.Description,
		Amount:      p.Amount,
		Category:    p.Category,
		Date:        p.Date,
		Notes:       p.Notes,
	}
}

type ExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type CategoryTotal struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type DayTotal struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type MonthTotal struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// OverviewResponse is the dashboard payload of GET /expenses.
type OverviewResponse struct {
	Expenses     []Expense       `json:"expenses"`
	CategoryData []CategoryTotal `json:"categoryData"`
	DailyData    []DayTotal      `json:"dailyData"`
	MonthlyData  []MonthTotal    `json:"monthlyData"`
}

func FromOverview(o *expense.Overview) OverviewResponse {
	resp := OverviewResponse{
		Expenses:     FromExpenses(o.Expenses),
		CategoryData: make([]CategoryTotal, len(o.Summary.Categories)),
		DailyData:    make([]DayTotal, len(o.Summary.Daily)),
		MonthlyData:  make([]MonthTotal, len(o.Summary.Monthly)),
	}

	for i, c := range o.Summary.Categories {
		resp.CategoryData[i] = CategoryTotal{Name: c.Name, Value: c.Value}
	}

	for i, d := range o.Summary.Daily {
		resp.DailyData[i] = DayTotal{Date: d.Label, Amount: d.Amount}
	}

	for i, m := range o.Summary.Monthly {
		resp.MonthlyData[i] = MonthTotal{Month: m.Label, Amount: m.Amount}
	}

	return resp
}

type ImportResponse struct {
	Imported int       `json:"imported"`
	Expenses []Expense `json:"expenses"`
}

type Conflict struct {
	Incoming ExpenseRequest `json:"incoming"`
	Existing Expense        `json:"existing"`
}

// ImportConflictResponse is returned with 409 when uploaded rows match stored
// expenses. Nothing was written.
type ImportConflictResponse struct {
	Message   string           `json:"message"`
	New       []ExpenseRequest `json:"new"`
	Conflicts []Conflict       `json:"conflicts"`
}

type ConfirmImportRequest struct {
	Expenses []ExpenseRequest `json:"expenses"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}

type RecurringExpense struct {
	ID            uuid.UUID       `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Frequency     string          `json:"frequency"`
	StartDate     calendar.Date   `json:"startDate"`
	EndDate       *calendar.Date  `json:"endDate"`
	Notes         string          `json:"notes"`
	LastGenerated *calendar.Date  `json:"lastGenerated"`
}

func FromTemplate(t *recurring.Template) RecurringExpense {
	return RecurringExpense{
		ID:            t.ID,
		Description:   t.Description,
		Amount:        t.Amount,
		Category:      t.Category,
		Frequency:     string(t.Frequency),
		StartDate:     t.StartDate,
		EndDate:       t.EndDate,
		Notes:         t.Notes,
		LastGenerated: t.LastGenerated,
	}
}

func (r RecurringExpense) ToTemplate() *recurring.Template {
	return &recurring.Template{
		ID:            r.ID,
		Description:   r.Description,
		Amount:        r.Amount,
		Category:      r.Category,
		Frequency:     recurring.Frequency(r.Frequency),
		StartDate:     r.StartDate,
		EndDate:       r.EndDate,
		Notes:         r.Notes,
		LastGenerated: r.LastGenerated,
	}
}

type RecurringRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency"`
	StartDate   calendar.Date   `json:"startDate"`
	EndDate     *calendar.Date  `json:"endDate"`
	Notes       string          `json:"notes"`
}

type RecurringResponse struct {
	RecurringExpenses []RecurringExpense `json:"recurringExpenses"`
}

type OccurrencesResponse struct {
	Dates []calendar.Date `json:"dates"`
}

type SuggestResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

type Rule struct {
	ID       uuid.UUID `json:"id"`
	Pattern  string    `json:"pattern"`
	Category string    `json:"category"`
}

func FromRule(r *matching.Rule) Rule {
	return Rule{ID: r.ID, Pattern: r.Pattern, Category: r.Category}
}

type RuleRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

type RulesResponse struct {
	Rules []Rule `json:"rules"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Expenses int    `json:"expenses"`
}
