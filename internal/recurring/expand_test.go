package recurring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
	"github.com/MrJamesThe3rd/tally/internal/recurring"
)

func d(s string) calendar.Date { return calendar.MustParseDate(s) }

func keys(ds []calendar.Date) []string {
	out := make([]string, len(ds))
	for i, x := range ds {
		out[i] = x.Key()
	}

	return out
}

func TestOccurrenceAt(t *testing.T) {
	type testCase struct {
		name      string
		frequency recurring.Frequency
		start     string
		want      []string
	}

	tests := []testCase{
		{
			name:      "Daily",
			frequency: recurring.Daily,
			start:     "2024-02-27",
			want:      []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"},
		},
		{
			name:      "Weekly",
			frequency: recurring.Weekly,
			start:     "2024-12-25",
			want:      []string{"2024-12-25", "2025-01-01", "2025-01-08", "2025-01-15"},
		},
		{
			name:      "Biweekly",
			frequency: recurring.Biweekly,
			start:     "2024-01-01",
			want:      []string{"2024-01-01", "2024-01-15", "2024-01-29", "2024-02-12"},
		},
		{
			name:      "MonthlyClampsToMonthEnd",
			frequency: recurring.Monthly,
			start:     "2024-01-31",
			want:      []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"},
		},
		{
			name:      "MonthlyAcrossYear",
			frequency: recurring.Monthly,
			start:     "2023-11-15",
			want:      []string{"2023-11-15", "2023-12-15", "2024-01-15", "2024-02-15"},
		},
		{
			name:      "Quarterly",
			frequency: recurring.Quarterly,
			start:     "2023-11-30",
			want:      []string{"2023-11-30", "2024-02-29", "2024-05-30", "2024-08-30"},
		},
		{
			name:      "Biannually",
			frequency: recurring.Biannually,
			start:     "2023-08-31",
			want:      []string{"2023-08-31", "2024-02-29", "2024-08-31", "2025-02-28"},
		},
		{
			name:      "AnnuallyLeapDay",
			frequency: recurring.Annually,
			start:     "2024-02-29",
			want:      []string{"2024-02-29", "2025-02-28", "2026-02-28", "2027-02-28", "2028-02-29"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &recurring.Template{Frequency: tt.frequency, StartDate: d(tt.start)}

			got := make([]string, len(tt.want))
			for k := range tt.want {
				got[k] = recurring.OccurrenceAt(tmpl, k).Key()
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOnOrAfter(t *testing.T) {
	end := d("2024-06-30")

	type testCase struct {
		name     string
		template recurring.Template
		from     string
		want     string
		wantOK   bool
	}

	tests := []testCase{
		{
			name:     "BeforeStartReturnsStart",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01")},
			from:     "2024-01-01",
			want:     "2024-03-01",
			wantOK:   true,
		},
		{
			name:     "OnOccurrence",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01")},
			from:     "2024-03-15",
			want:     "2024-03-15",
			wantOK:   true,
		},
		{
			name:     "BetweenOccurrences",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01")},
			from:     "2024-03-16",
			want:     "2024-03-22",
			wantOK:   true,
		},
		{
			name:     "QuarterlySkipsToNextQuarter",
			template: recurring.Template{Frequency: recurring.Quarterly, StartDate: d("2024-01-15")},
			from:     "2024-04-20",
			want:     "2024-07-15",
			wantOK:   true,
		},
		{
			name:     "MonthlyClampedOccurrence",
			template: recurring.Template{Frequency: recurring.Monthly, StartDate: d("2024-01-31")},
			from:     "2024-02-10",
			want:     "2024-02-29",
			wantOK:   true,
		},
		{
			name:     "EndDateInclusive",
			template: recurring.Template{Frequency: recurring.Monthly, StartDate: d("2024-01-30"), EndDate: &end},
			from:     "2024-06-01",
			want:     "2024-06-30",
			wantOK:   true,
		},
		{
			name:     "PastEndDate",
			template: recurring.Template{Frequency: recurring.Monthly, StartDate: d("2024-01-30"), EndDate: &end},
			from:     "2024-07-01",
			wantOK:   false,
		},
		{
			name:     "InvalidFrequency",
			template: recurring.Template{Frequency: "hourly", StartDate: d("2024-01-01")},
			from:     "2024-01-01",
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := recurring.NextOnOrAfter(&tt.template, d(tt.from))
			assert.Equal(t, tt.wantOK, ok)

			if tt.wantOK {
				assert.Equal(t, tt.want, got.Key())
			}
		})
	}
}

func TestOccurrences(t *testing.T) {
	end := d("2024-03-20")
	tmpl := &recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01"), EndDate: &end}

	assert.Equal(t,
		[]string{"2024-03-08", "2024-03-15"},
		keys(recurring.Occurrences(tmpl, d("2024-03-02"), d("2024-04-30"))),
	)

	assert.Empty(t, recurring.Occurrences(tmpl, d("2024-03-09"), d("2024-03-14")))
	assert.Empty(t, recurring.Occurrences(tmpl, d("2024-03-10"), d("2024-03-01")))
}

func TestDue(t *testing.T) {
	last := d("2024-03-08")

	type testCase struct {
		name     string
		template recurring.Template
		today    string
		want     []string
	}

	tests := []testCase{
		{
			name:     "NeverGeneratedIncludesStart",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01")},
			today:    "2024-03-15",
			want:     []string{"2024-03-01", "2024-03-08", "2024-03-15"},
		},
		{
			name:     "AfterLastGenerated",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01"), LastGenerated: &last},
			today:    "2024-03-22",
			want:     []string{"2024-03-15", "2024-03-22"},
		},
		{
			name:     "NotStartedYet",
			template: recurring.Template{Frequency: recurring.Daily, StartDate: d("2024-04-01")},
			today:    "2024-03-22",
			want:     []string{},
		},
		{
			name:     "UpToDate",
			template: recurring.Template{Frequency: recurring.Weekly, StartDate: d("2024-03-01"), LastGenerated: &last},
			today:    "2024-03-14",
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, keys(recurring.Due(&tt.template, d(tt.today))))
		})
	}
}

func TestParseFrequency(t *testing.T) {
	f, err := recurring.ParseFrequency(" Monthly ")
	assert.NoError(t, err)
	assert.Equal(t, recurring.Monthly, f)

	_, err = recurring.ParseFrequency("hourly")
	assert.ErrorIs(t, err, recurring.ErrInvalidFrequency)
	assert.True(t, recurring.IsValidation(err))
}
