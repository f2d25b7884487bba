package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

func TestBuildGrid(t *testing.T) {
	type testCase struct {
		name       string
		year       int
		monthIndex int
		wantLead   int
		wantDays   int
	}

	tests := []testCase{
		{name: "Leap February", year: 2024, monthIndex: 1, wantLead: 4, wantDays: 29},
		{name: "Common February", year: 2023, monthIndex: 1, wantLead: 3, wantDays: 28},
		{name: "December", year: 2024, monthIndex: 11, wantLead: 0, wantDays: 31},
		{name: "April", year: 2024, monthIndex: 3, wantLead: 1, wantDays: 30},
		{name: "Starts Saturday", year: 2025, monthIndex: 2, wantLead: 6, wantDays: 31},
		{name: "Century Non-Leap", year: 1900, monthIndex: 1, wantLead: 4, wantDays: 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := calendar.BuildGrid(tt.year, tt.monthIndex)

			require.Len(t, cells, tt.wantLead+tt.wantDays)

			for i := range tt.wantLead {
				assert.True(t, cells[i].Empty())
				assert.True(t, cells[i].Date.IsZero())
			}

			for i, c := range cells[tt.wantLead:] {
				assert.Equal(t, i+1, c.Day)
				assert.Equal(t, i+1, c.Date.Day())
				assert.Equal(t, time.Month(tt.monthIndex+1), c.Date.Month())
				assert.Equal(t, tt.year, c.Date.Year())
			}
		})
	}
}

func TestBuildGrid_AllMonths(t *testing.T) {
	for year := 1999; year <= 2030; year++ {
		for idx := range 12 {
			cells := calendar.BuildGrid(year, idx)
			first := time.Date(year, time.Month(idx+1), 1, 0, 0, 0, 0, time.UTC)
			lead := int(first.Weekday())
			days := calendar.DaysInMonth(year, time.Month(idx+1))

			require.Len(t, cells, lead+days)

			want := 1
			for _, c := range cells[lead:] {
				require.Equal(t, want, c.Day)
				want++
			}

			assert.Equal(t, days+1, want)
		}
	}
}

func TestRows(t *testing.T) {
	cells := calendar.BuildGrid(2024, 1)
	rows := calendar.Rows(cells)

	require.Len(t, rows, 5)

	for _, r := range rows[:4] {
		assert.Len(t, r, 7)
	}

	assert.Len(t, rows[4], 5)
}

func TestMonth_Navigation(t *testing.T) {
	dec := calendar.Month{Year: 2024, Month: time.December}

	assert.Equal(t, calendar.Month{Year: 2025, Month: time.January}, dec.Next())
	assert.Equal(t, calendar.Month{Year: 2024, Month: time.November}, dec.Prev())
	assert.Equal(t, calendar.Month{Year: 2023, Month: time.December}, calendar.Month{Year: 2024, Month: time.January}.Prev())
	assert.Equal(t, "2024-02-29", calendar.Month{Year: 2024, Month: time.February}.Last().Key())
	assert.Equal(t, 11, dec.Index())
}

func TestDate_Key(t *testing.T) {
	assert.Equal(t, "2024-03-01", calendar.NewDate(2024, time.March, 1).Key())
	assert.Equal(t, "0999-12-31", calendar.NewDate(999, time.December, 31).Key())
	assert.Equal(t, "", calendar.Date{}.Key())
}

func TestParseDate(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Date Only", input: "2024-01-05", want: "2024-01-05"},
		{name: "Instant Keeps Own Offset", input: "2024-01-05T23:30:00-05:00", want: "2024-01-05"},
		{name: "UTC Instant", input: "2024-01-05T00:00:00Z", want: "2024-01-05"},
		{name: "Garbage", input: "05/01/2024", wantErr: true},
		{name: "Invalid Day", input: "2023-02-29", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calendar.ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Key())
		})
	}
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date calendar.Date  `json:"date"`
		End  *calendar.Date `json:"end"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-02-29","end":null}`), &p))
	assert.Equal(t, "2024-02-29", p.Date.Key())
	assert.Nil(t, p.End)

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-02-29","end":null}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"date":20240229}`), &p))
}

func TestDate_Scan(t *testing.T) {
	var d calendar.Date

	require.NoError(t, d.Scan(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01", d.Key())

	require.NoError(t, d.Scan("2024-03-02"))
	assert.Equal(t, "2024-03-02", d.Key())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))

	v, err := calendar.NewDate(2024, time.March, 3).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", v)
}
