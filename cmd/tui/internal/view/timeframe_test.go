package view

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

func TestTimeframe_Range(t *testing.T) {
	wednesday := calendar.MustParseDate("2024-03-13")
	sunday := calendar.MustParseDate("2024-03-17")
	january := calendar.MustParseDate("2024-01-10")

	type testCase struct {
		name     string
		frame    Timeframe
		today    calendar.Date
		from, to string
	}

	tests := []testCase{
		{name: "ThisWeek", frame: TimeframeThisWeek, today: wednesday, from: "2024-03-11", to: "2024-03-13"},
		{name: "ThisWeekOnSunday", frame: TimeframeThisWeek, today: sunday, from: "2024-03-11", to: "2024-03-17"},
		{name: "LastWeek", frame: TimeframeLastWeek, today: wednesday, from: "2024-03-04", to: "2024-03-10"},
		{name: "ThisMonth", frame: TimeframeThisMonth, today: wednesday, from: "2024-03-01", to: "2024-03-13"},
		{name: "LastMonthLeap", frame: TimeframeLastMonth, today: wednesday, from: "2024-02-01", to: "2024-02-29"},
		{name: "LastMonthAcrossYear", frame: TimeframeLastMonth, today: january, from: "2023-12-01", to: "2023-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := tt.frame.Range(tt.today)
			assert.Equal(t, tt.from, from.Key())
			assert.Equal(t, tt.to, to.Key())
		})
	}

	from, to := TimeframeAll.Range(wednesday)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", from.Key())
	assert.Equal(t, "2024-01-31", to.Key())

	_, _, err = parseRange("2024-13-01", "2024-01-31")
	assert.EqualError(t, err, "invalid start date (YYYY-MM-DD)")

	_, _, err = parseRange("2024-01-01", "")
	assert.EqualError(t, err, "invalid end date (YYYY-MM-DD)")

	_, _, err = parseRange("2024-02-01", "2024-01-31")
	assert.EqualError(t, err, "end date is before start date")
}

func TestTimeframePicker_Select(t *testing.T) {
	today := func() calendar.Date { return calendar.MustParseDate("2024-03-13") }
	p := NewTimeframePicker(TimeframeThisMonth, today)

	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "2024-03-01", msg.From.Key())
	assert.Equal(t, "2024-03-13", msg.To.Key())

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok = cmd().(TimeframeSelectedMsg)
	require.True(t, ok)
	assert.True(t, msg.All)
	assert.Nil(t, msg.From)
}
