package calendar

import (
	"fmt"
	"time"
)

// Cell is one slot of a month grid. Leading padding cells have Day == 0 and a
// zero Date.
type Cell struct {
	Day  int
	Date Date
}

// Empty reports whether the cell is leading padding.
func (c Cell) Empty() bool { return c.Day == 0 }

// DaysInMonth uses day 0 of the following month, which time.Date resolves to
// the last day of the target month across year boundaries and leap years.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildGrid lays out a 7-column month grid starting on Sunday. monthIndex is
// zero-based (0 = January). The grid holds one empty cell per weekday before
// the 1st, then one cell per day. There is no trailing padding.
func BuildGrid(year, monthIndex int) []Cell {
	first := time.Date(year, time.Month(monthIndex+1), 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday())
	days := DaysInMonth(first.Year(), first.Month())

	cells := make([]Cell, 0, leading+days)
	for range leading {
		cells = append(cells, Cell{})
	}

	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{
			Day:  day,
			Date: NewDate(first.Year(), first.Month(), day),
		})
	}

	return cells
}

// Rows splits a grid into weeks of seven cells. The last row may be short.
func Rows(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, (len(cells)+6)/7)
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, cells[start:end])
	}

	return rows
}

// Month identifies a displayed month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// Index is the zero-based month index expected by BuildGrid.
func (m Month) Index() int { return int(m.Month) - 1 }

func (m Month) Prev() Month { return m.shift(-1) }
func (m Month) Next() Month { return m.shift(1) }

func (m Month) shift(n int) Month {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// First returns the first day of the month.
func (m Month) First() Date { return NewDate(m.Year, m.Month, 1) }

// Last returns the last day of the month.
func (m Month) Last() Date { return NewDate(m.Year, m.Month, DaysInMonth(m.Year, m.Month)) }

// Contains reports whether d falls inside the month.
func (m Month) Contains(d Date) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}
