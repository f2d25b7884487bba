package recurring

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/calendar"
)

// OccurrenceAt returns the k-th occurrence (k >= 0) of t, ignoring EndDate.
// Month-based frequencies keep the start day, clamped to the target month's
// last day, so Jan 31 monthly gives Feb 29 (or 28) then Mar 31.
func OccurrenceAt(t *Template, k int) calendar.Date {
	days, months := t.Frequency.step()
	if months == 0 {
		return t.StartDate.AddDays(k * days)
	}

	return addMonthsClamped(t.StartDate, k*months)
}

func addMonthsClamped(d calendar.Date, n int) calendar.Date {
	total := int(d.Month()) - 1 + n
	year := d.Year() + total/12
	month := total % 12

	if month < 0 {
		month += 12
		year--
	}

	m := time.Month(month + 1)
	day := min(d.Day(), calendar.DaysInMonth(year, m))

	return calendar.NewDate(year, m, day)
}

// firstIndex returns the smallest k whose occurrence is on or after d.
func firstIndex(t *Template, d calendar.Date) int {
	if !d.After(t.StartDate) {
		return 0
	}

	days, months := t.Frequency.step()
	if months == 0 {
		diff := daysBetween(t.StartDate, d)
		return (diff + days - 1) / days
	}

	diff := (d.Year()-t.StartDate.Year())*12 + int(d.Month()) - int(t.StartDate.Month())
	k := diff / months

	// The k-th occurrence lands in or before d's month and the next one after it.
	if OccurrenceAt(t, k).Before(d) {
		k++
	}

	return k
}

// NextOnOrAfter returns the first occurrence on or after d. ok is false when
// the template ends before that occurrence.
func NextOnOrAfter(t *Template, d calendar.Date) (next calendar.Date, ok bool) {
	if !t.Frequency.Valid() || t.StartDate.IsZero() {
		return calendar.Date{}, false
	}

	next = OccurrenceAt(t, firstIndex(t, d))
	if t.EndDate != nil && next.After(*t.EndDate) {
		return calendar.Date{}, false
	}

	return next, true
}

// Occurrences returns every occurrence within [from, to] that also falls in
// [StartDate, EndDate], in ascending order.
func Occurrences(t *Template, from, to calendar.Date) []calendar.Date {
	if !t.Frequency.Valid() || t.StartDate.IsZero() || to.Before(from) {
		return nil
	}

	last := to
	if t.EndDate != nil && t.EndDate.Before(last) {
		last = *t.EndDate
	}

	var out []calendar.Date

	for k := firstIndex(t, from); ; k++ {
		d := OccurrenceAt(t, k)
		if d.After(last) {
			break
		}

		out = append(out, d)
	}

	return out
}

// Due returns the occurrences the generator still has to materialize as of
// today: those after LastGenerated (or from StartDate when nothing was
// generated yet) through today.
func Due(t *Template, today calendar.Date) []calendar.Date {
	from := t.StartDate
	if t.LastGenerated != nil {
		from = t.LastGenerated.AddDays(1)
	}

	return Occurrences(t, from, today)
}

func daysBetween(a, b calendar.Date) int {
	return int(b.Time().Sub(a.Time()) / (24 * time.Hour))
}
