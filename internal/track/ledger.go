package track

import (
	"sort"
	"time"
)

// Date identifies a calendar day in local wall-clock time, formatted as
// an ISO 8601 date string ("2006-01-02"). Dates are used only as map
// keys; string ordering matches chronological ordering.
type Date string

// DateOf returns the Date of the given instant in its location.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// Midnight returns the first instant of the date in loc. The second
// return is false if the string does not parse as a date.
func (d Date) Midnight(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", string(d), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Ledger is a task's per-day time breakdown: one entry per calendar day
// the task has recorded time on. Entries are only ever added to, never
// removed, so the ledger grows monotonically.
type Ledger struct {
	entries map[Date]Duration
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make(map[Date]Duration)}
}

// Record adds elapsed to the entry for date, creating the entry if
// absent. A zero elapsed still creates the entry, which is how the
// rollover seeds the new day.
func (l *Ledger) Record(date Date, elapsed Duration) {
	l.entries[date] = l.entries[date].Add(elapsed)
}

// Get returns the accumulated span for date.
func (l *Ledger) Get(date Date) Duration {
	return l.entries[date]
}

// Has reports whether the ledger holds an entry for date.
func (l *Ledger) Has(date Date) bool {
	_, ok := l.entries[date]
	return ok
}

// Total returns the sum of all entries.
func (l *Ledger) Total() Duration {
	var sum Duration
	for _, d := range l.entries {
		sum = sum.Add(d)
	}
	return sum
}

// Len returns the number of recorded days.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Days returns the recorded dates in chronological order.
func (l *Ledger) Days() []Date {
	days := make([]Date, 0, len(l.entries))
	for d := range l.entries {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}
