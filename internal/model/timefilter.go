package model

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TimeFilter is a coarse recency window applied server-side before any
// client-side search.
type TimeFilter string

const (
	TimeFilterAll   TimeFilter = "all"
	TimeFilterWeek  TimeFilter = "week"
	TimeFilterMonth TimeFilter = "month"
	TimeFilterYear  TimeFilter = "year"
)

// SplitDate parses a YYYY-MM-DD date into its parts. ok is false for
// malformed input.
func SplitDate(date string) (year, month, day int, ok bool) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, 0, false
	}
	return t.Year(), int(t.Month()), t.Day(), true
}

// Cutoff returns the earliest date (inclusive) a record may carry to pass the
// filter, relative to now. The second return is false for "all" and unknown
// values, meaning no cutoff applies.
func (f TimeFilter) Cutoff(now time.Time) (string, bool) {
	var start time.Time
	switch f {
	case TimeFilterWeek:
		start = now.AddDate(0, 0, -7)
	case TimeFilterMonth:
		start = now.AddDate(0, -1, 0)
	case TimeFilterYear:
		start = now.AddDate(-1, 0, 0)
	default:
		return "", false
	}
	return start.Format(DateLayout), true
}
