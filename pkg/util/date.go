package util

import (
    "fmt"
    "time"
)

// DateLayout is the ISO calendar date format used by the upstream API.
const DateLayout = "2006-01-02"

// DateError reports a calendar date that could not be parsed.
type DateError struct {
    Field string
    Value string
    Err   error
}

func (e *DateError) Error() string {
    if e.Field == "" {
        return fmt.Sprintf("invalid date %q: %v", e.Value, e.Err)
    }
    return fmt.Sprintf("invalid %s date %q: %v", e.Field, e.Value, e.Err)
}

func (e *DateError) Unwrap() error { return e.Err }

// ParseDate parses an ISO calendar date as a naive UTC midnight.
func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return time.Time{}, &DateError{Value: s, Err: err}
    }
    return t, nil
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// Workdays returns Monday..Friday dates in [start, end], both inclusive.
func Workdays(start, end string) ([]time.Time, error) {
    from, to, err := ParseRange(start, end)
    if err != nil {
        return nil, err
    }
    return WorkdaysBetween(from, to), nil
}

// ParseRange parses both ends of an ISO date range. Errors name the failing end.
func ParseRange(start, end string) (time.Time, time.Time, error) {
    from, err := parseNamedDate("start", start)
    if err != nil {
        return time.Time{}, time.Time{}, err
    }
    to, err := parseNamedDate("end", end)
    if err != nil {
        return time.Time{}, time.Time{}, err
    }
    return from, to, nil
}

func parseNamedDate(field, s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return time.Time{}, &DateError{Field: field, Value: s, Err: err}
    }
    return t, nil
}

// WorkdaysBetween is Workdays on already parsed dates.
func WorkdaysBetween(from, to time.Time) []time.Time {
    days := make([]time.Time, 0)
    for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
        if IsWeekday(d) {
            days = append(days, d)
        }
    }
    return days
}

// IsWeekday reports whether t falls on Monday..Friday.
func IsWeekday(t time.Time) bool {
    wd := t.Weekday()
    return wd != time.Saturday && wd != time.Sunday
}

// DaysBetween returns whole calendar days from a to b; negative when b precedes a.
func DaysBetween(a, b time.Time) int {
    return int(dayNumber(b) - dayNumber(a))
}

// dayNumber counts calendar days since the unix epoch, ignoring clock and zone.
func dayNumber(t time.Time) int64 {
    d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
    return d.Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60

// CountWorkdays returns len(WorkdaysBetween(from, to)) without building the slice.
func CountWorkdays(from, to time.Time) int {
    total := DaysBetween(from, to) + 1
    if total <= 0 {
        return 0
    }
    weeks := total / 7
    n := weeks * 5
    for d := from.AddDate(0, 0, weeks*7); !d.After(to); d = d.AddDate(0, 0, 1) {
        if IsWeekday(d) {
            n++
        }
    }
    return n
}
