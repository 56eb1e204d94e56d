package util

import (
    "fmt"
    "strings"
    "time"
)

// DateLayout is the on-disk and wire format of a calendar day.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day in t's own location.
func Day(t time.Time) time.Time {
    y, m, d := t.Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
    t, err := time.Parse(DateLayout, strings.TrimSpace(s))
    if err != nil {
        return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
    }
    return t, nil
}

// ParseDateLayout parses s with a caller supplied layout and truncates to a day.
func ParseDateLayout(layout, s string) (time.Time, error) {
    if layout == "" {
        layout = DateLayout
    }
    t, err := time.Parse(layout, strings.TrimSpace(s))
    if err != nil {
        return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
    }
    return Day(t), nil
}

// FormatDate renders a calendar day as YYYY-MM-DD.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
    return Day(a).Equal(Day(b))
}

// YearsBefore returns the calendar day that is n years before now.
// 2030-01-01 minus 5 years is 2025-01-01.
func YearsBefore(now time.Time, n int) time.Time {
    return Day(now).AddDate(-n, 0, 0)
}

// PeriodStart maps a dashboard period token to the first day of the window.
// Accepted tokens: 1w, 1m, 3m, 6m, 1y, 3y, 5y. Unknown tokens fall back to 1y.
func PeriodStart(now time.Time, period string) time.Time {
    d := Day(now)
    switch strings.ToLower(strings.TrimSpace(period)) {
    case "1w":
        return d.AddDate(0, 0, -7)
    case "1m":
        return d.AddDate(0, 0, -30)
    case "3m":
        return d.AddDate(0, 0, -90)
    case "6m":
        return d.AddDate(0, 0, -180)
    case "3y":
        return d.AddDate(-3, 0, 0)
    case "5y":
        return d.AddDate(-5, 0, 0)
    default:
        return d.AddDate(-1, 0, 0)
    }
}
