package stats

import (
	"errors"
	"time"
)

var ErrUnknownPeriod = errors.New("unknown period")

type Period string

const (
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod accepts the query value; empty means today.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "", PeriodToday:
		return PeriodToday, nil
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	}
	return "", ErrUnknownPeriod
}

// Since returns the window start for now. Today is aligned to local midnight
// in now's location; week and month are rolling windows.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodWeek:
		return now.Add(-7 * 24 * time.Hour)
	case PeriodMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return StartOfDay(now)
	}
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
