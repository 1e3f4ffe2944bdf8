package collector

import (
	"fmt"
	"time"

	"DayTradeDesk/internal/customerrors"
)

// DefaultPeriod is the look-back window of the dashboard.
const DefaultPeriod = "6mo"

// periodSessions approximates the number of trading sessions in each period token.
var periodSessions = map[string]int{
	"1d":  1,
	"5d":  5,
	"1mo": 22,
	"3mo": 66,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
	"10y": 2520,
	"ytd": 0,
	"max": 0,
}

// ValidatePeriod reports whether period is a supported duration token.
func ValidatePeriod(period string) error {
	if _, ok := periodSessions[period]; !ok {
		return fmt.Errorf("period %q: %w", period, customerrors.ErrInvalidParameter)
	}
	return nil
}

// PeriodStart returns the first calendar day covered by period, counted back from now.
func PeriodStart(now time.Time, period string) (time.Time, error) {
	if err := ValidatePeriod(period); err != nil {
		return time.Time{}, err
	}
	switch period {
	case "1d":
		return now.AddDate(0, 0, -1), nil
	case "5d":
		return now.AddDate(0, 0, -7), nil
	case "1mo":
		return now.AddDate(0, -1, 0), nil
	case "3mo":
		return now.AddDate(0, -3, 0), nil
	case "6mo":
		return now.AddDate(0, -6, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	case "2y":
		return now.AddDate(-2, 0, 0), nil
	case "5y":
		return now.AddDate(-5, 0, 0), nil
	case "10y":
		return now.AddDate(-10, 0, 0), nil
	case "ytd":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), nil
	default: // max
		return time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
}

// PeriodSessions returns how many daily bars to request for period.
func PeriodSessions(now time.Time, period string) (int, error) {
	start, err := PeriodStart(now, period)
	if err != nil {
		return 0, err
	}
	if n := periodSessions[period]; n > 0 {
		return n, nil
	}
	// ytd and max: count weekdays
	days := 0
	for d := start; d.Before(now); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
		if period == "max" && days >= 20000 {
			break
		}
	}
	if days == 0 {
		days = 1
	}
	return days, nil
}
