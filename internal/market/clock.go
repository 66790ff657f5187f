// Package market computes trading-session status for the NSE trading window.
package market

import (
	"fmt"
	"time"
)

// NSE regular session, minutes from midnight.
const (
	openMinute  = 9*60 + 15  // 09:15
	closeMinute = 15*60 + 30 // 15:30
)

// Status describes whether the market is open at a given instant and, when
// closed, when it opens next. Exactly one of MinutesToClose, MinutesToOpen
// and NextOpen is set.
type Status struct {
	IsOpen         bool   `json:"is_open"`
	Message        string `json:"message"`
	MinutesToClose *int   `json:"minutes_to_close,omitempty"`
	MinutesToOpen  *int   `json:"minutes_to_open,omitempty"`
	NextOpen       string `json:"next_open,omitempty"`
}

// SessionStatus reports the trading-session state for the wall-clock time of
// now, in now's location. The window is 09:15-15:30, Monday to Friday; an
// instant at exactly 15:30 counts as open with zero minutes to close.
// Pure function: no state, no I/O.
func SessionStatus(now time.Time) Status {
	day := now.Weekday()
	minute := now.Hour()*60 + now.Minute()

	if day == time.Saturday || day == time.Sunday {
		return Status{
			IsOpen:   false,
			Message:  "Market closed (Weekend)",
			NextOpen: "Monday 9:15 AM IST",
		}
	}

	if minute < openMinute {
		toOpen := openMinute - minute
		return Status{
			IsOpen:        false,
			Message:       "Market opens at 9:15 AM IST",
			MinutesToOpen: &toOpen,
		}
	}

	if minute > closeMinute {
		next := "Tomorrow 9:15 AM IST"
		if day == time.Friday {
			next = "Monday 9:15 AM IST"
		}
		return Status{
			IsOpen:   false,
			Message:  "Market closed for today",
			NextOpen: next,
		}
	}

	toClose := closeMinute - minute
	return Status{
		IsOpen:         true,
		Message:        "Market is open",
		MinutesToClose: &toClose,
	}
}

// LoadLocation resolves the market timezone, falling back to the server's
// local zone when the tz database entry is missing.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local, fmt.Errorf("unknown market timezone %q: %w", name, err)
	}
	return loc, nil
}
