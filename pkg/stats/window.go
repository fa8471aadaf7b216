package stats

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidWindow is returned for a working-hours window whose end is not after its start
var ErrInvalidWindow = errors.New("working hours end must be after start")

// WorkingHours is a same-day time-of-day window. Start and End are offsets from midnight.
type WorkingHours struct {
	Start time.Duration
	End   time.Duration
}

// NewWorkingHours validates and builds a window
func NewWorkingHours(start, end time.Duration) (WorkingHours, error) {
	if start < 0 || end > 24*time.Hour || end <= start {
		return WorkingHours{}, fmt.Errorf("%w: %s - %s", ErrInvalidWindow, clock(start), clock(end))
	}
	return WorkingHours{Start: start, End: end}, nil
}

// ParseWorkingHours parses "HH:MM - HH:MM"
func ParseWorkingHours(s string) (WorkingHours, error) {
	startStr, endStr, found := strings.Cut(s, "-")
	if !found {
		return WorkingHours{}, fmt.Errorf("expected HH:MM - HH:MM, got %q", s)
	}

	start, err := parseClock(startStr)
	if err != nil {
		return WorkingHours{}, err
	}
	end, err := parseClock(endStr)
	if err != nil {
		return WorkingHours{}, err
	}

	return NewWorkingHours(start, end)
}

// Bounds returns the window anchored on the calendar date of t, in t's location
func (w WorkingHours) Bounds(t time.Time) (start, end time.Time) {
	return atClock(t, w.Start), atClock(t, w.End)
}

// atClock uses wall-clock fields so DST transitions do not shift the window
func atClock(t time.Time, d time.Duration) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(),
		int(d/time.Hour), int(d%time.Hour/time.Minute), int(d%time.Minute/time.Second), 0, t.Location())
}

func (w WorkingHours) String() string {
	return clock(w.Start) + " - " + clock(w.End)
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", strings.TrimSpace(s))
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func clock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}
