package prompt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/santaclaude2025/tgstats/pkg/stats"
)

// DateLayout is the operator-facing date format (DD.MM.YYYY)
const DateLayout = "02.01.2006"

// ErrInvalidInput is returned for operator input that cannot be parsed
var ErrInvalidInput = errors.New("invalid input")

// ParseDateRange parses "DD.MM.YYYY" or "DD.MM.YYYY - DD.MM.YYYY" into
// midnight of each day in loc. A single date yields start == end.
func ParseDateRange(input string, loc *time.Location) (start, end time.Time, err error) {
	first, second, isRange := strings.Cut(input, "-")

	start, err = parseDate(first, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !isRange {
		return start, start, nil
	}

	end, err = parseDate(second, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidInput, end.Format(DateLayout), start.Format(DateLayout))
	}
	return start, end, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", ErrInvalidInput, s)
	}
	return t, nil
}

// ParseWorkingHours parses "HH:MM - HH:MM", falling back to def when input is blank
func ParseWorkingHours(input, def string) (stats.WorkingHours, error) {
	if strings.TrimSpace(input) == "" {
		input = def
	}
	wh, err := stats.ParseWorkingHours(input)
	if err != nil {
		return stats.WorkingHours{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return wh, nil
}

// ParseChoice parses a 1-based menu choice in [1, max]
func ParseChoice(input string, max int) (int, error) {
	input = strings.TrimSpace(input)

	num, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number: %q", ErrInvalidInput, input)
	}
	if num < 1 || num > max {
		return 0, fmt.Errorf("%w: invalid selection: %d (valid: 1-%d)", ErrInvalidInput, num, max)
	}
	return num, nil
}

// ChoiceRange renders the accepted range of a menu with n items, e.g. "1-3" or "1"
func ChoiceRange(n int) string {
	if n >= 2 {
		return fmt.Sprintf("1-%d", n)
	}
	return "1"
}
