package utils

import (
	"fmt"
	"strings"
	"time"
)

// NotAvailable is printed in place of a value that could not be computed
const NotAvailable = "N/A"

// FormatShortDuration formats d as "Hч Mм Sс", dropping zero hours and minutes.
// Seconds are always shown and a zero duration prints as "1с".
func FormatShortDuration(d time.Duration) string {
	total := wholeSeconds(d)
	if total == 0 {
		return "1с"
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dч", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dм", minutes))
	}
	parts = append(parts, fmt.Sprintf("%dс", seconds))
	return strings.Join(parts, " ")
}

// FormatLongDuration formats d as "Dд Hч Mм Sс". A unit is printed once it
// or any larger unit is nonzero; seconds are always printed.
func FormatLongDuration(d time.Duration) string {
	total := wholeSeconds(d)

	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dд", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dч", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dм", minutes))
	}
	parts = append(parts, fmt.Sprintf("%dс", seconds))
	return strings.Join(parts, " ")
}

// FormatOptionalDuration formats an average that may not exist
func FormatOptionalDuration(d time.Duration, ok bool) string {
	if !ok {
		return NotAvailable
	}
	return FormatLongDuration(d)
}

// wholeSeconds truncates d to whole seconds; negative values clamp to zero
func wholeSeconds(d time.Duration) int64 {
	if d < 0 {
		return 0
	}
	return int64(d / time.Second)
}
