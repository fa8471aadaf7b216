package utils

import (
	"testing"
	"time"
)

func TestFormatShortDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero floors to one second", 0, "1с"},
		{"sub-second floors to one second", 400 * time.Millisecond, "1с"},
		{"seconds only", 42 * time.Second, "42с"},
		{"minute and a half", 90 * time.Second, "1м 30с"},
		{"whole minute keeps zero seconds", time.Minute, "1м 0с"},
		{"hour without minutes", time.Hour, "1ч 0с"},
		{"hours minutes seconds", 2*time.Hour + 5*time.Minute + 7*time.Second, "2ч 5м 7с"},
		{"truncates fractions", 59*time.Second + 999*time.Millisecond, "59с"},
		{"typing estimate of 100 chars", 30 * time.Second, "30с"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatShortDuration(tt.in); got != tt.want {
				t.Errorf("FormatShortDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatLongDuration(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "0с"},
		{"seconds", 45 * time.Second, "45с"},
		{"minutes keep seconds", 5 * time.Minute, "5м 0с"},
		{"hours keep minutes", time.Hour + 3*time.Second, "1ч 0м 3с"},
		{"twenty five hours", 90000 * time.Second, "1д 1ч 0м 0с"},
		{"several days", 3*24*time.Hour + 30*time.Minute, "3д 0ч 30м 0с"},
		{"negative clamps", -5 * time.Second, "0с"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatLongDuration(tt.in); got != tt.want {
				t.Errorf("FormatLongDuration(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatOptionalDuration(t *testing.T) {
	if got := FormatOptionalDuration(0, false); got != NotAvailable {
		t.Errorf("missing average = %q, want %q", got, NotAvailable)
	}
	if got := FormatOptionalDuration(300*time.Second, true); got != "5м 0с" {
		t.Errorf("present average = %q, want %q", got, "5м 0с")
	}
}
