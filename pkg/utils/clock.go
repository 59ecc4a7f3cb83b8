package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" string into minutes after midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid minute in %q", value)
	}

	return hours*60 + minutes, nil
}

// FormatClock renders minutes after midnight as "HH:MM", wrapping past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % MINUTES_PER_DAY) + MINUTES_PER_DAY) % MINUTES_PER_DAY
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDuration renders a minute count as "2H05".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dH%02d", minutes/60, minutes%60)
}
