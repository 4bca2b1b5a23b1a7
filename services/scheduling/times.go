package scheduling

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// parseClock converts a zero-padded "15:04" string to minutes from midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatClock converts minutes from midnight to a zero-padded "15:04" string.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddMinutes shifts a "15:04" wall-clock value forward.
func AddMinutes(clock string, minutes int) (string, error) {
	start, err := parseClock(clock)
	if err != nil {
		return "", err
	}
	return formatClock(start + minutes), nil
}

// WeekdayName resolves the weekday name ("Monday" .. "Sunday") of a
// "2006-01-02" date.
func WeekdayName(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	return d.Weekday().String(), nil
}
