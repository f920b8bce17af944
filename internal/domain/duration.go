package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Duration represents a coarse planning duration such as "3 days" or
// "4 hours". This is a value object; arithmetic happens on float days
// with 8 working hours per day.
type Duration string

// HoursPerDay is the working-hours conversion used for "N hours" durations
const HoursPerDay = 8.0

// NewDurationDays builds a Duration from a day count. Sub-day values
// format as hours so generated plans avoid "0.4 days".
func NewDurationDays(days float64) Duration {
	if days <= 0 {
		return ""
	}
	if days < 1 {
		return Duration(formatNumber(days*HoursPerDay) + " hours")
	}
	if days == 1 {
		return "1 day"
	}
	return Duration(formatNumber(days) + " days")
}

// Days parses the duration into a day count. The empty duration is zero
// days; unknown units are an error.
func (d Duration) Days() (float64, error) {
	s := strings.TrimSpace(strings.ToLower(string(d)))
	if s == "" {
		return 0, nil
	}

	fields := strings.Fields(s)

	// A bare number counts as days.
	if len(fields) == 1 {
		value, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", string(d))
		}
		return value, nil
	}

	if len(fields) != 2 {
		return 0, fmt.Errorf("invalid duration %q", string(d))
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", string(d))
	}

	switch fields[1] {
	case "day", "days":
		return value, nil
	case "hour", "hours":
		return value / HoursPerDay, nil
	default:
		return 0, fmt.Errorf("invalid duration unit in %q", string(d))
	}
}

// Scale multiplies the duration by a factor, preserving the zero value
func (d Duration) Scale(factor float64) (Duration, error) {
	days, err := d.Days()
	if err != nil {
		return "", err
	}
	if days == 0 {
		return "", nil
	}
	return NewDurationDays(days * factor), nil
}

// IsZero reports whether the duration is unset
func (d Duration) IsZero() bool {
	return strings.TrimSpace(string(d)) == ""
}

// String returns the string representation
func (d Duration) String() string {
	return string(d)
}

// formatNumber renders a float without a trailing ".0" for whole values
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}
