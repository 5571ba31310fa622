package utils

import (
	"strconv"
	"time"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloatPtr returns nil for empty or malformed input
func ParseFloatPtr(value string) *float64 {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &result
}

// ParseBoolPtr returns nil for empty or malformed input
func ParseBoolPtr(value string) *bool {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &result
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (UTC midnight).
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
