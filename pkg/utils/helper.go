package utils

import (
	"math"
	"strconv"
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

	if result < 0 {
		return defaultValue
	}

	return result
}

// ParseID parses a positive path identifier
func ParseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// CalculateOffset converts a zero-based page into a row offset. Pages past
// the addressable range saturate at math.MaxInt, which selects no rows.
func CalculateOffset(page, perPage int) int {
	if page < 0 || perPage < 0 {
		return 0
	}
	if perPage > 0 && page > math.MaxInt/perPage {
		return math.MaxInt
	}
	return page * perPage
}
