package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParsePositiveInt parses s as an integer >= 1. Positive values too large for int
// saturate at math.MaxInt; anything else yields fallback.
func ParsePositiveInt(s string, fallback int) int {
	s = strings.TrimSpace(s)
	i, err := strconv.Atoi(s)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(s, "-") {
			return math.MaxInt
		}
		return fallback
	}
	if i < 1 {
		return fallback
	}
	return i
}

// ParseBool parses an optional boolean filter. Empty or invalid input yields nil.
func ParseBool(s string) *bool {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &v
}
