package utils

import (
	"strconv"
	"strings"
)

// MaxLimit bounds every listing page, whatever the client asks for.
const MaxLimit = 500

// ParseLimit reads the limit query parameter. Zero means no explicit limit
// was given; anything above MaxLimit is clamped.
func ParseLimit(s string) int {
	limit, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || limit <= 0 {
		return 0
	}

	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}
