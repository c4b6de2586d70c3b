package usecase

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9]+`)
	priceRunRegex        = regexp.MustCompile(`[\d,.]+`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// NormalizeTitleKey canonicalizes a product title for use as a grouping key.
// Lower-cases, replaces non-alphanumeric runs with a single space and trims.
// An empty input yields an empty string, which is never a valid group key.
func NormalizeTitleKey(title string) string {
	if title == "" {
		return ""
	}
	s := strings.ToLower(title)
	s = nonAlphanumericRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(s, " "))
}

// ParsePrice extracts a price from noisy display text like "₹12,999.00 with offer".
// It takes the first contiguous run of digits, dots and commas, strips the
// commas and parses the remainder. Returns nil when no parseable run exists.
func ParsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	run := priceRunRegex.FindString(raw)
	if run == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(run, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}

// tokenizeQuery splits a query into lower-cased whitespace tokens
func tokenizeQuery(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// normalizeForCacheKey normalizes a string for use as a cache key component
func normalizeForCacheKey(s string) string {
	return NormalizeTitleKey(s)
}
