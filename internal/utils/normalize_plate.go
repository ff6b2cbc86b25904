package utils

import "strings"

// NormalizePlate reduces a plate string to its canonical lookup form:
// uppercase with spaces, hyphens and dots removed. Used as the deduplication
// key during recognition and for plate queries.
func NormalizePlate(raw string) string {
	normalized := strings.TrimSpace(raw)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.ReplaceAll(normalized, ".", "")
	return strings.ToUpper(normalized)
}
