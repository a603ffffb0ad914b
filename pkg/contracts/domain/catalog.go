package domain

import (
	"strconv"
	"strings"
)

// PriceCatalog maps a normalized supplier external ID to a unit purchase
// price. Duplicate IDs overwrite on insert, so the last catalog entry wins.
type PriceCatalog map[string]float64

// NormalizeExternalID brings a raw catalog identifier to its canonical form:
// leading zeros stripped, an empty result collapsing to "0". Identifiers
// exported through spreadsheets often arrive as "123.0"; the fractional part
// is discarded.
func NormalizeExternalID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64); err == nil {
		if f < 0 {
			return "", false
		}
		return strconv.FormatInt(int64(f), 10), true
	}
	digits := strings.TrimLeft(s, "0")
	if digits == "" {
		digits = "0"
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return digits, true
}
