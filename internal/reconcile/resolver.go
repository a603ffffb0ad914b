package reconcile

import (
	"regexp"
	"strings"

	"wbprofit/pkg/contracts/domain"
)

var (
	idArticlePattern = regexp.MustCompile(`(?i)^id[-_](\d+)`)
	digitRunPattern  = regexp.MustCompile(`\d{3,}`)
)

// ResolvePurchasePrice maps a sale row to a unit purchase price from the
// catalog. Candidate keys are tried in order: the digit run of an "id-" or
// "id_" prefixed supplier article first, then every 3+ digit token of the
// nomenclature code, then of the barcode. The first candidate present in the
// catalog wins. A failed resolution is not an error: suppliers frequently
// lack full data and the report must still complete, so the caller treats
// ok == false as a zero purchase price.
func ResolvePurchasePrice(row domain.StatementRow, catalog domain.PriceCatalog) (price float64, ok bool) {
	for _, candidate := range priceCandidates(row) {
		if p, found := catalog[candidate]; found {
			return p, true
		}
	}
	return 0, false
}

// priceCandidates builds the ordered, deduplicated candidate key list for a
// row. Every candidate is normalized by stripping leading zeros, an empty
// result collapsing to "0".
func priceCandidates(row domain.StatementRow) []string {
	var candidates []string
	seen := make(map[string]bool)

	add := func(token string) {
		normalized := strings.TrimLeft(token, "0")
		if normalized == "" {
			normalized = "0"
		}
		if !seen[normalized] {
			seen[normalized] = true
			candidates = append(candidates, normalized)
		}
	}

	if m := idArticlePattern.FindStringSubmatch(row.SupplierArticle); m != nil {
		add(m[1])
	}
	for _, field := range []string{row.NomenclatureCode, row.Barcode} {
		for _, token := range digitRunPattern.FindAllString(field, -1) {
			add(token)
		}
	}
	return candidates
}
