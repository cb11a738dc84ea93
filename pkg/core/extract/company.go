package extract

import (
	"path/filepath"
	"regexp"
	"strings"
)

// companyNameScanRows bounds the header region scanned for a company name.
const companyNameScanRows = 10

// Legal-suffix tokens that strongly suggest a cell holds a company name.
// Matched on word boundaries so "Income" does not trip the "Inc" token.
var companySuffixRe = regexp.MustCompile(`(?i)\b(inc|corp|corporation|company|ltd|llc|plc)\b`)

// DetectCompanyName scans the first rows of each table, in row-major order,
// for a plausible company name. First suffix-token match wins. If no cell
// carries a legal suffix, the longest free-text cell in the scanned region is
// used, provided it does not look like a line-item label (no digits, no
// parenthesized units, not a statement heading). Returns "" when nothing
// plausible is found; callers fall back to the source filename.
func DetectCompanyName(tables []*RawTable) string {
	// First pass: legal suffix tokens.
	for _, t := range tables {
		for r := 0; r < companyNameScanRows && r < t.RowCount(); r++ {
			for c := 0; c < t.ColCount(); c++ {
				cell := t.At(r, c)
				if cell.Kind != CellText {
					continue
				}
				text := strings.TrimSpace(cell.Text)
				if text != "" && companySuffixRe.MatchString(text) {
					return text
				}
			}
		}
	}

	// Second pass: single longest plausible text cell.
	longest := ""
	for _, t := range tables {
		for r := 0; r < companyNameScanRows && r < t.RowCount(); r++ {
			for c := 0; c < t.ColCount(); c++ {
				cell := t.At(r, c)
				if cell.Kind != CellText {
					continue
				}
				text := strings.TrimSpace(cell.Text)
				if plausibleCompanyName(text) && len(text) > len(longest) {
					longest = text
				}
			}
		}
	}
	return longest
}

// plausibleCompanyName filters out cells that are clearly line-item labels
// or statement headings rather than an entity name.
func plausibleCompanyName(text string) bool {
	if len(text) < 4 {
		return false
	}
	if strings.ContainsAny(text, "()0123456789$%") {
		return false
	}
	lower := strings.ToLower(text)
	if containsAny(lower, includeKeywords) || containsAny(lower, excludeKeywords) {
		return false
	}
	return true
}

// FallbackNameFromFilename sanitizes a source path into a display name:
// "data/acme_financials.xlsx" becomes "Acme Financials".
func FallbackNameFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)

	words := strings.Fields(base)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
