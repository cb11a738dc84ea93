package extract

import "strings"

// Sheet-name keywords that mark a table as likely holding financial
// statements, and names that mark it as boilerplate to skip.
var (
	includeKeywords = []string{
		"income", "balance", "cash flow", "p&l", "financials", "operating",
	}
	excludeKeywords = []string{
		"cover", "summary", "assumptions", "notes",
	}
)

// SelectTables returns the subset of tables likely to contain financial
// statements, preserving source order. Exclusion keywords take precedence
// over inclusion ones, so "Summary of Financials" is skipped. If no table
// matches either rule the first table is returned as a fallback.
func SelectTables(tables []*RawTable) []*RawTable {
	var selected []*RawTable
	for _, t := range tables {
		name := strings.ToLower(t.Name)
		if containsAny(name, excludeKeywords) {
			continue
		}
		if containsAny(name, includeKeywords) {
			selected = append(selected, t)
		}
	}
	if len(selected) == 0 && len(tables) > 0 {
		selected = append(selected, tables[0])
	}
	return selected
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
