package extract

import "testing"

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Unit suffix", "Revenue ($mm)", "revenue"},
		{"Verbose unit", "Net Sales (USD thousands)", "net sales"},
		{"Whitespace collapse", "  Total   Revenue  ", "total revenue"},
		{"Already clean", "ebitda", "ebitda"},
		{"Mid-label parens", "Income (loss) from operations", "income from operations"},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLabel(tt.in); got != tt.want {
				t.Errorf("CleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Cleaning an already-clean label must be a no-op: clean(clean(x)) == clean(x).
func TestCleanLabelIdempotent(t *testing.T) {
	labels := []string{
		"Revenue ($mm)", "EBITDA", "  Cost of Goods Sold (COGS) ",
		"net income", "",
	}
	for _, l := range labels {
		once := CleanLabel(l)
		twice := CleanLabel(once)
		if once != twice {
			t.Errorf("CleanLabel not idempotent for %q: %q != %q", l, once, twice)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"Identical", "revenue", "revenue", 1.0},
		{"Empty both", "", "", 1.0},
		{"One edit of four", "abcd", "abcx", 0.75},
		{"Disjoint", "abcd", "wxyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"revenue", "revenues"},
		{"total assets", "total asset"},
		{"ebitda", "ebit"},
	}
	for _, p := range pairs {
		if Similarity(p[0], p[1]) != Similarity(p[1], p[0]) {
			t.Errorf("Similarity not symmetric for %q / %q", p[0], p[1])
		}
	}
}
