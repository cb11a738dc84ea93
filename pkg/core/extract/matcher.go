package extract

import "finmodel/pkg/models"

// AcceptThreshold is the minimum similarity for a label-to-metric match.
// A label scoring below this is left unmapped rather than guessed.
const AcceptThreshold = 0.75

// MetricMatch records where a canonical metric was located in a table.
type MetricMatch struct {
	Metric models.Metric
	// Label is the cleaned source label that produced the match.
	Label string
	// Score is the similarity in [0,1]; always >= the matcher's threshold.
	Score float64
	Row   int
	Col   int
}

// Matcher maps cleaned labels onto canonical metrics by approximate string
// matching against a synonym dictionary.
type Matcher struct {
	dict      SynonymDict
	threshold float64
}

// NewMatcher builds a matcher over the given dictionary using the standard
// acceptance threshold.
func NewMatcher(dict SynonymDict) *Matcher {
	return &Matcher{dict: dict, threshold: AcceptThreshold}
}

// NewMatcherWithThreshold builds a matcher with a custom acceptance
// threshold. Values outside (0, 1] fall back to the standard threshold.
func NewMatcherWithThreshold(dict SynonymDict, threshold float64) *Matcher {
	if threshold <= 0 || threshold > 1 {
		threshold = AcceptThreshold
	}
	return &Matcher{dict: dict, threshold: threshold}
}

// BestMatch scores a cleaned label against every synonym of every candidate
// metric and returns the best-scoring metric. Candidates are tried in
// canonical declaration order, and a strictly-greater score is required to
// displace the current best, so exact ties resolve to the earlier-declared
// metric. Deterministic for a fixed dictionary. ok is false when no metric
// reaches the threshold.
func (m *Matcher) BestMatch(cleaned string, candidates map[models.Metric]bool) (metric models.Metric, score float64, ok bool) {
	if cleaned == "" {
		return "", 0, false
	}
	best := -1.0
	for _, cand := range models.CanonicalMetrics {
		if !candidates[cand] {
			continue
		}
		for _, syn := range m.dict[cand] {
			if s := Similarity(cleaned, syn); s > best {
				best = s
				metric = cand
			}
		}
	}
	if best < m.threshold {
		return "", 0, false
	}
	return metric, best, true
}
