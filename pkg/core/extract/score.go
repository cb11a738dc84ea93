package extract

import "finmodel/pkg/models"

// CompletenessScore summarizes how much of the expected data was found, as a
// weighted presence ratio over the canonical metrics: important-tier metrics
// weigh x3, standard x2, everything else x1. The score is advisory metadata
// for downstream consumers; it never gates the result.
func CompletenessScore(result *models.ExtractionResult) float64 {
	if len(result.FiscalYears) == 0 {
		return 0.0
	}

	var total, present int
	for _, m := range models.CanonicalMetrics {
		w := int(models.TierOf(m))
		total += w
		if result.HasMetric(m) {
			present += w
		}
	}
	if total == 0 {
		return 0.0
	}

	score := float64(present) / float64(total)
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
