package valuation

import (
	"sort"

	"finmodel/pkg/models"
)

// TargetMetrics holds the subject company's latest metrics for multiples
// analysis.
type TargetMetrics struct {
	Revenue   float64
	EBITDA    float64
	NetIncome float64
	NetDebt   float64
	SharesOut float64
}

// TargetFromExtraction pulls the latest available values out of an
// extraction result. Missing metrics come through as zero and simply drop
// out of the corresponding multiple.
func TargetFromExtraction(r *models.ExtractionResult) TargetMetrics {
	latest := func(m models.Metric) float64 {
		v, _, _ := r.LatestValue(m)
		return v
	}
	return TargetMetrics{
		Revenue:   latest(models.MetricRevenue),
		EBITDA:    latest(models.MetricEBITDA),
		NetIncome: latest(models.MetricNetIncome),
		NetDebt:   latest(models.MetricTotalDebt) - latest(models.MetricCash),
		SharesOut: latest(models.MetricSharesOutstanding),
	}
}

// Peer is one comparable company or precedent transaction.
type Peer struct {
	Name          string
	EVRevenue     float64
	EVEBITDA      float64
	PERatio       float64
	IsTransaction bool
}

// RelativeResult holds low/high valuation ranges per multiple, built from
// the 25th–75th percentile of the peer set.
type RelativeResult struct {
	ImpliedEVRevenue [2]float64
	ImpliedEVEBITDA  [2]float64
	ImpliedPEPrice   [2]float64
}

// CalculateComps runs comparable-companies analysis over the trading peers.
func CalculateComps(target TargetMetrics, peers []Peer) RelativeResult {
	return calculateMultiples(target, peers, false)
}

// CalculateTransactions runs precedent-transaction analysis; transaction
// multiples embed a control premium, so they are kept separate from comps.
func CalculateTransactions(target TargetMetrics, peers []Peer) RelativeResult {
	return calculateMultiples(target, peers, true)
}

func calculateMultiples(target TargetMetrics, peers []Peer, transactions bool) RelativeResult {
	var revMults, ebitdaMults, peMults []float64
	for _, p := range peers {
		if p.IsTransaction != transactions {
			continue
		}
		if p.EVRevenue > 0 {
			revMults = append(revMults, p.EVRevenue)
		}
		if p.EVEBITDA > 0 {
			ebitdaMults = append(ebitdaMults, p.EVEBITDA)
		}
		if p.PERatio > 0 {
			peMults = append(peMults, p.PERatio)
		}
	}

	quartiles := func(mults []float64) (float64, float64) {
		if len(mults) == 0 {
			return 0, 0
		}
		sort.Float64s(mults)
		lo := int(float64(len(mults)) * 0.25)
		hi := int(float64(len(mults)) * 0.75)
		if hi >= len(mults) {
			hi = len(mults) - 1
		}
		return mults[lo], mults[hi]
	}

	var res RelativeResult
	rLo, rHi := quartiles(revMults)
	res.ImpliedEVRevenue = [2]float64{rLo * target.Revenue, rHi * target.Revenue}

	eLo, eHi := quartiles(ebitdaMults)
	res.ImpliedEVEBITDA = [2]float64{eLo * target.EBITDA, eHi * target.EBITDA}

	if target.SharesOut > 0 {
		pLo, pHi := quartiles(peMults)
		res.ImpliedPEPrice = [2]float64{
			pLo * target.NetIncome / target.SharesOut,
			pHi * target.NetIncome / target.SharesOut,
		}
	}
	return res
}
