// Package valuation implements the standard investment-banking valuation
// mechanics: WACC via CAPM, driver-based projections, a two-stage DCF, a
// cash-sweep LBO, and relative (multiples) analysis. The formulas are fixed
// textbook arithmetic; inputs come from the extraction pipeline or from
// practitioner assumptions.
package valuation

// WACCInput parameterizes the cost-of-capital build-up.
type WACCInput struct {
	UnleveredBeta     float64
	RiskFreeRate      float64
	MarketRiskPremium float64
	PreTaxCostOfDebt  float64
	TaxRate           float64
	DebtToEquityRatio float64 // target leverage (D/E)
}

// WACCResult holds the calculated rates and weights.
type WACCResult struct {
	LeveredBeta  float64
	CostOfEquity float64
	CostOfDebt   float64 // after-tax
	WeightDebt   float64
	WeightEquity float64
	WACC         float64
}

// CalculateWACC computes the weighted average cost of capital using CAPM for
// the cost of equity and the Hamada equation to re-lever beta to the target
// capital structure.
func CalculateWACC(in WACCInput) WACCResult {
	// BetaL = BetaU * (1 + (1-t)*(D/E))
	leveredBeta := in.UnleveredBeta * (1 + (1-in.TaxRate)*in.DebtToEquityRatio)

	// Ke = Rf + BetaL * ERP
	ke := in.RiskFreeRate + leveredBeta*in.MarketRiskPremium

	// Kd = pre-tax Kd * (1 - t)
	kd := in.PreTaxCostOfDebt * (1 - in.TaxRate)

	// D/E = x  =>  Wd = x/(1+x), We = 1/(1+x)
	wd := in.DebtToEquityRatio / (1 + in.DebtToEquityRatio)
	we := 1.0 / (1 + in.DebtToEquityRatio)

	return WACCResult{
		LeveredBeta:  leveredBeta,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WeightDebt:   wd,
		WeightEquity: we,
		WACC:         ke*we + kd*wd,
	}
}
