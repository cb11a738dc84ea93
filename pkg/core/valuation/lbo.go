package valuation

import "math"

// LBOInput parameterizes an ability-to-pay analysis.
type LBOInput struct {
	EntryEBITDA   float64
	LeverageRatio float64 // debt / EBITDA at entry, e.g. 5.0x
	InterestRate  float64
	TaxRate       float64
	ExitMultiple  float64
	HoldingPeriod int // years
	TargetIRR     float64

	// Per-year operating streams; each must cover the holding period.
	ProjectedEBITDA    []float64
	ProjectedCapex     []float64 // positive costs
	ProjectedChangeNWC []float64
}

// LBOResult holds the sponsor economics.
type LBOResult struct {
	DebtRaised           float64
	EndingDebt           float64
	ExitEnterpriseValue  float64
	ExitEquityValue      float64
	RequiredEntryEquity  float64 // equity check clearing the target IRR
	MaxEntryEV           float64
	ImpliedEntryMultiple float64
	// IRRAtEntryEV is the realized IRR if, instead, the sponsor pays
	// EntryEBITDA * ImpliedEntryMultiple; equals TargetIRR by construction
	// and is reported for sanity checks.
	IRRAtEntryEV float64
}

// LBOAssumptions are the sponsor-side inputs to an LBO; the operating
// streams come from a driver projection.
type LBOAssumptions struct {
	LeverageRatio float64
	InterestRate  float64
	TaxRate       float64
	ExitMultiple  float64
	TargetIRR     float64
}

// LBOInputFromProjection assembles an LBOInput from a projection. The
// holding period is sized from the projection length, so the operating
// streams always cover it.
func LBOInputFromProjection(entryEBITDA float64, proj []ProjectedYear, a LBOAssumptions) LBOInput {
	in := LBOInput{
		EntryEBITDA:   entryEBITDA,
		LeverageRatio: a.LeverageRatio,
		InterestRate:  a.InterestRate,
		TaxRate:       a.TaxRate,
		ExitMultiple:  a.ExitMultiple,
		TargetIRR:     a.TargetIRR,
		HoldingPeriod: len(proj),
	}
	for _, p := range proj {
		in.ProjectedEBITDA = append(in.ProjectedEBITDA, p.EBITDA)
		in.ProjectedCapex = append(in.ProjectedCapex, p.Capex)
		in.ProjectedChangeNWC = append(in.ProjectedChangeNWC, p.ChangeNWC)
	}
	return in
}

// CalculateLBO sizes the price a sponsor can pay while clearing the target
// IRR. Debt enters at LeverageRatio × EBITDA and is paid down by a full cash
// sweep: free cash flow reduces the balance, deficits draw it back up.
func CalculateLBO(in LBOInput) LBOResult {
	if in.HoldingPeriod <= 0 {
		return LBOResult{}
	}

	debt := in.EntryEBITDA * in.LeverageRatio
	initialDebt := debt

	for i := 0; i < in.HoldingPeriod; i++ {
		ebitda := in.ProjectedEBITDA[i]
		interest := debt * in.InterestRate

		taxable := ebitda - interest
		taxes := taxable * in.TaxRate
		if taxes < 0 {
			taxes = 0
		}

		fcf := ebitda - interest - taxes - in.ProjectedCapex[i] - in.ProjectedChangeNWC[i]
		debt -= fcf
		if debt < 0 {
			debt = 0
		}
	}

	finalEBITDA := in.ProjectedEBITDA[in.HoldingPeriod-1]
	exitEV := finalEBITDA * in.ExitMultiple
	exitEquity := exitEV - debt

	// Backward induction: Entry = Exit / (1+IRR)^T
	requiredEquity := exitEquity / math.Pow(1.0+in.TargetIRR, float64(in.HoldingPeriod))
	maxEntryEV := requiredEquity + initialDebt

	irr := 0.0
	if requiredEquity > 0 && exitEquity > 0 {
		irr = math.Pow(exitEquity/requiredEquity, 1.0/float64(in.HoldingPeriod)) - 1
	}

	return LBOResult{
		DebtRaised:           initialDebt,
		EndingDebt:           debt,
		ExitEnterpriseValue:  exitEV,
		ExitEquityValue:      exitEquity,
		RequiredEntryEquity:  requiredEquity,
		MaxEntryEV:           maxEntryEV,
		ImpliedEntryMultiple: maxEntryEV / in.EntryEBITDA,
		IRRAtEntryEV:         irr,
	}
}
