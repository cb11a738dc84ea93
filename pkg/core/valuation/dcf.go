package valuation

// DCFInput encapsulates all inputs for a discounted cash flow valuation.
type DCFInput struct {
	Projections       []ProjectedYear
	WACC              float64
	TerminalGrowth    float64 // e.g. 0.025
	SharesOutstanding float64
	NetDebt           float64
}

// DCFResult holds the valuation outputs.
type DCFResult struct {
	EnterpriseValue float64
	EquityValue     float64
	SharePrice      float64
	PVFCF           float64
	PVTerminal      float64
	ImpliedMultiple float64 // terminal EV / terminal-year EBITDA
}

// CalculateDCF performs a standard two-stage DCF: explicit-period unlevered
// free cash flows discounted at WACC, plus a Gordon-growth terminal value
// capitalized off the final projected year.
func CalculateDCF(in DCFInput) DCFResult {
	var pvFCF float64
	discount := 1.0

	for _, p := range in.Projections {
		discount /= 1.0 + in.WACC
		pvFCF += p.UFCF * discount
	}

	var tv, terminalEBITDA float64
	if n := len(in.Projections); n > 0 {
		last := in.Projections[n-1]
		terminalEBITDA = last.EBITDA
		if in.WACC > in.TerminalGrowth {
			tv = last.UFCF * (1 + in.TerminalGrowth) / (in.WACC - in.TerminalGrowth)
		}
	}
	pvTerminal := tv * discount

	ev := pvFCF + pvTerminal
	equity := ev - in.NetDebt

	sharePrice := 0.0
	if in.SharesOutstanding != 0 {
		sharePrice = equity / in.SharesOutstanding
	}
	impliedMultiple := 0.0
	if terminalEBITDA != 0 {
		impliedMultiple = tv / terminalEBITDA
	}

	return DCFResult{
		EnterpriseValue: ev,
		EquityValue:     equity,
		SharePrice:      sharePrice,
		PVFCF:           pvFCF,
		PVTerminal:      pvTerminal,
		ImpliedMultiple: impliedMultiple,
	}
}
