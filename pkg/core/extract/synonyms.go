package extract

import "finmodel/pkg/models"

// SynonymDict maps each canonical metric to its known label variants, in
// declaration order. It is loaded once and treated as immutable; user
// overlays produce a new dictionary rather than mutating this one.
type SynonymDict map[models.Metric][]string

// BuiltinSynonyms returns the default dictionary. Phrases are lowercase and
// already in cleaned-label form, so they compare directly against CleanLabel
// output.
func BuiltinSynonyms() SynonymDict {
	return SynonymDict{
		models.MetricRevenue: {
			"revenue", "revenues", "total revenue", "total revenues",
			"net sales", "total net sales", "sales", "net revenue", "turnover",
		},
		models.MetricCOGS: {
			"cost of goods sold", "cost of sales", "cost of revenue",
			"cost of products sold", "cogs",
		},
		models.MetricGrossProfit: {
			"gross profit", "gross margin", "gross income",
		},
		models.MetricSGA: {
			"selling general and administrative",
			"selling general and administrative expenses",
			"selling general & administrative", "sg&a", "sga",
			"general and administrative expenses",
		},
		models.MetricRnD: {
			"research and development", "research and development expenses",
			"research & development", "r&d",
		},
		models.MetricEBITDA: {
			"ebitda", "adjusted ebitda",
			"earnings before interest taxes depreciation and amortization",
		},
		models.MetricDA: {
			"depreciation and amortization", "depreciation & amortization",
			"d&a", "depreciation", "amortization",
		},
		models.MetricEBIT: {
			"ebit", "operating income", "operating profit",
			"income from operations", "operating earnings",
		},
		models.MetricInterestExpense: {
			"interest expense", "interest expense net", "net interest expense",
			"finance costs",
		},
		models.MetricTaxExpense: {
			"income tax expense", "provision for income taxes",
			"income taxes", "tax expense",
		},
		models.MetricNetIncome: {
			"net income", "net earnings", "net profit", "profit for the year",
			"net income attributable to shareholders",
		},
		models.MetricCapex: {
			"capital expenditures", "capital expenditure", "capex",
			"purchases of property and equipment",
			"purchases of property plant and equipment",
			"additions to property and equipment",
		},
		models.MetricNWC: {
			"net working capital", "change in net working capital",
			"changes in working capital", "working capital",
		},
		models.MetricOperatingCashFlow: {
			"net cash provided by operating activities",
			"net cash from operating activities", "cash from operations",
			"cash flow from operations", "operating cash flow",
		},
		models.MetricTotalAssets: {
			"total assets",
		},
		models.MetricTotalLiabilities: {
			"total liabilities",
		},
		models.MetricTotalEquity: {
			"total equity", "total stockholders equity",
			"total shareholders equity", "stockholders equity",
		},
		models.MetricCash: {
			"cash and cash equivalents", "cash and equivalents", "cash",
		},
		models.MetricTotalDebt: {
			"total debt", "long term debt", "total borrowings",
		},
		models.MetricSharesOutstanding: {
			"shares outstanding", "diluted shares outstanding",
			"weighted average shares outstanding", "common shares outstanding",
		},
	}
}

// Merge returns a copy of the dictionary with overlay phrases appended after
// the built-in ones, so built-in variants keep matching priority.
func (d SynonymDict) Merge(overlay map[models.Metric][]string) SynonymDict {
	merged := make(SynonymDict, len(d))
	for m, phrases := range d {
		merged[m] = append([]string(nil), phrases...)
	}
	for m, phrases := range overlay {
		for _, p := range phrases {
			merged[m] = append(merged[m], CleanLabel(p))
		}
	}
	return merged
}
