// Package providers fetches company financial data from public sources (SEC
// EDGAR, Yahoo Finance, HTML statement pages) and normalizes it into the
// same ExtractionResult the spreadsheet extractor produces.
package providers

import "finmodel/pkg/models"

// gaapMapping binds one XBRL us-gaap tag to a canonical metric. Tags are
// listed in trust order per metric: when several tags report for the same
// fiscal year, the earlier-declared tag wins, mirroring the extractor's
// first-non-nil merge rule.
type gaapMapping struct {
	Tag    string
	Metric models.Metric
	Unit   string // units key inside companyfacts, usually "USD"
}

// gaapMappings is the fixed field-name table between SEC EDGAR's us-gaap
// taxonomy and the canonical schema. Ordered, immutable.
var gaapMappings = []gaapMapping{
	{"RevenueFromContractWithCustomerExcludingAssessedTax", models.MetricRevenue, "USD"},
	{"Revenues", models.MetricRevenue, "USD"},
	{"SalesRevenueNet", models.MetricRevenue, "USD"},

	{"CostOfRevenue", models.MetricCOGS, "USD"},
	{"CostOfGoodsAndServicesSold", models.MetricCOGS, "USD"},

	{"GrossProfit", models.MetricGrossProfit, "USD"},

	{"SellingGeneralAndAdministrativeExpense", models.MetricSGA, "USD"},
	{"ResearchAndDevelopmentExpense", models.MetricRnD, "USD"},

	{"DepreciationDepletionAndAmortization", models.MetricDA, "USD"},
	{"DepreciationAmortizationAndAccretionNet", models.MetricDA, "USD"},

	{"OperatingIncomeLoss", models.MetricEBIT, "USD"},

	{"InterestExpense", models.MetricInterestExpense, "USD"},
	{"IncomeTaxExpenseBenefit", models.MetricTaxExpense, "USD"},

	{"NetIncomeLoss", models.MetricNetIncome, "USD"},

	{"PaymentsToAcquirePropertyPlantAndEquipment", models.MetricCapex, "USD"},

	{"NetCashProvidedByUsedInOperatingActivities", models.MetricOperatingCashFlow, "USD"},

	{"Assets", models.MetricTotalAssets, "USD"},
	{"Liabilities", models.MetricTotalLiabilities, "USD"},
	{"StockholdersEquity", models.MetricTotalEquity, "USD"},

	{"CashAndCashEquivalentsAtCarryingValue", models.MetricCash, "USD"},

	{"LongTermDebt", models.MetricTotalDebt, "USD"},
	{"LongTermDebtNoncurrent", models.MetricTotalDebt, "USD"},

	{"CommonStockSharesOutstanding", models.MetricSharesOutstanding, "shares"},
	{"WeightedAverageNumberOfDilutedSharesOutstanding", models.MetricSharesOutstanding, "shares"},
}
