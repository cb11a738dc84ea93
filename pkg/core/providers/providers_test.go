package providers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finmodel/pkg/core/extract"
	"finmodel/pkg/models"
)

func factsFixture() *CompanyFacts {
	annual := func(fy int, val float64) FactValue {
		return FactValue{Val: val, FY: fy, FP: "FY", Form: "10-K"}
	}
	return &CompanyFacts{
		CIK:        320193,
		EntityName: "Apple Inc.",
		Facts: map[string]map[string]FactGroup{
			"us-gaap": {
				"RevenueFromContractWithCustomerExcludingAssessedTax": {
					Units: map[string][]FactValue{"USD": {annual(2022, 394328), annual(2023, 383285)}},
				},
				// Same years under a lower-trust tag with different values.
				"Revenues": {
					Units: map[string][]FactValue{"USD": {annual(2022, 1), annual(2023, 2)}},
				},
				"NetIncomeLoss": {
					Units: map[string][]FactValue{"USD": {annual(2023, 96995)}},
				},
				// Quarterly data must be ignored.
				"Assets": {
					Units: map[string][]FactValue{"USD": {
						{Val: 352583, FY: 2023, FP: "Q2", Form: "10-Q"},
						annual(2023, 352583),
					}},
				},
			},
		},
	}
}

func TestBuildExtraction(t *testing.T) {
	result := BuildExtraction(factsFixture(), "edgar:AAPL")

	assert.Equal(t, "Apple Inc.", result.CompanyName)
	require.Equal(t, []int{2022, 2023}, result.FiscalYears)

	// The earlier-declared revenue tag must shadow the generic "Revenues".
	rev := result.ValueAt(models.MetricRevenue, 2022)
	require.NotNil(t, rev)
	assert.Equal(t, 394328.0, *rev)

	ni := result.ValueAt(models.MetricNetIncome, 2023)
	require.NotNil(t, ni)
	assert.Equal(t, 96995.0, *ni)

	// Net income was only reported for 2023.
	assert.Nil(t, result.ValueAt(models.MetricNetIncome, 2022))

	assets := result.ValueAt(models.MetricTotalAssets, 2023)
	require.NotNil(t, assets, "annual 10-K value expected")
	assert.Equal(t, 352583.0, *assets)

	assert.Greater(t, result.Completeness, 0.0)
	assert.Less(t, result.Completeness, 1.0)
}

const statementHTML = `
<html><body>
<h2>Income Statement</h2>
<table>
  <tr><th></th><th>2022</th><th>2023</th></tr>
  <tr><td>Revenue ($mm)</td><td>1,000</td><td>1,100</td></tr>
  <tr><td>Net income</td><td>120</td><td>135</td></tr>
</table>
</body></html>`

func TestParseHTMLTables(t *testing.T) {
	tables, err := ParseHTMLTables(strings.NewReader(statementHTML))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Income Statement", tables[0].Name)
}

// Scraped tables must flow through the same extraction heuristics as
// spreadsheets.
func TestScrapedTableExtraction(t *testing.T) {
	tables, err := ParseHTMLTables(strings.NewReader(statementHTML))
	require.NoError(t, err)

	e := extract.NewExtractor(extract.BuiltinSynonyms())
	result, err := e.Extract(context.Background(), "statements.html", tables)
	require.NoError(t, err)

	rev := result.ValueAt(models.MetricRevenue, 2023)
	require.NotNil(t, rev)
	assert.Equal(t, 1100.0, *rev)

	ni := result.ValueAt(models.MetricNetIncome, 2022)
	require.NotNil(t, ni)
	assert.Equal(t, 120.0, *ni)
}
