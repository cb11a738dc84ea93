package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"finmodel/pkg/core/extract"
	"finmodel/pkg/models"
)

const (
	// SEC EDGAR API endpoints.
	secCompanyFactsURL = "https://data.sec.gov/api/xbrl/companyfacts/CIK%s.json"
	secTickersURL      = "https://www.sec.gov/files/company_tickers.json"

	// Required User-Agent per SEC guidelines.
	secUserAgent = "finmodel/1.0 (contact@example.com)"
)

// EDGARClient fetches XBRL company facts from SEC EDGAR.
type EDGARClient struct {
	httpClient *http.Client
	// UserAgent is sent on every request. The SEC rejects requests
	// without a contact address here.
	UserAgent string
}

// NewEDGARClient creates a client with SEC-friendly defaults.
func NewEDGARClient() *EDGARClient {
	return &EDGARClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		UserAgent:  secUserAgent,
	}
}

// =============================================================================
// SEC EDGAR DATA TYPES
// =============================================================================

// CompanyFacts is the top-level companyfacts response.
type CompanyFacts struct {
	CIK        int                             `json:"cik"`
	EntityName string                          `json:"entityName"`
	Facts      map[string]map[string]FactGroup `json:"facts"`
}

// FactGroup holds every reported value of one tag, keyed by unit.
type FactGroup struct {
	Label string                 `json:"label"`
	Units map[string][]FactValue `json:"units"`
}

// FactValue is one reported data point.
type FactValue struct {
	Start string  `json:"start"`
	End   string  `json:"end"`
	Val   float64 `json:"val"`
	FY    int     `json:"fy"`
	FP    string  `json:"fp"` // "FY", "Q1", ...
	Form  string  `json:"form"`
	Frame string  `json:"frame,omitempty"`
}

// tickerEntry is one row of the SEC ticker directory.
type tickerEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// ResolveTicker looks up the zero-padded CIK for a ticker symbol.
func (c *EDGARClient) ResolveTicker(ctx context.Context, ticker string) (string, error) {
	var directory map[string]tickerEntry
	if err := c.getJSON(ctx, secTickersURL, &directory); err != nil {
		return "", fmt.Errorf("providers: fetch ticker directory: %w", err)
	}

	upper := strings.ToUpper(strings.TrimSpace(ticker))
	for _, e := range directory {
		if strings.ToUpper(e.Ticker) == upper {
			return fmt.Sprintf("%010d", e.CIK), nil
		}
	}
	return "", fmt.Errorf("providers: ticker %q not found in SEC directory", ticker)
}

// FetchCompanyFacts retrieves the full XBRL fact set for a zero-padded CIK.
func (c *EDGARClient) FetchCompanyFacts(ctx context.Context, cik string) (*CompanyFacts, error) {
	cik = fmt.Sprintf("%010s", strings.TrimLeft(cik, "0"))

	var facts CompanyFacts
	url := fmt.Sprintf(secCompanyFactsURL, cik)
	if err := c.getJSON(ctx, url, &facts); err != nil {
		return nil, fmt.Errorf("providers: fetch company facts for CIK %s: %w", cik, err)
	}
	return &facts, nil
}

// FetchByTicker is the convenience path: resolve the ticker, fetch facts,
// and normalize into an ExtractionResult.
func (c *EDGARClient) FetchByTicker(ctx context.Context, ticker string) (*models.ExtractionResult, error) {
	cik, err := c.ResolveTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	facts, err := c.FetchCompanyFacts(ctx, cik)
	if err != nil {
		return nil, err
	}
	return BuildExtraction(facts, "edgar:"+ticker), nil
}

func (c *EDGARClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// BuildExtraction maps the us-gaap facts onto the canonical schema. Only
// annual values from 10-K filings are used. Per (metric, year), the
// first-declared tag in the mapping table wins, matching the extractor's
// merge precedence. The completeness score uses the same scorer the
// spreadsheet path uses.
func BuildExtraction(facts *CompanyFacts, source string) *models.ExtractionResult {
	result := models.NewExtractionResult(source)
	result.CompanyName = facts.EntityName

	gaap := facts.Facts["us-gaap"]

	byMetric := make(map[models.Metric]map[int]float64)
	yearSet := make(map[int]bool)

	for _, m := range gaapMappings {
		group, ok := gaap[m.Tag]
		if !ok {
			continue
		}
		values, ok := group.Units[m.Unit]
		if !ok {
			continue
		}
		for _, v := range values {
			if v.FP != "FY" || !strings.HasPrefix(v.Form, "10-K") || v.FY == 0 {
				continue
			}
			yearVals, ok := byMetric[m.Metric]
			if !ok {
				yearVals = make(map[int]float64)
				byMetric[m.Metric] = yearVals
			}
			if _, taken := yearVals[v.FY]; taken {
				continue // earlier-declared tag keeps precedence
			}
			yearVals[v.FY] = v.Val
			yearSet[v.FY] = true
		}
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	result.FiscalYears = years

	for metric, yearVals := range byMetric {
		series := make(models.Series, len(years))
		for i, y := range years {
			if v, ok := yearVals[y]; ok {
				val := v
				series[i] = &val
			}
		}
		result.Metrics[metric] = series
	}

	result.Completeness = extract.CompletenessScore(result)
	return result
}
