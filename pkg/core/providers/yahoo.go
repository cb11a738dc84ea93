package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=1d"

// YahooClient fetches current market data from the Yahoo Finance chart API.
// It supplies the pieces EDGAR filings lack: a live share price for
// per-share valuation outputs.
type YahooClient struct {
	httpClient *http.Client
}

// NewYahooClient creates a Yahoo Finance client.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Quote is the subset of chart metadata the toolkit consumes.
type Quote struct {
	Symbol        string
	Currency      string
	Price         float64
	PreviousClose float64
	Exchange      string
}

// chartResponse mirrors the Yahoo Finance chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency           string  `json:"currency"`
				Symbol             string  `json:"symbol"`
				ExchangeName       string  `json:"exchangeName"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// FetchQuote returns the latest quote for a ticker symbol.
func (c *YahooClient) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	url := fmt.Sprintf(yahooChartURL, symbol)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finmodel/1.0)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("providers: fetch quote %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("providers: quote %s: HTTP %d", symbol, resp.StatusCode)
	}

	var parsed chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("providers: decode quote %s: %w", symbol, err)
	}
	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("providers: empty chart result for %s", symbol)
	}

	meta := parsed.Chart.Result[0].Meta
	return &Quote{
		Symbol:        meta.Symbol,
		Currency:      meta.Currency,
		Price:         meta.RegularMarketPrice,
		PreviousClose: meta.PreviousClose,
		Exchange:      meta.ExchangeName,
	}, nil
}
