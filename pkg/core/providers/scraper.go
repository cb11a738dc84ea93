package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"finmodel/pkg/core/extract"
)

// StatementScraper turns HTML financial-statement tables into the same
// RawTable grid the spreadsheet reader produces, so scraped pages flow
// through the identical extraction heuristics.
type StatementScraper struct {
	httpClient *http.Client
}

// NewStatementScraper creates a scraper with a conservative timeout.
func NewStatementScraper() *StatementScraper {
	return &StatementScraper{
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

// ScrapeTables fetches a page and converts every <table> element into a
// RawTable. Table names come from the nearest preceding heading when one
// exists, otherwise "Table N".
func (s *StatementScraper) ScrapeTables(ctx context.Context, url string) ([]*extract.RawTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; finmodel/1.0)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("providers: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("providers: scrape %s: HTTP %d", url, resp.StatusCode)
	}
	return ParseHTMLTables(resp.Body)
}

// ParseHTMLTables extracts every table from an HTML document.
func ParseHTMLTables(r io.Reader) ([]*extract.RawTable, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("providers: parse html: %w", err)
	}

	var tables []*extract.RawTable
	doc.Find("table").Each(func(i int, sel *goquery.Selection) {
		name := nearestHeading(sel)
		if name == "" {
			name = fmt.Sprintf("Table %d", i+1)
		}

		var cells [][]extract.Cell
		sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var row []extract.Cell
			tr.Find("th, td").Each(func(_ int, td *goquery.Selection) {
				text := strings.TrimSpace(td.Text())
				if text == "" {
					row = append(row, extract.Cell{})
				} else {
					row = append(row, extract.TextCell(text))
				}
			})
			cells = append(cells, row)
		})

		if len(cells) > 0 {
			tables = append(tables, extract.NewRawTable(name, cells))
		}
	})

	return tables, nil
}

// nearestHeading walks back through preceding siblings of the table (and its
// parents) looking for a heading or caption to use as the table name.
func nearestHeading(sel *goquery.Selection) string {
	if caption := strings.TrimSpace(sel.Find("caption").First().Text()); caption != "" {
		return caption
	}
	for node := sel; node.Length() > 0; node = node.Parent() {
		heading := node.PrevAll().Filter("h1, h2, h3, h4").First()
		if heading.Length() > 0 {
			return strings.TrimSpace(heading.Text())
		}
	}
	return ""
}
