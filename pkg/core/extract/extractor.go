package extract

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"finmodel/pkg/models"
)

// ErrUnusableSource is returned when, after merging every selected table,
// neither a company identity nor a revenue series could be found. All other
// "not found" conditions degrade softly into the completeness score.
var ErrUnusableSource = errors.New("extract: no company name and no revenue series found")

// LabelMapper is an optional hook that proposes canonical metrics for labels
// the fuzzy matcher left unmatched. The extractor never lets a mapper
// override an accepted fuzzy match.
type LabelMapper interface {
	MapLabels(ctx context.Context, labels []string, remaining []models.Metric) (map[string]models.Metric, error)
}

// Extractor runs the full layout-agnostic extraction over one source. Each
// call is a single synchronous pass over an in-memory snapshot; no state is
// shared across calls.
type Extractor struct {
	matcher *Matcher
	mapper  LabelMapper
}

// NewExtractor builds an extractor over the given synonym dictionary.
func NewExtractor(dict SynonymDict) *Extractor {
	return &Extractor{matcher: NewMatcher(dict)}
}

// WithLabelMapper attaches an optional mapper for unmatched labels and
// returns the extractor for chaining.
func (e *Extractor) WithLabelMapper(m LabelMapper) *Extractor {
	e.mapper = m
	return e
}

// WithThreshold overrides the matcher's acceptance threshold and returns the
// extractor for chaining. Values outside (0, 1] keep the standard threshold.
func (e *Extractor) WithThreshold(t float64) *Extractor {
	e.matcher = NewMatcherWithThreshold(e.matcher.dict, t)
	return e
}

// Extract locates company name, fiscal years and canonical metrics across
// all tables of a source and merges them into one standardized result.
// source is the originating path or URL; its filename is the company-name
// fallback.
func (e *Extractor) Extract(ctx context.Context, source string, tables []*RawTable) (*models.ExtractionResult, error) {
	selected := SelectTables(tables)

	result := models.NewExtractionResult(source)
	result.CompanyName = DetectCompanyName(selected)
	if result.CompanyName == "" {
		result.CompanyName = FallbackNameFromFilename(source)
	}

	var perTable []*tableExtraction
	for _, t := range selected {
		te := e.extractTable(t)
		if e.mapper != nil {
			e.applyMapper(ctx, t, te)
		}
		perTable = append(perTable, te)
	}

	mergeTables(result, perTable)
	result.Completeness = CompletenessScore(result)

	if result.CompanyName == "" && !result.HasMetric(models.MetricRevenue) {
		return nil, ErrUnusableSource
	}
	return result, nil
}

// unmatchedLabel is a cleaned label that scored below the acceptance
// threshold, kept for the optional mapper pass.
type unmatchedLabel struct {
	label string
	row   int
	col   int
}

// tableExtraction is the per-table intermediate: detected years in source
// order and one value slice per matched metric, aligned with years.
type tableExtraction struct {
	table     *RawTable
	layout    *YearLayout
	series    map[models.Metric][]*float64
	Matches   []MetricMatch
	unmatched []unmatchedLabel
}

// extractTable runs layout detection and fuzzy matching over one table.
// Each canonical metric is matched at most once per table; once matched it
// leaves the candidate set.
func (e *Extractor) extractTable(t *RawTable) *tableExtraction {
	te := &tableExtraction{
		table:  t,
		series: make(map[models.Metric][]*float64),
	}
	te.layout = DetectYearLayout(t)
	if te.layout == nil {
		return te // zero-year extraction, soft outcome
	}

	candidates := make(map[models.Metric]bool, len(models.CanonicalMetrics))
	for _, m := range models.CanonicalMetrics {
		candidates[m] = true
	}

	switch te.layout.Orientation {
	case YearsInColumns:
		for r := 0; r < t.RowCount(); r++ {
			if r == te.layout.AxisIndex {
				continue
			}
			c, label := leadingLabel(t, r, te.layout.Offsets[0])
			if label == "" {
				continue
			}
			e.matchAt(te, candidates, label, r, c, func(k int) Cell {
				return t.At(r, te.layout.Offsets[k])
			})
		}
	case YearsInRows:
		for c := 0; c < t.ColCount(); c++ {
			if c == te.layout.AxisIndex {
				continue
			}
			r, label := headingLabel(t, c, te.layout.Offsets[0])
			if label == "" {
				continue
			}
			e.matchAt(te, candidates, label, r, c, func(k int) Cell {
				return t.At(te.layout.Offsets[k], c)
			})
		}
	}
	return te
}

// matchAt tries to map one cleaned label onto a remaining candidate metric
// and, on success, captures the value series along the year axis.
func (e *Extractor) matchAt(te *tableExtraction, candidates map[models.Metric]bool, label string, row, col int, valueAt func(k int) Cell) {
	metric, score, ok := e.matcher.BestMatch(label, candidates)
	if !ok {
		te.unmatched = append(te.unmatched, unmatchedLabel{label: label, row: row, col: col})
		return
	}
	delete(candidates, metric)
	te.Matches = append(te.Matches, MetricMatch{
		Metric: metric, Label: label, Score: score, Row: row, Col: col,
	})
	te.series[metric] = e.readSeries(te, valueAt)
}

func (e *Extractor) readSeries(te *tableExtraction, valueAt func(k int) Cell) []*float64 {
	series := make([]*float64, len(te.layout.Years))
	for k := range te.layout.Years {
		series[k] = parseNumericCell(valueAt(k))
	}
	return series
}

// applyMapper offers unmatched labels to the optional LabelMapper for the
// metrics still missing from this table. Mapper failures are swallowed: the
// heuristic result stands on its own.
func (e *Extractor) applyMapper(ctx context.Context, t *RawTable, te *tableExtraction) {
	if te.layout == nil || len(te.unmatched) == 0 {
		return
	}
	var remaining []models.Metric
	for _, m := range models.CanonicalMetrics {
		if _, done := te.series[m]; !done {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == 0 {
		return
	}

	labels := make([]string, len(te.unmatched))
	for i, u := range te.unmatched {
		labels[i] = u.label
	}
	proposed, err := e.mapper.MapLabels(ctx, labels, remaining)
	if err != nil {
		return
	}

	taken := make(map[models.Metric]bool)
	for _, u := range te.unmatched {
		metric, ok := proposed[u.label]
		if !ok || taken[metric] {
			continue
		}
		if _, done := te.series[metric]; done {
			continue
		}
		taken[metric] = true
		te.Matches = append(te.Matches, MetricMatch{
			Metric: metric, Label: u.label, Score: AcceptThreshold, Row: u.row, Col: u.col,
		})
		row, col := u.row, u.col
		if te.layout.Orientation == YearsInColumns {
			te.series[metric] = e.readSeries(te, func(k int) Cell {
				return t.At(row, te.layout.Offsets[k])
			})
		} else {
			te.series[metric] = e.readSeries(te, func(k int) Cell {
				return t.At(te.layout.Offsets[k], col)
			})
		}
	}
}

// leadingLabel returns the leftmost text cell of a row before the first year
// column, which is where row labels live in a years-in-columns layout.
func leadingLabel(t *RawTable, row, firstYearCol int) (int, string) {
	for c := 0; c < firstYearCol; c++ {
		cell := t.At(row, c)
		if cell.Kind == CellText {
			if cleaned := CleanLabel(cell.Text); cleaned != "" {
				return c, cleaned
			}
		}
	}
	return 0, ""
}

// headingLabel returns the topmost text cell of a column before the first
// year row, for the transposed years-in-rows layout.
func headingLabel(t *RawTable, col, firstYearRow int) (int, string) {
	for r := 0; r < firstYearRow; r++ {
		cell := t.At(r, col)
		if cell.Kind == CellText {
			if cleaned := CleanLabel(cell.Text); cleaned != "" {
				return r, cleaned
			}
		}
	}
	return 0, ""
}

// mergeTables combines per-table extractions into the final result. Fiscal
// years are the sorted union of all tables' years. For each (metric, year)
// the first non-nil value in table-selection order wins; later tables never
// overwrite an already-populated value.
func mergeTables(result *models.ExtractionResult, perTable []*tableExtraction) {
	yearSet := make(map[int]bool)
	for _, te := range perTable {
		if te.layout == nil {
			continue
		}
		for _, y := range te.layout.Years {
			yearSet[y] = true
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	result.FiscalYears = years

	if len(years) == 0 {
		return
	}
	yearPos := make(map[int]int, len(years))
	for i, y := range years {
		yearPos[y] = i
	}

	for _, te := range perTable {
		if te.layout == nil {
			continue
		}
		for metric, series := range te.series {
			merged, ok := result.Metrics[metric]
			if !ok {
				merged = make(models.Series, len(years))
				result.Metrics[metric] = merged
			}
			for k, y := range te.layout.Years {
				if k >= len(series) || series[k] == nil {
					continue
				}
				pos := yearPos[y]
				if merged[pos] == nil {
					merged[pos] = series[k]
				}
			}
		}
	}
}

var numericRe = regexp.MustCompile(`[\d.]+`)

// parseNumericCell extracts a numeric value from a cell, handling the usual
// financial formatting: thousands separators, currency symbols, dashes for
// missing data, and parentheses for negatives. Returns nil when the cell
// holds no usable number.
func parseNumericCell(c Cell) *float64 {
	switch c.Kind {
	case CellNumber:
		v := c.Number
		return &v
	case CellText:
		s := strings.TrimSpace(c.Text)
		if s == "" || s == "-" || s == "—" || strings.EqualFold(s, "n/a") {
			return nil
		}
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, " ", "")

		neg := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			neg = true
			s = strings.Trim(s, "()")
		} else if strings.HasPrefix(s, "-") {
			neg = true
			s = strings.TrimPrefix(s, "-")
		}

		match := numericRe.FindString(s)
		if match == "" {
			return nil
		}
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return nil
		}
		if neg {
			v = -v
		}
		return &v
	}
	return nil
}
