package llm

import (
	"context"
	"testing"

	"finmodel/pkg/models"
)

type cannedProvider struct {
	response string
	err      error
	prompt   string
}

func (p *cannedProvider) GenerateJSON(_ context.Context, _, prompt string) (string, error) {
	p.prompt = prompt
	return p.response, p.err
}

func TestMapLabelsFiltersInvalidProposals(t *testing.T) {
	provider := &cannedProvider{
		response: `{"total turnover": "revenue", "made up row": "not_a_metric", "never offered": "ebitda"}`,
	}
	mapper := NewMetricMapper(provider)

	got, err := mapper.MapLabels(context.Background(),
		[]string{"total turnover", "made up row"},
		[]models.Metric{models.MetricRevenue, models.MetricEBITDA})
	if err != nil {
		t.Fatalf("MapLabels failed: %v", err)
	}

	if got["total turnover"] != models.MetricRevenue {
		t.Errorf("total turnover mapped to %q, want revenue", got["total turnover"])
	}
	if _, ok := got["made up row"]; ok {
		t.Error("unknown metric name should be discarded")
	}
	if _, ok := got["never offered"]; ok {
		t.Error("label not in the request should be discarded")
	}
}

func TestMapLabelsRepairsSloppyJSON(t *testing.T) {
	// Markdown fences and trailing commas are typical model output noise.
	provider := &cannedProvider{
		response: "```json\n{'total turnover': 'revenue',}\n```",
	}
	mapper := NewMetricMapper(provider)

	got, err := mapper.MapLabels(context.Background(),
		[]string{"total turnover"},
		[]models.Metric{models.MetricRevenue})
	if err != nil {
		t.Fatalf("MapLabels failed: %v", err)
	}
	if got["total turnover"] != models.MetricRevenue {
		t.Errorf("got %v, want revenue for total turnover", got)
	}
}

func TestMapLabelsEmptyInputs(t *testing.T) {
	mapper := NewMetricMapper(&cannedProvider{})
	got, err := mapper.MapLabels(context.Background(), nil, []models.Metric{models.MetricRevenue})
	if err != nil || got != nil {
		t.Errorf("MapLabels(nil labels) = %v, %v; want nil, nil", got, err)
	}
}
