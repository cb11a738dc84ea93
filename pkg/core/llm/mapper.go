package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"finmodel/pkg/models"
)

const mapperSystemPrompt = `You classify row labels from financial statements.
Given a list of labels and a list of canonical metric names, map each label
to the single best canonical metric, or omit the label if none applies.
Respond with a JSON object whose keys are the input labels and whose values
are canonical metric names. Never invent metric names.`

// MetricMapper proposes canonical metrics for labels the fuzzy matcher
// could not place. It satisfies the extractor's LabelMapper hook.
type MetricMapper struct {
	provider Provider
}

// NewMetricMapper wraps a provider as a label mapper.
func NewMetricMapper(p Provider) *MetricMapper {
	return &MetricMapper{provider: p}
}

// MapLabels asks the model to assign each unmatched label to one of the
// remaining canonical metrics. Responses naming unknown metrics or labels
// that were not offered are discarded.
func (m *MetricMapper) MapLabels(ctx context.Context, labels []string, remaining []models.Metric) (map[string]models.Metric, error) {
	if len(labels) == 0 || len(remaining) == 0 {
		return nil, nil
	}

	allowed := make([]string, len(remaining))
	for i, metric := range remaining {
		allowed[i] = string(metric)
	}

	var sb strings.Builder
	sb.WriteString("Canonical metrics:\n")
	for _, name := range allowed {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	sb.WriteString("\nLabels:\n")
	for _, label := range labels {
		fmt.Fprintf(&sb, "- %s\n", label)
	}

	raw, err := m.provider.GenerateJSON(ctx, mapperSystemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("llm: label mapping request: %w", err)
	}

	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("llm: unparseable mapping response: %w", err)
	}

	var proposed map[string]string
	if err := json.Unmarshal([]byte(repaired), &proposed); err != nil {
		return nil, fmt.Errorf("llm: decode mapping response: %w", err)
	}

	offered := make(map[string]bool, len(labels))
	for _, label := range labels {
		offered[label] = true
	}
	valid := make(map[models.Metric]bool, len(remaining))
	for _, metric := range remaining {
		valid[metric] = true
	}

	out := make(map[string]models.Metric)
	for label, name := range proposed {
		metric := models.Metric(name)
		if offered[label] && valid[metric] {
			out[label] = metric
		}
	}
	return out, nil
}
