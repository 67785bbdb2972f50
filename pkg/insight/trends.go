package insight

import (
	"fmt"
	"math"

	"docintel-be/internal/entity"
)

const stableSlopeCutoff = 0.1

// extractTrends fits an OLS line over each numeric field's values in record
// order and reports direction, slope confidence and first-to-last change.
func (p *Processor) extractTrends(in Input) ([]entity.Insight, error) {
	if in.Records == nil {
		return nil, fmt.Errorf("%w: trend detection needs records", ErrInvalidInput)
	}

	fields := numericFields(in.Records)

	var insights []entity.Insight
	for _, field := range sortedKeys(fields) {
		values := fields[field]
		if len(values) < 2 {
			continue
		}

		slope := olsSlope(values)

		direction := "stable"
		if math.Abs(slope) >= stableSlopeCutoff {
			if slope > 0 {
				direction = "increasing"
			} else {
				direction = "decreasing"
			}
		}

		confidence := math.Abs(slope) / 2
		if confidence > 1 {
			confidence = 1
		}

		metadata := map[string]interface{}{
			"field":     field,
			"slope":     slope,
			"direction": direction,
		}

		description := fmt.Sprintf("Field %q shows a %s trend (slope %.3f)", field, direction, slope)
		if first := values[0]; first != 0 {
			change := (values[len(values)-1] - first) / first * 100
			metadata["percent_change"] = change
			description = fmt.Sprintf("%s, %+.1f%% from first to last value", description, change)
		}

		insights = append(insights, p.newInsight(
			entity.InsightTypeTrend,
			description,
			confidence,
			[]string{fmt.Sprintf("%s: %v", field, values)},
			metadata,
		))
	}
	return insights, nil
}
