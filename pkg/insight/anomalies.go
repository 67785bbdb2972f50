package insight

import (
	"fmt"
	"math"

	"docintel-be/internal/entity"
)

const anomalyZScoreCutoff = 2.0

// extractAnomalies flags statistical outliers per numeric field: any value
// more than two population standard deviations from the field mean.
func (p *Processor) extractAnomalies(in Input) ([]entity.Insight, error) {
	if in.Records == nil {
		return nil, fmt.Errorf("%w: anomaly detection needs records", ErrInvalidInput)
	}

	fields := numericFields(in.Records)

	var insights []entity.Insight
	for _, field := range sortedKeys(fields) {
		values := fields[field]
		if len(values) < 2 {
			continue
		}

		avg := mean(values)
		stdDev := popStdDev(values, avg)
		if stdDev == 0 {
			// all values identical, nothing can deviate
			continue
		}

		for i, v := range values {
			z := (v - avg) / stdDev
			if math.Abs(z) <= anomalyZScoreCutoff {
				continue
			}
			confidence := math.Abs(z) / 3
			if confidence > 1 {
				confidence = 1
			}

			insights = append(insights, p.newInsight(
				entity.InsightTypeAnomaly,
				fmt.Sprintf("Field %q has outlier value %g (mean %.2f, std dev %.2f, z-score %.2f)", field, v, avg, stdDev, z),
				confidence,
				[]string{fmt.Sprintf("%s=%g at index %d", field, v, i)},
				map[string]interface{}{
					"field":   field,
					"value":   v,
					"mean":    avg,
					"std_dev": stdDev,
					"z_score": z,
					"index":   i,
				},
			))
		}
	}
	return insights, nil
}
