package insight

import (
	"fmt"
	"math"

	"docintel-be/internal/entity"
)

const minCorrelationSamples = 3

// extractRelationships computes pairwise Pearson correlation across all
// distinct numeric field pairs. A pair needs at least three records carrying
// both fields; zero-variance pairs are omitted rather than raising.
func (p *Processor) extractRelationships(in Input) ([]entity.Insight, error) {
	if in.Records == nil {
		return nil, fmt.Errorf("%w: relationship detection needs records", ErrInvalidInput)
	}

	fields := numericFieldNames(in.Records)

	var insights []entity.Insight
	for i := 0; i < len(fields); i++ {
		for j := i + 1; j < len(fields); j++ {
			xs, ys := alignedValues(in.Records, fields[i], fields[j])
			if len(xs) < minCorrelationSamples {
				continue
			}

			r, err := pearson(xs, ys)
			if err != nil {
				// zero-variance or degenerate pair: omit, don't fail
				continue
			}

			abs := math.Abs(r)
			if abs < in.Threshold {
				continue
			}

			strength := "weak"
			switch {
			case abs >= 0.7:
				strength = "strong"
			case abs >= 0.4:
				strength = "moderate"
			}
			direction := "positive"
			if r < 0 {
				direction = "negative"
			}

			insights = append(insights, p.newInsight(
				entity.InsightTypeRelationship,
				fmt.Sprintf("Fields %q and %q show a %s %s correlation (r=%.2f)", fields[i], fields[j], strength, direction, r),
				abs,
				[]string{fmt.Sprintf("%s vs %s over %d records", fields[i], fields[j], len(xs))},
				map[string]interface{}{
					"field_a":     fields[i],
					"field_b":     fields[j],
					"coefficient": r,
					"strength":    strength,
					"direction":   direction,
					"samples":     len(xs),
				},
			))
		}
	}
	return insights, nil
}

func numericFieldNames(records []map[string]interface{}) []string {
	return sortedKeys(numericFields(records))
}

// alignedValues collects the value pairs from records where both fields are
// numeric, preserving record order.
func alignedValues(records []map[string]interface{}, fieldA, fieldB string) ([]float64, []float64) {
	var xs, ys []float64
	for _, rec := range records {
		a, okA := asFloat(rec[fieldA])
		b, okB := asFloat(rec[fieldB])
		if okA && okB {
			xs = append(xs, a)
			ys = append(ys, b)
		}
	}
	return xs, ys
}
