package insight

import (
	"fmt"
	"sort"
	"strings"

	"docintel-be/internal/entity"
)

const (
	minFrequencyOccurrences = 3
	sequenceMinConfidence   = 0.3
)

// signatureFields is the fixed priority list used to derive a per-record
// signature for sequence detection.
var signatureFields = []string{"type", "action", "event", "status", "category"}

// extractPatterns runs frequency analysis and repeated-subsequence detection
// over a record array.
func (p *Processor) extractPatterns(in Input) ([]entity.Insight, error) {
	if in.Records == nil {
		return nil, fmt.Errorf("%w: pattern extraction needs records", ErrInvalidInput)
	}

	insights := p.frequencyPatterns(in.Records)
	insights = append(insights, p.sequencePatterns(in.Records)...)
	return insights, nil
}

// frequencyPatterns counts "field:value" tokens across records and reports
// any token occurring at least three times. Confidence scales with the share
// of records carrying the token, saturating at 20%.
func (p *Processor) frequencyPatterns(records []map[string]interface{}) []entity.Insight {
	if len(records) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, rec := range records {
		for key, val := range rec {
			token := fieldToken(key, val)
			if token == "" {
				continue
			}
			counts[token]++
		}
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	var insights []entity.Insight
	for _, token := range tokens {
		count := counts[token]
		if count < minFrequencyOccurrences {
			continue
		}
		pct := float64(count) / float64(len(records)) * 100
		confidence := pct / 20
		if confidence > 1 {
			confidence = 1
		}

		insights = append(insights, p.newInsight(
			entity.InsightTypePattern,
			fmt.Sprintf("Recurring value %q appears in %d of %d records (%.1f%%)", token, count, len(records), pct),
			confidence,
			[]string{token},
			map[string]interface{}{
				"pattern_kind": "frequency",
				"occurrences":  count,
				"percentage":   pct,
			},
		))
	}
	return insights
}

// sequencePatterns looks for exact repeats of contiguous subsequences of
// length 2 and 3 over the per-record signatures.
func (p *Processor) sequencePatterns(records []map[string]interface{}) []entity.Insight {
	signatures := make([]string, len(records))
	for i, rec := range records {
		signatures[i] = recordSignature(rec)
	}

	var insights []entity.Insight
	for _, windowLen := range []int{2, 3} {
		// windowLen+1 signatures is the minimum for two (overlapping) windows
		if len(signatures) < windowLen+1 {
			continue
		}

		windows := make(map[string]int)
		var order []string
		for i := 0; i+windowLen <= len(signatures); i++ {
			key := strings.Join(signatures[i:i+windowLen], " -> ")
			if windows[key] == 0 {
				order = append(order, key)
			}
			windows[key]++
		}

		for _, key := range order {
			repeats := windows[key]
			if repeats < 2 {
				continue
			}
			confidence := float64(repeats) / (float64(len(records)) / float64(windowLen))
			if confidence > 1 {
				confidence = 1
			}
			if confidence < sequenceMinConfidence {
				continue
			}

			insights = append(insights, p.newInsight(
				entity.InsightTypePattern,
				fmt.Sprintf("Sequence [%s] repeats %d times", key, repeats),
				confidence,
				[]string{key},
				map[string]interface{}{
					"pattern_kind": "sequence",
					"window":       windowLen,
					"repeats":      repeats,
				},
			))
		}
	}
	return insights
}

// fieldToken renders a scalar field as "field:value"; non-scalar values are
// skipped.
func fieldToken(key string, val interface{}) string {
	switch v := val.(type) {
	case string:
		if v == "" {
			return ""
		}
		return key + ":" + v
	case bool:
		return fmt.Sprintf("%s:%t", key, v)
	default:
		if f, ok := asFloat(val); ok {
			return fmt.Sprintf("%s:%g", key, f)
		}
	}
	return ""
}

// recordSignature reduces a record to a comparable string: the first present
// field from the fixed signature list, else a stable render of all scalars.
func recordSignature(rec map[string]interface{}) string {
	for _, field := range signatureFields {
		if v, ok := rec[field].(string); ok && v != "" {
			return v
		}
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if token := fieldToken(k, rec[k]); token != "" {
			parts = append(parts, token)
		}
	}
	return strings.Join(parts, "|")
}
