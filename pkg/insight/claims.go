package insight

import (
	"fmt"
	"regexp"
	"strings"

	"docintel-be/internal/entity"
)

const claimConfidence = 0.7

// Reporting constructs. English-only by design.
var claimPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"reporting_verb", regexp.MustCompile(`(?i)([A-Z][\w.]*(?:\s+[A-Z][\w.]*)?)\s+(?:states|claims|alleges|contends)\s+that\s+([^.!?]+)`)},
	{"according_to", regexp.MustCompile(`(?i)according to\s+([^,]+),\s*([^.!?]+)`)},
	{"passive_allegation", regexp.MustCompile(`(?i)it is alleged that\s+([^.!?]+)`)},
}

// extractClaims pulls reported assertions out of free text, or passes through
// records already tagged as claims when their confidence clears the
// threshold.
func (p *Processor) extractClaims(in Input) ([]entity.Insight, error) {
	if in.Records != nil {
		return p.claimsFromRecords(in.Records), nil
	}
	if in.Text == "" {
		return nil, fmt.Errorf("%w: claim extraction needs text or records", ErrInvalidInput)
	}
	return p.claimsFromText(in.Text), nil
}

func (p *Processor) claimsFromText(text string) []entity.Insight {
	var insights []entity.Insight

	for _, cp := range claimPatterns {
		for _, match := range cp.re.FindAllStringSubmatch(text, -1) {
			var subject, claim string
			switch len(match) {
			case 3:
				subject = strings.TrimSpace(match[1])
				claim = strings.TrimSpace(match[2])
			case 2:
				claim = strings.TrimSpace(match[1])
			default:
				continue
			}
			if claim == "" {
				continue
			}

			description := claim
			if subject != "" {
				description = fmt.Sprintf("%s asserts: %s", subject, claim)
			}

			metadata := map[string]interface{}{"pattern": cp.name}
			if subject != "" {
				metadata["subject"] = subject
			}

			insights = append(insights, p.newInsight(
				entity.InsightTypeClaim,
				description,
				claimConfidence,
				[]string{strings.TrimSpace(match[0])},
				metadata,
			))
		}
	}

	return insights
}

// claimsFromRecords passes through items already tagged type "claim".
// Records missing a usable description are skipped, not fatal.
func (p *Processor) claimsFromRecords(records []map[string]interface{}) []entity.Insight {
	var insights []entity.Insight

	for i, rec := range records {
		if t, _ := rec["type"].(string); t != "claim" {
			continue
		}

		description, _ := rec["description"].(string)
		if description == "" {
			description, _ = rec["text"].(string)
		}
		if description == "" {
			continue
		}

		confidence := claimConfidence
		if c, ok := asFloat(rec["confidence"]); ok {
			confidence = c
		}

		insights = append(insights, p.newInsight(
			entity.InsightTypeClaim,
			description,
			confidence,
			[]string{description},
			map[string]interface{}{"record_index": i, "pattern": "structured"},
		))
	}

	return insights
}
