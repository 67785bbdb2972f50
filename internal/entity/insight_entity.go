package entity

import "time"

type InsightType string

const (
	InsightTypeClaim        InsightType = "claim"
	InsightTypePattern      InsightType = "pattern"
	InsightTypeAnomaly      InsightType = "anomaly"
	InsightTypeTrend        InsightType = "trend"
	InsightTypeRelationship InsightType = "relationship"
)

// Valid reports whether t is one of the five supported insight types.
func (t InsightType) Valid() bool {
	switch t {
	case InsightTypeClaim, InsightTypePattern, InsightTypeAnomaly, InsightTypeTrend, InsightTypeRelationship:
		return true
	}
	return false
}

// Insight is a confidence-scored observation extracted from text or records.
// Confidence is always within [0,1].
type Insight struct {
	Id          string
	Type        InsightType
	Description string
	Confidence  float64
	Evidence    []string
	Metadata    map[string]interface{}
	Timestamp   time.Time
}
