package insight

import (
	"errors"
	"fmt"
	"time"

	"docintel-be/internal/entity"
	"docintel-be/internal/pkg/logger"
)

// DefaultThreshold is the minimum confidence an insight needs to be included
// when the caller does not specify one.
const DefaultThreshold = 0.5

// ErrInvalidInput rejects a malformed call shape (unknown insight type, or a
// mode invoked without the data shape it needs) before any processing runs.
var ErrInvalidInput = errors.New("invalid insight input")

// Input is the discriminated request for one extraction pass. Exactly one of
// Text or Records should be set; modes that analyze numeric series require
// Records.
type Input struct {
	Text      string
	Records   []map[string]interface{}
	Type      entity.InsightType
	Context   string
	Threshold float64
}

// Summary aggregates the returned insights.
type Summary struct {
	Total          int
	ByType         map[entity.InsightType]int
	HighConfidence int // confidence >= 0.8
}

// Metadata describes one processing run.
type Metadata struct {
	ProcessingTime time.Duration
	DataSize       int
	Threshold      float64
}

// Result is the output of one Process call. Insights is always well-formed
// (possibly empty); unparseable fragments are dropped, never fatal.
type Result struct {
	Insights []entity.Insight
	Summary  Summary
	Metadata Metadata
}

// Processor extracts claims, patterns, anomalies, trends and relationships
// from text or record arrays. It is independent of the vector path.
//
// The id counter is scoped to the instance, so two processors never collide
// and a single instance hands out strictly increasing ids.
type Processor struct {
	logger  logger.ILogger
	counter int
	now     func() time.Time
}

func NewProcessor(log logger.ILogger) *Processor {
	return &Processor{
		logger: log,
		now:    time.Now,
	}
}

// Process runs the extraction mode selected by in.Type and filters the
// resulting insights by in.Threshold.
func (p *Processor) Process(in Input) (*Result, error) {
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown insight type %q", ErrInvalidInput, in.Type)
	}

	start := p.now()

	var insights []entity.Insight
	var err error

	switch in.Type {
	case entity.InsightTypeClaim:
		insights, err = p.extractClaims(in)
	case entity.InsightTypePattern:
		insights, err = p.extractPatterns(in)
	case entity.InsightTypeAnomaly:
		insights, err = p.extractAnomalies(in)
	case entity.InsightTypeTrend:
		insights, err = p.extractTrends(in)
	case entity.InsightTypeRelationship:
		insights, err = p.extractRelationships(in)
	}
	if err != nil {
		return nil, err
	}

	filtered := insights[:0:0]
	for _, ins := range insights {
		ins.Confidence = clampConfidence(ins.Confidence)
		if ins.Confidence >= in.Threshold {
			filtered = append(filtered, ins)
		}
	}

	summary := Summary{
		Total:  len(filtered),
		ByType: make(map[entity.InsightType]int),
	}
	for _, ins := range filtered {
		summary.ByType[ins.Type]++
		if ins.Confidence >= 0.8 {
			summary.HighConfidence++
		}
	}

	p.logger.Debug("INSIGHT", "Extraction completed", map[string]interface{}{
		"type":     string(in.Type),
		"insights": len(filtered),
	})

	return &Result{
		Insights: filtered,
		Summary:  summary,
		Metadata: Metadata{
			ProcessingTime: p.now().Sub(start),
			DataSize:       dataSize(in),
			Threshold:      in.Threshold,
		},
	}, nil
}

func (p *Processor) newInsight(t entity.InsightType, description string, confidence float64, evidence []string, metadata map[string]interface{}) entity.Insight {
	p.counter++
	return entity.Insight{
		Id:          fmt.Sprintf("insight_%s_%d", t, p.counter),
		Type:        t,
		Description: description,
		Confidence:  clampConfidence(confidence),
		Evidence:    evidence,
		Metadata:    metadata,
		Timestamp:   p.now(),
	}
}

func dataSize(in Input) int {
	if in.Records != nil {
		return len(in.Records)
	}
	return len(in.Text)
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
