package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"docintel-be/internal/entity"
	"docintel-be/internal/pkg/logger"
)

type SortOrder string

const (
	SortChronological        SortOrder = "chronological"
	SortReverseChronological SortOrder = "reverse-chronological"
)

// gapThreshold is the materiality cutoff: intervals shorter than seven days
// between adjacent events are not reported.
const gapThreshold = 7 * 24 * time.Hour

// Input is one timeline extraction request. Exactly one of Text or Records
// should be set. Use DefaultInput for the documented defaults.
type Input struct {
	Text            string
	Records         []map[string]interface{}
	Source          string
	SortOrder       SortOrder
	IncludeRelative bool
}

func DefaultInput() Input {
	return Input{
		SortOrder:       SortChronological,
		IncludeRelative: true,
	}
}

// Bounds summarizes the span the events cover.
type Bounds struct {
	Earliest   time.Time
	Latest     time.Time
	Duration   string
	EventCount int
}

type Metadata struct {
	ProcessingTime time.Duration
	DataSize       int
}

type Result struct {
	Events   []entity.TimelineEvent
	Timeline Bounds
	Gaps     []entity.TimelineGap
	Metadata Metadata
}

// Processor extracts dated events from free text or record arrays and orders
// them. Relative expressions resolve against the injected clock, which tests
// pin to a fixed instant.
type Processor struct {
	logger  logger.ILogger
	counter int
	now     func() time.Time
}

// NewProcessor builds a processor; a nil clock means wall-clock time.
func NewProcessor(log logger.ILogger, clock func() time.Time) *Processor {
	if clock == nil {
		clock = time.Now
	}
	return &Processor{
		logger: log,
		now:    clock,
	}
}

// Process extracts, filters, sorts and summarizes the events in the input.
// Unparseable date tokens are dropped silently; the result always carries
// well-formed (possibly empty) slices.
func (p *Processor) Process(in Input) (*Result, error) {
	start := p.now()

	var events []entity.TimelineEvent
	if in.Records != nil {
		events = p.eventsFromRecords(in.Records, in.Source)
	} else {
		events = p.eventsFromText(in.Text, in.Source)
	}

	if !in.IncludeRelative {
		kept := events[:0:0]
		for _, ev := range events {
			if ev.DateType != entity.DateTypeRelative {
				kept = append(kept, ev)
			}
		}
		events = kept
	}

	sorted := make([]entity.TimelineEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	gaps := computeGaps(sorted)

	var bounds Bounds
	bounds.EventCount = len(sorted)
	if len(sorted) > 0 {
		bounds.Earliest = sorted[0].Date
		bounds.Latest = sorted[len(sorted)-1].Date
		bounds.Duration = humanizeSpan(bounds.Earliest, bounds.Latest)
	}

	if in.SortOrder == SortReverseChronological {
		for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
			sorted[i], sorted[j] = sorted[j], sorted[i]
		}
	}

	p.logger.Debug("TIMELINE", "Extraction completed", map[string]interface{}{
		"events": len(sorted),
		"gaps":   len(gaps),
	})

	return &Result{
		Events:   sorted,
		Timeline: bounds,
		Gaps:     gaps,
		Metadata: Metadata{
			ProcessingTime: p.now().Sub(start),
			DataSize:       inputSize(in),
		},
	}, nil
}

func (p *Processor) eventsFromText(text, source string) []entity.TimelineEvent {
	now := p.now()

	var events []entity.TimelineEvent
	for _, m := range findDateMatches(text, now) {
		window := contextWindow(text, m.start, m.end)

		metadata := map[string]interface{}{}
		if m.preposition != "" {
			metadata["preposition"] = m.preposition
		}

		events = append(events, entity.TimelineEvent{
			Id:          p.nextId(),
			Date:        m.date,
			DateString:  m.text,
			DateType:    entity.DateType(m.dateType),
			Description: describeWindow(window),
			Entities:    extractEntities(window),
			Confidence:  m.confidence,
			Source:      source,
			Context:     window,
			Metadata:    metadata,
		})
	}
	return events
}

// eventsFromRecords probes each record for the first present date-like field.
// Records without a parseable date are skipped.
func (p *Processor) eventsFromRecords(records []map[string]interface{}, source string) []entity.TimelineEvent {
	var events []entity.TimelineEvent

	for i, rec := range records {
		var date time.Time
		var dateString, dateField string
		found := false
		for _, field := range recordDateFields {
			v, present := rec[field]
			if !present {
				continue
			}
			if d, s, ok := parseRecordDate(v); ok {
				date, dateString, dateField = d, s, field
				found = true
				break
			}
		}
		if !found {
			continue
		}

		description := ""
		for _, field := range recordDescriptionFields {
			if s, ok := rec[field].(string); ok && s != "" {
				description = s
				break
			}
		}

		var entities []string
		seen := make(map[string]bool)
		for _, field := range recordPartyFields {
			switch v := rec[field].(type) {
			case string:
				if v != "" && !seen[v] {
					seen[v] = true
					entities = append(entities, v)
				}
			case []string:
				for _, s := range v {
					if s != "" && !seen[s] {
						seen[s] = true
						entities = append(entities, s)
					}
				}
			case []interface{}:
				for _, item := range v {
					if s, ok := item.(string); ok && s != "" && !seen[s] {
						seen[s] = true
						entities = append(entities, s)
					}
				}
			}
		}

		events = append(events, entity.TimelineEvent{
			Id:          p.nextId(),
			Date:        date,
			DateString:  dateString,
			DateType:    entity.DateTypeInferred,
			Description: description,
			Entities:    entities,
			Confidence:  confRecordField,
			Source:      source,
			Context:     description,
			Metadata: map[string]interface{}{
				"record_index": i,
				"date_field":   dateField,
			},
		})
	}
	return events
}

// computeGaps walks the chronologically sorted events and reports every
// adjacent pair at least seven days apart.
func computeGaps(sorted []entity.TimelineEvent) []entity.TimelineGap {
	var gaps []entity.TimelineGap
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Date, sorted[i].Date
		if cur.Sub(prev) >= gapThreshold {
			gaps = append(gaps, entity.TimelineGap{
				Start:    prev,
				End:      cur,
				Duration: humanizeSpan(prev, cur),
			})
		}
	}
	return gaps
}

func (p *Processor) nextId() string {
	p.counter++
	return fmt.Sprintf("event_%d", p.counter)
}

func inputSize(in Input) int {
	if in.Records != nil {
		return len(in.Records)
	}
	return len(strings.TrimSpace(in.Text))
}
