package dto

import (
	"time"

	"docintel-be/internal/entity"
	"docintel-be/pkg/insight"
	"docintel-be/pkg/timeline"
)

type InsightRequest struct {
	Text      string                   `json:"text"`
	Records   []map[string]interface{} `json:"records"`
	Type      string                   `json:"type" validate:"required,oneof=claim pattern anomaly trend relationship"`
	Context   string                   `json:"context"`
	Threshold *float64                 `json:"threshold" validate:"omitempty,min=0,max=1"`
}

func (r *InsightRequest) ToInput() insight.Input {
	threshold := insight.DefaultThreshold
	if r.Threshold != nil {
		threshold = *r.Threshold
	}
	return insight.Input{
		Text:      r.Text,
		Records:   r.Records,
		Type:      entity.InsightType(r.Type),
		Context:   r.Context,
		Threshold: threshold,
	}
}

type InsightDto struct {
	Id          string                 `json:"id"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Confidence  float64                `json:"confidence"`
	Evidence    []string               `json:"evidence,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Timestamp   time.Time              `json:"timestamp"`
}

type InsightSummaryDto struct {
	Total          int            `json:"total"`
	ByType         map[string]int `json:"by_type"`
	HighConfidence int            `json:"high_confidence"`
}

type InsightResponse struct {
	Insights []InsightDto      `json:"insights"`
	Summary  InsightSummaryDto `json:"summary"`
	Metadata struct {
		ProcessingTimeMs int64   `json:"processing_time_ms"`
		DataSize         int     `json:"data_size"`
		Threshold        float64 `json:"threshold"`
	} `json:"metadata"`
}

func InsightResponseFromResult(res *insight.Result) *InsightResponse {
	out := &InsightResponse{
		Insights: make([]InsightDto, len(res.Insights)),
		Summary: InsightSummaryDto{
			Total:          res.Summary.Total,
			ByType:         make(map[string]int, len(res.Summary.ByType)),
			HighConfidence: res.Summary.HighConfidence,
		},
	}
	for i, ins := range res.Insights {
		out.Insights[i] = InsightDto{
			Id:          ins.Id,
			Type:        string(ins.Type),
			Description: ins.Description,
			Confidence:  ins.Confidence,
			Evidence:    ins.Evidence,
			Metadata:    ins.Metadata,
			Timestamp:   ins.Timestamp,
		}
	}
	for t, n := range res.Summary.ByType {
		out.Summary.ByType[string(t)] = n
	}
	out.Metadata.ProcessingTimeMs = res.Metadata.ProcessingTime.Milliseconds()
	out.Metadata.DataSize = res.Metadata.DataSize
	out.Metadata.Threshold = res.Metadata.Threshold
	return out
}

type TimelineRequest struct {
	Text            string                   `json:"text"`
	Records         []map[string]interface{} `json:"records"`
	Source          string                   `json:"source"`
	SortOrder       string                   `json:"sort_order" validate:"omitempty,oneof=chronological reverse-chronological"`
	IncludeRelative *bool                    `json:"include_relative"`
}

func (r *TimelineRequest) ToInput() timeline.Input {
	in := timeline.DefaultInput()
	in.Text = r.Text
	in.Records = r.Records
	in.Source = r.Source
	if r.SortOrder != "" {
		in.SortOrder = timeline.SortOrder(r.SortOrder)
	}
	if r.IncludeRelative != nil {
		in.IncludeRelative = *r.IncludeRelative
	}
	return in
}

type TimelineEventDto struct {
	Id          string                 `json:"id"`
	Date        time.Time              `json:"date"`
	DateString  string                 `json:"date_string"`
	DateType    string                 `json:"date_type"`
	Description string                 `json:"description"`
	Entities    []string               `json:"entities,omitempty"`
	Confidence  float64                `json:"confidence"`
	Source      string                 `json:"source,omitempty"`
	Context     string                 `json:"context,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type TimelineGapDto struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration string    `json:"duration"`
}

type TimelineBoundsDto struct {
	Earliest   *time.Time `json:"earliest,omitempty"`
	Latest     *time.Time `json:"latest,omitempty"`
	Duration   string     `json:"duration,omitempty"`
	EventCount int        `json:"event_count"`
}

type TimelineResponse struct {
	Events   []TimelineEventDto `json:"events"`
	Timeline TimelineBoundsDto  `json:"timeline"`
	Gaps     []TimelineGapDto   `json:"gaps"`
	Metadata struct {
		ProcessingTimeMs int64 `json:"processing_time_ms"`
		DataSize         int   `json:"data_size"`
	} `json:"metadata"`
}

func TimelineResponseFromResult(res *timeline.Result) *TimelineResponse {
	out := &TimelineResponse{
		Events: make([]TimelineEventDto, len(res.Events)),
		Gaps:   make([]TimelineGapDto, len(res.Gaps)),
	}
	for i, ev := range res.Events {
		out.Events[i] = TimelineEventDto{
			Id:          ev.Id,
			Date:        ev.Date,
			DateString:  ev.DateString,
			DateType:    string(ev.DateType),
			Description: ev.Description,
			Entities:    ev.Entities,
			Confidence:  ev.Confidence,
			Source:      ev.Source,
			Context:     ev.Context,
			Metadata:    ev.Metadata,
		}
	}
	for i, gap := range res.Gaps {
		out.Gaps[i] = TimelineGapDto{Start: gap.Start, End: gap.End, Duration: gap.Duration}
	}

	out.Timeline.EventCount = res.Timeline.EventCount
	if res.Timeline.EventCount > 0 {
		earliest := res.Timeline.Earliest
		latest := res.Timeline.Latest
		out.Timeline.Earliest = &earliest
		out.Timeline.Latest = &latest
		out.Timeline.Duration = res.Timeline.Duration
	}

	out.Metadata.ProcessingTimeMs = res.Metadata.ProcessingTime.Milliseconds()
	out.Metadata.DataSize = res.Metadata.DataSize
	return out
}
