package entity

import "time"

type DateType string

const (
	DateTypeAbsolute DateType = "absolute"
	DateTypeRelative DateType = "relative"
	DateTypeInferred DateType = "inferred"
)

// TimelineEvent is a dated occurrence extracted from text or records.
// DateString preserves the original matched surface form; Context holds the
// raw text window the event was found in.
type TimelineEvent struct {
	Id          string
	Date        time.Time
	DateString  string
	DateType    DateType
	Description string
	Entities    []string
	Confidence  float64
	Source      string
	Context     string
	Metadata    map[string]interface{}
}

// TimelineGap is an interval of at least seven days between two
// chronologically adjacent events.
type TimelineGap struct {
	Start    time.Time
	End      time.Time
	Duration string
}
