package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docintel-be/internal/entity"
	"docintel-be/internal/pkg/logger"
)

var fixedNow = time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

func newTestProcessor() *Processor {
	return NewProcessor(logger.NewNop(), func() time.Time { return fixedNow })
}

func TestProcessTextAbsoluteAndRelativeDates(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Text = "The motion was filed on January 5, 2024. The hearing happened 3 days ago."
	in.Source = "case notes"

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Events, 2)

	// chronological: Jan 5 before Jan 7
	first := res.Events[0]
	assert.Equal(t, time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "on January 5, 2024", first.DateString)
	assert.Equal(t, entity.DateTypeAbsolute, first.DateType)
	assert.InDelta(t, 0.85, first.Confidence, 1e-9)
	assert.Equal(t, "on", first.Metadata["preposition"])
	assert.Equal(t, "case notes", first.Source)
	assert.Contains(t, first.Description, "motion was filed")

	second := res.Events[1]
	assert.Equal(t, fixedNow.AddDate(0, 0, -3), second.Date)
	assert.Equal(t, "3 days ago", second.DateString)
	assert.Equal(t, entity.DateTypeRelative, second.DateType)
	assert.InDelta(t, 0.75, second.Confidence, 1e-9)

	assert.Equal(t, 2, res.Timeline.EventCount)
	assert.Equal(t, first.Date, res.Timeline.Earliest)
	assert.Equal(t, second.Date, res.Timeline.Latest)
	assert.Empty(t, res.Gaps)
}

func TestProcessTextDateFormats(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name       string
		text       string
		wantDate   time.Time
		wantType   entity.DateType
		wantConf   float64
		wantString string
	}{
		{
			name:       "slash date",
			text:       "Served 3/15/2024 by mail.",
			wantDate:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			wantType:   entity.DateTypeAbsolute,
			wantConf:   0.95,
			wantString: "3/15/2024",
		},
		{
			name:       "iso date",
			text:       "Order entered 2024-02-01 nunc pro tunc.",
			wantDate:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
			wantType:   entity.DateTypeAbsolute,
			wantConf:   0.95,
			wantString: "2024-02-01",
		},
		{
			name:       "bare written date",
			text:       "Judgment entered December 1, 2023 after trial.",
			wantDate:   time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			wantType:   entity.DateTypeAbsolute,
			wantConf:   0.95,
			wantString: "December 1, 2023",
		},
		{
			name:       "day word",
			text:       "The answer is due tomorrow at noon.",
			wantDate:   fixedNow.AddDate(0, 0, 1),
			wantType:   entity.DateTypeRelative,
			wantConf:   0.8,
			wantString: "tomorrow",
		},
		{
			name:       "last unit",
			text:       "The deposition was taken last week in chambers.",
			wantDate:   fixedNow.AddDate(0, 0, -7),
			wantType:   entity.DateTypeRelative,
			wantConf:   0.7,
			wantString: "last week",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			in.Text = tt.text

			res, err := p.Process(in)
			assert.NoError(t, err)
			assert.Len(t, res.Events, 1)
			assert.Equal(t, tt.wantDate, res.Events[0].Date)
			assert.Equal(t, tt.wantType, res.Events[0].DateType)
			assert.InDelta(t, tt.wantConf, res.Events[0].Confidence, 1e-9)
			assert.Equal(t, tt.wantString, res.Events[0].DateString)
		})
	}
}

func TestProcessTextInvalidDatesSkipped(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Text = "The filing of 2/30/2024 never happened; the real date was 2/28/2024."

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Events, 1)
	assert.Equal(t, "2/28/2024", res.Events[0].DateString)
}

func TestProcessExcludeRelative(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Text = "Filed on January 5, 2024. Heard 3 days ago."
	in.IncludeRelative = false

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Events, 1)
	assert.Equal(t, entity.DateTypeAbsolute, res.Events[0].DateType)
}

func TestProcessSortOrder(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Text = "Heard March 1, 2024. Filed January 1, 2024."
	in.SortOrder = SortReverseChronological

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Events, 2)
	assert.True(t, res.Events[0].Date.After(res.Events[1].Date))

	// bounds stay chronological regardless of sort order
	assert.Equal(t, res.Events[1].Date, res.Timeline.Earliest)
	assert.Equal(t, res.Events[0].Date, res.Timeline.Latest)
}

func TestProcessGapDetection(t *testing.T) {
	p := newTestProcessor()

	tests := []struct {
		name     string
		text     string
		wantGaps int
	}{
		{"gap of 19 days", "Filed on January 1, 2024. Heard on January 20, 2024.", 1},
		{"gap of exactly 7 days", "Filed on January 1, 2024. Heard on January 8, 2024.", 1},
		{"below the threshold", "Filed on January 1, 2024. Heard on January 5, 2024.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DefaultInput()
			in.Text = tt.text

			res, err := p.Process(in)
			assert.NoError(t, err)
			assert.Len(t, res.Gaps, tt.wantGaps)
		})
	}
}

func TestProcessGapFields(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Text = "Filed on January 1, 2024. Heard on January 20, 2024."

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Gaps, 1)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), res.Gaps[0].Start)
	assert.Equal(t, time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), res.Gaps[0].End)
	assert.Equal(t, "19 days", res.Gaps[0].Duration)
	assert.Equal(t, "19 days", res.Timeline.Duration)
}

func TestProcessRecords(t *testing.T) {
	p := newTestProcessor()

	in := DefaultInput()
	in.Records = []map[string]interface{}{
		{"filedDate": "2024-03-15", "description": "Complaint filed", "plaintiff": "John Smith"},
		{"note": "no date here"},
		{"date": "2024-01-02", "title": "Summons issued", "parties": []string{"John Smith", "Acme Corp"}},
	}
	in.Source = "register of actions"

	res, err := p.Process(in)
	assert.NoError(t, err)
	assert.Len(t, res.Events, 2)

	first := res.Events[0]
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, entity.DateTypeInferred, first.DateType)
	assert.InDelta(t, 0.9, first.Confidence, 1e-9)
	assert.Equal(t, "Summons issued", first.Description)
	assert.Equal(t, []string{"John Smith", "Acme Corp"}, first.Entities)
	assert.Equal(t, "date", first.Metadata["date_field"])
	assert.Equal(t, "register of actions", first.Source)

	second := res.Events[1]
	assert.Equal(t, "Complaint filed", second.Description)
	assert.Equal(t, []string{"John Smith"}, second.Entities)
	assert.Equal(t, "filedDate", second.Metadata["date_field"])

	assert.Equal(t, 3, res.Metadata.DataSize)
}

func TestProcessEmptyInput(t *testing.T) {
	p := newTestProcessor()

	res, err := p.Process(DefaultInput())
	assert.NoError(t, err)
	assert.Empty(t, res.Events)
	assert.Empty(t, res.Gaps)
	assert.Equal(t, 0, res.Timeline.EventCount)
	assert.Equal(t, 0, res.Metadata.DataSize)
}

func TestExtractEntitiesSkipsWrittenDates(t *testing.T) {
	entities := extractEntities("John Smith appeared before Judge Brown on January 5, 2024 in Oakland County.")

	assert.Contains(t, entities, "John Smith")
	assert.Contains(t, entities, "Judge Brown")
	assert.Contains(t, entities, "Oakland County")
	for _, e := range entities {
		assert.NotContains(t, e, "January")
	}
}

func TestHumanizeSpan(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{
			"days only",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
			"19 days",
		},
		{
			"months and days",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			"2 months, 14 days",
		},
		{
			"whole year",
			time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"1 year",
		},
		{
			"same day",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"0 days",
		},
		{
			"reversed arguments",
			time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			"1 month",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeSpan(tt.start, tt.end))
		})
	}
}
