package timeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The pattern pack is English-only and assumes US date conventions
// (MM/DD/YYYY). This is a hard constraint, not an oversight.

const (
	confAbsolute    = 0.95
	confPreposition = 0.85
	confDayWord     = 0.8
	confUnitsAgo    = 0.75
	confLastNext    = 0.7
	confRecordField = 0.9
)

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var (
	monthAlt   = strings.Join(monthNames[:], "|")
	slashRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	isoRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	writtenRe  = regexp.MustCompile(`\b(` + monthAlt + `)\s+(\d{1,2}),?\s+(\d{4})\b`)
	preposRe   = regexp.MustCompile(`(?i)\b(on|before|after|during|by)\s+(` + monthAlt + `)\s+(\d{1,2}),?\s+(\d{4})\b`)
	dayWordRe  = regexp.MustCompile(`(?i)\b(yesterday|today|tomorrow)\b`)
	unitsAgoRe = regexp.MustCompile(`(?i)\b(\d+)\s+(day|week|month|year)s?\s+ago\b`)
	lastNextRe = regexp.MustCompile(`(?i)\b(last|next)\s+(day|week|month|year)\b`)
)

// recordDateFields is the ordered list of field names probed on structured
// records; the first present, parseable field wins.
var recordDateFields = []string{
	"date", "eventDate", "filedDate", "filingDate", "hearingDate",
	"servedDate", "effectiveDate", "occurredAt", "timestamp", "createdAt",
}

// recordPartyFields lists the fields entities are pulled from.
var recordPartyFields = []string{
	"party", "parties", "plaintiff", "defendant", "petitioner",
	"respondent", "attorney", "judge", "witness",
}

// recordDescriptionFields lists the fields probed for an event description.
var recordDescriptionFields = []string{"description", "title", "event", "summary"}

// dateMatch is one dated span found in free text, before event assembly.
type dateMatch struct {
	date        time.Time
	text        string // matched surface form
	start, end  int    // byte offsets in the source text
	dateType    string // "absolute" or "relative"
	confidence  float64
	preposition string // set for preposition-anchored matches
}

func monthByName(name string) (time.Month, bool) {
	for i, m := range monthNames {
		if strings.EqualFold(m, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func buildDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// reject normalized overflow like February 30
	if d.Day() != day || d.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return d, true
}

// findDateMatches scans text for every supported surface form. Preposition
// matches are collected first and claim their span, so "on January 5, 2024"
// yields one 0.85 match, not an extra bare written-date match. Tokens that
// fail to parse are skipped silently.
func findDateMatches(text string, now time.Time) []dateMatch {
	var matches []dateMatch
	claimed := make([][2]int, 0)

	overlapsClaimed := func(start, end int) bool {
		for _, c := range claimed {
			if start < c[1] && end > c[0] {
				return true
			}
		}
		return false
	}
	claim := func(m dateMatch) {
		matches = append(matches, m)
		claimed = append(claimed, [2]int{m.start, m.end})
	}

	// temporal prepositions over written dates, highest precedence
	for _, idx := range preposRe.FindAllStringSubmatchIndex(text, -1) {
		full := text[idx[0]:idx[1]]
		sub := preposRe.FindStringSubmatch(full)
		month, ok := monthByName(sub[2])
		if !ok {
			continue
		}
		day, err1 := strconv.Atoi(sub[3])
		year, err2 := strconv.Atoi(sub[4])
		if err1 != nil || err2 != nil {
			continue
		}
		if d, ok := buildDate(year, int(month), day); ok {
			claim(dateMatch{
				date: d, text: full, start: idx[0], end: idx[1],
				dateType: "absolute", confidence: confPreposition,
				preposition: strings.ToLower(sub[1]),
			})
		}
	}

	// slash dates, US convention MM/DD/YYYY
	for _, idx := range slashRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		sub := slashRe.FindStringSubmatch(full)
		month, _ := strconv.Atoi(sub[1])
		day, _ := strconv.Atoi(sub[2])
		year, _ := strconv.Atoi(sub[3])
		if d, ok := buildDate(year, month, day); ok {
			claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "absolute", confidence: confAbsolute})
		}
	}

	// ISO dates
	for _, idx := range isoRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		sub := isoRe.FindStringSubmatch(full)
		year, _ := strconv.Atoi(sub[1])
		month, _ := strconv.Atoi(sub[2])
		day, _ := strconv.Atoi(sub[3])
		if d, ok := buildDate(year, month, day); ok {
			claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "absolute", confidence: confAbsolute})
		}
	}

	// written dates
	for _, idx := range writtenRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		sub := writtenRe.FindStringSubmatch(full)
		month, ok := monthByName(sub[1])
		if !ok {
			continue
		}
		day, err1 := strconv.Atoi(sub[2])
		year, err2 := strconv.Atoi(sub[3])
		if err1 != nil || err2 != nil {
			continue
		}
		if d, ok := buildDate(year, int(month), day); ok {
			claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "absolute", confidence: confAbsolute})
		}
	}

	// yesterday / today / tomorrow
	for _, idx := range dayWordRe.FindAllStringIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		var d time.Time
		switch strings.ToLower(full) {
		case "yesterday":
			d = now.AddDate(0, 0, -1)
		case "today":
			d = now
		case "tomorrow":
			d = now.AddDate(0, 0, 1)
		}
		claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "relative", confidence: confDayWord})
	}

	// "<N> <unit> ago"
	for _, idx := range unitsAgoRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		sub := unitsAgoRe.FindStringSubmatch(full)
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			continue
		}
		d := addUnits(now, strings.ToLower(sub[2]), -n)
		claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "relative", confidence: confUnitsAgo})
	}

	// "last/next <unit>"
	for _, idx := range lastNextRe.FindAllStringSubmatchIndex(text, -1) {
		if overlapsClaimed(idx[0], idx[1]) {
			continue
		}
		full := text[idx[0]:idx[1]]
		sub := lastNextRe.FindStringSubmatch(full)
		n := 1
		if strings.EqualFold(sub[1], "last") {
			n = -1
		}
		d := addUnits(now, strings.ToLower(sub[2]), n)
		claim(dateMatch{date: d, text: full, start: idx[0], end: idx[1], dateType: "relative", confidence: confLastNext})
	}

	return matches
}

func addUnits(base time.Time, unit string, n int) time.Time {
	switch unit {
	case "day":
		return base.AddDate(0, 0, n)
	case "week":
		return base.AddDate(0, 0, 7*n)
	case "month":
		return base.AddDate(0, n, 0)
	case "year":
		return base.AddDate(n, 0, 0)
	}
	return base
}

// parseRecordDate accepts the value shapes a record date field can carry.
func parseRecordDate(v interface{}) (time.Time, string, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, val.Format("2006-01-02"), true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "1/2/2006", "01/02/2006", "January 2, 2006", "January 2 2006"} {
			if d, err := time.Parse(layout, val); err == nil {
				return d, val, true
			}
		}
	}
	return time.Time{}, "", false
}

// entityRe matches capitalized multi-word names ("John Smith", "Oakland
// County Circuit Court").
var entityRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\b`)

// extractEntities finds capitalized multi-word names in a window, skipping
// spans that are actually written dates.
func extractEntities(window string) []string {
	var entities []string
	seen := make(map[string]bool)
	for _, m := range entityRe.FindAllString(window, -1) {
		if writtenRe.MatchString(m) {
			continue
		}
		if !seen[m] {
			seen[m] = true
			entities = append(entities, m)
		}
	}
	return entities
}

var sentenceRe = regexp.MustCompile(`(?U)[^.!?]+[.!?]`)

// describeWindow gives the event description: the first sentence longer than
// 10 characters inside the window, else the window's first 100 characters.
func describeWindow(window string) string {
	for _, s := range sentenceRe.FindAllString(window, -1) {
		s = strings.TrimSpace(s)
		if len(s) > 10 {
			return s
		}
	}
	trimmed := strings.TrimSpace(window)
	if len(trimmed) > 100 {
		return trimmed[:100]
	}
	return trimmed
}

// contextWindow returns the +-100 character span around a match.
func contextWindow(text string, start, end int) string {
	from := start - 100
	if from < 0 {
		from = 0
	}
	to := end + 100
	if to > len(text) {
		to = len(text)
	}
	return text[from:to]
}

// humanizeSpan renders the calendar distance between two dates, omitting
// zero-valued higher units and always showing days when nothing else is set.
func humanizeSpan(start, end time.Time) string {
	if end.Before(start) {
		start, end = end, start
	}

	years := end.Year() - start.Year()
	months := int(end.Month()) - int(start.Month())
	days := end.Day() - start.Day()

	if days < 0 {
		months--
		// days in the month preceding end
		prev := time.Date(end.Year(), end.Month(), 0, 0, 0, 0, 0, end.Location())
		days += prev.Day()
	}
	if months < 0 {
		years--
		months += 12
	}

	var parts []string
	if years > 0 {
		parts = append(parts, plural(years, "year"))
	}
	if months > 0 {
		parts = append(parts, plural(months, "month"))
	}
	if days > 0 || len(parts) == 0 {
		parts = append(parts, plural(days, "day"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
