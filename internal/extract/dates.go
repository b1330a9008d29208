package extract

import (
	"regexp"
	"strings"
	"time"
)

const longDateLayout = "January 2, 2006"

// Narrative announcement pattern: "On March 15, 2024, the Company ...".
// The month must be capitalized; a lowercase "on march ..." is prose, not
// the boilerplate opening of a disclosure sentence.
var announceDateRe = regexp.MustCompile(`On\s+([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)

// Effective-date surface forms in priority order; the 12:01 a.m. variant
// also carries the literal time-of-day text.
var effectivePatterns = []struct {
	re       *regexp.Regexp
	timeText string
}{
	{regexp.MustCompile(`(?i)effective\s+at\s+12:01\s*a\.?m\.?\s+on\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`), "12:01 a.m."},
	{regexp.MustCompile(`(?i)effective\s+on\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`), ""},
	{regexp.MustCompile(`(?i)effective\s+([A-Za-z]+\s+\d{1,2},\s+\d{4})`), ""},
}

// AnnounceDate extracts the date of the "On <Month DD, YYYY>" narrative
// pattern. A date after the filing date is rejected: an announcement inside
// a document cannot postdate the document itself.
func AnnounceDate(text string, filingDate time.Time) (time.Time, bool) {
	m := announceDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	dt, ok := parseLongDate(m[1])
	if !ok || dt.After(filingDate) {
		return time.Time{}, false
	}
	return dt, true
}

// EffectiveDateMatch is an extracted split effective date, optionally with
// the literal time-of-day text when the 12:01 a.m. form matched.
type EffectiveDateMatch struct {
	Date     time.Time
	TimeText string
}

// EffectiveDate extracts the split effective date, preferring the most
// specific surface form.
func EffectiveDate(text string) (EffectiveDateMatch, bool) {
	for _, p := range effectivePatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		dt, ok := parseLongDate(m[1])
		if !ok {
			continue
		}
		return EffectiveDateMatch{Date: dt, TimeText: p.timeText}, true
	}
	return EffectiveDateMatch{}, false
}

// parseLongDate parses "<Month> <D>, <YYYY>" tolerating irregular internal
// whitespace and month capitalization.
func parseLongDate(s string) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}
	month := strings.ToUpper(fields[0][:1]) + strings.ToLower(fields[0][1:])
	dt, err := time.Parse(longDateLayout, month+" "+fields[1]+" "+fields[2])
	if err != nil {
		return time.Time{}, false
	}
	return dt, true
}
