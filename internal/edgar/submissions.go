package edgar

import (
	"sort"
	"time"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

const dateLayout = "2006-01-02"

// Submissions mirrors the shape of EDGAR's per-company submissions JSON.
// Only the column-oriented "recent" block is used.
type Submissions struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent RecentFilings `json:"recent"`
	} `json:"filings"`
}

// RecentFilings is EDGAR's column-oriented filing history: parallel slices
// indexed by filing.
type RecentFilings struct {
	AccessionNumber []string `json:"accessionNumber"`
	Form            []string `json:"form"`
	FilingDate      []string `json:"filingDate"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// FilingRef identifies one filing worth downloading.
type FilingRef struct {
	Accession       string
	Form            string
	FilingDate      time.Time
	PrimaryDocument string
}

// Window computes the filing search window for an event. With a known
// execution date the window runs from daysBefore before it to daysAfter
// after it; without one it is the trailing fallbackDays ending today.
func Window(executionDate *time.Time, now time.Time, daysBefore, daysAfter, fallbackDays int) (time.Time, time.Time) {
	if executionDate != nil {
		return executionDate.AddDate(0, 0, -daysBefore), executionDate.AddDate(0, 0, daysAfter)
	}
	return now.AddDate(0, 0, -fallbackDays), now
}

// FilterWindow returns the target-form filings dated within [start, end],
// sorted by filing date ascending and capped at limit from the earliest
// end of the window. Rows with an unparseable date are skipped.
func (s *Submissions) FilterWindow(start, end time.Time, limit int) []FilingRef {
	recent := s.Filings.Recent
	var refs []FilingRef
	for i := range recent.AccessionNumber {
		if i >= len(recent.Form) || i >= len(recent.FilingDate) {
			break
		}
		if !models.IsTargetForm(recent.Form[i]) {
			continue
		}
		date, err := time.Parse(dateLayout, recent.FilingDate[i])
		if err != nil {
			continue
		}
		if date.Before(start) || date.After(end) {
			continue
		}
		ref := FilingRef{
			Accession:  recent.AccessionNumber[i],
			Form:       recent.Form[i],
			FilingDate: date,
		}
		if i < len(recent.PrimaryDocument) {
			ref.PrimaryDocument = recent.PrimaryDocument[i]
		}
		refs = append(refs, ref)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return refs[i].FilingDate.Before(refs[j].FilingDate)
	})
	if limit > 0 && len(refs) > limit {
		refs = refs[:limit]
	}
	return refs
}

// DateRange reports the earliest and latest filing dates present in the
// history, ignoring unparseable rows. ok is false when no date parses.
func (s *Submissions) DateRange() (earliest, latest time.Time, ok bool) {
	for _, raw := range s.Filings.Recent.FilingDate {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			continue
		}
		if !ok {
			earliest, latest = date, date
			ok = true
			continue
		}
		if date.Before(earliest) {
			earliest = date
		}
		if date.After(latest) {
			latest = date
		}
	}
	return earliest, latest, ok
}

// PredatesHistory reports whether the event's execution date falls before
// the earliest filing EDGAR has for this company. When true, the split is
// older than the available history and an empty window is expected rather
// than suspicious.
func (s *Submissions) PredatesHistory(executionDate *time.Time) bool {
	if executionDate == nil {
		return false
	}
	earliest, _, ok := s.DateRange()
	if !ok {
		return false
	}
	return executionDate.Before(earliest)
}
