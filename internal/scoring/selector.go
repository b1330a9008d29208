package scoring

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

// Sanity window around the event's execution date, in calendar days. A
// candidate announcement more than SanityWindowDays away is implausible,
// except for legitimately late-filed announcements up to
// LateAnnouncementGraceDays after the execution date.
const (
	SanityWindowDays          = 365
	LateAnnouncementGraceDays = 30
)

// FilingSummary is the audit view of one considered filing.
type FilingSummary struct {
	Accession             string     `json:"accession"`
	Form                  string     `json:"form"`
	FilingDate            time.Time  `json:"filing_date"`
	AnnounceDate          *time.Time `json:"announce_date,omitempty"`
	CandidateAnnounceDate *time.Time `json:"candidate_announce_date,omitempty"`
	Score                 int        `json:"score"`
	Reasons               []string   `json:"reasons"`
}

// BestFiling identifies the winning filing of a decision.
type BestFiling struct {
	Accession   string    `json:"accession"`
	Form        string    `json:"form"`
	FilingDate  time.Time `json:"filing_date"`
	Score       int       `json:"score"`
	Tier        Tier      `json:"tier"`
	Reasons     []string  `json:"reasons"`
	DocumentURL string    `json:"document_url"`
}

// DecisionSummary counts the filings considered, by tier.
type DecisionSummary struct {
	TotalFilings int `json:"total_filings"`
	TierACount   int `json:"tier_a_count"`
	TierBCount   int `json:"tier_b_count"`
	TierCCount   int `json:"tier_c_count"`
	TierFCount   int `json:"tier_f_count"`
}

// Decision is the selector's output for one event: the chosen announcement
// date (nil when none could be supported), the winning filing, and the full
// tier-partitioned listing of everything considered.
type Decision struct {
	EventID          uuid.UUID       `json:"event_id"`
	Ticker           string          `json:"ticker"`
	AnnouncementDate *time.Time      `json:"announcement_date,omitempty"`
	BestFiling       *BestFiling     `json:"best_filing,omitempty"`
	Summary          DecisionSummary `json:"summary"`
	TierA            []FilingSummary `json:"tier_a"`
	TierB            []FilingSummary `json:"tier_b"`
	TierC            []FilingSummary `json:"tier_c"`
	TierF            []FilingSummary `json:"tier_f"`
	Message          string          `json:"message,omitempty"`
}

// Selector picks the earliest well-supported announcement date from an
// event's filings.
type Selector struct {
	engine *Engine
}

// NewSelector creates a selector backed by a fresh scoring engine.
func NewSelector() *Selector {
	return &Selector{engine: NewEngine()}
}

// Select scores every filing of the event and chooses the earliest
// announcement date among the admitted candidates. Stored scores are
// ignored; everything is recomputed from the filings and the event's
// reference data. An event with zero filings yields a decision with a nil
// date and empty partitions — that is an answer, not an error.
func (s *Selector) Select(event *models.SplitEvent, filings []*models.Filing) *Decision {
	decision := &Decision{
		EventID: event.ID,
		Ticker:  event.Ticker,
		TierA:   []FilingSummary{},
		TierB:   []FilingSummary{},
		TierC:   []FilingSummary{},
		TierF:   []FilingSummary{},
	}
	decision.Summary.TotalFilings = len(filings)

	if len(filings) == 0 {
		decision.Message = "No EDGAR filings found"
		return decision
	}

	ref := Reference{Ratio: event.Ratio, ExecutionDate: event.ExecutionDate}

	var tierA, tierB, tierC []*ScoredFiling
	scored := make([]*ScoredFiling, 0, len(filings))
	for _, f := range filings {
		sf := s.engine.Score(f, ref)
		scored = append(scored, sf)

		// Admission gates per tier. Tier C only qualifies with both a
		// ratio and an effective date: a bare low score is not trusted as
		// an announcement source.
		_, hasRatio := f.Ratio()
		switch {
		case sf.Tier == TierA && sf.Score >= tierAMinScore:
			tierA = append(tierA, sf)
		case sf.Tier == TierB && sf.Score >= tierBMinScore && sf.Score < tierAMinScore:
			tierB = append(tierB, sf)
		case sf.Tier == TierC && sf.Score >= tierBMinScore && hasRatio && f.EffectiveDate != nil:
			tierC = append(tierC, sf)
		}
	}

	for _, sf := range scored {
		summary := summarize(sf)
		switch sf.Tier {
		case TierA:
			decision.TierA = append(decision.TierA, summary)
			decision.Summary.TierACount++
		case TierB:
			decision.TierB = append(decision.TierB, summary)
			decision.Summary.TierBCount++
		case TierC:
			decision.TierC = append(decision.TierC, summary)
			decision.Summary.TierCCount++
		case TierF:
			decision.TierF = append(decision.TierF, summary)
			decision.Summary.TierFCount++
		}
	}

	pool := make([]*ScoredFiling, 0, len(tierA)+len(tierB)+len(tierC))
	pool = append(pool, tierA...)
	pool = append(pool, tierB...)
	pool = append(pool, tierC...)
	if len(pool) == 0 {
		decision.Message = "No candidate filings passed tier gating"
		return decision
	}

	valid := sanityFilter(pool, event.ExecutionDate)
	if len(valid) == 0 {
		// Prefer a weak answer to no answer.
		valid = pool
	}

	// Earliest candidate date wins; score breaks ties. The sort is stable
	// so repeated runs over the same filings pick the same winner.
	sort.SliceStable(valid, func(i, j int) bool {
		di, dj := valid[i].CandidateAnnounceDate, valid[j].CandidateAnnounceDate
		switch {
		case di == nil && dj == nil:
			return valid[i].Score > valid[j].Score
		case di == nil:
			return false
		case dj == nil:
			return true
		case !di.Equal(*dj):
			return di.Before(*dj)
		}
		return valid[i].Score > valid[j].Score
	})

	best := valid[0]
	decision.AnnouncementDate = best.CandidateAnnounceDate
	decision.BestFiling = &BestFiling{
		Accession:   best.Filing.Accession,
		Form:        best.Filing.Form,
		FilingDate:  best.Filing.FilingDate,
		Score:       best.Score,
		Tier:        best.Tier,
		Reasons:     best.Reasons,
		DocumentURL: best.Filing.DocumentURL,
	}
	return decision
}

// sanityFilter drops candidates whose date is implausibly far from the
// event's execution date. Candidates with no date of their own, or when the
// event has no execution date, pass through untouched.
func sanityFilter(pool []*ScoredFiling, execDate *time.Time) []*ScoredFiling {
	var valid []*ScoredFiling
	for _, sf := range pool {
		if sf.CandidateAnnounceDate == nil || execDate == nil {
			valid = append(valid, sf)
			continue
		}
		days := calendarDaysBetween(*sf.CandidateAnnounceDate, *execDate)
		if days <= SanityWindowDays {
			valid = append(valid, sf)
		} else if sf.CandidateAnnounceDate.After(*execDate) && days <= LateAnnouncementGraceDays {
			valid = append(valid, sf)
		}
	}
	return valid
}

func calendarDaysBetween(a, b time.Time) int {
	d := int(b.Sub(a).Hours() / 24)
	return absInt(d)
}

func summarize(sf *ScoredFiling) FilingSummary {
	return FilingSummary{
		Accession:             sf.Filing.Accession,
		Form:                  sf.Filing.Form,
		FilingDate:            sf.Filing.FilingDate,
		AnnounceDate:          sf.Filing.AnnounceDate,
		CandidateAnnounceDate: sf.CandidateAnnounceDate,
		Score:                 sf.Score,
		Reasons:               sf.Reasons,
	}
}
