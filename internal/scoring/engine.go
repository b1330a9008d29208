// Package scoring ranks the filings of a reverse split event by disclosure
// strength and selects the earliest reliable announcement date. The point
// values and tier cutoffs are a fixed, calibrated heuristic contract;
// changing them invalidates stored scores.
package scoring

import (
	"fmt"
	"strings"
	"time"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/extract"
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

// Tier is a discrete confidence bucket for a filing's disclosure strength.
// A is the strongest; F means no reverse-split evidence at all.
type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierF Tier = "F"
)

const (
	tierAMinScore = 5
	tierBMinScore = 3

	// EffectiveDateWindow is the maximum business-day distance between an
	// extracted effective date and the event's execution date for the
	// alignment bonus.
	EffectiveDateWindow = 5
)

// Reference carries the owning event's reference data used for alignment
// scoring. Both fields are optional.
type Reference struct {
	Ratio         *models.Ratio
	ExecutionDate *time.Time
}

// ScoredFiling is a filing plus its scoring output. CandidateAnnounceDate
// is nil only for tier F filings, which never reach the candidate pool.
type ScoredFiling struct {
	Filing                *models.Filing
	Score                 int
	Tier                  Tier
	CandidateAnnounceDate *time.Time
	Reasons               []string
}

// Engine scores individual filings. It is stateless; a single instance is
// safe for concurrent use.
type Engine struct{}

// NewEngine creates a new scoring engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Score evaluates one filing against the owning event's reference data.
//
// A filing with no reverse-split evidence at all — no RS keyword in its
// snippets, no ratio, no effective date, no compliance flag — is tier F and
// skips scoring entirely. Past that gate the score is additive and is not
// clamped: a financing-only filing can go negative and still lands in
// tier C, not F.
func (e *Engine) Score(f *models.Filing, ref Reference) *ScoredFiling {
	ratio, hasRatio := f.Ratio()
	hasEffective := f.EffectiveDate != nil

	if !extract.HasReverseSplitKeyword(snippetText(f)) && !hasRatio && !hasEffective && !f.ComplianceFlag {
		return &ScoredFiling{
			Filing:  f,
			Score:   0,
			Tier:    TierF,
			Reasons: []string{"No RS keyword or ratio"},
		}
	}

	score := 0
	var reasons []string

	// Base prior by form type.
	switch {
	case formIn(f.Form, models.PrimaryForms):
		score += 3
		reasons = append(reasons, fmt.Sprintf("Form %s (+3)", f.Form))
	case formIn(f.Form, models.NoticeForms):
		score += 2
		reasons = append(reasons, fmt.Sprintf("Form %s (+2)", f.Form))
	case formIn(f.Form, models.OfferingForms):
		score += 1
		reasons = append(reasons, fmt.Sprintf("Form %s (+1)", f.Form))
	case formIn(f.Form, models.ContextForms):
		reasons = append(reasons, fmt.Sprintf("Form %s (context only)", f.Form))
	}

	// Content markers.
	if hasRatio && !extract.IsYearLikeRatio(ratio.Num, ratio.Den) {
		score += 2
		reasons = append(reasons, fmt.Sprintf("Valid ratio %s (+2)", ratio))
	}
	if hasEffective {
		score += 1
		reasons = append(reasons, "Effective date extracted (+1)")
	}
	if f.AnnounceDate != nil && !sameDate(*f.AnnounceDate, f.FilingDate) && !f.AnnounceDate.After(f.FilingDate) {
		score += 1
		reasons = append(reasons, "Announce sentence date extracted (+1)")
	}
	if f.ComplianceFlag || f.HasItem("3.01") {
		score += 1
		reasons = append(reasons, "Compliance/listing cue (+1)")
	}
	if f.HasItem("3.02") {
		score += 1
		reasons = append(reasons, "Item 3.02 share-change (+1)")
	}

	// Alignment with the event's reference data.
	if ref.Ratio != nil && hasRatio && ratio == *ref.Ratio {
		score += 1
		reasons = append(reasons, "Ratio matches reference (+1)")
	}
	if ref.ExecutionDate != nil && hasEffective {
		if diff := BusinessDaysBetween(*f.EffectiveDate, *ref.ExecutionDate); absInt(diff) <= EffectiveDateWindow {
			score += 1
			reasons = append(reasons, "Effective date near reference (±5 bdays) (+1)")
		}
	}

	// Financing talk with no split substance is a negative signal.
	if f.FinancingFlag && !hasRatio && !hasEffective {
		score -= 1
		reasons = append(reasons, "Financing only, no RS ratio/date (-1)")
	}

	tier := TierC
	switch {
	case score >= tierAMinScore:
		tier = TierA
	case score >= tierBMinScore:
		tier = TierB
	}

	return &ScoredFiling{
		Filing:                f,
		Score:                 score,
		Tier:                  tier,
		CandidateAnnounceDate: candidateAnnounceDate(f),
		Reasons:               reasons,
	}
}

// candidateAnnounceDate is the single best date this filing offers as a
// disclosure date: the extracted announcement date when it does not
// postdate the filing, otherwise the filing date itself.
func candidateAnnounceDate(f *models.Filing) *time.Time {
	if f.AnnounceDate != nil && !f.AnnounceDate.After(f.FilingDate) {
		return f.AnnounceDate
	}
	d := f.FilingDate
	return &d
}

// BusinessDaysBetween counts weekdays between two dates: the inclusive
// weekday count of the span, minus one. The result is symmetric in its
// arguments; no holiday calendar is applied.
func BusinessDaysBetween(a, b time.Time) int {
	if a.After(b) {
		a, b = b, a
	}
	days := 0
	for d := a; !d.After(b); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	return days - 1
}

// snippetText joins a filing's evidence excerpts for the keyword gate.
func snippetText(f *models.Filing) string {
	if len(f.TextMatches) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.TextMatches))
	for _, v := range f.TextMatches {
		parts = append(parts, v)
	}
	return strings.Join(parts, " ")
}

func formIn(form string, set []string) bool {
	for _, f := range set {
		if f == form {
			return true
		}
	}
	return false
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
