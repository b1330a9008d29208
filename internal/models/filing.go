package models

import (
	"time"

	"github.com/google/uuid"
)

// Form type groupings used for both EDGAR retrieval filtering and scoring.
// Primary disclosure forms are same-day current reports; notice forms reach
// shareholders on a delay; offering forms mention splits incidentally;
// context forms are periodic reports kept for reference only.
var (
	PrimaryForms  = []string{"8-K", "6-K"}
	NoticeForms   = []string{"DEF 14A", "PRE 14A", "DEFA14A", "14C", "PRE 14C"}
	OfferingForms = []string{"S-1", "S-3", "424B5", "424B3", "FWP"}
	ContextForms  = []string{"10-Q", "10-K", "20-F"}
)

// TargetItems are the 8-K item codes mined from filing text, in the fixed
// order extraction results are reported.
var TargetItems = []string{"3.01", "5.03", "8.01", "1.01", "3.02"}

// IsTargetForm reports whether a form type is on the retrieval allow-list.
func IsTargetForm(form string) bool {
	return formIn(form, PrimaryForms) || formIn(form, NoticeForms) ||
		formIn(form, OfferingForms) || formIn(form, ContextForms)
}

func formIn(form string, set []string) bool {
	for _, f := range set {
		if f == form {
			return true
		}
	}
	return false
}

// Filing is one regulatory document associated with a SplitEvent, with the
// signals extracted from its text. Optional fields are nil when the pattern
// was not found; absence is evidence of nothing, not falsity.
type Filing struct {
	Accession  string    `json:"accession"`
	EventID    uuid.UUID `json:"event_id"`
	CIK        string    `json:"cik"`
	Form       string    `json:"form"`
	FilingDate time.Time `json:"filing_date"`

	// Extracted reverse split ratio and its size-invariant magnitude.
	RatioNum *int     `json:"ratio_num,omitempty"`
	RatioDen *int     `json:"ratio_den,omitempty"`
	LogRatio *float64 `json:"log_ratio,omitempty"`

	// Dates extracted from narrative text.
	AnnounceDate      *time.Time `json:"announce_date,omitempty"`
	EffectiveDate     *time.Time `json:"effective_date,omitempty"`
	EffectiveTimeText string     `json:"effective_time_text,omitempty"`

	// Item codes found, in TargetItems order.
	Items []string `json:"items"`

	// Content flags.
	ComplianceFlag        bool `json:"compliance_flag"`
	FinancingFlag         bool `json:"financing_flag"`
	UnregisteredSalesFlag bool `json:"unregistered_sales_flag"`
	RoundingUpFlag        bool `json:"rounding_up_flag"`

	// Derived from item codes.
	ShareChangeFlag       bool `json:"share_change_flag"`
	ListingDeficiencyFlag bool `json:"listing_deficiency_flag"`

	// Evidence excerpts keyed by flag name (ratio_text, compliance_text,
	// financing_text, rounding_text).
	TextMatches map[string]string `json:"text_matches,omitempty"`

	DocumentURL string `json:"document_url"`

	// Score cache written at parse time. The selector recomputes rather
	// than trusting these; they serve read-side consumers.
	Score                 *int       `json:"score,omitempty"`
	Tier                  string     `json:"tier,omitempty"`
	CandidateAnnounceDate *time.Time `json:"candidate_announce_date,omitempty"`

	UpdatedAt time.Time `json:"last_updated"`
}

// Ratio returns the extracted ratio, if both components were found.
func (f *Filing) Ratio() (Ratio, bool) {
	if f.RatioNum == nil || f.RatioDen == nil {
		return Ratio{}, false
	}
	return Ratio{Num: *f.RatioNum, Den: *f.RatioDen}, true
}

// HasItem reports whether an item code was found in the filing.
func (f *Filing) HasItem(code string) bool {
	for _, it := range f.Items {
		if it == code {
			return true
		}
	}
	return false
}
