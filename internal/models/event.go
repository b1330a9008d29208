package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Ratio is a reverse split ratio expressed as num:den shares (e.g. 1:20).
// A reverse split always reduces share count, so Den > Num.
type Ratio struct {
	Num int `json:"num"`
	Den int `json:"den"`
}

// String formats the ratio in the conventional "1:20" form.
func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Num, r.Den)
}

// Valid reports whether the ratio denotes a reverse split.
func (r Ratio) Valid() bool {
	return r.Num > 0 && r.Den > r.Num
}

// SplitEvent represents one reverse stock split occurrence.
// Events are created by ingestion and enriched with EDGAR filings; the
// announcement fields are written back by the earliest-announcement selector.
type SplitEvent struct {
	ID            uuid.UUID  `json:"id"`
	Ticker        string     `json:"ticker"`
	CompanyName   string     `json:"company_name"`
	ExecutionDate *time.Time `json:"execution_date,omitempty"`
	Ratio         *Ratio     `json:"ratio,omitempty"`

	// Earliest announcement decision, written back by the selector.
	AnnouncementDate   *time.Time `json:"earliest_announcement_date,omitempty"`
	AnnouncementSource string     `json:"earliest_announcement_source,omitempty"`
	AnnouncementScore  *int       `json:"earliest_announcement_score,omitempty"`
	AnnouncementTier   string     `json:"earliest_announcement_tier,omitempty"`
	AnnouncementForm   string     `json:"earliest_announcement_form,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
