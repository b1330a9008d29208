package extract

import (
	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

// Apply runs every extractor over the plain text of a filing and fills in
// the extraction fields of f. Form, accession, and filing date must already
// be set. Fields for signals not found in the text are left at their zero
// values; absence means "not found", never "false".
func Apply(text string, f *models.Filing) {
	f.Items = Items(text)

	ratioText := ""
	if m, ok := Ratio(text); ok {
		f.RatioNum = &m.Num
		f.RatioDen = &m.Den
		f.LogRatio = &m.LogRatio
		ratioText = m.Text
	}

	if dt, ok := AnnounceDate(text, f.FilingDate); ok {
		f.AnnounceDate = &dt
	}
	if m, ok := EffectiveDate(text); ok {
		f.EffectiveDate = &m.Date
		f.EffectiveTimeText = m.TimeText
	}

	f.ComplianceFlag = ComplianceFlag(text)
	f.FinancingFlag = FinancingFlag(text)
	f.UnregisteredSalesFlag = UnregisteredSalesFlag(text, f.Items)
	f.RoundingUpFlag = RoundingUpFlag(text)
	f.ShareChangeFlag = f.HasItem("3.02")
	f.ListingDeficiencyFlag = f.HasItem("3.01")

	f.TextMatches = Snippets(text, ratioText, f.ComplianceFlag, f.FinancingFlag, f.RoundingUpFlag)
}
