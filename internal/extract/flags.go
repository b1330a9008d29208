package extract

import "regexp"

// Proximity thresholds for the flag heuristics, in characters. These encode
// calibrated judgment calls; tune with care.
const (
	// Maximum distance between "unregistered" and "sale(s)".
	UnregisteredProximity = 200
	// Maximum distance between a round-up phrase and a split-context keyword.
	RoundingContextWindow = 300
	// Half-width of the window around a round-up phrase searched for the
	// literal word "fractional".
	FractionalWindow = 100
)

var compliancePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)regain\s+compliance`),
	regexp.MustCompile(`(?i)maintain\s+compliance`),
	regexp.MustCompile(`(?i)minimum\s+bid`),
	regexp.MustCompile(`(?i)deficiency\s+notice`),
	regexp.MustCompile(`(?i)\bNasdaq\b`),
	regexp.MustCompile(`(?i)\bNYSE\b`),
}

var financingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)registered\s+direct`),
	regexp.MustCompile(`(?i)at-the-market`),
	regexp.MustCompile(`(?i)\bATM\b`),
	regexp.MustCompile(`(?i)\bS-3\b`),
	regexp.MustCompile(`(?i)\b424B5\b`),
	regexp.MustCompile(`(?i)\b424B3\b`),
	regexp.MustCompile(`(?i)\bwarrant\b`),
	regexp.MustCompile(`(?i)securities\s+purchase\s+agreement`),
}

var (
	unregisteredRe = regexp.MustCompile(`(?i)unregistered`)
	saleRe         = regexp.MustCompile(`(?i)sales?`)
	fractionalRe   = regexp.MustCompile(`(?i)fractional`)
)

var roundingUpPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rounded\s+up`),
	regexp.MustCompile(`(?i)round\s+up`),
	regexp.MustCompile(`(?i)rounding\s+up`),
	regexp.MustCompile(`(?i)rounded\s+upward`),
	regexp.MustCompile(`(?i)rounds\s+up`),
	regexp.MustCompile(`(?i)rounding\s+upward`),
}

var roundingContextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)fractional\s+shares?`),
	regexp.MustCompile(`(?i)fractional\s+share`),
	regexp.MustCompile(`(?i)treatment\s+of\s+fractional`),
	regexp.MustCompile(`(?i)adjustments?\s+resulting\s+from`),
	regexp.MustCompile(`(?i)reverse\s+split`),
	regexp.MustCompile(`(?i)stock\s+split`),
	regexp.MustCompile(`(?i)split\s+adjustment`),
}

var rsKeywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)reverse\s+stock\s+split`),
	regexp.MustCompile(`(?i)reverse\s+split`),
}

// HasReverseSplitKeyword reports whether the text mentions a reverse split
// at all. The scorer's hard gate uses this over the filing's snippet text.
func HasReverseSplitKeyword(text string) bool {
	return anyMatch(text, rsKeywordPatterns)
}

// ComplianceFlag reports listing-compliance cues (bid-price deficiency,
// exchange names, compliance language).
func ComplianceFlag(text string) bool {
	return anyMatch(text, compliancePatterns)
}

// FinancingFlag reports capital-raising cues (shelf offerings, ATMs,
// warrants, purchase agreements).
func FinancingFlag(text string) bool {
	return anyMatch(text, financingPatterns)
}

// UnregisteredSalesFlag reports unregistered share issuance: item 3.02
// outright, or the words "unregistered" and "sale(s)" appearing within
// UnregisteredProximity characters of each other.
func UnregisteredSalesFlag(text string, items []string) bool {
	for _, it := range items {
		if it == "3.02" {
			return true
		}
	}
	unreg := unregisteredRe.FindStringIndex(text)
	sale := saleRe.FindStringIndex(text)
	if unreg != nil && sale != nil && absInt(unreg[0]-sale[0]) < UnregisteredProximity {
		return true
	}
	return false
}

// RoundingUpFlag reports that fractional shares are rounded up rather than
// cashed out. A bare "rounded up" is not enough: the phrase must sit within
// RoundingContextWindow characters of a split-context keyword, or have the
// literal word "fractional" within FractionalWindow characters on either
// side. The two-tier check avoids false positives from financial rounding.
func RoundingUpFlag(text string) bool {
	for _, re := range roundingUpPatterns {
		loc := re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		pos := loc[0]
		for _, ctx := range roundingContextPatterns {
			if cloc := ctx.FindStringIndex(text); cloc != nil {
				if absInt(pos-cloc[0]) < RoundingContextWindow {
					return true
				}
			}
		}
		lo := pos - FractionalWindow
		if lo < 0 {
			lo = 0
		}
		hi := pos + FractionalWindow
		if hi > len(text) {
			hi = len(text)
		}
		if fractionalRe.MatchString(text[lo:hi]) {
			return true
		}
	}
	return false
}

func anyMatch(text string, patterns []*regexp.Regexp) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
