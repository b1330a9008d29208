package extract

import (
	"regexp"

	"github.com/Arda-Dinc04/Split-Strategy-Devlopment/internal/models"
)

// Per-code surface variants: "Item X", "ITEM X", "Item X.", "Item X -",
// "Item X:". Compiled once per target item.
var itemPatterns = buildItemPatterns()

func buildItemPatterns() map[string][]*regexp.Regexp {
	patterns := make(map[string][]*regexp.Regexp, len(models.TargetItems))
	for _, item := range models.TargetItems {
		code := regexp.QuoteMeta(item)
		patterns[item] = []*regexp.Regexp{
			regexp.MustCompile(`(?i)Item\s+` + code + `\b`),
			regexp.MustCompile(`(?i)ITEM\s+` + code + `\b`),
			regexp.MustCompile(`(?i)Item\s+` + code + `\.`),
			regexp.MustCompile(`(?i)Item\s+` + code + `\s*-`),
			regexp.MustCompile(`(?i)Item\s+` + code + `\s+:`),
		}
	}
	return patterns
}

// Items reports which target item codes appear in the filing text. The
// result preserves TargetItems order, not text order, so downstream output
// is stable across filings.
func Items(text string) []string {
	var found []string
	for _, item := range models.TargetItems {
		for _, re := range itemPatterns[item] {
			if re.MatchString(text) {
				found = append(found, item)
				break
			}
		}
	}
	return found
}
