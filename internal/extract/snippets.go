package extract

import "regexp"

// Evidence excerpts are capped at this many characters.
const snippetLimit = 200

// Context windows around the keyword that triggered each flag.
var (
	complianceSnippetRe = regexp.MustCompile(`(?i).{0,100}(regain|maintain|minimum bid|deficiency|Nasdaq|NYSE).{0,100}`)
	financingSnippetRe  = regexp.MustCompile(`(?i).{0,100}(registered direct|ATM|S-3|424B5|warrant).{0,100}`)
	roundingSnippetRe   = regexp.MustCompile(`(?i).{0,150}(rounded\s+up|round\s+up|rounding\s+up).{0,150}`)
)

// Snippets collects the evidence excerpts for the flags that fired, keyed
// by flag name. ratioText is the raw ratio match, already in hand from
// extraction; the rest are re-located in the full text.
func Snippets(text, ratioText string, compliance, financing, rounding bool) map[string]string {
	matches := make(map[string]string)
	if ratioText != "" {
		matches["ratio_text"] = truncate(ratioText)
	}
	if compliance {
		if m := complianceSnippetRe.FindString(text); m != "" {
			matches["compliance_text"] = truncate(m)
		}
	}
	if financing {
		if m := financingSnippetRe.FindString(text); m != "" {
			matches["financing_text"] = truncate(m)
		}
	}
	if rounding {
		if m := roundingSnippetRe.FindString(text); m != "" {
			matches["rounding_text"] = truncate(m)
		}
	}
	return matches
}

func truncate(s string) string {
	if len(s) > snippetLimit {
		return s[:snippetLimit]
	}
	return s
}
