// Package extract turns raw filing text into structured reverse-split
// signals: the split ratio, announcement and effective dates, content flags,
// and 8-K item codes. Everything here is a pure function over plain text;
// HTML reduction happens upstream in the edgar package.
package extract

import (
	"math"
	"regexp"
	"strconv"
)

// Ratios whose components both fall in this range are treated as year
// ranges (e.g. "fiscal 2018/2019"), not split ratios.
const (
	yearLikeMin = 1900
	yearLikeMax = 2100
)

// Surface forms of "N for D", tried in order. The first pattern whose first
// match passes validation wins; later patterns are only consulted when an
// earlier one matched nothing acceptable.
var ratioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*[-/]\s*for\s*[-/]\s*(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s+for\s+(\d+)`),
	regexp.MustCompile(`(\d+)\s*:\s*(\d+)`),
	regexp.MustCompile(`(\d+)\s*/\s*(\d+)`),
}

// RatioMatch is an accepted reverse-split ratio found in text. LogRatio is
// ln(den/num), a size-invariant measure of split magnitude, rounded to four
// decimal places.
type RatioMatch struct {
	Num      int
	Den      int
	LogRatio float64
	Text     string
}

// Ratio scans text for a reverse split ratio. Forward splits (den <= num),
// degenerate ratios, and year-like pairs are rejected.
func Ratio(text string) (RatioMatch, bool) {
	for _, re := range ratioPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		num, err1 := strconv.Atoi(m[1])
		den, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if num > 0 && den > num && !IsYearLikeRatio(num, den) {
			return RatioMatch{
				Num:      num,
				Den:      den,
				LogRatio: round4(math.Log(float64(den) / float64(num))),
				Text:     m[0],
			}, true
		}
	}
	return RatioMatch{}, false
}

// IsYearLikeRatio reports whether both components look like 4-digit years,
// which indicates an accidental match on a year range.
func IsYearLikeRatio(num, den int) bool {
	return num >= yearLikeMin && num <= yearLikeMax &&
		den >= yearLikeMin && den <= yearLikeMax
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
