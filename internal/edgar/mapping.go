package edgar

import (
	"fmt"
	"strings"
)

// CompanyEntry is one row of EDGAR's company_tickers.json directory.
type CompanyEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// Corporate suffixes ignored when matching by company name.
var corporateSuffixes = []string{
	"INCORPORATED", "CORPORATION", "COMPANY", "LIMITED",
	"HOLDINGS", "GROUP", "INC", "CORP", "LTD", "PLC", "CO", "LLC",
}

// CIKMapping indexes the EDGAR company directory by ticker and by
// normalized company name. CIKs are stored zero-padded to 10 digits, as
// the submissions endpoint expects.
type CIKMapping struct {
	byTicker map[string]string
	byName   map[string]string
}

// NewCIKMapping builds the lookup indexes from directory entries.
func NewCIKMapping(entries []CompanyEntry) *CIKMapping {
	m := &CIKMapping{
		byTicker: make(map[string]string, len(entries)),
		byName:   make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		cik := PadCIK(e.CIK)
		if t := strings.ToUpper(strings.TrimSpace(e.Ticker)); t != "" {
			m.byTicker[t] = cik
		}
		if n := NormalizeCompanyName(e.Title); n != "" {
			// First writer wins; duplicates keep the earlier entry.
			if _, ok := m.byName[n]; !ok {
				m.byName[n] = cik
			}
		}
	}
	return m
}

// Resolve looks up a CIK by ticker first, then falls back to the
// normalized company name: exact match, then substring containment in
// either direction.
func (m *CIKMapping) Resolve(ticker, companyName string) (string, bool) {
	if cik, ok := m.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]; ok {
		return cik, true
	}

	name := NormalizeCompanyName(companyName)
	if name == "" {
		return "", false
	}
	if cik, ok := m.byName[name]; ok {
		return cik, true
	}
	for candidate, cik := range m.byName {
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, name) || strings.Contains(name, candidate) {
			return cik, true
		}
	}
	return "", false
}

// Len returns the number of ticker entries in the mapping.
func (m *CIKMapping) Len() int {
	return len(m.byTicker)
}

// NormalizeCompanyName uppercases a company name, strips punctuation, and
// drops trailing corporate suffixes so "Acme Corp." and "ACME CORPORATION"
// compare equal.
func NormalizeCompanyName(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range upper {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	for len(words) > 1 && isCorporateSuffix(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	return strings.Join(words, " ")
}

func isCorporateSuffix(word string) bool {
	for _, s := range corporateSuffixes {
		if word == s {
			return true
		}
	}
	return false
}

// PadCIK zero-pads a numeric CIK to the 10 digits the submissions API
// requires.
func PadCIK(cik int64) string {
	return fmt.Sprintf("%010d", cik)
}
