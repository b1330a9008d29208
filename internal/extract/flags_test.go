package extract

import (
	"strings"
	"testing"
)

func TestHasReverseSplitKeyword(t *testing.T) {
	if !HasReverseSplitKeyword("approved a reverse stock split") {
		t.Error("expected keyword match")
	}
	if !HasReverseSplitKeyword("the reverse split ratio") {
		t.Error("expected short-form keyword match")
	}
	if HasReverseSplitKeyword("a forward stock split") {
		t.Error("forward split is not a reverse split keyword")
	}
}

func TestComplianceFlag(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"to regain compliance with the minimum bid price requirement", true},
		{"listed on Nasdaq", true},
		{"received a deficiency notice from the NYSE", true},
		{"the annual meeting of stockholders", false},
	}
	for _, tt := range tests {
		if got := ComplianceFlag(tt.text); got != tt.want {
			t.Errorf("ComplianceFlag(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestFinancingFlag(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"a registered direct offering", true},
		{"pursuant to a securities purchase agreement", true},
		{"exercise of a warrant", true},
		{"an at-the-market program", true},
		{"the company repurchased shares", false},
	}
	for _, tt := range tests {
		if got := FinancingFlag(tt.text); got != tt.want {
			t.Errorf("FinancingFlag(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestUnregisteredSalesFlag(t *testing.T) {
	if !UnregisteredSalesFlag("irrelevant", []string{"3.01", "3.02"}) {
		t.Error("item 3.02 alone must set the flag")
	}

	near := "unregistered securities sales were made"
	if !UnregisteredSalesFlag(near, nil) {
		t.Error("expected flag when the words are adjacent")
	}

	far := "unregistered " + strings.Repeat("x ", UnregisteredProximity) + " sales"
	if UnregisteredSalesFlag(far, nil) {
		t.Error("words beyond the proximity threshold must not set the flag")
	}

	if UnregisteredSalesFlag("ordinary sales of registered stock", nil) {
		t.Error("sales alone must not set the flag")
	}
}

func TestRoundingUpFlag(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			"split context nearby",
			"fractional shares resulting from the reverse split will be rounded up to the nearest whole share",
			true,
		},
		{
			"fractional word nearby",
			"any fractional interests will be rounded up",
			true,
		},
		{
			"financial rounding",
			"amounts in this report have been rounded up to the nearest thousand dollars",
			false,
		},
		{
			"no rounding language",
			"fractional shares will be settled in cash",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RoundingUpFlag(tt.text); got != tt.want {
				t.Errorf("RoundingUpFlag(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
