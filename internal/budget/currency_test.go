package budget

import (
	"testing"

	"github.com/ppiankov/campaignkit/internal/model"
)

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		desc     string
		formData []model.QAPair
		want     string
	}{
		{
			desc:     "pound symbol in budget answer",
			formData: []model.QAPair{{Question: "Budget", Answer: "£250"}},
			want:     "GBP",
		},
		{
			desc:     "no symbol or keyword",
			formData: []model.QAPair{{Question: "Budget", Answer: "250"}},
			want:     "USD",
		},
		{
			desc: "currency field wins over symbols",
			formData: []model.QAPair{
				{Question: "Budget", Answer: "$400"},
				{Question: "Currency", Answer: "CAD"},
			},
			want: "CAD",
		},
		{
			desc:     "canadian dollar prefix is not USD",
			formData: []model.QAPair{{Question: "Budget", Answer: "C$1,500"}},
			want:     "CAD",
		},
		{
			desc:     "euro word",
			formData: []model.QAPair{{Question: "Budget", Answer: "3000 euros"}},
			want:     "EUR",
		},
		{
			desc:     "iso code in currency field",
			formData: []model.QAPair{{Question: "Currency code", Answer: "Paid in JPY"}},
			want:     "JPY",
		},
		{
			desc:     "empty form",
			formData: nil,
			want:     "USD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := DetectCurrency(tt.formData); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	if code, ok := NormalizeCode("gbp"); !ok || code != "GBP" {
		t.Errorf("Expected GBP, got %q (ok=%v)", code, ok)
	}
	if _, ok := NormalizeCode("XYZ"); ok {
		t.Error("Expected XYZ to be rejected")
	}
	if _, ok := NormalizeCode(""); ok {
		t.Error("Expected empty code to be rejected")
	}
}

func TestClassifyPeriod(t *testing.T) {
	tests := []struct {
		in   string
		want model.PeriodType
		ok   bool
	}{
		{"Daily", model.PeriodDaily, true},
		{"$50 per day", model.PeriodDaily, true},
		{"LIFETIME", model.PeriodTotal, true},
		{"Total for the campaign", model.PeriodTotal, true},
		{"not sure", "", false},
	}

	for _, tt := range tests {
		got, ok := ClassifyPeriod(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ClassifyPeriod(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
