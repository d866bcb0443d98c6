package budget

import (
	"math"
	"testing"

	"github.com/ppiankov/campaignkit/internal/model"
)

func TestAllocate_SinglePlatform(t *testing.T) {
	formData := []model.QAPair{
		{Question: "Preferred Channels", Answer: `["Facebook","Instagram"]`},
		{Question: "Total Budget", Answer: "$1000"},
	}

	got := Allocate(formData, model.PlatformMeta)

	if !got.Requested {
		t.Fatal("Expected meta to be requested")
	}
	if got.GroupCount != 1 {
		t.Errorf("Expected groupCount 1, got %d", got.GroupCount)
	}
	if got.Amount != 1000 {
		t.Errorf("Expected amount 1000, got %v", got.Amount)
	}
	if got.Currency != "USD" {
		t.Errorf("Expected USD, got %s", got.Currency)
	}
	if got.MinorUnits != 100000 {
		t.Errorf("Expected 100000 cents, got %d", got.MinorUnits)
	}
	if got.Native() != int64(100000) {
		t.Errorf("Expected native cents 100000, got %v", got.Native())
	}
}

func TestAllocate_MultiPlatformSplit(t *testing.T) {
	formData := []model.QAPair{
		{Question: "Channels", Answer: "Facebook, LinkedIn, Google Search"},
		{Question: "Budget", Answer: "£900"},
	}

	for _, p := range []model.Platform{model.PlatformMeta, model.PlatformLinkedIn, model.PlatformGoogle} {
		got := Allocate(formData, p)
		if got.GroupCount != 3 {
			t.Errorf("%s: expected 3 groups, got %d", p, got.GroupCount)
		}
		if got.Amount != 300 {
			t.Errorf("%s: expected 300, got %v", p, got.Amount)
		}
		if got.Currency != "GBP" {
			t.Errorf("%s: expected GBP, got %s", p, got.Currency)
		}
		if got.Decimal != "300.00" {
			t.Errorf("%s: expected decimal 300.00, got %s", p, got.Decimal)
		}
	}

	if got := Allocate(formData, model.PlatformGoogle).Native(); got != int64(300_000_000) {
		t.Errorf("Expected google micros 300000000, got %v", got)
	}
	if got := Allocate(formData, model.PlatformLinkedIn).Native(); got != "300.00" {
		t.Errorf("Expected linkedin decimal 300.00, got %v", got)
	}
}

func TestAllocate_PlatformNotMentioned(t *testing.T) {
	formData := []model.QAPair{
		{Question: "Advertising platforms", Answer: "Google"},
		{Question: "Budget", Answer: "$500"},
	}

	got := Allocate(formData, model.PlatformLinkedIn)
	if got.Requested {
		t.Error("Expected linkedin not to be requested")
	}
	if got.Amount != 0 || got.MinorUnits != 0 || got.Decimal != "0.00" {
		t.Errorf("Expected zero allocation, got %+v", got)
	}

	google := Allocate(formData, model.PlatformGoogle)
	if google.Amount != 500 {
		t.Errorf("Expected google to get 500, got %v", google.Amount)
	}
}

func TestSplit_NoGroupsGetsWholeTotal(t *testing.T) {
	spec := model.BudgetSpec{TotalAmount: 750, Currency: "USD", Period: model.PeriodTotal}
	detection := model.PlatformDetection{Requested: []model.Platform{model.PlatformTikTok}}

	got := Split(spec, detection, model.PlatformTikTok)
	if got.Amount != 750 {
		t.Errorf("Expected entire total 750, got %v", got.Amount)
	}
}

func TestBuildPlan_Conservation(t *testing.T) {
	tests := []struct {
		name   string
		total  float64
		groups []string
	}{
		{"even", 900, []string{"meta", "linkedin", "google"}},
		{"thirds", 100, []string{"meta", "linkedin", "google"}},
		{"sevenths", 1234.56, []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"single", 42.42, []string{"tiktok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := model.BudgetSpec{TotalAmount: tt.total, Currency: "USD", Period: model.PeriodTotal}
			detection := model.PlatformDetection{Groups: tt.groups, GroupCount: len(tt.groups)}

			plan := BuildPlan(spec, detection)
			if len(plan.Shares) != len(tt.groups) {
				t.Fatalf("Expected %d shares, got %d", len(tt.groups), len(plan.Shares))
			}

			var sum float64
			for _, s := range plan.Shares {
				sum += s.Amount
			}
			if math.Abs(sum-tt.total) > 1e-6*tt.total {
				t.Errorf("Expected shares to sum to %v, got %v", tt.total, sum)
			}
		})
	}
}

func TestBuildPlan_DriftCents(t *testing.T) {
	spec := model.BudgetSpec{TotalAmount: 100, Currency: "USD", Period: model.PeriodTotal}
	detection := model.PlatformDetection{Groups: []string{"meta", "linkedin", "google"}, GroupCount: 3}

	plan := BuildPlan(spec, detection)

	// 3 x 3333 cents = 9999
	if plan.DriftCents != -1 {
		t.Errorf("Expected drift of -1 cent, got %d", plan.DriftCents)
	}
}

func TestPlan_UnsupportedGroup(t *testing.T) {
	formData := []model.QAPair{
		{Question: "Which channels?", Answer: "Instagram, Pinterest"},
		{Question: "Budget", Answer: "1,000"},
	}

	plan := Plan(formData)
	if plan.GroupCount != 2 {
		t.Fatalf("Expected 2 groups, got %d", plan.GroupCount)
	}
	unsupported := plan.Unsupported()
	if len(unsupported) != 1 || unsupported[0].Group != "pinterest" {
		t.Errorf("Expected pinterest as unsupported group, got %+v", unsupported)
	}
	if plan.Shares[0].Platform != model.PlatformMeta {
		t.Errorf("Expected first share to belong to meta, got %q", plan.Shares[0].Platform)
	}
}

func TestExtractSpec(t *testing.T) {
	tests := []struct {
		name     string
		formData []model.QAPair
		amount   float64
		currency string
		period   model.PeriodType
	}{
		{
			name: "specific term wins",
			formData: []model.QAPair{
				{Question: "Budget", Answer: "500"},
				{Question: "Budget Amount", Answer: "300"},
			},
			amount: 300, currency: "USD", period: model.PeriodTotal,
		},
		{
			name: "negative clamps to zero",
			formData: []model.QAPair{
				{Question: "Budget", Answer: "-200"},
			},
			amount: 0, currency: "USD", period: model.PeriodTotal,
		},
		{
			name: "explicit currency and daily period",
			formData: []model.QAPair{
				{Question: "Campaign budget", Answer: "2.5k"},
				{Question: "Currency", Answer: "eur"},
				{Question: "Budget type", Answer: "Daily"},
			},
			amount: 2500, currency: "EUR", period: model.PeriodDaily,
		},
		{
			name: "daily budget question implies daily",
			formData: []model.QAPair{
				{Question: "Daily budget", Answer: "CA$50"},
			},
			amount: 50, currency: "CAD", period: model.PeriodDaily,
		},
		{
			name: "lifetime period",
			formData: []model.QAPair{
				{Question: "Total budget", Answer: "1000"},
				{Question: "Budget period", Answer: "Lifetime"},
			},
			amount: 1000, currency: "USD", period: model.PeriodTotal,
		},
		{
			name:     "no budget",
			formData: []model.QAPair{{Question: "Campaign name", Answer: "Spring"}},
			amount:   0, currency: "USD", period: model.PeriodTotal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ExtractSpec(tt.formData)
			if spec.TotalAmount != tt.amount {
				t.Errorf("Expected amount %v, got %v", tt.amount, spec.TotalAmount)
			}
			if spec.Currency != tt.currency {
				t.Errorf("Expected currency %s, got %s", tt.currency, spec.Currency)
			}
			if spec.Period != tt.period {
				t.Errorf("Expected period %s, got %s", tt.period, spec.Period)
			}
		})
	}
}

func TestNativeConversions(t *testing.T) {
	tests := []struct {
		amount  float64
		cents   int64
		micros  int64
		decimal string
	}{
		{300, 30000, 300_000_000, "300.00"},
		{33.333333, 3333, 33_333_333, "33.33"},
		{19.999, 2000, 19_999_000, "20.00"},
		{0, 0, 0, "0.00"},
	}

	for _, tt := range tests {
		if got := ToCents(tt.amount); got != tt.cents {
			t.Errorf("ToCents(%v) = %d, want %d", tt.amount, got, tt.cents)
		}
		if got := ToMicros(tt.amount); got != tt.micros {
			t.Errorf("ToMicros(%v) = %d, want %d", tt.amount, got, tt.micros)
		}
		if got := ToDecimal(tt.amount); got != tt.decimal {
			t.Errorf("ToDecimal(%v) = %s, want %s", tt.amount, got, tt.decimal)
		}
	}
}

func TestNativeConversions_Saturate(t *testing.T) {
	if got := ToMicros(1e13); got != math.MaxInt64 {
		t.Errorf("Expected ToMicros(1e13) to saturate, got %d", got)
	}
	if got := ToCents(1e17); got != math.MaxInt64 {
		t.Errorf("Expected ToCents(1e17) to saturate, got %d", got)
	}
	if got := ToCents(math.NaN()); got != 0 {
		t.Errorf("Expected NaN to convert to 0, got %d", got)
	}
}

func TestExtractSpec_CapsHugeBudget(t *testing.T) {
	tests := []struct {
		answer string
		amount float64
		capped bool
	}{
		{"$10,000,000,000,000", MaxAmount, true},
		{"999999999999", 999_999_999_999, false},
		{"$1,000,000,000,000", MaxAmount, false},
	}

	for _, tt := range tests {
		t.Run(tt.answer, func(t *testing.T) {
			spec := ExtractSpec([]model.QAPair{{Question: "Total budget", Answer: tt.answer}})
			if spec.TotalAmount != tt.amount {
				t.Errorf("Expected %v, got %v", tt.amount, spec.TotalAmount)
			}
			if spec.Capped != tt.capped {
				t.Errorf("Expected capped %v, got %v", tt.capped, spec.Capped)
			}
			if micros := ToMicros(spec.TotalAmount); micros <= 0 {
				t.Errorf("Expected positive micros, got %d", micros)
			}
		})
	}
}

func TestNewAllocator_DefaultCurrency(t *testing.T) {
	formData := []model.QAPair{{Question: "Budget", Answer: "1200"}}

	if got := NewAllocator("gbp").Spec(formData).Currency; got != "GBP" {
		t.Errorf("Expected configured default GBP, got %s", got)
	}
	if got := NewAllocator("nope").Spec(formData).Currency; got != "USD" {
		t.Errorf("Expected USD fallback, got %s", got)
	}
}
