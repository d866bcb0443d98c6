package validate

import (
	"strings"
	"testing"

	"github.com/ppiankov/campaignkit/internal/model"
)

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name     string
		amount   float64
		period   model.PeriodType
		currency string
		platform model.Platform
		valid    bool
		minimum  float64
		table    string
	}{
		{"meta total ok", 300, model.PeriodTotal, "GBP", model.PlatformMeta, true, 10, "GBP"},
		{"linkedin daily short", 5, model.PeriodDaily, "USD", model.PlatformLinkedIn, false, 10, "USD"},
		{"linkedin exact minimum", 100, model.PeriodTotal, "USD", model.PlatformLinkedIn, true, 100, "USD"},
		{"tiktok cad", 24.99, model.PeriodDaily, "CAD", model.PlatformTikTok, false, 25, "CAD"},
		{"unknown currency uses usd row", 50, model.PeriodTotal, "JPY", model.PlatformLinkedIn, false, 100, "USD"},
		{"lowercase currency", 2, model.PeriodDaily, "eur", model.PlatformGoogle, true, 1, "EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.amount, tt.period, tt.currency, tt.platform)
			if got.IsValid != tt.valid {
				t.Errorf("Expected IsValid=%v, got %v (%s)", tt.valid, got.IsValid, got.Message)
			}
			if got.MinimumRequired != tt.minimum {
				t.Errorf("Expected minimum %v, got %v", tt.minimum, got.MinimumRequired)
			}
			if got.TableCurrency != tt.table {
				t.Errorf("Expected table %s, got %s", tt.table, got.TableCurrency)
			}
			if got.Message == "" {
				t.Error("Expected a message")
			}
		})
	}
}

func TestValidator_Validate_Messages(t *testing.T) {
	v := NewValidator(nil)

	short := v.Validate(5, model.PeriodDaily, "USD", model.PlatformLinkedIn)
	want := "LinkedIn daily budget of $5.00 is below the $10.00 minimum (short by $5.00)"
	if short.Message != want {
		t.Errorf("Expected %q, got %q", want, short.Message)
	}

	ok := v.Validate(300, model.PeriodTotal, "GBP", model.PlatformMeta)
	want = "Meta total budget of £300.00 meets the £10.00 minimum"
	if ok.Message != want {
		t.Errorf("Expected %q, got %q", want, ok.Message)
	}

	fallback := v.Validate(500, model.PeriodTotal, "JPY", model.PlatformMeta)
	if !strings.Contains(fallback.Message, "no JPY table, USD minimum applied") {
		t.Errorf("Expected fallback note, got %q", fallback.Message)
	}
}

func TestValidator_Overrides(t *testing.T) {
	v := NewValidator(map[string]map[string]model.MinimumSpend{
		"LinkedIn":  {"gbp": {Daily: 20, Total: 200}},
		"pinterest": {"USD": {Daily: 5, Total: 5}},
	})

	got := v.Validate(150, model.PeriodTotal, "GBP", model.PlatformLinkedIn)
	if got.IsValid || got.MinimumRequired != 200 {
		t.Errorf("Expected override minimum 200, got %v (valid=%v)", got.MinimumRequired, got.IsValid)
	}

	// Defaults are untouched by another validator's overrides
	if minimum, _, _ := NewValidator(nil).Minimum(model.PlatformLinkedIn, model.PeriodTotal, "GBP"); minimum != 80 {
		t.Errorf("Expected default GBP minimum 80, got %v", minimum)
	}
}

func TestValidator_UnknownPlatform(t *testing.T) {
	got := NewValidator(nil).Validate(100, model.PeriodTotal, "USD", model.Platform("pinterest"))
	if got.IsValid {
		t.Error("Expected unknown platform to be invalid")
	}
	if !strings.Contains(got.Message, "No minimum-spend table") {
		t.Errorf("Unexpected message %q", got.Message)
	}
}

func TestValidator_EmptyPeriodDefaultsToTotal(t *testing.T) {
	got := NewValidator(nil).Validate(10, "", "USD", model.PlatformMeta)
	if got.Period != model.PeriodTotal || !got.IsValid {
		t.Errorf("Expected TOTAL period and valid result, got %+v", got)
	}
}
