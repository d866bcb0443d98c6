package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// Validator checks allocated budgets against platform minimum-spend tables.
// Tables are built once and never mutated, so a Validator is safe for
// concurrent use.
type Validator struct {
	minimums map[model.Platform]map[string]model.MinimumSpend
}

// NewValidator creates a validator from the built-in tables with optional
// per-platform, per-currency overrides (engine.minimums in config)
func NewValidator(overrides map[string]map[string]model.MinimumSpend) *Validator {
	return &Validator{minimums: buildMinimums(overrides)}
}

// Minimum returns the minimum for platform and period and the table row it
// came from. Unknown currencies use the USD row.
func (v *Validator) Minimum(platform model.Platform, period model.PeriodType, currency string) (float64, string, bool) {
	table, ok := v.minimums[platform]
	if !ok {
		return 0, "", false
	}

	code := strings.ToUpper(strings.TrimSpace(currency))
	row, ok := table[code]
	if !ok {
		code = tableFallbackCurrency
		row = table[code]
	}

	if period == model.PeriodDaily {
		return row.Daily, code, true
	}
	return row.Total, code, true
}

// Validate checks amount against the platform minimum for period and
// currency. The result is advisory; callers surface it as a warning.
func (v *Validator) Validate(amount float64, period model.PeriodType, currency string, platform model.Platform) model.ValidationResult {
	if period == "" {
		period = model.PeriodTotal
	}

	result := model.ValidationResult{
		Platform: platform,
		Amount:   amount,
		Currency: currency,
		Period:   period,
	}

	minimum, tableCurrency, ok := v.Minimum(platform, period, currency)
	if !ok {
		result.Message = fmt.Sprintf("No minimum-spend table for %s", platform.DisplayName())
		return result
	}

	result.MinimumRequired = minimum
	result.TableCurrency = tableCurrency
	result.IsValid = amount >= minimum
	result.Message = validationMessage(result)

	return result
}

func validationMessage(r model.ValidationResult) string {
	label := fmt.Sprintf("%s %s budget", r.Platform.DisplayName(), periodLabel(r.Period))

	var msg string
	if r.IsValid {
		msg = fmt.Sprintf("%s of %s meets the %s minimum",
			label, model.FormatMoney(r.Amount, r.Currency), model.FormatMoney(r.MinimumRequired, r.Currency))
	} else {
		msg = fmt.Sprintf("%s of %s is below the %s minimum (short by %s)",
			label, model.FormatMoney(r.Amount, r.Currency), model.FormatMoney(r.MinimumRequired, r.Currency),
			model.FormatMoney(r.Shortfall(), r.Currency))
	}

	if !strings.EqualFold(r.Currency, r.TableCurrency) {
		msg += fmt.Sprintf("; no %s table, %s minimum applied", strings.ToUpper(r.Currency), r.TableCurrency)
	}
	return msg
}

func periodLabel(p model.PeriodType) string {
	if p == model.PeriodDaily {
		return "daily"
	}
	return "total"
}
