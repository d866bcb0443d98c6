package model

import (
	"fmt"
	"strings"
)

// PeriodType says whether a budget is spent per day or over the whole flight
type PeriodType string

const (
	PeriodDaily PeriodType = "DAILY"
	PeriodTotal PeriodType = "TOTAL"
)

// ParsePeriod accepts DAILY/TOTAL and the LIFETIME alias
func ParsePeriod(s string) (PeriodType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DAILY", "DAY":
		return PeriodDaily, true
	case "TOTAL", "LIFETIME":
		return PeriodTotal, true
	default:
		return "", false
	}
}

// BudgetSpec is derived once per submission and shared by every platform allocation
type BudgetSpec struct {
	TotalAmount float64    `json:"total_amount"`
	Currency    string     `json:"currency"`
	Period      PeriodType `json:"period"`
	Source      string     `json:"source,omitempty"` // Question the amount was read from
	Capped      bool       `json:"capped,omitempty"` // Amount was lowered to the supported maximum
}

// AllocatedBudget is one platform's share of the submission budget
type AllocatedBudget struct {
	Platform   Platform   `json:"platform"`
	Requested  bool       `json:"requested"`
	GroupCount int        `json:"group_count"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency"`
	Period     PeriodType `json:"period"`
	MinorUnits int64      `json:"minor_units"` // round(amount*100)
	Micros     int64      `json:"micros"`      // round(amount*1e6)
	Decimal    string     `json:"decimal"`     // amount with exactly two decimals
}

// Native returns the amount in the encoding the platform's API expects
func (a AllocatedBudget) Native() interface{} {
	switch a.Platform {
	case PlatformMeta:
		return a.MinorUnits
	case PlatformGoogle:
		return a.Micros
	default:
		return a.Decimal
	}
}

// GroupShare is one allocation group's slice of the total
type GroupShare struct {
	Group      string   `json:"group"`
	Platform   Platform `json:"platform,omitempty"` // Empty when no supported platform owns the group
	Amount     float64  `json:"amount"`
	MinorUnits int64    `json:"minor_units"`
}

// AllocationPlan shows how the total was split across every detected group
type AllocationPlan struct {
	Budget     BudgetSpec   `json:"budget"`
	GroupCount int          `json:"group_count"`
	Shares     []GroupShare `json:"shares"`
	DriftCents int64        `json:"drift_cents"` // sum(share cents) - total cents
}

// Unsupported returns shares that no draft will spend
func (p AllocationPlan) Unsupported() []GroupShare {
	var out []GroupShare
	for _, s := range p.Shares {
		if s.Platform == "" {
			out = append(out, s)
		}
	}
	return out
}

// FormatMoney renders an amount with its currency symbol, e.g. "£300.00"
func FormatMoney(amount float64, currency string) string {
	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return fmt.Sprintf("%s%.2f", sym, amount)
	}
	return fmt.Sprintf("%s %.2f", strings.ToUpper(currency), amount)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"CAD": "CA$",
	"AUD": "A$",
}
