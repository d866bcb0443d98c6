package budget

import (
	"math"
	"regexp"
	"strconv"

	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
)

var (
	dailyPattern = regexp.MustCompile(`(?i)\bdaily\b|\bper\s+day\b|\ba\s+day\b|/\s*day\b|\beach\s+day\b|\bevery\s+day\b`)
	totalPattern = regexp.MustCompile(`(?i)\btotal\b|\blifetime\b|\boverall\b|\bentire\b|\bwhole\b|\bone[\s-]?off\b|\bflight\b`)
)

// MaxAmount is the largest budget that converts exactly to every native
// encoding; Google micros of a larger amount overflow int64.
const MaxAmount = 1e12

// Allocator splits one submission budget across the requested platforms.
// Allocation is a flat even split over every detected group; there is no
// weighting by preference or mention order.
type Allocator struct {
	defaultCurrency string
}

// NewAllocator creates an allocator. An empty or invalid defaultCurrency
// falls back to USD.
func NewAllocator(defaultCurrency string) *Allocator {
	code, ok := NormalizeCode(defaultCurrency)
	if !ok {
		code = DefaultCurrency
	}
	return &Allocator{defaultCurrency: code}
}

// Spec derives the shared budget spec for a submission
func (a *Allocator) Spec(formData []model.QAPair) model.BudgetSpec {
	spec := model.BudgetSpec{
		Currency: DetectCurrencyWithDefault(formData, a.defaultCurrency),
		Period:   DetectPeriod(formData),
	}

	if qa, ok := extract.FindPair(formData, extract.BudgetTerms); ok {
		spec.TotalAmount, spec.Capped = ClampAmount(extract.ParseAmount(qa.Answer))
		spec.Source = qa.Question
	}

	return spec
}

// Allocate returns platform's share of the submission budget
func (a *Allocator) Allocate(formData []model.QAPair, platform model.Platform) model.AllocatedBudget {
	return Split(a.Spec(formData), classify.DetectPlatforms(formData), platform)
}

// Plan returns every group's share, including groups no supported platform owns
func (a *Allocator) Plan(formData []model.QAPair) model.AllocationPlan {
	return BuildPlan(a.Spec(formData), classify.DetectPlatforms(formData))
}

// Split applies the allocation rules to an already derived spec and detection:
// a platform that was not requested gets nothing; a requested platform with no
// detected groups gets the whole total; otherwise the total is divided evenly.
func Split(spec model.BudgetSpec, detection model.PlatformDetection, platform model.Platform) model.AllocatedBudget {
	requested := detection.Has(platform)

	amount := 0.0
	switch {
	case !requested:
	case detection.GroupCount == 0:
		amount = spec.TotalAmount
	default:
		amount = spec.TotalAmount / float64(detection.GroupCount)
	}

	allocated := NewAllocated(platform, amount, spec.Currency, spec.Period)
	allocated.Requested = requested
	allocated.GroupCount = detection.GroupCount
	return allocated
}

// BuildPlan splits spec across every detected group. Shares are not rounded,
// so they sum to the total; DriftCents reports the rounding difference that
// per-group cent conversion introduces.
func BuildPlan(spec model.BudgetSpec, detection model.PlatformDetection) model.AllocationPlan {
	plan := model.AllocationPlan{
		Budget:     spec,
		GroupCount: detection.GroupCount,
		Shares:     []model.GroupShare{},
	}
	if detection.GroupCount == 0 {
		return plan
	}

	share := spec.TotalAmount / float64(detection.GroupCount)
	var cents int64
	for _, group := range detection.Groups {
		gs := model.GroupShare{
			Group:      group,
			Amount:     share,
			MinorUnits: ToCents(share),
		}
		if p, ok := classify.GroupPlatform(group); ok {
			gs.Platform = p
		}
		cents += gs.MinorUnits
		plan.Shares = append(plan.Shares, gs)
	}
	plan.DriftCents = cents - ToCents(spec.TotalAmount)

	return plan
}

// DetectPeriod reads DAILY or TOTAL from a period field. Without one, a budget
// question or answer that says "daily" implies DAILY. Default is TOTAL.
func DetectPeriod(formData []model.QAPair) model.PeriodType {
	if answer := extract.FindAnswer(formData, extract.PeriodTerms); answer != "" {
		if period, ok := ClassifyPeriod(answer); ok {
			return period
		}
	}

	if qa, ok := extract.FindPair(formData, extract.BudgetTerms); ok {
		if dailyPattern.MatchString(qa.Question) || dailyPattern.MatchString(qa.Answer) {
			return model.PeriodDaily
		}
	}

	return model.PeriodTotal
}

// ClassifyPeriod maps a period answer to a PeriodType
func ClassifyPeriod(s string) (model.PeriodType, bool) {
	if p, ok := model.ParsePeriod(s); ok {
		return p, true
	}
	if dailyPattern.MatchString(s) {
		return model.PeriodDaily, true
	}
	if totalPattern.MatchString(s) {
		return model.PeriodTotal, true
	}
	return "", false
}

// NewAllocated builds an AllocatedBudget with every native encoding filled in
func NewAllocated(platform model.Platform, amount float64, currency string, period model.PeriodType) model.AllocatedBudget {
	return model.AllocatedBudget{
		Platform:   platform,
		Amount:     amount,
		Currency:   currency,
		Period:     period,
		MinorUnits: ToCents(amount),
		Micros:     ToMicros(amount),
		Decimal:    ToDecimal(amount),
	}
}

// ClampAmount bounds a parsed amount to [0, MaxAmount] and reports whether
// it had to be lowered
func ClampAmount(amount float64) (float64, bool) {
	switch {
	case math.IsNaN(amount) || amount < 0:
		return 0, false
	case amount > MaxAmount:
		return MaxAmount, true
	}
	return amount, false
}

// ToCents converts to integer minor units: round(amount * 100)
func ToCents(amount float64) int64 {
	return toInt64(math.Round(amount * 100))
}

// ToMicros converts to Google Ads micros: round(amount * 1,000,000)
func ToMicros(amount float64) int64 {
	return toInt64(math.Round(amount * 1_000_000))
}

// toInt64 saturates instead of relying on the undefined out-of-range conversion
func toInt64(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	}
	return int64(x)
}

// ToDecimal formats with exactly two decimal places
func ToDecimal(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

var defaultAllocator = NewAllocator(DefaultCurrency)

// ExtractSpec derives the budget spec with the default allocator
func ExtractSpec(formData []model.QAPair) model.BudgetSpec {
	return defaultAllocator.Spec(formData)
}

// Allocate returns platform's share with the default allocator
func Allocate(formData []model.QAPair, platform model.Platform) model.AllocatedBudget {
	return defaultAllocator.Allocate(formData, platform)
}

// Plan returns the group plan with the default allocator
func Plan(formData []model.QAPair) model.AllocationPlan {
	return defaultAllocator.Plan(formData)
}
