package draft

import (
	"fmt"

	"github.com/ppiankov/campaignkit/internal/budget"
	"github.com/ppiankov/campaignkit/internal/classify"
	"github.com/ppiankov/campaignkit/internal/extract"
	"github.com/ppiankov/campaignkit/internal/model"
	"github.com/ppiankov/campaignkit/internal/validate"
)

// builder fills the platform-native parts of a draft
type builder func(in *input, d *model.CampaignDraft)

var builders = map[model.Platform]builder{
	model.PlatformGoogle:   buildGoogle,
	model.PlatformMeta:     buildMeta,
	model.PlatformLinkedIn: buildLinkedIn,
	model.PlatformTikTok:   buildTikTok,
}

// Assembler turns a parsed submission into per-platform campaign drafts.
// It has no I/O and no mutable state, so one Assembler may serve concurrent
// callers.
type Assembler struct {
	allocator *budget.Allocator
	validator *validate.Validator
}

// NewAssembler creates an assembler from engine config
func NewAssembler(cfg model.EngineConfig) *Assembler {
	return &Assembler{
		allocator: budget.NewAllocator(cfg.DefaultCurrency),
		validator: validate.NewValidator(cfg.Minimums),
	}
}

// Allocator returns the budget allocator drafts are built with
func (a *Assembler) Allocator() *budget.Allocator {
	return a.allocator
}

// input is everything shared by the drafts of one submission
type input struct {
	formData  []model.QAPair
	detection model.PlatformDetection
	spec      model.BudgetSpec
	overrides model.Overrides
}

// Assemble builds the draft for one platform. Overrides always win over
// values extracted from the form.
func (a *Assembler) Assemble(sub model.Submission, platform model.Platform, overrides model.Overrides) model.CampaignDraft {
	return a.assemble(&input{
		formData:  sub.FormData,
		detection: classify.DetectPlatforms(sub.FormData),
		spec:      a.allocator.Spec(sub.FormData),
		overrides: overrides,
	}, platform)
}

// AssembleAll builds drafts for every selected platform, or for every
// requested platform when the selection names none. Drafts come out in
// google, meta, linkedin, tiktok order.
func (a *Assembler) AssembleAll(sub model.Submission, selection model.Selection) []model.CampaignDraft {
	detection := classify.DetectPlatforms(sub.FormData)
	spec := a.allocator.Spec(sub.FormData)

	chosen := selection.Platforms
	if len(chosen) == 0 {
		chosen = detection.Requested
	}

	drafts := []model.CampaignDraft{}
	for _, p := range model.AllPlatforms {
		if !containsPlatform(chosen, p) {
			continue
		}
		drafts = append(drafts, a.assemble(&input{
			formData:  sub.FormData,
			detection: detection,
			spec:      spec,
			overrides: selection.OverridesFor(p),
		}, p))
	}
	return drafts
}

func (a *Assembler) assemble(in *input, platform model.Platform) model.CampaignDraft {
	d := model.CampaignDraft{
		Platform:        platform,
		PopulatedFields: []string{},
	}

	applyCommonFields(in, &d)
	d.Budget = a.allocate(in, platform, &d)

	d.Validation = a.validator.Validate(d.Budget.Amount, d.Budget.Period, d.Budget.Currency, platform)
	if !d.Validation.IsValid && d.Budget.Amount > 0 {
		d.Warnings = append(d.Warnings, d.Validation.Message)
	}

	if build, ok := builders[platform]; ok {
		build(in, &d)
	} else {
		d.Warnings = append(d.Warnings, fmt.Sprintf("No draft builder for platform %q", platform))
	}

	return d
}

// allocate applies budget, currency and period overrides on top of the
// shared spec, then splits it for platform
func (a *Assembler) allocate(in *input, platform model.Platform, d *model.CampaignDraft) model.AllocatedBudget {
	spec := in.spec

	if v, ok := in.overrides.Get(model.FieldCurrency); ok {
		if code, ok := budget.ParseCurrency(v); ok {
			spec.Currency = code
			markOverridden(d, model.FieldCurrency)
		} else {
			d.Warnings = append(d.Warnings, fmt.Sprintf("Ignored currency override %q: not a currency", v))
		}
	}
	if v, ok := in.overrides.Get(model.FieldPeriod); ok {
		if period, ok := budget.ClassifyPeriod(v); ok {
			spec.Period = period
			markOverridden(d, model.FieldPeriod)
		} else {
			d.Warnings = append(d.Warnings, fmt.Sprintf("Ignored period override %q: expected daily or total", v))
		}
	}

	if v, ok := in.overrides.Get(model.FieldBudget); ok {
		amount, capped := budget.ClampAmount(extract.ParseAmount(v))
		if capped {
			d.Warnings = append(d.Warnings, cappedWarning(spec.Currency))
		}
		allocated := budget.NewAllocated(platform, amount, spec.Currency, spec.Period)
		allocated.Requested = true
		allocated.GroupCount = in.detection.GroupCount
		markOverridden(d, model.FieldBudget)
		return allocated
	}

	allocated := budget.Split(spec, in.detection, platform)
	if spec.Capped {
		d.Warnings = append(d.Warnings, cappedWarning(spec.Currency))
	}
	switch {
	case spec.TotalAmount == 0:
		d.Warnings = append(d.Warnings, "No budget found in the form")
	case !allocated.Requested:
		d.Warnings = append(d.Warnings,
			fmt.Sprintf("%s was not named in the channel answers; no budget allocated", platform.DisplayName()))
	default:
		markPopulated(d, model.FieldBudget)
	}
	return allocated
}

func cappedWarning(currency string) string {
	return fmt.Sprintf("Budget exceeds the supported maximum; capped at %s %s", budget.ToDecimal(budget.MaxAmount), currency)
}

func containsPlatform(list []model.Platform, p model.Platform) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}
