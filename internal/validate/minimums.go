package validate

import (
	"strings"

	"github.com/ppiankov/campaignkit/internal/model"
)

// tableFallbackCurrency is the row used for currencies a table does not list
const tableFallbackCurrency = "USD"

// defaultMinimums are the per-platform minimum spends, keyed by currency.
// TikTok applies the same floor to daily and lifetime budgets.
var defaultMinimums = map[model.Platform]map[string]model.MinimumSpend{
	model.PlatformMeta: {
		"USD": {Daily: 1, Total: 10},
		"GBP": {Daily: 1, Total: 10},
		"EUR": {Daily: 1, Total: 10},
		"CAD": {Daily: 1.5, Total: 15},
	},
	model.PlatformGoogle: {
		"USD": {Daily: 1, Total: 10},
		"GBP": {Daily: 1, Total: 10},
		"EUR": {Daily: 1, Total: 10},
		"CAD": {Daily: 1.5, Total: 15},
	},
	model.PlatformLinkedIn: {
		"USD": {Daily: 10, Total: 100},
		"GBP": {Daily: 8, Total: 80},
		"EUR": {Daily: 9, Total: 90},
		"CAD": {Daily: 13, Total: 130},
	},
	model.PlatformTikTok: {
		"USD": {Daily: 20, Total: 20},
		"GBP": {Daily: 15, Total: 15},
		"EUR": {Daily: 20, Total: 20},
		"CAD": {Daily: 25, Total: 25},
	},
}

// buildMinimums copies the default tables and applies config overrides.
// Override keys are platform names and ISO codes in any case; unknown
// platforms are ignored.
func buildMinimums(overrides map[string]map[string]model.MinimumSpend) map[model.Platform]map[string]model.MinimumSpend {
	tables := make(map[model.Platform]map[string]model.MinimumSpend, len(defaultMinimums))
	for p, rows := range defaultMinimums {
		table := make(map[string]model.MinimumSpend, len(rows))
		for code, spend := range rows {
			table[code] = spend
		}
		tables[p] = table
	}

	for name, rows := range overrides {
		p, ok := model.ParsePlatform(name)
		if !ok {
			continue
		}
		for code, spend := range rows {
			tables[p][strings.ToUpper(strings.TrimSpace(code))] = spend
		}
	}

	return tables
}
