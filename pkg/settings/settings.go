package settings

import "strconv"

// Storage keys for the per-preference values. Each preference lives under its
// own key and is loaded lazily with a default when absent or unparsable.
const (
	ThemeKey         = "sf_theme"
	CurrencyKey      = "sf_currency"
	MonthlyTargetKey = "sf_monthly_target"
)

const (
	DefaultTheme    = "light"
	DefaultCurrency = "USD"
)

var ValidThemes = []string{"light", "dark"}

// Settings are the process-wide user preferences consumed by the core.
// MonthlyTarget is kept as the raw stored string; empty means unset.
type Settings struct {
	Theme         string
	Currency      string
	MonthlyTarget string
}

// TargetValue parses the monthly budget target. Unset, unparsable or
// non-positive values all read as "no target".
func (s Settings) TargetValue() (float64, bool) {
	if s.MonthlyTarget == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(s.MonthlyTarget, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}
