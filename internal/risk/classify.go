package risk

import "stormrisk/internal/types"

// Classify reduces a profile to the ordinal ladder over its maximum
// probability. Lower bounds are closed, so exactly 0.8 is EXTREME.
func Classify(profile types.RiskProfile) types.RiskLevel {
	max := profile.Max()
	switch {
	case max >= 0.8:
		return types.RiskExtreme
	case max >= 0.6:
		return types.RiskHigh
	case max >= 0.4:
		return types.RiskModerate
	case max >= 0.2:
		return types.RiskLow
	default:
		return types.RiskMinimal
	}
}
