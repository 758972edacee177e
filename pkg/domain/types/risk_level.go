package types

// RiskLevel represents the discrete risk label derived from an overall score
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Risk level score boundaries. Scores are integers in [0,100] and the
// boundaries are inclusive: [0,30] low, [31,70] medium, [71,100] high.
const (
	RiskLevelLowMax    = 30
	RiskLevelMediumMax = 70
)

// AllRiskLevels returns all valid risk levels
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelLow,
		RiskLevelMedium,
		RiskLevelHigh,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelLow, RiskLevelMedium, RiskLevelHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// RiskLevelForScore maps an overall score to its risk level
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score <= RiskLevelLowMax:
		return RiskLevelLow
	case score <= RiskLevelMediumMax:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}
