package models

// AlertLevel is the ordered advisory severity used across the engine,
// from safe (no concern) to emergency (stop everything).
type AlertLevel string

const (
	AlertSafe      AlertLevel = "safe"
	AlertCaution   AlertLevel = "caution"
	AlertWarning   AlertLevel = "warning"
	AlertCritical  AlertLevel = "critical"
	AlertEmergency AlertLevel = "emergency"
)

// Rank returns the position of the alert level in the safe→emergency order.
func (a AlertLevel) Rank() int {
	switch a {
	case AlertSafe:
		return 0
	case AlertCaution:
		return 1
	case AlertWarning:
		return 2
	case AlertCritical:
		return 3
	case AlertEmergency:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether the level is as severe as the given one.
func (a AlertLevel) AtLeast(other AlertLevel) bool {
	return a.Rank() >= other.Rank()
}

// MaxAlertLevel returns the most severe of the given levels.
func MaxAlertLevel(levels ...AlertLevel) AlertLevel {
	max := AlertSafe
	for _, l := range levels {
		if l.Rank() > max.Rank() {
			max = l
		}
	}
	return max
}

// RiskLevel is the ordered medical risk classification used by the safety
// validator, from low to critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank returns the position of the risk level in the low→critical order.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskMedium:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return 0
	}
}

// IsValid checks if the risk level is part of the known vocabulary.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

// MaxRiskLevel returns the most severe of the given risk levels.
func MaxRiskLevel(levels ...RiskLevel) RiskLevel {
	max := RiskLow
	for _, l := range levels {
		if l.Rank() > max.Rank() {
			max = l
		}
	}
	return max
}

// HydrationRecommendation is the output of the hydration needs calculator.
// Values are produced fresh per evaluation; the validator's clamping step
// returns a modified copy and never edits the original in place.
type HydrationRecommendation struct {
	TotalDailyNeed     int        `json:"totalDailyNeed"`     // ml/day
	PreActivityNeed    int        `json:"preActivityNeed"`    // ml
	DuringActivityNeed int        `json:"duringActivityNeed"` // ml per 15 min
	PostActivityNeed   int        `json:"postActivityNeed"`   // ml
	AlertLevel         AlertLevel `json:"alertLevel"`
	Recommendations    []string   `json:"recommendations"`
	Contraindications  []string   `json:"contraindications"`
	MedicalAlerts      []string   `json:"medicalAlerts"`
}

// MedicalValidationResult is the verdict of the medical safety validator on
// a proposed hydration amount.
//
// Invariant: when IsValid is false, MaxSafeAmount never exceeds the
// conservative fallback ceiling.
type MedicalValidationResult struct {
	IsValid                    bool      `json:"isValid"`
	RiskLevel                  RiskLevel `json:"riskLevel"`
	Warnings                   []string  `json:"warnings,omitempty"`
	Contraindications          []string  `json:"contraindications,omitempty"`
	MedicalAlerts              []string  `json:"medicalAlerts,omitempty"`
	RequiredActions            []string  `json:"requiredActions,omitempty"`
	MaxSafeAmount              int       `json:"maxSafeAmount"` // ml/day
	MedicalSupervisionRequired bool      `json:"medicalSupervisionRequired"`
}

// HydrationAlert is an intake-tracking alert raised when recorded intake
// falls dangerously short of the recommended amount.
type HydrationAlert struct {
	Level                string   `json:"level"` // info, warning, critical, emergency
	Title                string   `json:"title"`
	Message              string   `json:"message"`
	Actions              []string `json:"actions"`
	SeekMedicalAttention bool     `json:"seekMedicalAttention"`
}
