package models

import "time"

// Domain identifies the subsystem that authored a recommendation.
type Domain string

const (
	DomainSport      Domain = "sport"
	DomainHydration  Domain = "hydration"
	DomainNutrition  Domain = "nutrition"
	DomainSleep      Domain = "sleep"
	DomainMedication Domain = "medication"
)

// RecommendationType classifies what an AI recommendation is about.
type RecommendationType string

const (
	TypeActivity  RecommendationType = "activity"
	TypeIntake    RecommendationType = "intake"
	TypeTiming    RecommendationType = "timing"
	TypeIntensity RecommendationType = "intensity"
	TypeAlert     RecommendationType = "alert"
)

// Priority is the ordered scheduling priority of a recommendation.
type Priority string

const (
	PriorityLow       Priority = "low"
	PriorityMedium    Priority = "medium"
	PriorityHigh      Priority = "high"
	PriorityCritical  Priority = "critical"
	PriorityEmergency Priority = "emergency"
)

// Rank returns the position of the priority in the low→emergency order.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	case PriorityCritical:
		return 3
	case PriorityEmergency:
		return 4
	default:
		return 0
	}
}

// IntensityTier is the structured effort classification a generator attaches
// to its recommendation, so the conflict resolver does not have to rely on
// keyword matching alone.
type IntensityTier string

const (
	IntensityTierNone     IntensityTier = ""
	IntensityTierLight    IntensityTier = "light"
	IntensityTierModerate IntensityTier = "moderate"
	IntensityTierHigh     IntensityTier = "high"
)

// DietaryConstraintTier is the structured restrictiveness classification for
// nutrition recommendations.
type DietaryConstraintTier string

const (
	DietaryTierNone        DietaryConstraintTier = ""
	DietaryTierLight       DietaryConstraintTier = "light"
	DietaryTierRestrictive DietaryConstraintTier = "restrictive"
	DietaryTierFasting     DietaryConstraintTier = "fasting"
)

// Timeframe is the validity window of a recommendation.
type Timeframe struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration"` // minutes
}

// Overlaps reports whether two timeframes intersect.
func (t Timeframe) Overlaps(other Timeframe) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// AIRecommendation is the cross-domain envelope every domain generator must
// emit to participate in conflict resolution. The resolver treats the free
// text as opaque except for documented keyword heuristics; the tier fields
// are the structured, preferred signal.
type AIRecommendation struct {
	Source               Domain                `json:"source"`
	Type                 RecommendationType    `json:"type"`
	Priority             Priority              `json:"priority"`
	Recommendation       string                `json:"recommendation"`
	Contraindications    []string              `json:"contraindications,omitempty"`
	MedicalAlerts        []string              `json:"medicalAlerts,omitempty"`
	EnvironmentalFactors []string              `json:"environmentalFactors,omitempty"`
	Timeframe            Timeframe             `json:"timeframe"`
	RiskLevel            AlertLevel            `json:"riskLevel"`
	Confidence           int                   `json:"confidence"` // 0-100
	IntensityTier        IntensityTier         `json:"intensityTier,omitempty"`
	DietaryTier          DietaryConstraintTier `json:"dietaryTier,omitempty"`
}

// ConflictSeverity grades a detected cross-domain conflict, ordered from
// minor to life-threatening.
type ConflictSeverity string

const (
	ConflictMinor           ConflictSeverity = "minor"
	ConflictModerate        ConflictSeverity = "moderate"
	ConflictSevere          ConflictSeverity = "severe"
	ConflictCritical        ConflictSeverity = "critical"
	ConflictLifeThreatening ConflictSeverity = "life_threatening"
)

// Rank returns the position of the severity in the minor→life-threatening
// order.
func (c ConflictSeverity) Rank() int {
	switch c {
	case ConflictMinor:
		return 0
	case ConflictModerate:
		return 1
	case ConflictSevere:
		return 2
	case ConflictCritical:
		return 3
	case ConflictLifeThreatening:
		return 4
	default:
		return 0
	}
}

// ResolutionStrategy tags how a conflict was (or must be) handled.
type ResolutionStrategy string

const (
	ResolutionAutoResolved      ResolutionStrategy = "auto_resolved"
	ResolutionManualRequired    ResolutionStrategy = "manual_required"
	ResolutionEmergencyOverride ResolutionStrategy = "emergency_override"
)

// Conflict is a detected incompatibility between two or more domain
// recommendations.
type Conflict struct {
	Severity     ConflictSeverity   `json:"severity"`
	Sources      []Domain           `json:"sources"`
	Description  string             `json:"description"`
	Resolution   ResolutionStrategy `json:"resolution"`
	SafetyImpact string             `json:"safetyImpact"`
}

// Involves reports whether the conflict names the given domain as a source.
func (c Conflict) Involves(d Domain) bool {
	for _, s := range c.Sources {
		if s == d {
			return true
		}
	}
	return false
}

// OverrideAuthority identifies the rule that replaced a recommendation.
type OverrideAuthority string

const (
	OverrideSafetyProtocol    OverrideAuthority = "safety_protocol"
	OverrideMedicalValidation OverrideAuthority = "medical_validation"
	OverrideEmergencySystem   OverrideAuthority = "emergency_system"
)

// Override records a replaced recommendation for the audit trail. Originals
// are retained, never discarded.
type Override struct {
	Original          AIRecommendation  `json:"originalRecommendation"`
	OverriddenBy      OverrideAuthority `json:"overriddenBy"`
	NewRecommendation string            `json:"newRecommendation"`
	Reason            string            `json:"reason"`
}

// EmergencyAlertLevel grades an escalation alert.
type EmergencyAlertLevel string

const (
	EmergencyImmediate EmergencyAlertLevel = "immediate"
	EmergencyUrgent    EmergencyAlertLevel = "urgent"
	EmergencyCritical  EmergencyAlertLevel = "critical"
)

// EmergencyAlert is an escalation produced by the conflict resolver when
// combined conditions become dangerous.
type EmergencyAlert struct {
	Level                EmergencyAlertLevel `json:"level"`
	Title                string              `json:"title"`
	Message              string              `json:"message"`
	RequiredActions      []string            `json:"requiredActions"`
	SeekMedicalAttention bool                `json:"seekMedicalAttention"`
	StopAllActivities    bool                `json:"stopAllActivities"`
}

// UserProfile is the demographic and medical context the conflict resolver
// evaluates recommendations against. Condition names here are already mapped
// to the closed vocabulary.
type UserProfile struct {
	Age                int             `json:"age"`
	MedicalConditions  []ConditionKind `json:"medicalConditions,omitempty"`
	CurrentMedications []string        `json:"currentMedications,omitempty"`
	FitnessLevel       FitnessLevel    `json:"fitnessLevel"`
}

// HasCondition reports whether the profile declares the given condition.
func (u *UserProfile) HasCondition(kind ConditionKind) bool {
	for _, c := range u.MedicalConditions {
		if c == kind {
			return true
		}
	}
	return false
}

// TakesMedication reports whether the profile lists the given medication.
func (u *UserProfile) TakesMedication(name string) bool {
	for _, m := range u.CurrentMedications {
		if m == name {
			return true
		}
	}
	return false
}

// ValidationResult is the outcome of cross-domain conflict resolution.
// IsValid is true when no conflict of critical-or-worse severity remains;
// resolution edits recommendations and emits alerts but never removes
// conflicts from the report.
type ValidationResult struct {
	IsValid                 bool               `json:"isValid"`
	Conflicts               []Conflict         `json:"conflicts"`
	ResolvedRecommendations []AIRecommendation `json:"resolvedRecommendations"`
	Overrides               []Override         `json:"overrides"`
	EmergencyAlerts         []EmergencyAlert   `json:"emergencyAlerts"`
	FinalRiskLevel          AlertLevel         `json:"finalRiskLevel"`
}
