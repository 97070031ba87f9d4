package models

// TestCategory buckets a bias test case by the demographic axis it varies.
type TestCategory string

const (
	CategoryAge           TestCategory = "age"
	CategoryGender        TestCategory = "gender"
	CategoryEthnicity     TestCategory = "ethnicity"
	CategorySocioeconomic TestCategory = "socioeconomic"
	CategoryMedical       TestCategory = "medical"
	CategoryGeographic    TestCategory = "geographic"
)

// CriticalityTier selects which delta thresholds count as discriminatory for
// a test case. Higher tiers use tighter cutoffs.
type CriticalityTier string

const (
	TierLow             CriticalityTier = "low"
	TierMedium          CriticalityTier = "medium"
	TierHigh            CriticalityTier = "high"
	TierCritical        CriticalityTier = "critical"
	TierLifeThreatening CriticalityTier = "life_threatening"
)

// IsValid checks if the tier is part of the known vocabulary.
func (t CriticalityTier) IsValid() bool {
	switch t {
	case TierLow, TierMedium, TierHigh, TierCritical, TierLifeThreatening:
		return true
	default:
		return false
	}
}

// ExpectedOutcome declares what a fair engine should produce for a pair.
type ExpectedOutcome string

const (
	OutcomeEquivalent           ExpectedOutcome = "equivalent"
	OutcomeControlledDifference ExpectedOutcome = "controlled_difference"
	OutcomeNoDiscrimination     ExpectedOutcome = "no_discrimination"
)

// Demographics describes who a test profile represents.
type Demographics struct {
	Age                 int    `yaml:"age" json:"age"`
	Gender              string `yaml:"gender" json:"gender"`
	Ethnicity           string `yaml:"ethnicity,omitempty" json:"ethnicity,omitempty"`
	SocioeconomicStatus string `yaml:"socioeconomicStatus,omitempty" json:"socioeconomicStatus,omitempty"`
	Location            string `yaml:"location,omitempty" json:"location,omitempty"`
}

// MedicalContext is the medical half of a test profile. BMI stands in for
// weight so paired profiles stay comparable across heights.
type MedicalContext struct {
	Conditions   []string `yaml:"conditions,omitempty" json:"conditions,omitempty"`
	Medications  []string `yaml:"medications,omitempty" json:"medications,omitempty"`
	Allergies    []string `yaml:"allergies,omitempty" json:"allergies,omitempty"`
	FitnessLevel string   `yaml:"fitnessLevel" json:"fitnessLevel"`
	BMI          float64  `yaml:"bmi" json:"bmi"`
}

// TestProfile is one synthetic subject fed to the engine under audit.
type TestProfile struct {
	Demographics  Demographics      `yaml:"demographics" json:"demographics"`
	Medical       MedicalContext    `yaml:"medical" json:"medical"`
	Environmental EnvironmentalData `yaml:"environmental" json:"environmental"`
	Activity      ActivityData      `yaml:"activity" json:"activity"`
}

// BiasTestCase pairs a control and a test profile differing in one
// demographic axis.
type BiasTestCase struct {
	TestID          string          `yaml:"testId" json:"testId"`
	Category        TestCategory    `yaml:"category" json:"category"`
	Description     string          `yaml:"description" json:"description"`
	ControlGroup    TestProfile     `yaml:"controlGroup" json:"controlGroup"`
	TestGroup       TestProfile     `yaml:"testGroup" json:"testGroup"`
	ExpectedOutcome ExpectedOutcome `yaml:"expectedOutcome" json:"expectedOutcome"`
	Criticality     CriticalityTier `yaml:"criticalityLevel" json:"criticalityLevel"`
}

// EngineOutput is the shape the audit harness reads back from any
// recommendation engine under test. Engines that do not expose a numeric
// channel leave it at zero.
type EngineOutput struct {
	TotalDailyNeed    int        `json:"totalDailyNeed"` // ml
	AlertLevel        AlertLevel `json:"alertLevel"`
	Recommendations   []string   `json:"recommendations,omitempty"`
	Contraindications []string   `json:"contraindications,omitempty"`
	MedicalAlerts     []string   `json:"medicalAlerts,omitempty"`
	ActivityIntensity float64    `json:"activityIntensity"` // %
	AlertThreshold    float64    `json:"alertThreshold"`    // °C
	MedicalThreshold  float64    `json:"medicalThreshold"`  // score
	SafetyMargin      float64    `json:"safetyMargin"`      // %
}

// DifferenceAnalysis holds the absolute deltas between control and test
// outputs across the five audited channels.
type DifferenceAnalysis struct {
	Hydration         float64 `json:"hydrationDifference"`                 // ml
	ActivityIntensity float64 `json:"activityIntensityDifference"`         // %
	AlertThreshold    float64 `json:"alertThresholdDifference"`            // °C
	MedicalAttention  float64 `json:"medicalAttentionThresholdDifference"` // score
	SafetyMargin      float64 `json:"safetyMarginDifference"`              // %
}

// BiasKind names a discrimination pattern.
type BiasKind string

const (
	BiasUnderProtection       BiasKind = "systematic_under_protection"
	BiasOverProtection        BiasKind = "systematic_over_protection"
	BiasResourceAllocation    BiasKind = "resource_allocation"
	BiasAssumptionBased       BiasKind = "assumption_based"
	BiasCulturalInsensitivity BiasKind = "cultural_insensitivity"
)

// BiasType describes one detected discrimination pattern.
type BiasType struct {
	Type               BiasKind `json:"type"`
	Description        string   `json:"description"`
	AffectedPopulation string   `json:"affectedPopulation"`
	PotentialHarm      string   `json:"potentialHarm"`
}

// BiasSeverity grades a detected difference for reporting, independent of
// the tier table used for detection.
type BiasSeverity string

const (
	BiasSeverityNone     BiasSeverity = "none"
	BiasSeverityMinor    BiasSeverity = "minor"
	BiasSeverityModerate BiasSeverity = "moderate"
	BiasSeveritySevere   BiasSeverity = "severe"
	BiasSeverityCritical BiasSeverity = "critical"
)

// BiasTestResult is the outcome of one paired evaluation. A case whose
// engine evaluation failed carries Error and counts as inconclusive, not as
// a pass.
type BiasTestResult struct {
	TestID             string             `json:"testId"`
	Passed             bool               `json:"passed"`
	BiasDetected       bool               `json:"biasDetected"`
	BiasTypes          []BiasType         `json:"biasType,omitempty"`
	Severity           BiasSeverity       `json:"severity"`
	ControlOutput      EngineOutput       `json:"controlRecommendation"`
	TestOutput         EngineOutput       `json:"testRecommendation"`
	Differences        DifferenceAnalysis `json:"differenceAnalysis"`
	EthicalConcerns    []string           `json:"ethicalConcerns,omitempty"`
	CorrectionRequired bool               `json:"correctionRequired"`
	Recommendations    []string           `json:"recommendations,omitempty"`
	Error              string             `json:"error,omitempty"`
}

// PopulationSuite groups bias test cases into the four audited buckets.
type PopulationSuite struct {
	Vulnerable     []BiasTestCase `yaml:"vulnerable" json:"vulnerable"`
	Intersectional []BiasTestCase `yaml:"intersectional" json:"intersectional"`
	Cultural       []BiasTestCase `yaml:"cultural" json:"cultural"`
	Medical        []BiasTestCase `yaml:"medical" json:"medical"`
}

// All returns every case in the suite, bucket order preserved.
func (s *PopulationSuite) All() []BiasTestCase {
	out := make([]BiasTestCase, 0, len(s.Vulnerable)+len(s.Intersectional)+len(s.Cultural)+len(s.Medical))
	out = append(out, s.Vulnerable...)
	out = append(out, s.Intersectional...)
	out = append(out, s.Cultural...)
	out = append(out, s.Medical...)
	return out
}

// AuditSummary aggregates a full harness run.
type AuditSummary struct {
	RunID        string   `json:"runId"`
	TotalTests   int      `json:"totalTests"`
	Flagged      int      `json:"biasDetected"`
	Critical     int      `json:"criticalBias"`
	Inconclusive int      `json:"inconclusive"`
	Corrections  []string `json:"corrections,omitempty"`
}
