package models

import "time"

// EvaluationReport bundles the output of one full pipeline run: hydration
// calculation, medical validation and cross-domain resolution for a single
// subject. Reporters render it; the pipeline never reads it back.
type EvaluationReport struct {
	RunID       string                  `json:"runId" yaml:"runId"`
	Timestamp   time.Time               `json:"timestamp" yaml:"timestamp"`
	Duration    time.Duration           `json:"duration" yaml:"duration"`
	Profile     BiometricProfile        `json:"profile" yaml:"profile"`
	Environment EnvironmentalData       `json:"environment" yaml:"environment"`
	Activity    ActivityData            `json:"activity" yaml:"activity"`
	Hydration   HydrationRecommendation `json:"hydration" yaml:"hydration"`
	Medical     MedicalValidationResult `json:"medical" yaml:"medical"`
	Resolution  ValidationResult        `json:"resolution" yaml:"resolution"`
	RiskScore   float64                 `json:"riskScore" yaml:"riskScore"` // 0-100
}

// AuditReport bundles a fairness audit run for reporting.
type AuditReport struct {
	Summary   AuditSummary     `json:"summary" yaml:"summary"`
	Results   []BiasTestResult `json:"results" yaml:"results"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
	Duration  time.Duration    `json:"duration" yaml:"duration"`
}
