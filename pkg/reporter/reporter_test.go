package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func sampleEvaluation() *models.EvaluationReport {
	return &models.EvaluationReport{
		RunID:     "run-123",
		Timestamp: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		Duration:  42 * time.Millisecond,
		Profile: models.BiometricProfile{
			Age: 64, Weight: 78, Height: 172, Sex: models.SexMale,
			FitnessLevel: models.FitnessLight,
		},
		Environment: models.EnvironmentalData{Temperature: 33, Humidity: 70, UVIndex: 7, HeatIndex: 36.5},
		Activity:    models.ActivityData{Type: models.ActivityModerateExercise, Duration: 45, Intensity: 5, Location: models.LocationOutdoor},
		Hydration: models.HydrationRecommendation{
			TotalDailyNeed: 2000, PreActivityNeed: 400, DuringActivityNeed: 180, PostActivityNeed: 600,
			AlertLevel:      models.AlertWarning,
			Recommendations: []string{"Boire régulièrement par petites quantités"},
		},
		Medical: models.MedicalValidationResult{
			IsValid: false, RiskLevel: models.RiskCritical, MaxSafeAmount: 2000,
			Contraindications:          []string{"Restriction hydrique : insuffisance cardiaque"},
			MedicalSupervisionRequired: true,
		},
		Resolution: models.ValidationResult{
			IsValid:        false,
			FinalRiskLevel: models.AlertCritical,
			Conflicts: []models.Conflict{
				{
					Severity:    models.ConflictCritical,
					Sources:     []models.Domain{models.DomainSport, models.DomainHydration},
					Description: "Effort intense sous restriction hydrique",
					Resolution:  models.ResolutionEmergencyOverride,
				},
			},
			EmergencyAlerts: []models.EmergencyAlert{
				{Level: models.EmergencyUrgent, Title: "Conditions dangereuses", Message: "Réduire l'effort", RequiredActions: []string{"Consulter un médecin"}},
			},
		},
		RiskScore: 74.2,
	}
}

func sampleAudit() *models.AuditReport {
	return &models.AuditReport{
		Summary: models.AuditSummary{
			RunID: "audit-1", TotalTests: 3, Flagged: 1, Critical: 1, Inconclusive: 1,
			Corrections: []string{"CORRECTION URGENTE : ELDERLY_HYDRATION_001"},
		},
		Results: []models.BiasTestResult{
			{TestID: "ELDERLY_HYDRATION_001", BiasDetected: true, Severity: models.BiasSeverityCritical,
				BiasTypes: []models.BiasType{{Type: models.BiasUnderProtection, Description: "sous-protection des seniors"}}},
			{TestID: "CULTURAL_EQUIVALENCE_001", Passed: true, Severity: models.BiasSeverityNone},
			{TestID: "MEDICAL_DIABETES_001", Error: "engine unavailable"},
		},
		Timestamp: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		Duration:  120 * time.Millisecond,
	}
}

func TestFactoryFormats(t *testing.T) {
	factory := NewFactory()
	for _, format := range factory.GetSupportedFormats() {
		rep, err := factory.CreateReporter(format)
		if err != nil {
			t.Fatalf("CreateReporter(%s) error = %v", format, err)
		}
		if rep.GetFormat() != format {
			t.Errorf("GetFormat() = %s, want %s", rep.GetFormat(), format)
		}
	}
	if _, err := factory.CreateReporter("sarif"); err == nil {
		t.Error("unknown format must be rejected")
	}
}

func TestParseReporterTypeAliases(t *testing.T) {
	if got, _ := ParseReporterType("console"); got != ReporterTypeTable {
		t.Errorf("console alias = %s, want table", got)
	}
	if got, _ := ParseReporterType("YML"); got != ReporterTypeYAML {
		t.Errorf("YML alias = %s, want yaml", got)
	}
}

func TestJSONReporterEvaluation(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONReporter().WriteReport(context.Background(), sampleEvaluation(), &buf); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"tool": "fithero"`, `"runId": "run-123"`, `"riskScore": 74.2`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s", want)
		}
	}
}

func TestYAMLReporterAudit(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLReporter().WriteAuditReport(context.Background(), sampleAudit(), &buf); err != nil {
		t.Fatalf("WriteAuditReport() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "tool: fithero") || !strings.Contains(out, "audit-1") {
		t.Errorf("YAML output missing metadata: %s", out)
	}
}

func TestTableReporterEvaluation(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTableReporter(true, true)
	if err := rep.WriteReport(context.Background(), sampleEvaluation(), &buf); err != nil {
		t.Fatalf("WriteReport() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"FitHero Safety Evaluation",
		"Daily need:      2000 ml",
		"INVALID",
		"Effort intense sous restriction hydrique",
		"Conditions dangereuses",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q", want)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Error("noColor output must not contain ANSI escapes")
	}
}

func TestTableReporterAudit(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTableReporter(true, false)
	if err := rep.WriteAuditReport(context.Background(), sampleAudit(), &buf); err != nil {
		t.Fatalf("WriteAuditReport() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"FitHero Fairness Audit",
		"ELDERLY_HYDRATION_001",
		"INCONCLUSIVE",
		"CORRECTION URGENTE",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("audit output missing %q", want)
		}
	}
	// non-verbose hides clean cases
	if strings.Contains(out, "CULTURAL_EQUIVALENCE_001") {
		t.Error("clean case must be hidden without verbose")
	}
}
