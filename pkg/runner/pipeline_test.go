package runner

import (
	"context"
	"testing"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	validator, err := medical.NewDefaultValidator(context.Background())
	if err != nil {
		t.Fatalf("NewDefaultValidator() error = %v", err)
	}
	return NewPipeline(validator)
}

func TestPipelineEvaluateHealthySubject(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Evaluate(context.Background(), EvaluateRequest{
		Profile: models.BiometricProfile{
			Age: 30, Weight: 70, Height: 175, Sex: models.SexMale,
			FitnessLevel: models.FitnessModerate,
		},
		Environment: models.EnvironmentalData{Temperature: 22, Humidity: 50},
		Activity:    models.ActivityData{Type: models.ActivityRest},
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if report.RunID == "" {
		t.Error("report must carry a run ID")
	}
	if !report.Medical.IsValid {
		t.Errorf("healthy subject in mild conditions must validate, got %+v", report.Medical)
	}
	if report.Hydration.TotalDailyNeed < 1200 || report.Hydration.TotalDailyNeed > 6000 {
		t.Errorf("daily need %d outside absolute limits", report.Hydration.TotalDailyNeed)
	}
	if report.RiskScore < 0 || report.RiskScore > 100 {
		t.Errorf("risk score %f outside 0-100", report.RiskScore)
	}
}

func TestPipelineEvaluateHeartFailureClamped(t *testing.T) {
	p := newTestPipeline(t)

	report, err := p.Evaluate(context.Background(), EvaluateRequest{
		Profile: models.BiometricProfile{
			Age: 64, Weight: 78, Height: 172, Sex: models.SexMale,
			FitnessLevel: models.FitnessLight,
			MedicalConditions: []models.MedicalCondition{
				{Condition: models.ConditionHeartFailure, Severity: models.SeveritySevere},
			},
		},
		Environment: models.EnvironmentalData{Temperature: 22, Humidity: 50},
		Activity:    models.ActivityData{Type: models.ActivityRest},
	})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if report.Medical.MaxSafeAmount > 2000 {
		t.Errorf("max safe amount = %d, want heart failure ceiling of 2000", report.Medical.MaxSafeAmount)
	}
	if report.Hydration.TotalDailyNeed > 2000 {
		t.Errorf("daily need = %d, must be clamped to the medical ceiling", report.Hydration.TotalDailyNeed)
	}
	if report.Medical.RiskLevel != models.RiskCritical {
		t.Errorf("risk level = %s, want critical", report.Medical.RiskLevel)
	}
	if !report.Medical.MedicalSupervisionRequired {
		t.Error("heart failure must require medical supervision")
	}
}

func TestConservativeVerdict(t *testing.T) {
	verdict := conservativeVerdict(models.BiometricProfile{Weight: 60})

	if verdict.IsValid {
		t.Error("fallback verdict must be invalid")
	}
	if verdict.MaxSafeAmount != 2100 {
		t.Errorf("fallback ceiling = %d, want 2100 (60 kg x 35)", verdict.MaxSafeAmount)
	}
	if !verdict.MedicalSupervisionRequired {
		t.Error("fallback must require supervision")
	}

	heavy := conservativeVerdict(models.BiometricProfile{Weight: 100})
	if heavy.MaxSafeAmount != 2500 {
		t.Errorf("fallback ceiling = %d, want capped at 2500", heavy.MaxSafeAmount)
	}
}
