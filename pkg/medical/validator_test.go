package medical

import (
	"context"
	"testing"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func testValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewDefaultValidator(context.Background())
	if err != nil {
		t.Fatalf("NewDefaultValidator: %v", err)
	}
	return v
}

func adultProfile(conditions ...models.ConditionKind) models.BiometricProfile {
	p := models.BiometricProfile{
		Age:          30,
		Weight:       70,
		Height:       175,
		Sex:          models.SexMale,
		FitnessLevel: models.FitnessModerate,
	}
	for _, c := range conditions {
		p.MedicalConditions = append(p.MedicalConditions, models.MedicalCondition{
			Condition: c,
			Severity:  models.SeverityModerate,
		})
	}
	return p
}

func mildEnv() models.EnvironmentalData {
	return models.EnvironmentalData{Temperature: 20, Humidity: 50, UVIndex: 3, HeatIndex: 20}
}

func TestValidatePediatric(t *testing.T) {
	v := testValidator(t)
	profile := adultProfile()
	profile.Age = 3
	profile.Weight = 15

	verdict, err := v.Validate(context.Background(), profile, mildEnv(), 2000)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if verdict.IsValid {
		t.Error("IsValid = true, want false for age < 5")
	}
	if verdict.RiskLevel != models.RiskCritical {
		t.Errorf("RiskLevel = %s, want critical", verdict.RiskLevel)
	}
	if verdict.MaxSafeAmount > 1200 {
		t.Errorf("MaxSafeAmount = %d, want <= 1200", verdict.MaxSafeAmount)
	}
	if len(verdict.Contraindications) == 0 {
		t.Error("expected a pediatric contraindication")
	}
	if !verdict.MedicalSupervisionRequired {
		t.Error("expected mandatory medical supervision")
	}
}

func TestValidateSeniorCeiling(t *testing.T) {
	v := testValidator(t)
	profile := adultProfile()
	profile.Age = 78

	verdict, err := v.Validate(context.Background(), profile, mildEnv(), 4000)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if verdict.RiskLevel != models.RiskHigh {
		t.Errorf("RiskLevel = %s, want high", verdict.RiskLevel)
	}
	if verdict.MaxSafeAmount != 3500 {
		t.Errorf("MaxSafeAmount = %d, want 3500", verdict.MaxSafeAmount)
	}
	if !verdict.IsValid {
		t.Error("IsValid = false, want true (senior gate restricts but does not invalidate)")
	}
}

func TestValidateConditionCeilings(t *testing.T) {
	tests := []struct {
		name        string
		conditions  []models.ConditionKind
		wantRisk    models.RiskLevel
		wantCeiling int
	}{
		{
			name:        "heart failure",
			conditions:  []models.ConditionKind{models.ConditionHeartFailure},
			wantRisk:    models.RiskCritical,
			wantCeiling: 2000,
		},
		{
			name:        "kidney disease",
			conditions:  []models.ConditionKind{models.ConditionKidneyDisease},
			wantRisk:    models.RiskCritical,
			wantCeiling: 1500,
		},
		{
			name:        "heart failure and kidney disease",
			conditions:  []models.ConditionKind{models.ConditionHeartFailure, models.ConditionKidneyDisease},
			wantRisk:    models.RiskCritical,
			wantCeiling: 1500, // minimum of the two ceilings
		},
		{
			name:        "diabetes has no ceiling",
			conditions:  []models.ConditionKind{models.ConditionDiabetes},
			wantRisk:    models.RiskHigh,
			wantCeiling: 4900, // 70 kg * 70 ml/kg physiological cap
		},
		{
			name:        "hypertension",
			conditions:  []models.ConditionKind{models.ConditionHypertension},
			wantRisk:    models.RiskMedium,
			wantCeiling: 4900,
		},
		{
			name:        "pregnancy",
			conditions:  []models.ConditionKind{models.ConditionPregnancy},
			wantRisk:    models.RiskMedium,
			wantCeiling: 3500,
		},
	}

	v := testValidator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict, err := v.Validate(context.Background(), adultProfile(tt.conditions...), mildEnv(), 3000)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if verdict.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %s, want %s", verdict.RiskLevel, tt.wantRisk)
			}
			if verdict.MaxSafeAmount != tt.wantCeiling {
				t.Errorf("MaxSafeAmount = %d, want %d", verdict.MaxSafeAmount, tt.wantCeiling)
			}
		})
	}
}

func TestValidateDiabetesGlycemicAlert(t *testing.T) {
	v := testValidator(t)
	verdict, err := v.Validate(context.Background(), adultProfile(models.ConditionDiabetes), mildEnv(), 3000)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(verdict.MedicalAlerts) == 0 {
		t.Error("expected a glycemic monitoring alert for diabetes")
	}
}

func TestValidateHyponatremiaGate(t *testing.T) {
	v := testValidator(t)
	verdict, err := v.Validate(context.Background(), adultProfile(), mildEnv(), 6500)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if verdict.IsValid {
		t.Error("IsValid = true, want false for amount > 6000")
	}
	if verdict.RiskLevel != models.RiskCritical {
		t.Errorf("RiskLevel = %s, want critical", verdict.RiskLevel)
	}
	// invalid verdicts are additionally capped at the conservative fallback
	if verdict.MaxSafeAmount > 2500 {
		t.Errorf("MaxSafeAmount = %d, want <= 2500 when invalid", verdict.MaxSafeAmount)
	}
}

func TestValidateDehydrationWarning(t *testing.T) {
	v := testValidator(t)
	verdict, err := v.Validate(context.Background(), adultProfile(), mildEnv(), 700)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if !verdict.IsValid {
		t.Error("IsValid = false, want true (low intake warns but does not invalidate)")
	}
	if len(verdict.Warnings) == 0 {
		t.Error("expected a dehydration warning")
	}
}

func TestValidateThermalGate(t *testing.T) {
	v := testValidator(t)
	env := models.EnvironmentalData{Temperature: 37, Humidity: 85, UVIndex: 7, HeatIndex: 44}

	verdict, err := v.Validate(context.Background(), adultProfile(), env, 3000)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if verdict.RiskLevel.Rank() < models.RiskHigh.Rank() {
		t.Errorf("RiskLevel = %s, want at least high under combined heat and humidity", verdict.RiskLevel)
	}
	if len(verdict.MedicalAlerts) == 0 {
		t.Error("expected a thermal alert")
	}
}

func TestValidateCeilingMinimality(t *testing.T) {
	v := testValidator(t)
	profile := adultProfile(models.ConditionHeartFailure, models.ConditionKidneyDisease, models.ConditionPregnancy)
	profile.Age = 78

	verdict, err := v.Validate(context.Background(), profile, mildEnv(), 3000)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	for _, ceiling := range []int{2000, 1500, 3500} {
		if verdict.MaxSafeAmount > ceiling {
			t.Errorf("MaxSafeAmount = %d exceeds triggered ceiling %d", verdict.MaxSafeAmount, ceiling)
		}
	}
}

func TestValidateIdempotence(t *testing.T) {
	v := testValidator(t)
	profile := adultProfile(models.ConditionDiabetes)
	env := models.EnvironmentalData{Temperature: 33, Humidity: 82, HeatIndex: 39}

	a, err := v.Validate(context.Background(), profile, env, 3200)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	b, err := v.Validate(context.Background(), profile, env, 3200)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if a.IsValid != b.IsValid || a.RiskLevel != b.RiskLevel || a.MaxSafeAmount != b.MaxSafeAmount ||
		len(a.Warnings) != len(b.Warnings) || len(a.MedicalAlerts) != len(b.MedicalAlerts) {
		t.Error("identical inputs produced different verdicts")
	}
}

func TestClampReturnsNewValue(t *testing.T) {
	v := testValidator(t)
	original := models.HydrationRecommendation{
		TotalDailyNeed: 4000,
		AlertLevel:     models.AlertCaution,
	}
	verdict := &models.MedicalValidationResult{
		IsValid:           false,
		RiskLevel:         models.RiskCritical,
		MaxSafeAmount:     1500,
		Contraindications: []string{"restriction hydrique"},
	}

	clamped := v.Clamp(original, verdict)

	if clamped.TotalDailyNeed != 1500 {
		t.Errorf("clamped TotalDailyNeed = %d, want 1500", clamped.TotalDailyNeed)
	}
	if clamped.AlertLevel != models.AlertCritical {
		t.Errorf("clamped AlertLevel = %s, want critical", clamped.AlertLevel)
	}
	if original.TotalDailyNeed != 4000 || len(original.Contraindications) != 0 {
		t.Error("Clamp must not mutate the original recommendation")
	}
}

func TestHasEmergencyRisk(t *testing.T) {
	tests := []struct {
		name    string
		profile models.BiometricProfile
		env     models.EnvironmentalData
		want    bool
	}{
		{"healthy adult mild weather", adultProfile(), mildEnv(), false},
		{"toddler", func() models.BiometricProfile { p := adultProfile(); p.Age = 4; return p }(), mildEnv(), true},
		{"very elderly", func() models.BiometricProfile { p := adultProfile(); p.Age = 90; return p }(), mildEnv(), true},
		{"heart failure", adultProfile(models.ConditionHeartFailure), mildEnv(), true},
		{"extreme heat", adultProfile(), models.EnvironmentalData{Temperature: 41, Humidity: 40, HeatIndex: 41}, true},
		{"extreme heat index", adultProfile(), models.EnvironmentalData{Temperature: 38, Humidity: 90, HeatIndex: 46}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasEmergencyRisk(tt.profile, tt.env); got != tt.want {
				t.Errorf("HasEmergencyRisk = %v, want %v", got, tt.want)
			}
		})
	}
}
