package bias

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// RecommendationEngine is the capability the harness audits. Adapters wrap
// concrete engines behind this narrow interface rather than branching on
// engine shape at runtime.
type RecommendationEngine interface {
	Evaluate(ctx context.Context, profile models.TestProfile) (models.EngineOutput, error)
}

// referenceHeightCM is used to derive weight from BMI so paired profiles stay
// comparable across the suite.
const referenceHeightCM = 170.0

// HydrationEngineAdapter audits the hydration calculator and medical
// validator pipeline.
type HydrationEngineAdapter struct {
	calculator *hydration.Calculator
	validator  *medical.Validator
}

// NewHydrationEngineAdapter wraps the calculator/validator pair as an
// auditable engine.
func NewHydrationEngineAdapter(calculator *hydration.Calculator, validator *medical.Validator) *HydrationEngineAdapter {
	return &HydrationEngineAdapter{calculator: calculator, validator: validator}
}

// Evaluate runs the pipeline for one synthetic test profile.
func (a *HydrationEngineAdapter) Evaluate(ctx context.Context, profile models.TestProfile) (models.EngineOutput, error) {
	bio := biometricFromTestProfile(profile)
	env := profile.Environmental
	activity := profile.Activity

	rec := a.calculator.Calculate(bio, env, activity)

	verdict, err := a.validator.Validate(ctx, bio, env, float64(rec.TotalDailyNeed))
	if err != nil {
		return models.EngineOutput{}, fmt.Errorf("medical validation failed: %w", err)
	}
	clamped := a.validator.Clamp(rec, verdict)

	return models.EngineOutput{
		TotalDailyNeed:    clamped.TotalDailyNeed,
		AlertLevel:        clamped.AlertLevel,
		Recommendations:   clamped.Recommendations,
		Contraindications: clamped.Contraindications,
		MedicalAlerts:     clamped.MedicalAlerts,
		ActivityIntensity: float64(activity.Intensity) * 10,
		SafetyMargin:      15,
	}, nil
}

// biometricFromTestProfile maps a synthetic audit profile onto the
// calculator's input shape. Weight is derived from BMI at a fixed reference
// height.
func biometricFromTestProfile(profile models.TestProfile) models.BiometricProfile {
	weight := math.Round(profile.Medical.BMI * math.Pow(referenceHeightCM/100, 2))

	sex := models.SexMale
	if strings.EqualFold(profile.Demographics.Gender, "F") {
		sex = models.SexFemale
	}

	fitness := models.FitnessLevel(profile.Medical.FitnessLevel)
	if !fitness.IsValid() {
		fitness = models.FitnessModerate
	}

	var conditions []models.MedicalCondition
	for _, name := range profile.Medical.Conditions {
		kind := models.ConditionKind(name)
		if !kind.IsValid() {
			continue
		}
		conditions = append(conditions, models.MedicalCondition{
			Condition:   kind,
			Severity:    models.SeverityModerate,
			Medications: profile.Medical.Medications,
		})
	}

	return models.BiometricProfile{
		Age:               profile.Demographics.Age,
		Weight:            weight,
		Height:            referenceHeightCM,
		Sex:               sex,
		FitnessLevel:      fitness,
		MedicalConditions: conditions,
	}
}
