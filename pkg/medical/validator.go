// Package medical validates proposed hydration amounts against the safety
// rule catalog. Rules are declarative CEL guards; the validator combines the
// effects of every triggered rule with a most-restrictive-wins combinator.
package medical

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/engine"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Fallback ceiling applied whenever a rule invalidates the amount. This is a
// deliberate last-resort override: an invalid verdict never carries a ceiling
// above it.
const invalidFallbackCeilingML = 2500

// Validator evaluates the safety rule catalog against a proposed hydration
// amount. A single instance is stateless and safe for concurrent use.
type Validator struct {
	engine engine.EvaluationEngine
	rules  []*models.SafetyRule
}

// NewValidator creates a validator over the given rule set. Rules are
// evaluated in catalog order; the order never affects the combined verdict.
func NewValidator(eng engine.EvaluationEngine, rules []*models.SafetyRule) *Validator {
	sorted := make([]*models.SafetyRule, len(rules))
	copy(sorted, rules)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].GetID() < sorted[j].GetID()
	})
	return &Validator{engine: eng, rules: sorted}
}

// Rules returns the catalog the validator evaluates.
func (v *Validator) Rules() []*models.SafetyRule {
	return v.rules
}

// Validate checks a proposed daily amount (ml) for the given profile and
// environment and returns the combined verdict.
func (v *Validator) Validate(ctx context.Context, profile models.BiometricProfile, environment models.EnvironmentalData, amount float64) (*models.MedicalValidationResult, error) {
	input := engine.Input{
		Profile:     profile,
		Environment: environment,
		Amount:      amount,
	}

	evaluations, err := v.engine.EvaluateRules(ctx, v.rules, input)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate safety rules: %w", err)
	}

	result := combineOutcomes(evaluations, profile)
	return result, nil
}

// combineOutcomes folds all triggered rule effects into a single verdict.
// The combination law is explicit and commutative: risk is maximized,
// ceilings are minimized, invalidation OR-ed. Rule evaluation order
// therefore cannot change the outcome.
func combineOutcomes(evaluations []models.RuleEvaluation, profile models.BiometricProfile) *models.MedicalValidationResult {
	result := &models.MedicalValidationResult{
		IsValid:   true,
		RiskLevel: models.RiskLow,
	}

	ceiling := baseCeiling(profile)

	for _, eval := range evaluations {
		if !eval.Triggered {
			continue
		}
		effect := eval.Effect

		if effect.Risk != "" {
			result.RiskLevel = models.MaxRiskLevel(result.RiskLevel, effect.Risk)
		}
		if effect.Invalidate {
			result.IsValid = false
		}
		if effect.CeilingML > 0 && effect.CeilingML < ceiling {
			ceiling = effect.CeilingML
		}
		if effect.Contraindication != "" {
			result.Contraindications = append(result.Contraindications, effect.Contraindication)
		}
		if effect.Warning != "" {
			result.Warnings = append(result.Warnings, effect.Warning)
		}
		if effect.Alert != "" {
			result.MedicalAlerts = append(result.MedicalAlerts, effect.Alert)
		}
		if effect.Action != "" {
			result.RequiredActions = append(result.RequiredActions, effect.Action)
		}
		if effect.Supervision {
			result.MedicalSupervisionRequired = true
		}
	}

	if !result.IsValid && ceiling > invalidFallbackCeilingML {
		ceiling = invalidFallbackCeilingML
	}
	if result.RiskLevel == models.RiskCritical {
		result.MedicalSupervisionRequired = true
	}

	result.MaxSafeAmount = ceiling
	return result
}

// baseCeiling is the physiological ceiling before any rule fires, 70 ml/kg
// capped at the absolute hyperhydration limit.
func baseCeiling(profile models.BiometricProfile) int {
	ceiling := 6000.0
	if profile.Weight > 0 {
		ceiling = math.Min(ceiling, profile.Weight*70)
	}
	return int(math.Round(ceiling))
}

// Clamp applies a validation verdict to a recommendation, returning a new
// value. The original is never modified.
func (v *Validator) Clamp(rec models.HydrationRecommendation, verdict *models.MedicalValidationResult) models.HydrationRecommendation {
	clamped := rec
	if verdict == nil {
		return clamped
	}

	if verdict.MaxSafeAmount > 0 && clamped.TotalDailyNeed > verdict.MaxSafeAmount {
		clamped.TotalDailyNeed = verdict.MaxSafeAmount
	}

	clamped.Contraindications = appendCopy(rec.Contraindications, verdict.Contraindications)
	clamped.MedicalAlerts = appendCopy(rec.MedicalAlerts, verdict.MedicalAlerts)

	if !verdict.IsValid || verdict.RiskLevel == models.RiskCritical {
		clamped.AlertLevel = models.MaxAlertLevel(clamped.AlertLevel, models.AlertCritical)
	}

	return clamped
}

// Advise returns the contraindications and alerts a proposed amount raises,
// swallowing evaluation errors conservatively. It satisfies the calculator's
// Advisor contract.
func (v *Validator) Advise(profile models.BiometricProfile, environment models.EnvironmentalData, amount float64) ([]string, []string) {
	verdict, err := v.Validate(context.Background(), profile, environment, amount)
	if err != nil {
		return nil, []string{"Validation médicale indisponible : avis médical recommandé avant modification"}
	}
	return verdict.Contraindications, verdict.MedicalAlerts
}

// HasEmergencyRisk short-circuits to emergency handling without running the
// full pipeline: extreme ages, a critical condition, or extreme heat.
func HasEmergencyRisk(profile models.BiometricProfile, environment models.EnvironmentalData) bool {
	if profile.Age < 5 || profile.Age > 85 {
		return true
	}
	for _, c := range profile.MedicalConditions {
		if c.Severity == models.SeveritySevere {
			return true
		}
		if c.Condition == models.ConditionHeartFailure || c.Condition == models.ConditionKidneyDisease {
			return true
		}
	}
	return environment.Temperature > 40 || environment.HeatIndex > 45
}

func appendCopy(base, extra []string) []string {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}
