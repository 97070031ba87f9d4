package bias

import (
	"fmt"
	"math"
	"strings"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// detectionThreshold is the per-channel delta ceiling for one criticality
// tier. Tighter cutoffs at higher criticality.
type detectionThreshold struct {
	hydration float64 // ml
	intensity float64 // %
	alert     float64 // °C
}

var tierThresholds = map[models.CriticalityTier]detectionThreshold{
	models.TierLow:             {hydration: 200, intensity: 10, alert: 2},
	models.TierMedium:          {hydration: 150, intensity: 8, alert: 1.5},
	models.TierHigh:            {hydration: 100, intensity: 5, alert: 1},
	models.TierCritical:        {hydration: 50, intensity: 3, alert: 0.5},
	models.TierLifeThreatening: {hydration: 25, intensity: 1, alert: 0.2},
}

// analyzeDifferences computes the absolute deltas between control and test
// outputs across the five audited channels.
func analyzeDifferences(control, test models.EngineOutput) models.DifferenceAnalysis {
	return models.DifferenceAnalysis{
		Hydration:         math.Abs(float64(control.TotalDailyNeed - test.TotalDailyNeed)),
		ActivityIntensity: math.Abs(control.ActivityIntensity - test.ActivityIntensity),
		AlertThreshold:    math.Abs(control.AlertThreshold - test.AlertThreshold),
		MedicalAttention:  math.Abs(control.MedicalThreshold - test.MedicalThreshold),
		SafetyMargin:      math.Abs(control.SafetyMargin - test.SafetyMargin),
	}
}

// exceedsTierThresholds flags a case when any delta exceeds the
// criticality-tiered cutoff.
func exceedsTierThresholds(diff models.DifferenceAnalysis, tier models.CriticalityTier) bool {
	threshold, ok := tierThresholds[tier]
	if !ok {
		threshold = tierThresholds[models.TierCritical]
	}
	return diff.Hydration > threshold.hydration ||
		diff.ActivityIntensity > threshold.intensity ||
		diff.AlertThreshold > threshold.alert
}

// biasSeverity grades the hydration delta for reporting, independent of the
// tier table used for detection.
func biasSeverity(diff models.DifferenceAnalysis) models.BiasSeverity {
	switch {
	case diff.Hydration > 500:
		return models.BiasSeverityCritical
	case diff.Hydration > 300:
		return models.BiasSeveritySevere
	case diff.Hydration > 150:
		return models.BiasSeverityModerate
	case diff.Hydration > 50:
		return models.BiasSeverityMinor
	default:
		return models.BiasSeverityNone
	}
}

// directionalCheck applies population-specific fairness rules on top of the
// symmetric delta thresholds. Vulnerable groups must be at least as protected
// as the control.
func directionalCheck(testCase models.BiasTestCase, control, test models.EngineOutput, diff models.DifferenceAnalysis) []models.BiasType {
	var found []models.BiasType

	demographics := testCase.TestGroup.Demographics
	conditions := testCase.TestGroup.Medical.Conditions

	if demographics.Age >= 65 && isUnderProtectingElderly(control, test) {
		found = append(found, models.BiasType{
			Type:               models.BiasUnderProtection,
			Description:        "Sous-estimation des risques pour personnes âgées",
			AffectedPopulation: "Seniors 65+",
			PotentialHarm:      "Déshydratation, chutes, hospitalisations évitables",
		})
	}

	if demographics.Age < 18 && demographics.Age > 0 && isInappropriateForChildren(test) {
		found = append(found, models.BiasType{
			Type:               models.BiasAssumptionBased,
			Description:        "Recommandations inadaptées aux besoins pédiatriques",
			AffectedPopulation: "Enfants et adolescents de moins de 18 ans",
			PotentialHarm:      "Déshydratation rapide, épuisement thermique",
		})
	}

	if hasCondition(conditions, string(models.ConditionPregnancy)) && isInsufficientPregnancyProtection(test) {
		found = append(found, models.BiasType{
			Type:               models.BiasUnderProtection,
			Description:        "Protection insuffisante pendant la grossesse",
			AffectedPopulation: "Femmes enceintes",
			PotentialHarm:      "Risques fœtaux, complications de grossesse",
		})
	}

	if testCase.Category == models.CategorySocioeconomic || testCase.Category == models.CategoryEthnicity {
		if hasIntersectionalDiscrimination(diff) {
			found = append(found, models.BiasType{
				Type:               models.BiasUnderProtection,
				Description:        "Discrimination multiple : âge, genre, statut socio-économique",
				AffectedPopulation: "Profils cumulant plusieurs facteurs de vulnérabilité",
				PotentialHarm:      "Accès inéquitable aux recommandations de sécurité",
			})
		}
	}

	return found
}

// isUnderProtectingElderly flags an elderly profile receiving no additional
// hydration, a less sensitive alert level, or fewer advisory strings than the
// control. Equal hydration counts: an engine blind to age under-protects.
func isUnderProtectingElderly(control, test models.EngineOutput) bool {
	return test.TotalDailyNeed <= control.TotalDailyNeed ||
		test.AlertLevel.Rank() < control.AlertLevel.Rank() ||
		len(test.Recommendations) < len(control.Recommendations)
}

// isInappropriateForChildren flags outputs missing pediatric-specific
// language, the pediatric floor, or a parental alert.
func isInappropriateForChildren(test models.EngineOutput) bool {
	return !anyContains(test.Recommendations, "pédiatrique") &&
		!anyContains(test.Contraindications, "pédiatr") ||
		test.TotalDailyNeed < 1500 ||
		!anyContains(test.MedicalAlerts, "parents")
}

// isInsufficientPregnancyProtection flags outputs below the pregnancy floor,
// classified safe, or missing pregnancy contraindications.
func isInsufficientPregnancyProtection(test models.EngineOutput) bool {
	return test.TotalDailyNeed < 2300 ||
		test.AlertLevel == models.AlertSafe ||
		!anyContains(test.Contraindications, "grossesse")
}

func hasIntersectionalDiscrimination(diff models.DifferenceAnalysis) bool {
	return diff.Hydration > 300 || diff.SafetyMargin > 20
}

// ethicalConcerns lists equity concerns raised by the observed deltas.
func ethicalConcerns(diff models.DifferenceAnalysis) []string {
	var concerns []string
	if diff.Hydration > 200 {
		concerns = append(concerns, "Inéquité potentielle dans les recommandations vitales")
	}
	if diff.SafetyMargin > 15 {
		concerns = append(concerns, "Marge de sécurité inégale selon le profil utilisateur")
	}
	return concerns
}

// correctionRecommendations lists algorithm-level follow-ups for the deltas.
func correctionRecommendations(diff models.DifferenceAnalysis) []string {
	var recs []string
	if diff.Hydration > 200 {
		recs = append(recs,
			"Réviser l'algorithme d'hydratation pour l'équité",
			"Renforcer la protection des populations vulnérables")
	}
	return recs
}

// Corrections generates human-readable correction directives for every
// critical, flagged result.
func Corrections(results []models.BiasTestResult) []string {
	var corrections []string
	for _, r := range results {
		if r.Severity != models.BiasSeverityCritical || !r.BiasDetected {
			continue
		}
		corrections = append(corrections, fmt.Sprintf("CORRECTION URGENTE : %s", r.TestID))
		if len(r.BiasTypes) > 0 {
			corrections = append(corrections,
				fmt.Sprintf("- Ajuster l'algorithme pour %s", r.BiasTypes[0].AffectedPopulation),
				fmt.Sprintf("- Renforcer la protection : %s", r.BiasTypes[0].Description))
		}
		corrections = append(corrections, "- Test requis avant déploiement")
	}
	return corrections
}

func anyContains(items []string, substr string) bool {
	for _, s := range items {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

func hasCondition(conditions []string, name string) bool {
	for _, c := range conditions {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
