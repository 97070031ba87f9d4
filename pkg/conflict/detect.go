package conflict

import (
	"fmt"
	"strings"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Keyword heuristics retained as a fallback for text-only sources. The tier
// fields on the envelope are the preferred, structured signal.
var (
	intensifyKeywords = []string{
		"intensifiez", "augmentez", "poussez", "maximisez",
		"effort maximal", "haute intensité", "performance",
	}
	intenseKeywords     = []string{"intense", "effort", "competition", "compétition"}
	restrictiveKeywords = []string{"restriction", "réduire", "limiter"}
	fastingKeywords     = []string{"jeûne", "à jeun", "sans manger", "restriction"}
	mealKeywords        = []string{"repas"}
)

func containsAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// isIntenseSport reports whether a sport recommendation denotes high
// intensity, preferring the structured tier over keyword matching.
func isIntenseSport(rec models.AIRecommendation) bool {
	if rec.Source != models.DomainSport {
		return false
	}
	if rec.IntensityTier != models.IntensityTierNone {
		return rec.IntensityTier == models.IntensityTierHigh
	}
	return containsAny(rec.Recommendation, intenseKeywords) || rec.Timeframe.Duration > 90
}

// isIntensifying reports whether a sport recommendation pushes the user to
// increase effort.
func isIntensifying(rec models.AIRecommendation) bool {
	if rec.IntensityTier == models.IntensityTierHigh && rec.Type == models.TypeIntensity {
		return true
	}
	return containsAny(rec.Recommendation, intensifyKeywords)
}

// isHydrationRisk reports whether a hydration recommendation signals a
// warning-or-worse deficit.
func isHydrationRisk(rec models.AIRecommendation) bool {
	return rec.Source == models.DomainHydration && rec.RiskLevel.AtLeast(models.AlertWarning)
}

// isRestrictiveNutrition reports whether a nutrition recommendation limits
// intake, preferring the structured tier over keyword matching.
func isRestrictiveNutrition(rec models.AIRecommendation) bool {
	if rec.Source != models.DomainNutrition {
		return false
	}
	if rec.DietaryTier != models.DietaryTierNone {
		return rec.DietaryTier == models.DietaryTierRestrictive || rec.DietaryTier == models.DietaryTierFasting
	}
	return containsAny(rec.Recommendation, restrictiveKeywords)
}

// isFastingNutrition reports whether a nutrition recommendation implies
// exercising without eating.
func isFastingNutrition(rec models.AIRecommendation) bool {
	if rec.DietaryTier == models.DietaryTierFasting {
		return true
	}
	return containsAny(rec.Recommendation, fastingKeywords)
}

// isSevereSleepDeprivation reports whether a sleep recommendation signals a
// critical-or-worse deficit.
func isSevereSleepDeprivation(rec models.AIRecommendation) bool {
	return rec.Source == models.DomainSleep && rec.RiskLevel.AtLeast(models.AlertCritical)
}

func byDomain(recs []models.AIRecommendation, domain models.Domain) []models.AIRecommendation {
	var out []models.AIRecommendation
	for _, r := range recs {
		if r.Source == domain {
			out = append(out, r)
		}
	}
	return out
}

// detectConflicts scans the recommendation list pairwise. The returned
// conflict set is independent of the input list order; only the list order of
// the result may vary.
func detectConflicts(recs []models.AIRecommendation, environment models.EnvironmentalData, profile models.UserProfile) []models.Conflict {
	var conflicts []models.Conflict

	sportRecs := byDomain(recs, models.DomainSport)
	hydrationRecs := byDomain(recs, models.DomainHydration)
	nutritionRecs := byDomain(recs, models.DomainNutrition)
	sleepRecs := byDomain(recs, models.DomainSleep)

	// Sport vs hydration, the most dangerous combination
	for _, sportRec := range sportRecs {
		for _, hydrationRec := range hydrationRecs {
			if isIntensifying(sportRec) && hydrationRec.RiskLevel == models.AlertEmergency && environment.Temperature > 30 {
				conflicts = append(conflicts, models.Conflict{
					Severity: models.ConflictLifeThreatening,
					Sources:  []models.Domain{models.DomainSport, models.DomainHydration},
					Description: fmt.Sprintf(
						"Sport recommande une intensification mais risque de déshydratation mortelle par chaleur extrême (%.0f°C)",
						environment.Temperature),
					Resolution:   models.ResolutionEmergencyOverride,
					SafetyImpact: "Risque de coup de chaleur, hospitalisation possible",
				})
			}

			if isIntenseSport(sportRec) && isHydrationRisk(hydrationRec) && environment.Temperature > 25 {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictModerate,
					Sources:      []models.Domain{models.DomainSport, models.DomainHydration},
					Description:  "Activité intense avec déficit hydrique signalé par forte chaleur",
					Resolution:   models.ResolutionAutoResolved,
					SafetyImpact: "Risque de déshydratation progressive",
				})
			}
		}
	}

	// Sport vs nutrition
	for _, sportRec := range sportRecs {
		for _, nutritionRec := range nutritionRecs {
			if isIntenseSport(sportRec) && isFastingNutrition(nutritionRec) && profile.HasCondition(models.ConditionDiabetes) {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictLifeThreatening,
					Sources:      []models.Domain{models.DomainSport, models.DomainNutrition},
					Description:  "Sport intense et jeûne chez diabétique : risque d'hypoglycémie sévère",
					Resolution:   models.ResolutionEmergencyOverride,
					SafetyImpact: "Risque de coma hypoglycémique",
				})
				continue
			}

			if isIntenseSport(sportRec) && isRestrictiveNutrition(nutritionRec) {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictModerate,
					Sources:      []models.Domain{models.DomainSport, models.DomainNutrition},
					Description:  "Sport intense avec restriction nutritionnelle simultanée",
					Resolution:   models.ResolutionAutoResolved,
					SafetyImpact: "Apport énergétique possiblement insuffisant pour l'effort",
				})
			}
		}
	}

	// Sport vs sleep
	for _, sportRec := range sportRecs {
		for _, sleepRec := range sleepRecs {
			if isIntenseSport(sportRec) && isSevereSleepDeprivation(sleepRec) && environment.Temperature > 28 {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictSevere,
					Sources:      []models.Domain{models.DomainSport, models.DomainSleep},
					Description:  "Sport intense avec privation de sommeil sévère par chaleur",
					Resolution:   models.ResolutionAutoResolved,
					SafetyImpact: "Risque de malaise, chute, blessures",
				})
			}
		}
	}

	conflicts = append(conflicts, detectTimingConflicts(sportRecs, nutritionRecs)...)

	if len(profile.CurrentMedications) > 0 {
		conflicts = append(conflicts, detectMedicationConflicts(sportRecs, profile)...)
	}

	return conflicts
}

// detectTimingConflicts flags overlapping windows where an intense sport
// session collides with meal-referencing nutrition advice.
func detectTimingConflicts(sportRecs, nutritionRecs []models.AIRecommendation) []models.Conflict {
	var conflicts []models.Conflict

	for _, sportRec := range sportRecs {
		if !isIntenseSport(sportRec) {
			continue
		}
		for _, nutritionRec := range nutritionRecs {
			if !containsAny(nutritionRec.Recommendation, mealKeywords) {
				continue
			}
			if sportRec.Timeframe.Overlaps(nutritionRec.Timeframe) {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictMinor,
					Sources:      []models.Domain{models.DomainSport, models.DomainNutrition},
					Description:  "Conflit temporel entre sport et nutrition",
					Resolution:   models.ResolutionAutoResolved,
					SafetyImpact: "Efficacité réduite des recommandations",
				})
			}
		}
	}

	return conflicts
}

// detectMedicationConflicts flags dangerous medication and activity
// combinations.
func detectMedicationConflicts(sportRecs []models.AIRecommendation, profile models.UserProfile) []models.Conflict {
	var conflicts []models.Conflict

	if profile.TakesMedication("beta_blockers") {
		for _, rec := range sportRecs {
			if isIntenseSport(rec) {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictCritical,
					Sources:      []models.Domain{models.DomainSport, models.DomainMedication},
					Description:  "Sport intense sous bêta-bloquants : risque cardiaque",
					Resolution:   models.ResolutionEmergencyOverride,
					SafetyImpact: "Risque d'arythmie cardiaque",
				})
				break
			}
		}
	}

	if profile.TakesMedication("diuretics") {
		for _, rec := range sportRecs {
			if rec.RiskLevel != models.AlertSafe {
				conflicts = append(conflicts, models.Conflict{
					Severity:     models.ConflictSevere,
					Sources:      []models.Domain{models.DomainSport, models.DomainHydration, models.DomainMedication},
					Description:  "Diurétiques avec activité physique : risque de déshydratation sévère",
					Resolution:   models.ResolutionAutoResolved,
					SafetyImpact: "Déshydratation accélérée",
				})
				break
			}
		}
	}

	return conflicts
}
