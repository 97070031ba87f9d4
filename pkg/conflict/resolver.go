// Package conflict cross-checks recommendations produced by the different
// domain generators, detects dangerous combinations, resolves them by
// severity and emits escalation alerts. The whole pipeline is a sequence of
// pure transforms: Detect, Assess, Resolve, Alert, FinalizeValidate. No stage
// mutates its input; each produces new values.
package conflict

import (
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Resolver is a stateless cross-domain conflict resolver. A single instance
// is safe for concurrent use.
type Resolver struct{}

// NewResolver creates a resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Validate runs the full resolution pipeline over the given recommendation
// set. Resolution edits recommendations and emits alerts but never removes
// conflicts from the report; IsValid is true iff no critical-or-worse
// conflict remains.
func (r *Resolver) Validate(recs []models.AIRecommendation, environment models.EnvironmentalData, profile models.UserProfile) models.ValidationResult {
	conflicts := detectConflicts(recs, environment, profile)
	combined := assessCombinedRisk(recs, environment, profile)
	resolved := resolveConflicts(recs, conflicts)
	alerts := buildAlerts(conflicts, combined, environment)
	final, overrides := finalizeValidate(resolved, profile)

	return models.ValidationResult{
		IsValid:                 !hasConflictAtLeast(conflicts, models.ConflictCritical),
		Conflicts:               conflicts,
		ResolvedRecommendations: final,
		Overrides:               overrides,
		EmergencyAlerts:         alerts,
		FinalRiskLevel:          finalRiskLevel(combined, conflicts),
	}
}

// assessCombinedRisk scores environment, profile and dangerous
// recommendation combinations additively and maps the score to an alert
// class.
func assessCombinedRisk(recs []models.AIRecommendation, environment models.EnvironmentalData, profile models.UserProfile) models.AlertLevel {
	score := 0

	switch {
	case environment.Temperature >= 35:
		score += 5
	case environment.Temperature >= 32:
		score += 3
	case environment.Temperature >= 28:
		score += 1
	}

	if environment.Humidity > 85 {
		score += 3
	}
	if environment.HeatIndex > environment.Temperature+5 {
		score += 2
	}

	switch {
	case profile.Age > 75:
		score += 3
	case profile.Age > 65:
		score += 2
	case profile.Age < 18:
		score += 2
	}

	if profile.HasCondition(models.ConditionHeartFailure) {
		score += 4
	}
	if profile.HasCondition(models.ConditionDiabetes) {
		score += 3
	}

	hasIntenseSport := false
	hasHydrationWarning := false
	for _, rec := range recs {
		if isIntenseSport(rec) {
			hasIntenseSport = true
		}
		if isHydrationRisk(rec) {
			hasHydrationWarning = true
		}
	}
	if hasIntenseSport && hasHydrationWarning && environment.Temperature > 30 {
		score += 2
	}

	switch {
	case score >= 8:
		return models.AlertCritical
	case score >= 5:
		return models.AlertWarning
	case score >= 3:
		return models.AlertCaution
	default:
		return models.AlertSafe
	}
}

// resolveConflicts applies conflicts to the recommendation list in detection
// order, as a pure left-fold. Each conflict only touches recommendations
// whose source domains it names.
func resolveConflicts(recs []models.AIRecommendation, conflicts []models.Conflict) []models.AIRecommendation {
	resolved := make([]models.AIRecommendation, len(recs))
	copy(resolved, recs)

	for _, conflict := range conflicts {
		switch conflict.Severity {
		case models.ConflictLifeThreatening:
			resolved = applyEmergencyOverride(resolved, conflict)
		case models.ConflictCritical:
			resolved = applyCriticalReduction(resolved, conflict)
		case models.ConflictSevere:
			resolved = applyConservativeModification(resolved, conflict)
		case models.ConflictModerate:
			resolved = applyMinorAdjustment(resolved, conflict)
		}
	}

	return enforceSafetyHierarchy(resolved)
}

// applyEmergencyOverride replaces affected recommendations with emergency
// directives. Survival beats performance.
func applyEmergencyOverride(recs []models.AIRecommendation, conflict models.Conflict) []models.AIRecommendation {
	out := make([]models.AIRecommendation, len(recs))
	for i, rec := range recs {
		if !conflict.Involves(rec.Source) {
			out[i] = rec
			continue
		}

		switch rec.Source {
		case models.DomainSport:
			rec.Recommendation = "ARRÊT IMMÉDIAT de toute activité physique"
			rec.Priority = models.PriorityEmergency
			rec.RiskLevel = models.AlertEmergency
			rec.IntensityTier = models.IntensityTierLight
			rec.Contraindications = appendString(rec.Contraindications,
				"DANGER : conditions potentiellement mortelles détectées")
		case models.DomainHydration:
			rec.Recommendation = "URGENCE : hydratation massive 500ml immédiatement, chercher l'ombre"
			rec.Priority = models.PriorityEmergency
			rec.RiskLevel = models.AlertEmergency
		case models.DomainNutrition:
			rec.Recommendation = "URGENCE : 15g de sucres rapides immédiatement si conscient"
			rec.Priority = models.PriorityEmergency
			rec.RiskLevel = models.AlertEmergency
		}
		out[i] = rec
	}
	return out
}

// applyCriticalReduction reduces affected sport recommendations to moderate
// intensity and downgrades their priority and risk level.
func applyCriticalReduction(recs []models.AIRecommendation, conflict models.Conflict) []models.AIRecommendation {
	out := make([]models.AIRecommendation, len(recs))
	for i, rec := range recs {
		if conflict.Involves(rec.Source) && rec.Source == models.DomainSport {
			rec.Recommendation = "RÉDUIT : " + rec.Recommendation + " (intensité réduite de 50%)"
			rec.Priority = models.PriorityHigh
			rec.RiskLevel = models.AlertWarning
			rec.IntensityTier = models.IntensityTierModerate
		}
		out[i] = rec
	}
	return out
}

// applyConservativeModification prefixes affected recommendations with a
// conservative-approach note. A risk level already at caution or worse is
// never downgraded.
func applyConservativeModification(recs []models.AIRecommendation, conflict models.Conflict) []models.AIRecommendation {
	out := make([]models.AIRecommendation, len(recs))
	for i, rec := range recs {
		if conflict.Involves(rec.Source) {
			rec.Recommendation = "MODIFIÉ : " + rec.Recommendation + " (approche conservative)"
			if rec.RiskLevel == models.AlertSafe {
				rec.RiskLevel = models.AlertCaution
			}
		}
		out[i] = rec
	}
	return out
}

// applyMinorAdjustment appends an informational contraindication without
// changing priority or risk.
func applyMinorAdjustment(recs []models.AIRecommendation, conflict models.Conflict) []models.AIRecommendation {
	out := make([]models.AIRecommendation, len(recs))
	for i, rec := range recs {
		if conflict.Involves(rec.Source) {
			rec.Contraindications = appendString(rec.Contraindications, "Attention : "+conflict.Description)
		}
		out[i] = rec
	}
	return out
}

// enforceSafetyHierarchy applies the fixed priority order hydration >
// nutrition > sleep > sport: an emergency in a higher-priority domain
// suspends or reduces sport.
func enforceSafetyHierarchy(recs []models.AIRecommendation) []models.AIRecommendation {
	hydrationEmergency := false
	nutritionEmergency := false
	for _, rec := range recs {
		if rec.RiskLevel == models.AlertEmergency {
			switch rec.Source {
			case models.DomainHydration:
				hydrationEmergency = true
			case models.DomainNutrition:
				nutritionEmergency = true
			}
		}
	}

	if hydrationEmergency {
		out := make([]models.AIRecommendation, len(recs))
		for i, rec := range recs {
			if rec.Source == models.DomainSport {
				rec.Recommendation = "SUSPENDU : urgence hydratation prioritaire"
				rec.Priority = models.PriorityCritical
				rec.RiskLevel = models.AlertCritical
				rec.IntensityTier = models.IntensityTierLight
			}
			out[i] = rec
		}
		return out
	}

	if nutritionEmergency {
		out := make([]models.AIRecommendation, len(recs))
		for i, rec := range recs {
			if rec.Source == models.DomainSport && isIntenseSport(rec) {
				rec.Recommendation = "RÉDUIT : activité légère seulement (urgence nutritionnelle)"
				rec.Priority = models.PriorityHigh
				rec.RiskLevel = models.AlertWarning
				rec.IntensityTier = models.IntensityTierLight
			}
			out[i] = rec
		}
		return out
	}

	return recs
}

// buildAlerts emits escalation alerts. Alerts are additive, never mutually
// exclusive.
func buildAlerts(conflicts []models.Conflict, combined models.AlertLevel, environment models.EnvironmentalData) []models.EmergencyAlert {
	var alerts []models.EmergencyAlert

	if hasConflictAtLeast(conflicts, models.ConflictLifeThreatening) {
		alerts = append(alerts, models.EmergencyAlert{
			Level:   models.EmergencyImmediate,
			Title:   "DANGER IMMINENT - ACTION URGENTE",
			Message: "Combinaison de facteurs potentiellement mortelle détectée",
			RequiredActions: []string{
				"Arrêtez toute activité immédiatement",
				"Cherchez un environnement frais ou climatisé",
				"Hydratez-vous par petites gorgées",
				"Contactez les services d'urgence en cas de malaise",
				"Ne restez pas seul",
			},
			SeekMedicalAttention: true,
			StopAllActivities:    true,
		})
	}

	if hasConflictSeverity(conflicts, models.ConflictCritical) {
		alerts = append(alerts, models.EmergencyAlert{
			Level:   models.EmergencyUrgent,
			Title:   "RISQUE CRITIQUE - SURVEILLANCE RENFORCÉE",
			Message: "Conditions dangereuses pour l'activité physique",
			RequiredActions: []string{
				"Réduisez drastiquement l'intensité",
				"Doublez votre hydratation",
				"Restez en environnement frais",
				"Surveillez : vertiges, nausées, confusion",
			},
			SeekMedicalAttention: false,
			StopAllActivities:    false,
		})
	}

	if combined == models.AlertWarning && environment.Temperature > 30 {
		alerts = append(alerts, models.EmergencyAlert{
			Level:   models.EmergencyCritical,
			Title:   "SURVEILLANCE REQUISE",
			Message: "Facteurs de risque multiples identifiés",
			RequiredActions: []string{
				"Activité modérée uniquement",
				"Hydratation renforcée",
				"Pauses fréquentes à l'ombre",
			},
			SeekMedicalAttention: false,
			StopAllActivities:    false,
		})
	}

	return alerts
}

// finalizeValidate overrides any recommendation that is both intense-sport
// and issued to a heart-condition profile, recording the override. Originals
// are superseded, never discarded.
func finalizeValidate(recs []models.AIRecommendation, profile models.UserProfile) ([]models.AIRecommendation, []models.Override) {
	var overrides []models.Override
	out := make([]models.AIRecommendation, len(recs))

	for i, rec := range recs {
		if profile.HasCondition(models.ConditionHeartFailure) && isIntenseSport(rec) {
			replacement := "Activité modérée seulement (condition cardiaque)"
			overrides = append(overrides, models.Override{
				Original:          rec,
				OverriddenBy:      models.OverrideMedicalValidation,
				NewRecommendation: replacement,
				Reason:            "Protection cardiaque prioritaire",
			})

			rec.Recommendation = replacement
			rec.Priority = models.PriorityHigh
			rec.RiskLevel = models.AlertWarning
			rec.IntensityTier = models.IntensityTierModerate
		}
		out[i] = rec
	}

	return out, overrides
}

// finalRiskLevel aggregates the maximum severity across conflict presence
// and the combined-risk class.
func finalRiskLevel(combined models.AlertLevel, conflicts []models.Conflict) models.AlertLevel {
	level := combined

	if hasConflictAtLeast(conflicts, models.ConflictLifeThreatening) {
		level = models.MaxAlertLevel(level, models.AlertEmergency)
	}
	if hasConflictSeverity(conflicts, models.ConflictCritical) {
		level = models.MaxAlertLevel(level, models.AlertCritical)
	}
	if hasConflictSeverity(conflicts, models.ConflictSevere) {
		level = models.MaxAlertLevel(level, models.AlertWarning)
	}
	if len(conflicts) > 0 {
		level = models.MaxAlertLevel(level, models.AlertCaution)
	}

	return level
}

func hasConflictSeverity(conflicts []models.Conflict, severity models.ConflictSeverity) bool {
	for _, c := range conflicts {
		if c.Severity == severity {
			return true
		}
	}
	return false
}

func hasConflictAtLeast(conflicts []models.Conflict, severity models.ConflictSeverity) bool {
	for _, c := range conflicts {
		if c.Severity.Rank() >= severity.Rank() {
			return true
		}
	}
	return false
}

func appendString(base []string, extra string) []string {
	out := make([]string, 0, len(base)+1)
	out = append(out, base...)
	out = append(out, extra)
	return out
}
