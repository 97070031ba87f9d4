package generators

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// NutritionGenerator emits intake and meal-timing recommendations. It never
// suggests fasting to a diabetic profile.
type NutritionGenerator struct{}

func (NutritionGenerator) Domain() models.Domain { return models.DomainNutrition }

func (NutritionGenerator) Generate(_ context.Context, in Input) (models.AIRecommendation, error) {
	rec := models.AIRecommendation{
		Source:     models.DomainNutrition,
		Type:       models.TypeIntake,
		Priority:   models.PriorityMedium,
		Timeframe:  in.window(24 * 60),
		RiskLevel:  models.AlertSafe,
		Confidence: 80,
	}

	intense := in.Activity.Type == models.ActivityIntenseTraining ||
		in.Activity.Type == models.ActivityCompetition

	switch {
	case intense:
		rec.Recommendation = "Repas glucidique complet 3h avant l'effort, collation 30 min avant, récupération protéinée dans l'heure."
		rec.Type = models.TypeTiming
		rec.DietaryTier = models.DietaryTierLight
		rec.Timeframe = in.window(4 * 60)

	case in.Environment.Temperature > 30:
		rec.Recommendation = fmt.Sprintf(
			"Repas légers et riches en eau (fruits, crudités) par forte chaleur (%.0f°C). Évitez les plats lourds.",
			in.Environment.Temperature)
		rec.DietaryTier = models.DietaryTierLight
		rec.RiskLevel = models.AlertCaution

	default:
		rec.Recommendation = "Alimentation équilibrée répartie sur trois repas, légumes à chaque repas."
		rec.Priority = models.PriorityLow
	}

	if in.Profile.HasCondition(models.ConditionDiabetes) {
		rec.MedicalAlerts = append(rec.MedicalAlerts,
			"Diabète : ne sautez aucun repas, contrôlez la glycémie avant et après l'effort")
	}

	return rec, nil
}
