package generators

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/weather"
)

// SportGenerator emits activity recommendations conditioned on the weather
// comfort grade and the planned session.
type SportGenerator struct{}

func (SportGenerator) Domain() models.Domain { return models.DomainSport }

func (SportGenerator) Generate(_ context.Context, in Input) (models.AIRecommendation, error) {
	comfort := weather.Comfort(in.Environment.Temperature, in.Environment.Humidity)
	duration := in.Activity.Duration
	if duration == 0 {
		duration = 45
	}

	rec := models.AIRecommendation{
		Source:               models.DomainSport,
		Type:                 models.TypeActivity,
		Priority:             models.PriorityMedium,
		Timeframe:            in.window(duration),
		Confidence:           85,
		EnvironmentalFactors: environmentalFactors(in.Environment),
	}

	switch comfort {
	case weather.ComfortDangerous:
		rec.Recommendation = "Reportez la séance : conditions dangereuses pour l'effort. Étirements légers en intérieur uniquement."
		rec.IntensityTier = models.IntensityTierLight
		rec.RiskLevel = models.AlertCritical
		rec.Priority = models.PriorityHigh
		rec.Contraindications = []string{"Aucun effort soutenu en extérieur"}
		return rec, nil

	case weather.ComfortPoor:
		rec.Recommendation = fmt.Sprintf(
			"Séance réduite de %d min à intensité modérée, pauses à l'ombre toutes les 15 min (%.0f°C ressentis).",
			duration, in.Environment.HeatIndex)
		rec.IntensityTier = models.IntensityTierModerate
		rec.RiskLevel = models.AlertWarning
		return rec, nil
	}

	switch {
	case in.Activity.Type == models.ActivityIntenseTraining ||
		in.Activity.Type == models.ActivityCompetition ||
		in.Activity.Intensity >= 7:
		rec.Recommendation = fmt.Sprintf(
			"Séance haute intensité de %d min possible. Échauffement progressif de 15 min obligatoire.", duration)
		rec.IntensityTier = models.IntensityTierHigh
		rec.Type = models.TypeIntensity
		rec.RiskLevel = models.AlertCaution
	case in.Activity.Type == models.ActivityModerateExercise || in.Activity.Intensity >= 4:
		rec.Recommendation = fmt.Sprintf("Séance modérée de %d min dans de bonnes conditions.", duration)
		rec.IntensityTier = models.IntensityTierModerate
		rec.RiskLevel = models.AlertSafe
	default:
		rec.Recommendation = fmt.Sprintf("Activité légère de %d min, idéale pour la récupération.", duration)
		rec.IntensityTier = models.IntensityTierLight
		rec.RiskLevel = models.AlertSafe
		rec.Priority = models.PriorityLow
	}

	return rec, nil
}

// environmentalFactors lists the conditions that shaped a recommendation.
func environmentalFactors(env models.EnvironmentalData) []string {
	var factors []string
	if env.Temperature > 30 {
		factors = append(factors, fmt.Sprintf("température %.0f°C", env.Temperature))
	}
	if env.Humidity > 70 {
		factors = append(factors, fmt.Sprintf("humidité %.0f%%", env.Humidity))
	}
	if env.UVIndex > 6 {
		factors = append(factors, fmt.Sprintf("indice UV %.0f", env.UVIndex))
	}
	if env.HeatIndex > env.Temperature {
		factors = append(factors, fmt.Sprintf("ressenti %.0f°C", env.HeatIndex))
	}
	return factors
}
