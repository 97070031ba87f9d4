package generators

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// SleepGenerator grades sleep debt and emits recovery recommendations. Risk
// escalates with the deficit so the conflict resolver can hold back intense
// sessions after a bad night.
type SleepGenerator struct{}

func (SleepGenerator) Domain() models.Domain { return models.DomainSleep }

func (SleepGenerator) Generate(_ context.Context, in Input) (models.AIRecommendation, error) {
	rec := models.AIRecommendation{
		Source:     models.DomainSleep,
		Type:       models.TypeAlert,
		Priority:   models.PriorityMedium,
		Timeframe:  in.window(24 * 60),
		Confidence: 75,
	}

	switch {
	case in.SleepHours > 0 && in.SleepHours < 4:
		rec.Recommendation = fmt.Sprintf(
			"Privation de sommeil sévère (%.1fh). Repos prioritaire, aucune activité intense aujourd'hui.", in.SleepHours)
		rec.RiskLevel = models.AlertCritical
		rec.Priority = models.PriorityHigh
		rec.Contraindications = []string{"Effort intense contre-indiqué après moins de 4h de sommeil"}

	case in.SleepHours > 0 && in.SleepHours < 6:
		rec.Recommendation = fmt.Sprintf(
			"Sommeil insuffisant (%.1fh). Sieste de 20 min recommandée, intensité réduite à l'entraînement.", in.SleepHours)
		rec.RiskLevel = models.AlertWarning

	default:
		rec.Recommendation = "Sommeil correct. Maintenez des horaires de coucher réguliers."
		rec.RiskLevel = models.AlertSafe
		rec.Priority = models.PriorityLow
	}

	if in.Environment.Temperature > 28 {
		rec.Recommendation += " Rafraîchissez la chambre avant le coucher (idéal 18-20°C)."
	}

	return rec, nil
}
