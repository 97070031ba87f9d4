package generators

import (
	"context"
	"fmt"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// HydrationGenerator wraps the hydration calculator in the cross-domain
// envelope so its output participates in conflict resolution.
type HydrationGenerator struct {
	calculator *hydration.Calculator
}

// NewHydrationGenerator creates a hydration generator
func NewHydrationGenerator(calculator *hydration.Calculator) *HydrationGenerator {
	return &HydrationGenerator{calculator: calculator}
}

func (*HydrationGenerator) Domain() models.Domain { return models.DomainHydration }

func (g *HydrationGenerator) Generate(_ context.Context, in Input) (models.AIRecommendation, error) {
	result := g.calculator.Calculate(in.Biometric, in.Environment, in.Activity)

	text := fmt.Sprintf("Besoin hydrique du jour : %d ml.", result.TotalDailyNeed)
	if result.DuringActivityNeed > 0 {
		text += fmt.Sprintf(" Pendant l'effort : %d ml toutes les 15 min.", result.DuringActivityNeed)
	}

	return models.AIRecommendation{
		Source:               models.DomainHydration,
		Type:                 models.TypeIntake,
		Priority:             priorityFromAlert(result.AlertLevel),
		Recommendation:       text,
		Contraindications:    result.Contraindications,
		MedicalAlerts:        result.MedicalAlerts,
		EnvironmentalFactors: environmentalFactors(in.Environment),
		Timeframe:            in.window(24 * 60),
		RiskLevel:            result.AlertLevel,
		Confidence:           90,
	}, nil
}

// priorityFromAlert maps the calculator's alert level to a scheduling
// priority.
func priorityFromAlert(level models.AlertLevel) models.Priority {
	switch level {
	case models.AlertEmergency:
		return models.PriorityEmergency
	case models.AlertCritical:
		return models.PriorityCritical
	case models.AlertWarning:
		return models.PriorityHigh
	case models.AlertCaution:
		return models.PriorityMedium
	default:
		return models.PriorityLow
	}
}
