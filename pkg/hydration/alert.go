package hydration

import "github.com/Toulouse790/myfitherov3-sub000/pkg/models"

// IntakeAlert compares recorded intake against the recommended amount and
// returns a graduated alert, or nil when intake is on track. The ratio
// cutoffs escalate from warning (<80%) to emergency (<50% under heat).
func IntakeAlert(currentIntake, recommendedIntake int, environment models.EnvironmentalData) *models.HydrationAlert {
	if recommendedIntake <= 0 {
		return nil
	}
	ratio := float64(currentIntake) / float64(recommendedIntake)

	if ratio < 0.5 && environment.Temperature > 30 {
		return &models.HydrationAlert{
			Level:   "emergency",
			Title:   "URGENCE HYDRATATION",
			Message: "Risque de déshydratation sévère par forte chaleur",
			Actions: []string{
				"Arrêtez toute activité immédiatement",
				"Buvez 500ml d'eau fraîche par petites gorgées",
				"Cherchez de l'ombre ou une pièce climatisée",
				"Contactez un professionnel de santé",
			},
			SeekMedicalAttention: true,
		}
	}

	if ratio < 0.6 {
		return &models.HydrationAlert{
			Level:   "critical",
			Title:   "HYDRATATION CRITIQUE",
			Message: "Déficit hydrique dangereux détecté",
			Actions: []string{
				"Réduisez l'intensité de l'activité",
				"Buvez 300ml immédiatement",
				"Surveillez les signes : vertiges, nausées, fatigue",
			},
			SeekMedicalAttention: false,
		}
	}

	if ratio < 0.8 {
		return &models.HydrationAlert{
			Level:   "warning",
			Title:   "HYDRATATION INSUFFISANTE",
			Message: "Risque de déshydratation légère",
			Actions: []string{
				"Augmentez votre hydratation",
				"Buvez 200ml maintenant",
				"Programmez des rappels réguliers",
			},
			SeekMedicalAttention: false,
		}
	}

	return nil
}
