// Package hydration computes daily hydration needs from biometric,
// environmental and activity inputs. All calculations are deterministic and
// safety-biased: thresholds are conservative and the result always carries a
// 15% safety margin before absolute clamping.
package hydration

import (
	"math"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Absolute physiological limits on daily intake, in ml. The weight-scaled
// bound wins when tighter.
const (
	minDailyML = 1200
	maxDailyML = 6000

	minPerKgML = 20
	maxPerKgML = 70

	safetyMargin = 1.15
	sweatMargin  = 1.25
)

// Advisor supplies medical contraindications and alerts for a proposed
// amount. It lets the calculator attach the validator's annotations without
// depending on the validator package directly.
type Advisor interface {
	Advise(profile models.BiometricProfile, environment models.EnvironmentalData, amount float64) (contraindications []string, alerts []string)
}

// Calculator is a stateless hydration needs calculator. A single instance is
// safe for concurrent use.
type Calculator struct {
	advisor Advisor
}

// NewCalculator creates a calculator. The advisor may be nil, in which case
// recommendations carry no medical annotations.
func NewCalculator(advisor Advisor) *Calculator {
	return &Calculator{advisor: advisor}
}

// Calculate computes a safe hydration recommendation. It never fails:
// out-of-range or non-finite inputs are replaced by conservative defaults.
func (c *Calculator) Calculate(profile models.BiometricProfile, environment models.EnvironmentalData, activity models.ActivityData) models.HydrationRecommendation {
	profile = sanitizeProfile(profile)
	environment = sanitizeEnvironment(environment)
	activity = sanitizeActivity(activity)

	baseNeed := baseHydrationNeed(profile)
	envAdjustment := environmentalAdjustment(environment)
	activityAdjustment := activityAdjustment(activity, profile, environment)

	rawNeed := baseNeed + envAdjustment + activityAdjustment

	var contraindications, alerts []string
	if c.advisor != nil {
		contraindications, alerts = c.advisor.Advise(profile, environment, rawNeed)
	}

	totalNeed := int(math.Round(rawNeed * safetyMargin))
	finalNeed := enforceAbsoluteLimits(totalNeed, profile)

	return models.HydrationRecommendation{
		TotalDailyNeed:     finalNeed,
		PreActivityNeed:    preActivityHydration(activity),
		DuringActivityNeed: duringActivityHydration(activity, environment),
		PostActivityNeed:   postActivityHydration(activity, environment),
		AlertLevel:         alertLevel(environment, activity, profile),
		Recommendations:    safeRecommendations(profile, environment, activity),
		Contraindications:  contraindications,
		MedicalAlerts:      alerts,
	}
}

// baseHydrationNeed returns the age/sex baseline compared against a
// weight-based floor of 35 ml/kg; the larger of the two wins.
func baseHydrationNeed(profile models.BiometricProfile) float64 {
	var baseNeed float64
	male := profile.Sex == models.SexMale

	switch {
	case profile.Age < 19:
		if male {
			baseNeed = 2700
		} else {
			baseNeed = 2200
		}
	case profile.Age < 51:
		if male {
			baseNeed = 3700
		} else {
			baseNeed = 2700
		}
	case profile.Age < 71:
		if male {
			baseNeed = 3500
		} else {
			baseNeed = 2500
		}
	default:
		if male {
			baseNeed = 3200
		} else {
			baseNeed = 2300
		}
	}

	weightBasedNeed := profile.Weight * 35
	return math.Max(baseNeed, weightBasedNeed)
}

// environmentalAdjustment sums independent additive terms for heat, humidity,
// UV exposure and apparent-temperature excess. Temperature rates escalate at
// the 25, 30 and 35 °C breakpoints and are cumulative across bands.
func environmentalAdjustment(environment models.EnvironmentalData) float64 {
	var adjustment float64

	if environment.Temperature > 25 {
		adjustment += (environment.Temperature - 25) * 50
		if environment.Temperature > 30 {
			adjustment += (environment.Temperature - 30) * 100
		}
		if environment.Temperature > 35 {
			adjustment += (environment.Temperature - 35) * 200
		}
	}

	// High humidity blocks sweat evaporation
	if environment.Humidity > 70 {
		adjustment += (environment.Humidity - 70) * 10
	}

	if environment.UVIndex > 6 {
		adjustment += (environment.UVIndex - 6) * 50
	}

	if environment.HeatIndex > environment.Temperature {
		adjustment += (environment.HeatIndex - environment.Temperature) * 30
	}

	return math.Round(adjustment)
}

// sweatRate returns the baseline sweat rate in ml/h for an activity type.
func sweatRate(activity models.ActivityType) float64 {
	switch activity {
	case models.ActivityLightWalk:
		return 300
	case models.ActivityModerateExercise:
		return 600
	case models.ActivityIntenseTraining:
		return 1000
	case models.ActivityCompetition:
		return 1500
	default:
		return 0
	}
}

// activityAdjustment compensates estimated sweat loss over the activity
// duration, inflated by a fixed 1.25 safety factor.
func activityAdjustment(activity models.ActivityData, profile models.BiometricProfile, environment models.EnvironmentalData) float64 {
	rate := sweatRate(activity.Type)

	switch profile.FitnessLevel {
	case models.FitnessAthlete:
		rate *= 1.3
	case models.FitnessSedentary:
		rate *= 0.8
	}

	if environment.Temperature > 25 {
		rate *= 1 + (environment.Temperature-25)*0.1
	}

	totalSweatLoss := (rate * float64(activity.Duration) / 60) * sweatMargin
	return math.Round(totalSweatLoss)
}

// enforceAbsoluteLimits clamps the computed need into the survival floor and
// hyperhydration ceiling, both weight-scaled.
func enforceAbsoluteLimits(need int, profile models.BiometricProfile) int {
	absoluteMax := math.Min(maxDailyML, profile.Weight*maxPerKgML)
	absoluteMin := math.Max(minDailyML, profile.Weight*minPerKgML)

	clamped := math.Max(absoluteMin, math.Min(float64(need), absoluteMax))
	return int(math.Round(clamped))
}

// alertLevel maps an additive risk score over independent environment,
// activity and profile buckets to the five ordered alert levels.
func alertLevel(environment models.EnvironmentalData, activity models.ActivityData, profile models.BiometricProfile) models.AlertLevel {
	score := 0

	switch {
	case environment.Temperature > 35:
		score += 3
	case environment.Temperature > 30:
		score += 2
	case environment.Temperature > 28:
		score += 1
	}

	if environment.Humidity > 80 {
		score += 2
	}
	if environment.UVIndex > 8 {
		score += 1
	}

	switch activity.Type {
	case models.ActivityCompetition:
		score += 2
	case models.ActivityIntenseTraining:
		score += 1
	}

	if activity.Duration > 120 {
		score += 1
	}
	if activity.Location == models.LocationOutdoor && environment.Temperature > 30 {
		score += 1
	}

	switch {
	case profile.Age > 75:
		score += 2
	case profile.Age > 65:
		score += 1
	}

	if profile.HasAnyCondition(models.ConditionKidneyDisease, models.ConditionHeartFailure) {
		score += 3
	}

	switch {
	case score >= 8:
		return models.AlertEmergency
	case score >= 6:
		return models.AlertCritical
	case score >= 4:
		return models.AlertWarning
	case score >= 2:
		return models.AlertCaution
	default:
		return models.AlertSafe
	}
}

// safeRecommendations builds the advisory strings attached to the result.
func safeRecommendations(profile models.BiometricProfile, environment models.EnvironmentalData, activity models.ActivityData) []string {
	recommendations := []string{
		"Buvez régulièrement par petites gorgées (150-200ml toutes les 15-20min)",
		"Ajoutez une pincée de sel si effort > 1h ou forte sudation",
	}

	if environment.Temperature > 30 {
		recommendations = append(recommendations,
			"CHALEUR EXTRÊME : réduisez l'intensité de 30% minimum",
			"Privilégiez boissons fraîches (10-15°C) mais pas glacées",
			"Hydratez-vous 2h avant l'activité (500ml minimum)",
		)
	}

	if activity.Type == models.ActivityIntenseTraining || activity.Type == models.ActivityCompetition {
		recommendations = append(recommendations,
			"EFFORT INTENSE : 200-300ml toutes les 15min pendant l'activité",
			"Pesez-vous avant/après : 1kg perdu = 1.5L à boire",
		)
	}

	if profile.Age > 65 {
		recommendations = append(recommendations,
			"SENIOR : programmez des rappels hydratation (sensation de soif diminuée)")
	}

	if len(profile.MedicalConditions) > 0 {
		recommendations = append(recommendations,
			"CONDITION MÉDICALE : respectez les restrictions de votre médecin")
	}

	return recommendations
}

// preActivityHydration returns the ml to drink before the activity starts.
func preActivityHydration(activity models.ActivityData) int {
	if activity.Type == models.ActivityRest {
		return 0
	}

	const basePreHydration = 500.0
	multiplier := 1.0
	switch activity.Type {
	case models.ActivityModerateExercise:
		multiplier = 1.2
	case models.ActivityIntenseTraining:
		multiplier = 1.5
	case models.ActivityCompetition:
		multiplier = 2.0
	}

	return int(math.Round(basePreHydration * multiplier))
}

// duringActivityHydration returns the target intake in ml per 15 minutes
// while the activity is in progress.
func duringActivityHydration(activity models.ActivityData, environment models.EnvironmentalData) int {
	if activity.Type == models.ActivityRest {
		return 0
	}

	baseRate := 150.0
	if environment.Temperature > 25 {
		baseRate += (environment.Temperature - 25) * 10
	}

	multiplier := 1.0
	switch activity.Type {
	case models.ActivityLightWalk:
		multiplier = 0.7
	case models.ActivityIntenseTraining:
		multiplier = 1.4
	case models.ActivityCompetition:
		multiplier = 1.8
	}

	return int(math.Round(baseRate * multiplier))
}

// postActivityHydration returns the recovery intake, 150% of the estimated
// sweat loss.
func postActivityHydration(activity models.ActivityData, environment models.EnvironmentalData) int {
	if activity.Type == models.ActivityRest {
		return 0
	}
	return int(math.Round(estimateSweatLoss(activity, environment) * 1.5))
}

// estimateSweatLoss estimates total sweat loss in ml over the activity,
// without safety margin.
func estimateSweatLoss(activity models.ActivityData, environment models.EnvironmentalData) float64 {
	rate := sweatRate(activity.Type)
	if environment.Temperature > 25 {
		rate *= 1 + (environment.Temperature-25)*0.1
	}
	return math.Round(rate * float64(activity.Duration) / 60)
}

// sanitizeProfile replaces non-finite or out-of-range biometric values with
// conservative defaults. The function never rejects an input.
func sanitizeProfile(profile models.BiometricProfile) models.BiometricProfile {
	if profile.Age < 0 {
		profile.Age = 0
	}
	if !isFinite(profile.Weight) || profile.Weight <= 0 {
		profile.Weight = 70
	}
	if !isFinite(profile.Height) || profile.Height <= 0 {
		profile.Height = 170
	}
	if profile.Sex != models.SexMale && profile.Sex != models.SexFemale {
		profile.Sex = models.SexMale
	}
	if !profile.FitnessLevel.IsValid() {
		profile.FitnessLevel = models.FitnessModerate
	}
	return profile
}

// sanitizeEnvironment substitutes defaults that do not relax any threshold:
// an unknown temperature is assumed warm enough to trigger heat adjustments.
func sanitizeEnvironment(environment models.EnvironmentalData) models.EnvironmentalData {
	if !isFinite(environment.Temperature) {
		environment.Temperature = 30
	}
	if !isFinite(environment.Humidity) || environment.Humidity < 0 {
		environment.Humidity = 70
	}
	if environment.Humidity > 100 {
		environment.Humidity = 100
	}
	if !isFinite(environment.UVIndex) || environment.UVIndex < 0 {
		environment.UVIndex = 6
	}
	if !isFinite(environment.WindSpeed) || environment.WindSpeed < 0 {
		environment.WindSpeed = 0
	}
	if !isFinite(environment.HeatIndex) {
		environment.HeatIndex = environment.Temperature
	}
	return environment
}

func sanitizeActivity(activity models.ActivityData) models.ActivityData {
	if !activity.Type.IsValid() {
		activity.Type = models.ActivityRest
	}
	if activity.Duration < 0 {
		activity.Duration = 0
	}
	if activity.Intensity < 1 {
		activity.Intensity = 1
	}
	if activity.Intensity > 10 {
		activity.Intensity = 10
	}
	if activity.Location != models.LocationIndoor && activity.Location != models.LocationOutdoor {
		activity.Location = models.LocationOutdoor
	}
	return activity
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
