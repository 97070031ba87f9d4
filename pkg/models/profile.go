package models

// Sex is the declared biological sex used by the baseline hydration tables.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// FitnessLevel represents the declared training level, ordered from
// sedentary to athlete.
type FitnessLevel string

const (
	FitnessSedentary FitnessLevel = "sedentary"
	FitnessLight     FitnessLevel = "light"
	FitnessModerate  FitnessLevel = "moderate"
	FitnessIntense   FitnessLevel = "intense"
	FitnessAthlete   FitnessLevel = "athlete"
)

// IsValid checks if the fitness level is part of the known vocabulary.
func (f FitnessLevel) IsValid() bool {
	switch f {
	case FitnessSedentary, FitnessLight, FitnessModerate, FitnessIntense, FitnessAthlete:
		return true
	default:
		return false
	}
}

// ConditionKind is the closed vocabulary of medical conditions the engine
// understands. Free-text condition names coming from a profile store are
// mapped onto this set; unrecognized names are dropped.
type ConditionKind string

const (
	ConditionKidneyDisease ConditionKind = "kidney_disease"
	ConditionHeartFailure  ConditionKind = "heart_failure"
	ConditionDiabetes      ConditionKind = "diabetes"
	ConditionHypertension  ConditionKind = "hypertension"
	ConditionPregnancy     ConditionKind = "pregnancy"
	ConditionElderly75Plus ConditionKind = "elderly_75plus"
)

// IsValid checks if the condition kind is part of the closed set.
func (c ConditionKind) IsValid() bool {
	switch c {
	case ConditionKidneyDisease, ConditionHeartFailure, ConditionDiabetes,
		ConditionHypertension, ConditionPregnancy, ConditionElderly75Plus:
		return true
	default:
		return false
	}
}

// ConditionSeverity grades a declared medical condition.
type ConditionSeverity string

const (
	SeverityMild     ConditionSeverity = "mild"
	SeverityModerate ConditionSeverity = "moderate"
	SeveritySevere   ConditionSeverity = "severe"
)

// MedicalCondition is one declared condition with its active medications.
type MedicalCondition struct {
	Condition   ConditionKind     `yaml:"condition" json:"condition"`
	Severity    ConditionSeverity `yaml:"severity" json:"severity"`
	Medications []string          `yaml:"medications,omitempty" json:"medications,omitempty"`
}

// BiometricProfile is an immutable snapshot of the subject at evaluation
// time. The engine never mutates it; callers may share one instance across
// concurrent evaluations.
type BiometricProfile struct {
	Age               int                `yaml:"age" json:"age"`
	Weight            float64            `yaml:"weight" json:"weight"` // kg
	Height            float64            `yaml:"height" json:"height"` // cm
	Sex               Sex                `yaml:"sex" json:"sex"`
	FitnessLevel      FitnessLevel       `yaml:"fitnessLevel" json:"fitnessLevel"`
	MedicalConditions []MedicalCondition `yaml:"medicalConditions,omitempty" json:"medicalConditions,omitempty"`
}

// HasCondition reports whether any declared condition matches the given kind.
func (p *BiometricProfile) HasCondition(kind ConditionKind) bool {
	for _, c := range p.MedicalConditions {
		if c.Condition == kind {
			return true
		}
	}
	return false
}

// HasAnyCondition reports whether any declared condition matches one of the
// given kinds.
func (p *BiometricProfile) HasAnyCondition(kinds ...ConditionKind) bool {
	for _, k := range kinds {
		if p.HasCondition(k) {
			return true
		}
	}
	return false
}

// Medications returns the union of all declared medications, lowercased.
func (p *BiometricProfile) Medications() []string {
	var meds []string
	for _, c := range p.MedicalConditions {
		meds = append(meds, c.Medications...)
	}
	return meds
}

// EnvironmentalData carries the weather context for one evaluation.
// HeatIndex and UVIndex may be derived from the raw observation by the
// weather package when the provider does not supply them directly.
type EnvironmentalData struct {
	Temperature float64 `yaml:"temperature" json:"temperature"` // °C
	Humidity    float64 `yaml:"humidity" json:"humidity"`       // %
	UVIndex     float64 `yaml:"uvIndex" json:"uvIndex"`
	WindSpeed   float64 `yaml:"windSpeed" json:"windSpeed"` // km/h
	HeatIndex   float64 `yaml:"heatIndex" json:"heatIndex"` // °C apparent
}

// ActivityType represents the planned activity class, ordered from rest to
// competition.
type ActivityType string

const (
	ActivityRest             ActivityType = "rest"
	ActivityLightWalk        ActivityType = "light_walk"
	ActivityModerateExercise ActivityType = "moderate_exercise"
	ActivityIntenseTraining  ActivityType = "intense_training"
	ActivityCompetition      ActivityType = "competition"
)

// IsValid checks if the activity type is part of the known vocabulary.
func (a ActivityType) IsValid() bool {
	switch a {
	case ActivityRest, ActivityLightWalk, ActivityModerateExercise,
		ActivityIntenseTraining, ActivityCompetition:
		return true
	default:
		return false
	}
}

// Location distinguishes indoor from outdoor activity.
type Location string

const (
	LocationIndoor  Location = "indoor"
	LocationOutdoor Location = "outdoor"
)

// ActivityData describes the planned or estimated activity for one
// evaluation.
type ActivityData struct {
	Type      ActivityType `yaml:"type" json:"type"`
	Duration  int          `yaml:"duration" json:"duration"`   // minutes
	Intensity int          `yaml:"intensity" json:"intensity"` // 1-10
	Location  Location     `yaml:"location" json:"location"`
}
