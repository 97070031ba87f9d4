package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/cache"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/config"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/engine"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/medical"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/profile"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/reporter"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/runner"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/weather"
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate hydration and safety for one subject",
	Long: `Evaluate a subject profile through the full safety pipeline: hydration
needs calculation, medical safety validation against the rule catalog,
per-domain recommendation generation and cross-domain conflict resolution.

The environment comes either from the weather provider (--lat/--lon) or from
explicit conditions (--temperature, --humidity, ...).

Examples:
  # Heart failure subject in a heat wave
  fithero evaluate --age 64 --weight 78 --sex M --condition heart_failure \
    --temperature 36 --humidity 70 --activity moderate_exercise --duration 45

  # Use live weather for the location
  fithero evaluate --age 30 --weight 70 --sex F --lat 43.6 --lon 1.44

  # Load the subject from a YAML file
  fithero evaluate --profile-file ./subject.yaml --temperature 25 --humidity 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvaluate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	// Subject
	evaluateCmd.Flags().String("profile-file", "", "YAML file with the subject profile")
	evaluateCmd.Flags().Int("age", 30, "subject age in years")
	evaluateCmd.Flags().Float64("weight", 70, "subject weight in kg")
	evaluateCmd.Flags().Float64("height", 170, "subject height in cm")
	evaluateCmd.Flags().String("sex", "M", "subject sex (M, F)")
	evaluateCmd.Flags().String("fitness-level", "moderate", "fitness level (sedentary, light, moderate, intense, athlete)")
	evaluateCmd.Flags().StringSlice("condition", nil, "declared medical condition (repeatable, free text accepted)")
	evaluateCmd.Flags().StringSlice("medication", nil, "active medication (repeatable)")

	// Environment
	evaluateCmd.Flags().Float64("lat", 0, "latitude for the weather provider")
	evaluateCmd.Flags().Float64("lon", 0, "longitude for the weather provider")
	evaluateCmd.Flags().Float64("temperature", 20, "ambient temperature in °C")
	evaluateCmd.Flags().Float64("humidity", 50, "relative humidity in %")
	evaluateCmd.Flags().Float64("uv-index", 0, "UV index")
	evaluateCmd.Flags().Float64("wind-speed", 0, "wind speed in km/h")

	// Activity
	evaluateCmd.Flags().String("activity", "rest", "activity type (rest, light_walk, moderate_exercise, intense_training, competition)")
	evaluateCmd.Flags().Int("duration", 0, "activity duration in minutes")
	evaluateCmd.Flags().Int("intensity", 5, "activity intensity (1-10)")
	evaluateCmd.Flags().String("location", "outdoor", "activity location (indoor, outdoor)")
	evaluateCmd.Flags().Float64("sleep-hours", 0, "sleep total over the last night (0 when unknown)")

	evaluateCmd.Flags().Bool("fail-on-invalid", false, "exit non-zero when medical validation fails")
}

func runEvaluate(cmd *cobra.Command) error {
	start := time.Now()
	ctx := cmd.Context()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Falling back to default configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	bio, err := subjectFromFlags(cmd)
	if err != nil {
		return err
	}

	environment, err := environmentFromFlags(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	activity, err := activityFromFlags(cmd)
	if err != nil {
		return err
	}

	validator, err := buildValidator(ctx)
	if err != nil {
		return err
	}

	if medical.HasEmergencyRisk(bio, environment) {
		logger.Warn("Emergency risk conditions detected for subject",
			"temperature", environment.Temperature, "age", bio.Age)
	}

	sleepHours, _ := cmd.Flags().GetFloat64("sleep-hours")
	report, err := runner.NewPipeline(validator).Evaluate(ctx, runner.EvaluateRequest{
		Profile:     bio,
		Environment: environment,
		Activity:    activity,
		SleepHours:  sleepHours,
	})
	if err != nil {
		return err
	}

	logger.Info("Evaluation complete", "runId", report.RunID,
		"riskScore", report.RiskScore, "duration", time.Since(start))

	if err := writeEvaluationReport(ctx, report); err != nil {
		return err
	}

	failOnInvalid, _ := cmd.Flags().GetBool("fail-on-invalid")
	if (failOnInvalid || cfg.Engine.FailOnInvalid) && (!report.Medical.IsValid || !report.Resolution.IsValid) {
		os.Exit(1)
	}
	return nil
}

// subjectFromFlags builds the biometric profile, either from a YAML file or
// from individual flags. Free-text condition names are mapped onto the
// canonical vocabulary; unrecognized ones are dropped with a warning.
func subjectFromFlags(cmd *cobra.Command) (models.BiometricProfile, error) {
	if path, _ := cmd.Flags().GetString("profile-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return models.BiometricProfile{}, fmt.Errorf("failed to read profile file: %w", err)
		}
		var bio models.BiometricProfile
		if err := yaml.Unmarshal(data, &bio); err != nil {
			return models.BiometricProfile{}, fmt.Errorf("failed to parse profile file %s: %w", path, err)
		}
		return bio, nil
	}

	age, _ := cmd.Flags().GetInt("age")
	weight, _ := cmd.Flags().GetFloat64("weight")
	height, _ := cmd.Flags().GetFloat64("height")
	sex, _ := cmd.Flags().GetString("sex")
	fitness, _ := cmd.Flags().GetString("fitness-level")
	conditions, _ := cmd.Flags().GetStringSlice("condition")
	medications, _ := cmd.Flags().GetStringSlice("medication")

	bio := models.BiometricProfile{
		Age:          age,
		Weight:       weight,
		Height:       height,
		Sex:          models.Sex(sex),
		FitnessLevel: models.FitnessLevel(fitness),
	}

	for _, text := range conditions {
		kind, ok := profile.MapCondition(text)
		if !ok {
			logger.Warn("Unrecognized medical condition dropped", "condition", text)
			continue
		}
		bio.MedicalConditions = append(bio.MedicalConditions, models.MedicalCondition{
			Condition:   kind,
			Severity:    models.SeverityModerate,
			Medications: medications,
		})
	}
	return bio, nil
}

// environmentFromFlags resolves the evaluation environment. Coordinates take
// precedence over explicit conditions; the offline estimator replaces the
// weather API when configured.
func environmentFromFlags(ctx context.Context, cmd *cobra.Command, cfg *config.FitHeroConfig) (models.EnvironmentalData, error) {
	lat, _ := cmd.Flags().GetFloat64("lat")
	lon, _ := cmd.Flags().GetFloat64("lon")

	if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
		var provider weather.Provider
		if cfg.Weather.Offline {
			provider = weather.NewEstimator()
		} else {
			provider = weather.NewClientWithConfig(cfg)
		}
		if cfg.Performance.EnableCache {
			store := cache.NewObservationStore(cfg.CacheDir, cfg.Weather.CacheTTL)
			provider = weather.NewCachedProvider(provider, store)
		}

		env, err := provider.Current(ctx, lat, lon)
		if err != nil {
			return models.EnvironmentalData{}, fmt.Errorf("failed to fetch weather: %w", err)
		}
		return env, nil
	}

	temperature, _ := cmd.Flags().GetFloat64("temperature")
	humidity, _ := cmd.Flags().GetFloat64("humidity")
	uvIndex, _ := cmd.Flags().GetFloat64("uv-index")
	windSpeed, _ := cmd.Flags().GetFloat64("wind-speed")

	return models.EnvironmentalData{
		Temperature: temperature,
		Humidity:    humidity,
		UVIndex:     uvIndex,
		WindSpeed:   windSpeed,
		HeatIndex:   weather.HeatIndex(temperature, humidity),
	}, nil
}

func activityFromFlags(cmd *cobra.Command) (models.ActivityData, error) {
	activityType, _ := cmd.Flags().GetString("activity")
	duration, _ := cmd.Flags().GetInt("duration")
	intensity, _ := cmd.Flags().GetInt("intensity")
	location, _ := cmd.Flags().GetString("location")

	activity := models.ActivityData{
		Type:      models.ActivityType(activityType),
		Duration:  duration,
		Intensity: intensity,
		Location:  models.Location(location),
	}
	if !activity.Type.IsValid() {
		return models.ActivityData{}, fmt.Errorf("unknown activity type: %s", activityType)
	}
	return activity, nil
}

// buildValidator assembles the medical validator over the built-in catalog
// plus any custom rule paths, compiling every guard up front.
func buildValidator(ctx context.Context) (*medical.Validator, error) {
	customPaths := viper.GetStringSlice("rules-path")
	if len(customPaths) == 0 {
		return medical.NewDefaultValidator(ctx)
	}

	rules, err := medical.BuiltinRules(ctx)
	if err != nil {
		return nil, err
	}

	custom, err := loadCustomRules(ctx)
	if err != nil {
		return nil, err
	}
	rules = append(rules, custom...)

	eng, err := engine.NewCELEngine()
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluation engine: %w", err)
	}
	for _, rule := range rules {
		if err := eng.CompileRule(ctx, rule); err != nil {
			return nil, err
		}
	}
	return medical.NewValidator(eng, rules), nil
}

// writeEvaluationReport renders the report in the configured format to
// stdout or the configured file.
func writeEvaluationReport(ctx context.Context, report *models.EvaluationReport) error {
	rep, err := reporter.NewFactory().CreateReporterWithOptions(
		viper.GetString("output"), viper.GetBool("no-color"), viper.GetBool("verbose"))
	if err != nil {
		return err
	}

	if outputFile := viper.GetString("output-file"); outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Warn("Failed to close output file", "error", err)
			}
		}()
		return rep.WriteReport(ctx, report, f)
	}
	return rep.WriteReport(ctx, report, os.Stdout)
}
