package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/config"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/hydration"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/journal"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/weather"
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track <amount-ml>",
	Short: "Record a hydration intake and check the day's total",
	Long: `Record one intake event in the local journal and compare the day's
running total against the recommended daily amount. A graduated alert fires
when intake falls dangerously behind, escalating under heat.

Examples:
  # Record a 250 ml glass against a 2500 ml daily need
  fithero track 250 --daily-need 2500

  # Heat conditions tighten the alert thresholds
  fithero track 250 --daily-need 2500 --temperature 34 --humidity 70`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrack(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().String("user", "default", "journal user identifier")
	trackCmd.Flags().Int("daily-need", 0, "recommended daily intake in ml (0 disables the alert check)")
	trackCmd.Flags().Float64("temperature", 20, "ambient temperature in °C")
	trackCmd.Flags().Float64("humidity", 50, "relative humidity in %")
}

func runTrack(cmd *cobra.Command, amountArg string) error {
	var amount int
	if _, err := fmt.Sscanf(amountArg, "%d", &amount); err != nil {
		return fmt.Errorf("invalid intake amount %q: %w", amountArg, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Warn("Falling back to default configuration", "error", err)
		cfg = config.DefaultConfig()
	}

	user, _ := cmd.Flags().GetString("user")
	j := journal.NewIntakeJournal(cfg.CacheDir)

	entry, err := j.Record(user, amount)
	if err != nil {
		return err
	}

	total, err := j.DayTotal(user, entry.RecordedAt)
	if err != nil {
		return err
	}
	fmt.Printf("Recorded %d ml at %s. Today: %d ml\n",
		entry.AmountML, entry.RecordedAt.Format(time.Kitchen), total)

	dailyNeed, _ := cmd.Flags().GetInt("daily-need")
	if dailyNeed <= 0 {
		return nil
	}
	fmt.Printf("Daily need: %d ml (%.0f%%)\n", dailyNeed, 100*float64(total)/float64(dailyNeed))

	temperature, _ := cmd.Flags().GetFloat64("temperature")
	humidity, _ := cmd.Flags().GetFloat64("humidity")
	environment := models.EnvironmentalData{
		Temperature: temperature,
		Humidity:    humidity,
		HeatIndex:   weather.HeatIndex(temperature, humidity),
	}

	if alert := hydration.IntakeAlert(total, dailyNeed, environment); alert != nil {
		fmt.Printf("\n[%s] %s\n%s\n", alert.Level, alert.Title, alert.Message)
		for _, action := range alert.Actions {
			fmt.Println("  → " + action)
		}
		if alert.SeekMedicalAttention {
			fmt.Println("  Consultez un professionnel de santé.")
		}
	}
	return nil
}
