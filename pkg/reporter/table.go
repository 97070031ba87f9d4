package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// TableReporter generates reports in table format for console output.
type TableReporter struct {
	noColor bool
	verbose bool
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(noColor, verbose bool) Reporter {
	return &TableReporter{
		noColor: noColor,
		verbose: verbose,
	}
}

// GetFormat returns the format name.
func (r *TableReporter) GetFormat() string {
	return "table"
}

// GetFileExtension returns the file extension.
func (r *TableReporter) GetFileExtension() string {
	return ".txt"
}

// GenerateReport renders an evaluation report for the console.
func (r *TableReporter) GenerateReport(ctx context.Context, report *models.EvaluationReport) ([]byte, error) {
	var output strings.Builder

	output.WriteString(r.formatHeader("FitHero Safety Evaluation"))
	output.WriteString("\n")
	output.WriteString(r.formatSummary(report))
	output.WriteString("\n")
	output.WriteString(r.formatHydration(&report.Hydration))
	output.WriteString("\n")
	output.WriteString(r.formatMedical(&report.Medical))

	if len(report.Resolution.Conflicts) > 0 || len(report.Resolution.EmergencyAlerts) > 0 {
		output.WriteString("\n")
		output.WriteString(r.formatResolution(&report.Resolution))
	}

	if r.verbose && len(report.Resolution.ResolvedRecommendations) > 0 {
		output.WriteString("\n")
		output.WriteString(r.formatRecommendations(report.Resolution.ResolvedRecommendations))
	}

	return []byte(output.String()), nil
}

// WriteReport writes the report to the specified writer.
func (r *TableReporter) WriteReport(ctx context.Context, report *models.EvaluationReport, writer io.Writer) error {
	data, err := r.GenerateReport(ctx, report)
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// GenerateAuditReport renders a fairness audit report for the console.
func (r *TableReporter) GenerateAuditReport(ctx context.Context, report *models.AuditReport) ([]byte, error) {
	var output strings.Builder

	output.WriteString(r.formatHeader("FitHero Fairness Audit"))
	output.WriteString("\n")

	s := report.Summary
	output.WriteString(fmt.Sprintf("Run ID:        %s\n", s.RunID))
	output.WriteString(fmt.Sprintf("Cases:         %d\n", s.TotalTests))
	output.WriteString(fmt.Sprintf("Bias detected: %s\n", r.countColor(s.Flagged)))
	output.WriteString(fmt.Sprintf("Critical:      %s\n", r.countColor(s.Critical)))
	output.WriteString(fmt.Sprintf("Inconclusive:  %d\n", s.Inconclusive))
	output.WriteString(fmt.Sprintf("Duration:      %s\n", report.Duration.Round(time.Millisecond)))

	for _, result := range report.Results {
		if !result.BiasDetected && result.Error == "" && !r.verbose {
			continue
		}
		output.WriteString("\n")
		output.WriteString(r.formatBiasResult(result))
	}

	if len(s.Corrections) > 0 {
		output.WriteString("\n")
		output.WriteString(r.colorize("Required corrections\n", "red"))
		output.WriteString(strings.Repeat("-", 60) + "\n")
		for _, correction := range s.Corrections {
			output.WriteString("  " + correction + "\n")
		}
	}

	if s.Flagged == 0 && s.Inconclusive == 0 {
		output.WriteString(r.colorize("\nNo bias detected across the audited populations.\n", "green"))
	}

	return []byte(output.String()), nil
}

// WriteAuditReport writes the audit report to the specified writer.
func (r *TableReporter) WriteAuditReport(ctx context.Context, report *models.AuditReport, writer io.Writer) error {
	data, err := r.GenerateAuditReport(ctx, report)
	if err != nil {
		return err
	}
	_, err = writer.Write(data)
	return err
}

// Helper methods

func (r *TableReporter) formatHeader(title string) string {
	line := strings.Repeat("=", len(title)+4)
	return fmt.Sprintf("%s\n  %s  \n%s\n", line, title, line)
}

func (r *TableReporter) formatSummary(report *models.EvaluationReport) string {
	var summary strings.Builder

	summary.WriteString(fmt.Sprintf("Run ID:      %s\n", report.RunID))
	summary.WriteString(fmt.Sprintf("Subject:     %d y, %.0f kg, %s, %s\n",
		report.Profile.Age, report.Profile.Weight, report.Profile.Sex, report.Profile.FitnessLevel))
	summary.WriteString(fmt.Sprintf("Environment: %.1f°C, %.0f%% humidity, UV %.1f, heat index %.1f°C\n",
		report.Environment.Temperature, report.Environment.Humidity,
		report.Environment.UVIndex, report.Environment.HeatIndex))
	summary.WriteString(fmt.Sprintf("Activity:    %s, %d min, intensity %d/10, %s\n",
		report.Activity.Type, report.Activity.Duration, report.Activity.Intensity, report.Activity.Location))
	summary.WriteString(fmt.Sprintf("Risk score:  %s\n", r.riskScoreColor(report.RiskScore)))
	summary.WriteString(fmt.Sprintf("Duration:    %s\n", report.Duration.Round(time.Millisecond)))

	return summary.String()
}

func (r *TableReporter) formatHydration(rec *models.HydrationRecommendation) string {
	var output strings.Builder

	output.WriteString(r.colorize("Hydration\n", "cyan"))
	output.WriteString(strings.Repeat("-", 60) + "\n")
	output.WriteString(fmt.Sprintf("  Daily need:      %d ml\n", rec.TotalDailyNeed))
	output.WriteString(fmt.Sprintf("  Before activity: %d ml\n", rec.PreActivityNeed))
	output.WriteString(fmt.Sprintf("  During activity: %d ml / 15 min\n", rec.DuringActivityNeed))
	output.WriteString(fmt.Sprintf("  After activity:  %d ml\n", rec.PostActivityNeed))
	output.WriteString(fmt.Sprintf("  Alert level:     %s\n", r.alertColor(rec.AlertLevel)))

	for _, line := range rec.Recommendations {
		output.WriteString("  • " + line + "\n")
	}
	return output.String()
}

func (r *TableReporter) formatMedical(verdict *models.MedicalValidationResult) string {
	var output strings.Builder

	output.WriteString(r.colorize("Medical validation\n", "cyan"))
	output.WriteString(strings.Repeat("-", 60) + "\n")

	validity := r.colorize("valid", "green")
	if !verdict.IsValid {
		validity = r.colorize("INVALID", "red")
	}
	output.WriteString(fmt.Sprintf("  Verdict:         %s\n", validity))
	output.WriteString(fmt.Sprintf("  Risk level:      %s\n", r.riskColor(verdict.RiskLevel)))
	output.WriteString(fmt.Sprintf("  Max safe amount: %d ml\n", verdict.MaxSafeAmount))
	if verdict.MedicalSupervisionRequired {
		output.WriteString(r.colorize("  Medical supervision required\n", "red"))
	}

	r.writeList(&output, "Contraindications", verdict.Contraindications, "red")
	r.writeList(&output, "Warnings", verdict.Warnings, "yellow")
	r.writeList(&output, "Alerts", verdict.MedicalAlerts, "yellow")
	r.writeList(&output, "Required actions", verdict.RequiredActions, "cyan")

	return output.String()
}

func (r *TableReporter) formatResolution(resolution *models.ValidationResult) string {
	var output strings.Builder

	output.WriteString(r.colorize("Cross-domain resolution\n", "cyan"))
	output.WriteString(strings.Repeat("-", 60) + "\n")
	output.WriteString(fmt.Sprintf("  Final risk level: %s\n", r.alertColor(resolution.FinalRiskLevel)))

	for _, conflict := range resolution.Conflicts {
		sources := make([]string, 0, len(conflict.Sources))
		for _, s := range conflict.Sources {
			sources = append(sources, string(s))
		}
		output.WriteString(fmt.Sprintf("  [%s] %s (%s)\n",
			r.conflictColor(conflict.Severity),
			conflict.Description,
			strings.Join(sources, " + ")))
		if r.verbose && conflict.SafetyImpact != "" {
			output.WriteString("      impact: " + conflict.SafetyImpact + "\n")
		}
	}

	for _, override := range resolution.Overrides {
		output.WriteString(fmt.Sprintf("  override[%s] %s: %s\n",
			override.OverriddenBy, override.Original.Source, override.Reason))
	}

	for _, alert := range resolution.EmergencyAlerts {
		output.WriteString(r.colorize(fmt.Sprintf("  !! %s: %s\n", alert.Title, alert.Message), "red"))
		for _, action := range alert.RequiredActions {
			output.WriteString("     → " + action + "\n")
		}
	}

	return output.String()
}

func (r *TableReporter) formatRecommendations(recs []models.AIRecommendation) string {
	var output strings.Builder

	output.WriteString(r.colorize("Resolved recommendations\n", "cyan"))
	output.WriteString(strings.Repeat("-", 60) + "\n")
	for _, rec := range recs {
		output.WriteString(fmt.Sprintf("  [%s/%s] %s (%s)\n",
			rec.Source, rec.Type, rec.Recommendation, r.alertColor(rec.RiskLevel)))
	}
	return output.String()
}

func (r *TableReporter) formatBiasResult(result models.BiasTestResult) string {
	var output strings.Builder

	status := r.colorize("BIAS", r.biasSeverityColor(result.Severity))
	if result.Error != "" {
		status = r.colorize("INCONCLUSIVE", "yellow")
	} else if !result.BiasDetected {
		status = r.colorize("clean", "green")
	}

	output.WriteString(fmt.Sprintf("%s %s (severity: %s)\n", status, result.TestID, result.Severity))
	if result.Error != "" {
		output.WriteString("  error: " + result.Error + "\n")
		return output.String()
	}

	output.WriteString(fmt.Sprintf("  hydration Δ %.0f ml, safety margin Δ %.1f%%\n",
		result.Differences.Hydration, result.Differences.SafetyMargin))
	for _, bt := range result.BiasTypes {
		output.WriteString(fmt.Sprintf("  %s: %s\n", bt.Type, bt.Description))
	}
	if r.verbose {
		for _, concern := range result.EthicalConcerns {
			output.WriteString("  ethical: " + concern + "\n")
		}
	}
	return output.String()
}

func (r *TableReporter) writeList(output *strings.Builder, title string, items []string, color string) {
	if len(items) == 0 {
		return
	}
	output.WriteString("  " + r.colorize(title+":", color) + "\n")
	for _, item := range items {
		output.WriteString("    • " + item + "\n")
	}
}

func (r *TableReporter) alertColor(level models.AlertLevel) string {
	switch level {
	case models.AlertEmergency, models.AlertCritical:
		return r.colorize(string(level), "red")
	case models.AlertWarning:
		return r.colorize(string(level), "orange")
	case models.AlertCaution:
		return r.colorize(string(level), "yellow")
	default:
		return r.colorize(string(level), "green")
	}
}

func (r *TableReporter) riskColor(level models.RiskLevel) string {
	switch level {
	case models.RiskCritical:
		return r.colorize(string(level), "red")
	case models.RiskHigh:
		return r.colorize(string(level), "orange")
	case models.RiskMedium:
		return r.colorize(string(level), "yellow")
	default:
		return r.colorize(string(level), "green")
	}
}

func (r *TableReporter) conflictColor(severity models.ConflictSeverity) string {
	switch severity {
	case models.ConflictLifeThreatening, models.ConflictCritical:
		return r.colorize(string(severity), "red")
	case models.ConflictSevere:
		return r.colorize(string(severity), "orange")
	case models.ConflictModerate:
		return r.colorize(string(severity), "yellow")
	default:
		return r.colorize(string(severity), "blue")
	}
}

func (r *TableReporter) biasSeverityColor(severity models.BiasSeverity) string {
	switch severity {
	case models.BiasSeverityCritical:
		return "red"
	case models.BiasSeveritySevere:
		return "orange"
	case models.BiasSeverityModerate:
		return "yellow"
	default:
		return "blue"
	}
}

func (r *TableReporter) riskScoreColor(score float64) string {
	text := fmt.Sprintf("%.1f / 100", score)
	if score >= 70 {
		return r.colorize(text, "red")
	}
	if score >= 40 {
		return r.colorize(text, "yellow")
	}
	return r.colorize(text, "green")
}

func (r *TableReporter) countColor(count int) string {
	if count > 0 {
		return r.colorize(fmt.Sprintf("%d", count), "red")
	}
	return r.colorize("0", "green")
}

func (r *TableReporter) colorize(text, color string) string {
	if r.noColor {
		return text
	}

	colorCodes := map[string]string{
		"red":    "\033[31m",
		"green":  "\033[32m",
		"yellow": "\033[33m",
		"blue":   "\033[34m",
		"cyan":   "\033[36m",
		"orange": "\033[38;5;208m",
		"bold":   "\033[1m",
		"reset":  "\033[0m",
	}

	if code, exists := colorCodes[color]; exists {
		return fmt.Sprintf("%s%s%s", code, text, colorCodes["reset"])
	}
	return text
}
