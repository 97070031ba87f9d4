// Package reporter renders evaluation and audit reports in the output
// formats the CLI supports.
package reporter

import (
	"context"
	"io"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// Reporter defines the interface for generating reports from engine output.
type Reporter interface {
	// GenerateReport renders a single-subject evaluation report.
	GenerateReport(ctx context.Context, report *models.EvaluationReport) ([]byte, error)

	// WriteReport writes an evaluation report to the given writer.
	WriteReport(ctx context.Context, report *models.EvaluationReport, writer io.Writer) error

	// GenerateAuditReport renders a fairness audit report.
	GenerateAuditReport(ctx context.Context, report *models.AuditReport) ([]byte, error)

	// WriteAuditReport writes an audit report to the given writer.
	WriteAuditReport(ctx context.Context, report *models.AuditReport, writer io.Writer) error

	// GetFormat returns the format name of this reporter.
	GetFormat() string

	// GetFileExtension returns the recommended file extension.
	GetFileExtension() string
}

// ReportOptions defines options for report generation.
type ReportOptions struct {
	// Format specifies the output format (table, json, yaml).
	Format string

	// OutputFile specifies the output file path; empty means stdout.
	OutputFile string

	// NoColor disables colored output for table format.
	NoColor bool

	// Verbose includes per-rule and per-case detail.
	Verbose bool
}
