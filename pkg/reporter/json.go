package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/version"
)

// JSONReporter implements the Reporter interface for JSON output.
type JSONReporter struct{}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter() Reporter {
	return &JSONReporter{}
}

// jsonEnvelope wraps a report with tool metadata.
type jsonEnvelope struct {
	Metadata jsonMetadata `json:"metadata"`
	Report   interface{}  `json:"report"`
}

type jsonMetadata struct {
	Tool      string    `json:"tool"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Duration  string    `json:"duration"`
}

// GenerateReport renders an evaluation report as indented JSON.
func (r *JSONReporter) GenerateReport(ctx context.Context, report *models.EvaluationReport) ([]byte, error) {
	return r.marshal(jsonEnvelope{
		Metadata: r.metadata(report.Timestamp, report.Duration),
		Report:   report,
	})
}

// WriteReport writes the JSON evaluation report to the given writer.
func (r *JSONReporter) WriteReport(ctx context.Context, report *models.EvaluationReport, writer io.Writer) error {
	data, err := r.GenerateReport(ctx, report)
	if err != nil {
		return err
	}
	return write(writer, data)
}

// GenerateAuditReport renders an audit report as indented JSON.
func (r *JSONReporter) GenerateAuditReport(ctx context.Context, report *models.AuditReport) ([]byte, error) {
	return r.marshal(jsonEnvelope{
		Metadata: r.metadata(report.Timestamp, report.Duration),
		Report:   report,
	})
}

// WriteAuditReport writes the JSON audit report to the given writer.
func (r *JSONReporter) WriteAuditReport(ctx context.Context, report *models.AuditReport, writer io.Writer) error {
	data, err := r.GenerateAuditReport(ctx, report)
	if err != nil {
		return err
	}
	return write(writer, data)
}

// GetFormat returns the format name.
func (r *JSONReporter) GetFormat() string {
	return "json"
}

// GetFileExtension returns the file extension.
func (r *JSONReporter) GetFileExtension() string {
	return ".json"
}

func (r *JSONReporter) metadata(timestamp time.Time, duration time.Duration) jsonMetadata {
	return jsonMetadata{
		Tool:      "fithero",
		Version:   version.GetVersion(),
		Timestamp: timestamp,
		Duration:  duration.String(),
	}
}

func (r *JSONReporter) marshal(envelope jsonEnvelope) ([]byte, error) {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

func write(writer io.Writer, data []byte) error {
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
