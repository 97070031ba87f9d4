package reporter

import (
	"context"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/version"
)

// YAMLReporter implements the Reporter interface for YAML output.
type YAMLReporter struct{}

// NewYAMLReporter creates a new YAML reporter.
func NewYAMLReporter() Reporter {
	return &YAMLReporter{}
}

// GetFormat returns the format name.
func (r *YAMLReporter) GetFormat() string {
	return "yaml"
}

// GetFileExtension returns the file extension.
func (r *YAMLReporter) GetFileExtension() string {
	return ".yaml"
}

type yamlEnvelope struct {
	Metadata yamlMetadata `yaml:"metadata"`
	Report   interface{}  `yaml:"report"`
}

type yamlMetadata struct {
	Tool      string    `yaml:"tool"`
	Version   string    `yaml:"version"`
	Timestamp time.Time `yaml:"timestamp"`
	Duration  string    `yaml:"duration"`
}

// GenerateReport renders an evaluation report as YAML.
func (r *YAMLReporter) GenerateReport(ctx context.Context, report *models.EvaluationReport) ([]byte, error) {
	return r.marshal(report.Timestamp, report.Duration, report)
}

// WriteReport writes the YAML evaluation report to the given writer.
func (r *YAMLReporter) WriteReport(ctx context.Context, report *models.EvaluationReport, writer io.Writer) error {
	data, err := r.GenerateReport(ctx, report)
	if err != nil {
		return err
	}
	return write(writer, data)
}

// GenerateAuditReport renders an audit report as YAML.
func (r *YAMLReporter) GenerateAuditReport(ctx context.Context, report *models.AuditReport) ([]byte, error) {
	return r.marshal(report.Timestamp, report.Duration, report)
}

// WriteAuditReport writes the YAML audit report to the given writer.
func (r *YAMLReporter) WriteAuditReport(ctx context.Context, report *models.AuditReport, writer io.Writer) error {
	data, err := r.GenerateAuditReport(ctx, report)
	if err != nil {
		return err
	}
	return write(writer, data)
}

func (r *YAMLReporter) marshal(timestamp time.Time, duration time.Duration, report interface{}) ([]byte, error) {
	data, err := yaml.Marshal(yamlEnvelope{
		Metadata: yamlMetadata{
			Tool:      "fithero",
			Version:   version.GetVersion(),
			Timestamp: timestamp,
			Duration:  duration.String(),
		},
		Report: report,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}
