package parser

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

var logger = slog.Default()

var ruleNameRegex = regexp.MustCompile(`^safety-[a-z]+(-[a-z]+)*-\d{3}$`)

var versionRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// YAMLParser implements RuleParser and SuiteParser for YAML files
type YAMLParser struct {
	validateSchema bool
}

// NewYAMLParser creates a new YAML parser
func NewYAMLParser(validateSchema bool) *YAMLParser {
	return &YAMLParser{
		validateSchema: validateSchema,
	}
}

// ParseRule parses a single safety rule from a reader
func (p *YAMLParser) ParseRule(ctx context.Context, reader io.Reader) (*models.SafetyRule, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule data: %w", err)
	}

	var rule models.SafetyRule
	if err := yaml.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if p.validateSchema {
		if err := p.ValidateRule(ctx, &rule); err != nil {
			return nil, fmt.Errorf("rule validation failed: %w", err)
		}
	}

	return &rule, nil
}

// ParseRules parses multiple safety rules from a reader (YAML documents separated by ---)
func (p *YAMLParser) ParseRules(ctx context.Context, reader io.Reader) ([]*models.SafetyRule, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules data: %w", err)
	}

	documents := strings.Split(string(data), "\n---\n")
	rules := make([]*models.SafetyRule, 0, len(documents))

	for i, doc := range documents {
		doc = strings.TrimSpace(doc)
		if doc == "" {
			continue
		}

		var rule models.SafetyRule
		if err := yaml.Unmarshal([]byte(doc), &rule); err != nil {
			return nil, fmt.Errorf("failed to unmarshal YAML document %d: %w", i+1, err)
		}

		if p.validateSchema {
			if err := p.ValidateRule(ctx, &rule); err != nil {
				return nil, fmt.Errorf("rule validation failed for document %d: %w", i+1, err)
			}
		}

		rules = append(rules, &rule)
	}

	return rules, nil
}

// ParseRuleFromFile parses a safety rule from a file path
func (p *YAMLParser) ParseRuleFromFile(ctx context.Context, filePath string) (*models.SafetyRule, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close file", "path", filePath, "error", err)
		}
	}()

	rule, err := p.ParseRule(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule from file %s: %w", filePath, err)
	}

	return rule, nil
}

// ParseRulesFromDirectory parses all safety rules from a directory
func (p *YAMLParser) ParseRulesFromDirectory(ctx context.Context, dirPath string) ([]*models.SafetyRule, error) {
	var rules []*models.SafetyRule

	err := filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rule, err := p.ParseRuleFromFile(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to parse rule from %s: %w", path, err)
		}

		rules = append(rules, rule)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return rules, nil
}

// ParseRulesFromFS parses all safety rules from a filesystem subtree. Used
// for the catalog embedded in the binary.
func (p *YAMLParser) ParseRulesFromFS(ctx context.Context, fsys fs.FS, dirPath string) ([]*models.SafetyRule, error) {
	var rules []*models.SafetyRule

	err := fs.WalkDir(fsys, dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open embedded file %s: %w", path, err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.Error("Failed to close embedded file", "path", path, "error", err)
			}
		}()

		rule, err := p.ParseRule(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to parse rule from embedded file %s: %w", path, err)
		}

		rules = append(rules, rule)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded directory %s: %w", dirPath, err)
	}

	return rules, nil
}

// ParseSuite parses a population suite from a reader
func (p *YAMLParser) ParseSuite(ctx context.Context, reader io.Reader) (*models.PopulationSuite, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite data: %w", err)
	}

	var suite models.PopulationSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if p.validateSchema {
		if err := p.validateSuite(&suite); err != nil {
			return nil, fmt.Errorf("suite validation failed: %w", err)
		}
	}

	return &suite, nil
}

// ParseSuiteFromFile parses a population suite from a file path
func (p *YAMLParser) ParseSuiteFromFile(ctx context.Context, filePath string) (*models.PopulationSuite, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Error("Failed to close file", "path", filePath, "error", err)
		}
	}()

	suite, err := p.ParseSuite(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse suite from file %s: %w", filePath, err)
	}

	return suite, nil
}

// ParseSuitesFromFS parses and merges all suites found in a filesystem
// subtree, bucket by bucket.
func (p *YAMLParser) ParseSuitesFromFS(ctx context.Context, fsys fs.FS, dirPath string) (*models.PopulationSuite, error) {
	merged := &models.PopulationSuite{}

	err := fs.WalkDir(fsys, dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isYAMLFile(path) {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		file, err := fsys.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open embedded file %s: %w", path, err)
		}
		defer func() {
			if err := file.Close(); err != nil {
				logger.Error("Failed to close embedded file", "path", path, "error", err)
			}
		}()

		suite, err := p.ParseSuite(ctx, file)
		if err != nil {
			return fmt.Errorf("failed to parse suite from embedded file %s: %w", path, err)
		}

		merged.Vulnerable = append(merged.Vulnerable, suite.Vulnerable...)
		merged.Intersectional = append(merged.Intersectional, suite.Intersectional...)
		merged.Cultural = append(merged.Cultural, suite.Cultural...)
		merged.Medical = append(merged.Medical, suite.Medical...)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk embedded directory %s: %w", dirPath, err)
	}

	return merged, nil
}

// ValidateRule validates a safety rule against the schema
func (p *YAMLParser) ValidateRule(ctx context.Context, rule *models.SafetyRule) error {
	if rule == nil {
		return fmt.Errorf("rule cannot be nil")
	}

	if rule.APIVersion == "" {
		return fmt.Errorf("apiVersion is required")
	}
	if rule.APIVersion != models.SafetyRuleAPIVersion {
		return fmt.Errorf("unsupported apiVersion: %s", rule.APIVersion)
	}

	if rule.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if rule.Kind != models.SafetyRuleKind {
		return fmt.Errorf("unsupported kind: %s", rule.Kind)
	}

	if err := p.validateMetadata(&rule.Metadata); err != nil {
		return fmt.Errorf("metadata validation failed: %w", err)
	}

	if err := p.validateSpec(rule); err != nil {
		return fmt.Errorf("spec validation failed: %w", err)
	}

	return nil
}

func (p *YAMLParser) validateMetadata(metadata *models.RuleMetadata) error {
	if metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}

	if !ruleNameRegex.MatchString(metadata.Name) {
		return fmt.Errorf("metadata.name must match pattern %s", ruleNameRegex.String())
	}

	if len(metadata.Name) > 253 {
		return fmt.Errorf("metadata.name must be at most 253 characters")
	}

	return nil
}

func (p *YAMLParser) validateSpec(rule *models.SafetyRule) error {
	spec := &rule.Spec

	if spec.CEL == "" {
		return fmt.Errorf("spec.cel is required")
	}

	if rule.GetTitle() == "" {
		return fmt.Errorf("title annotation is required")
	}
	if rule.GetDescription() == "" {
		return fmt.Errorf("description annotation is required")
	}

	if v := rule.GetVersion(); v != "" && !versionRegex.MatchString(v) {
		return fmt.Errorf("version annotation must be in semantic version format (x.y.z)")
	}

	if risk := rule.GetRisk(); risk != "" && !risk.IsValid() {
		return fmt.Errorf("invalid risk label: %s", risk)
	}

	if err := p.validateEffect(&spec.Effect); err != nil {
		return fmt.Errorf("effect validation failed: %w", err)
	}

	return nil
}

func (p *YAMLParser) validateEffect(effect *models.RuleEffect) error {
	if effect.Risk != "" && !effect.Risk.IsValid() {
		return fmt.Errorf("invalid effect risk level: %s", effect.Risk)
	}

	if effect.CeilingML < 0 {
		return fmt.Errorf("effect.ceilingMl must not be negative")
	}
	if effect.FloorML < 0 {
		return fmt.Errorf("effect.floorMl must not be negative")
	}
	if effect.CeilingML > 0 && effect.FloorML > effect.CeilingML {
		return fmt.Errorf("effect.floorMl must not exceed effect.ceilingMl")
	}

	// A triggered rule must contribute something
	if effect.Risk == "" && !effect.Invalidate && effect.CeilingML == 0 && effect.FloorML == 0 &&
		effect.Contraindication == "" && effect.Alert == "" && effect.Warning == "" &&
		effect.Action == "" && !effect.Supervision {
		return fmt.Errorf("effect must declare at least one outcome")
	}

	return nil
}

func (p *YAMLParser) validateSuite(suite *models.PopulationSuite) error {
	seen := make(map[string]bool)
	for _, tc := range suite.All() {
		if tc.TestID == "" {
			return fmt.Errorf("testId is required")
		}
		if seen[tc.TestID] {
			return fmt.Errorf("duplicate testId: %s", tc.TestID)
		}
		seen[tc.TestID] = true

		if !tc.Criticality.IsValid() {
			return fmt.Errorf("test %s: invalid criticalityLevel: %s", tc.TestID, tc.Criticality)
		}
	}
	return nil
}

func isYAMLFile(path string) bool {
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
