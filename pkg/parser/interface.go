package parser

import (
	"context"
	"io"
	"io/fs"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

// RuleParser defines the interface for parsing safety rules
type RuleParser interface {
	// ParseRule parses a single safety rule from a reader
	ParseRule(ctx context.Context, reader io.Reader) (*models.SafetyRule, error)

	// ParseRules parses multiple safety rules from a reader
	ParseRules(ctx context.Context, reader io.Reader) ([]*models.SafetyRule, error)

	// ParseRuleFromFile parses a safety rule from a file path
	ParseRuleFromFile(ctx context.Context, filePath string) (*models.SafetyRule, error)

	// ParseRulesFromDirectory parses all safety rules from a directory
	ParseRulesFromDirectory(ctx context.Context, dirPath string) ([]*models.SafetyRule, error)

	// ParseRulesFromFS parses all safety rules from a filesystem subtree
	ParseRulesFromFS(ctx context.Context, fsys fs.FS, dirPath string) ([]*models.SafetyRule, error)

	// ValidateRule validates a safety rule against the schema
	ValidateRule(ctx context.Context, rule *models.SafetyRule) error
}

// SuiteParser defines the interface for parsing bias test suites
type SuiteParser interface {
	// ParseSuite parses a population suite from a reader
	ParseSuite(ctx context.Context, reader io.Reader) (*models.PopulationSuite, error)

	// ParseSuiteFromFile parses a population suite from a file path
	ParseSuiteFromFile(ctx context.Context, filePath string) (*models.PopulationSuite, error)

	// ParseSuitesFromFS parses and merges all suites from a filesystem subtree
	ParseSuitesFromFS(ctx context.Context, fsys fs.FS, dirPath string) (*models.PopulationSuite, error)
}
