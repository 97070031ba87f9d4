// Package utils contains filesystem helpers shared by the rule loading and
// validation paths.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileCollectionOptions configures file collection behavior.
type FileCollectionOptions struct {
	Recursive      bool
	Extensions     []string
	FollowSymlinks bool
	ExcludeTest    bool // skip fixture files (ending with -test.yaml or -test.yml)
}

// RuleFileOptions collects rule documents the way the catalog loader expects:
// recursive, YAML only, fixtures excluded.
func RuleFileOptions() FileCollectionOptions {
	return FileCollectionOptions{
		Recursive:   true,
		Extensions:  []string{".yaml", ".yml"},
		ExcludeTest: true,
	}
}

// CollectFiles collects files from a path based on the provided options.
func CollectFiles(path string, options FileCollectionOptions) ([]string, error) {
	var files []string

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if hasValidExtension(path, options.Extensions) && (!options.ExcludeTest || !IsFixtureFile(path)) {
			return []string{path}, nil
		}
		return nil, nil
	}

	if options.Recursive {
		err = filepath.WalkDir(path, func(filePath string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type()&os.ModeSymlink != 0 && !options.FollowSymlinks {
				return nil
			}
			if !d.IsDir() && hasValidExtension(filePath, options.Extensions) && (!options.ExcludeTest || !IsFixtureFile(filePath)) {
				files = append(files, filePath)
			}
			return nil
		})
	} else {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Type()&os.ModeSymlink != 0 && !options.FollowSymlinks {
				continue
			}
			if !entry.IsDir() {
				filePath := filepath.Join(path, entry.Name())
				if hasValidExtension(filePath, options.Extensions) && (!options.ExcludeTest || !IsFixtureFile(filePath)) {
					files = append(files, filePath)
				}
			}
		}
	}

	return files, err
}

// hasValidExtension checks if the file has a valid extension.
func hasValidExtension(filePath string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(filePath))
	for _, validExt := range extensions {
		if ext == strings.ToLower(validExt) {
			return true
		}
	}
	return false
}

// IsFixtureFile reports whether the file is a rule fixture suite, named
// <rule>-test.yaml next to the rule it exercises.
func IsFixtureFile(filePath string) bool {
	baseName := filepath.Base(filePath)
	return strings.HasSuffix(baseName, "-test.yaml") || strings.HasSuffix(baseName, "-test.yml")
}

// FixtureFileFor returns the fixture path expected for a rule file, and
// whether it exists on disk.
func FixtureFileFor(ruleFilePath string) (string, bool) {
	ext := filepath.Ext(ruleFilePath)
	fixture := strings.TrimSuffix(ruleFilePath, ext) + "-test" + ext
	if _, err := os.Stat(fixture); err != nil {
		return fixture, false
	}
	return fixture, true
}
