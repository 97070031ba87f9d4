package internal

import (
	"embed"
	"io/fs"
	"path"
	"strings"
)

// Builtin contains the built-in safety rule catalog and the built-in bias
// test suites embedded in the binary.
//
//go:embed builtin/**/*.yaml
var Builtin embed.FS

// GetBuiltinFS returns the embedded filesystem containing built-in assets.
func GetBuiltinFS() fs.FS {
	return Builtin
}

// ListBuiltinRules returns all built-in safety rule files.
func ListBuiltinRules() ([]string, error) {
	return listYAML("builtin/medical")
}

// ListBuiltinBiasSuites returns all built-in bias test suite files.
func ListBuiltinBiasSuites() ([]string, error) {
	return listYAML("builtin/bias")
}

func listYAML(dir string) ([]string, error) {
	entries, err := Builtin.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			files = append(files, path.Join(dir, entry.Name()))
		}
	}
	return files, nil
}
