// Package pipelinecfg loads the YAML pipeline configuration document
// spec.md §6 describes: an ordered list of pass names with per-pass
// enable/print flags, plus the search paths the importer needs. It is
// pure data — the question of what a pass name means, and what happens to
// a name the pipeline doesn't recognize, belongs to internal/pipeline,
// which consumes this package's output.
//
// Grounded on the teacher's internal/eval_harness/spec.go (a YAML-tagged
// config struct loaded with gopkg.in/yaml.v3, same "struct tags declare
// the document shape" idiom).
package pipelinecfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PassEntry configures one named pass. EnabledPtr is a pointer so a
// document that omits "enabled" for a pass defaults it to enabled, rather
// than to the Go zero value of false.
type PassEntry struct {
	Name        string `yaml:"name"`
	EnabledPtr  *bool  `yaml:"enabled"`
	PrintBefore bool   `yaml:"printBefore"`
	PrintAfter  bool   `yaml:"printAfter"`
}

// Enabled reports whether this pass should run.
func (e PassEntry) Enabled() bool {
	return e.EnabledPtr == nil || *e.EnabledPtr
}

// Config is the top-level pipeline configuration document.
type Config struct {
	Passes            []PassEntry `yaml:"passes"`
	ImportSearchPaths []string    `yaml:"importSearchPaths"`
	StdlibPath        string      `yaml:"stdlibPath"`
}

// Load reads and parses a pipeline configuration file from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipelinecfg: reading %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("pipelinecfg: parsing %s: %w", path, err)
	}
	return &cfg, nil
}
