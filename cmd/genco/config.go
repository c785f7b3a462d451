package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udoprog/genco/internal/lang"
)

// fileConfig is the shape of a --config YAML file: the two recognized
// formatting options of spec.md §6, plus a language selector so a
// project can pin its default target without repeating --lang.
type fileConfig struct {
	Language    string `yaml:"language"`
	Indentation int    `yaml:"indentation"`
	LineEnding  string `yaml:"line_ending"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func (fc fileConfig) toRenderConfig() lang.Config {
	var cfg lang.Config
	if fc.Indentation > 0 {
		cfg.Indent = lang.IndentUnit{Spaces: fc.Indentation}
	}
	cfg.LineEnding = fc.LineEnding
	return cfg
}
