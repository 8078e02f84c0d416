package brewin

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name the CLI looks for next to a program.
const DefaultConfigFile = "brewin.yaml"

type configFile struct {
	EntryClass     string `yaml:"entry_class"`
	EntryMethod    string `yaml:"entry_method"`
	StepQuota      int    `yaml:"step_quota"`
	RecursionLimit int    `yaml:"recursion_limit"`
	Trace          bool   `yaml:"trace"`
}

// LoadConfig reads engine settings from a YAML file. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return decodeConfig(file, absPath)
}

func decodeConfig(r io.Reader, name string) (Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if raw.StepQuota < 0 {
		return Config{}, fmt.Errorf("config: %s: step_quota must not be negative", name)
	}
	if raw.RecursionLimit < 0 {
		return Config{}, fmt.Errorf("config: %s: recursion_limit must not be negative", name)
	}
	return Config{
		EntryClass:     raw.EntryClass,
		EntryMethod:    raw.EntryMethod,
		StepQuota:      raw.StepQuota,
		RecursionLimit: raw.RecursionLimit,
		Trace:          raw.Trace,
	}, nil
}
