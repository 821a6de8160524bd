package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBlockSize is the number of input bytes formatted per data line.
	DefaultBlockSize = 16
	// IndentTab selects a single tab as the data line prefix.
	IndentTab = -1
)

// Config represents a bin2c run. It is filled from command-line flags and,
// optionally, from a YAML job file listing several output sets.
type Config struct {
	// Output is the basename shared by all Inputs. Empty means one output
	// pair per input, named after the input path.
	Output string `yaml:"output"`
	// Inputs are the binary files to embed, in declaration order.
	Inputs []string `yaml:"inputs"`
	// BlockSize is the number of bytes per formatted line. Nil means
	// DefaultBlockSize; an explicit 0 is kept so Validate can reject it.
	BlockSize *int `yaml:"block_size"`
	// Indent is the number of spaces prefixed to each data line.
	// IndentTab (or any negative value) selects a single tab.
	Indent *int `yaml:"indent"`
	// Sets lists additional output sets (job files only).
	Sets []SetConfig `yaml:"sets"`
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`
}

// SetConfig is one entry of a job file.
type SetConfig struct {
	Output string   `yaml:"output"`
	Inputs []string `yaml:"inputs"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// Path is the log file path. Empty logs to stderr.
	Path string `yaml:"path"`
}

// OutputSet is a header/source pair named Basename+".h" and Basename+".c"
// covering Inputs in order.
type OutputSet struct {
	Basename string
	Inputs   []string
}

// HeaderPath returns the path of the declarations file.
func (s OutputSet) HeaderPath() string { return s.Basename + ".h" }

// SourcePath returns the path of the definitions file.
func (s OutputSet) SourcePath() string { return s.Basename + ".c" }

// Load reads a YAML job file. Unknown keys are rejected. An empty file
// yields an empty Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults sets default values for configuration fields that are missing.
func ApplyDefaults(config *Config) {
	if config.BlockSize == nil {
		n := DefaultBlockSize
		config.BlockSize = &n
	}
	if config.Indent == nil {
		n := IndentTab
		config.Indent = &n
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "warn"
	}
}

// Validate checks the configuration for errors. It expects ApplyDefaults
// to have run.
func Validate(config *Config) error {
	if config.BlockSize == nil {
		return fmt.Errorf("block size not set")
	}
	if *config.BlockSize < 1 {
		return fmt.Errorf("invalid block size: %d (must be at least 1)", *config.BlockSize)
	}

	if len(config.Inputs) == 0 && len(config.Sets) == 0 {
		return fmt.Errorf("no input files given")
	}

	for i, set := range config.Sets {
		if len(set.Inputs) == 0 {
			name := set.Output
			if name == "" {
				name = fmt.Sprintf("#%d", i+1)
			}
			return fmt.Errorf("set %s: no input files given", name)
		}
		for _, in := range set.Inputs {
			if in == "" {
				return fmt.Errorf("set #%d: empty input path", i+1)
			}
		}
	}
	for _, in := range config.Inputs {
		if in == "" {
			return fmt.Errorf("empty input path")
		}
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error":
		// ok
	default:
		return fmt.Errorf("invalid logging level: %s (allowed: debug, info, warn, error)", config.Logging.Level)
	}

	return nil
}

// IndentString returns the prefix for data lines: a tab for negative
// indents, otherwise that many spaces.
func (c *Config) IndentString() string {
	if c.Indent == nil || *c.Indent < 0 {
		return "\t"
	}
	return strings.Repeat(" ", *c.Indent)
}

// Plan expands the configuration into the output sets to build, in order:
// job file sets first, then the command-line inputs.
func Plan(config *Config) []OutputSet {
	var sets []OutputSet
	for _, s := range config.Sets {
		sets = append(sets, planSet(s.Output, s.Inputs)...)
	}
	if len(config.Inputs) > 0 {
		sets = append(sets, planSet(config.Output, config.Inputs)...)
	}
	return sets
}

// planSet merges inputs under output, or gives every input its own set
// whose basename is the full input path.
func planSet(output string, inputs []string) []OutputSet {
	if output != "" {
		return []OutputSet{{Basename: output, Inputs: append([]string(nil), inputs...)}}
	}
	sets := make([]OutputSet, 0, len(inputs))
	for _, in := range inputs {
		sets = append(sets, OutputSet{Basename: in, Inputs: []string{in}})
	}
	return sets
}

// Duplicates returns the basenames produced by more than one set. Later
// sets overwrite earlier ones on disk.
func Duplicates(sets []OutputSet) []string {
	seen := make(map[string]int)
	var dups []string
	for _, s := range sets {
		seen[s.Basename]++
		if seen[s.Basename] == 2 {
			dups = append(dups, s.Basename)
		}
	}
	return dups
}
