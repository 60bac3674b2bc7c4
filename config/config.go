// Package config loads run configuration files.
//
// A configuration file is YAML:
//
//	steps: 1000        # step budget, absent for none
//	debug: false       # trace every step
//	verbose: true      # report progress
//	memory:            # initial memory cells
//	  1: 10
//	  2: -3
//	checks:            # assertions on final memory
//	  - R[3] == 7
package config

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/regmach/translate"
)

var f = translate.From

// Config holds the settings of a single run.
type Config struct {
	Steps   *uint32          `yaml:"steps,omitempty"`
	Debug   bool             `yaml:"debug,omitempty"`
	Verbose bool             `yaml:"verbose,omitempty"`
	Memory  map[uint32]int32 `yaml:"memory,omitempty"`
	Checks  []string         `yaml:"checks,omitempty"`
}

// ErrConfig reports a configuration file that could not be read.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("config %v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}

// Load reads a configuration file.
func Load(path string) (cfg *Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	cfg, err = Decode(file)
	if err != nil {
		err = &ErrConfig{Path: path, Err: err}
	}
	return
}

// Decode reads configuration YAML. Unknown fields are rejected and an
// empty document is an empty configuration.
func Decode(input io.Reader) (cfg *Config, err error) {
	cfg = &Config{}

	decoder := yaml.NewDecoder(input)
	decoder.KnownFields(true)
	err = decoder.Decode(cfg)
	if errors.Is(err, io.EOF) {
		err = nil
	}
	if err != nil {
		cfg = nil
	}
	return
}

// Encode writes the configuration as YAML.
func (cfg *Config) Encode(output io.Writer) (err error) {
	enc := yaml.NewEncoder(output)
	enc.SetIndent(2)
	err = enc.Encode(cfg)
	if err != nil {
		return
	}
	return enc.Close()
}
