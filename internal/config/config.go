// Copyright 2026 wangyyyqw
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the phonetic command configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/wangyyyqw/go-phonetic"
)

// EnvConfig is the environment variable holding the configuration file path.
const EnvConfig = "PHONETIC_CONFIG"

// ErrInvalid indicates an invalid configuration value.
var ErrInvalid = errors.New("invalid configuration")

// Repeat suppression modes.
const (
	NoRepeatNone = "none"
	NoRepeatBook = "book"
	NoRepeatPage = "page"
)

// Config is the command configuration.
type Config struct {
	// Dictionaries are dictionary files, merged in order.
	Dictionaries []string `yaml:"dictionaries" env:"PHONETIC_DICTIONARIES" env-separator:","`

	// Stardicts are StarDict .ifo files or directories holding them.
	Stardicts []string `yaml:"stardicts" env:"PHONETIC_STARDICTS" env-separator:","`

	// NoRepeat is the repeat suppression mode: none, book or page.
	NoRepeat string `yaml:"no_repeat" env:"PHONETIC_NO_REPEAT" env-default:"none"`

	// NoPhrases ignores phrase entries. Only single character entries are
	// used.
	NoPhrases bool `yaml:"no_phrases" env:"PHONETIC_NO_PHRASES"`

	// OutputSuffix is appended to the base name of output files.
	OutputSuffix string `yaml:"output_suffix" env:"PHONETIC_OUTPUT_SUFFIX" env-default:"_phonetic"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"PHONETIC_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"PHONETIC_LOG_FORMAT" env-default:"text"`
}

// Load reads the configuration from the YAML file at path and environment
// variables. Environment variables override the file. If path is empty the
// PHONETIC_CONFIG environment variable is used, and if that is empty too the
// configuration is read from the environment and defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv(EnvConfig)
	}

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	c.NoRepeat = strings.ToLower(strings.TrimSpace(c.NoRepeat))
	if c.NoRepeat == "" {
		c.NoRepeat = NoRepeatNone
	}
	if !slices.Contains([]string{NoRepeatNone, NoRepeatBook, NoRepeatPage}, c.NoRepeat) {
		return fmt.Errorf("%w: no_repeat must be one of none, book, page (got %q)", ErrInvalid, c.NoRepeat)
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: level must be one of debug, info, warn, error (got %q)", ErrInvalid, l.Level)
	}

	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: format must be one of text, json (got %q)", ErrInvalid, l.Format)
	}

	return nil
}

// Policy returns the repeat suppression policy for the NoRepeat mode.
func (c *Config) Policy() phonetic.Policy {
	switch c.NoRepeat {
	case NoRepeatBook:
		return phonetic.Policy{NoRepeatSession: true}
	case NoRepeatPage:
		return phonetic.Policy{NoRepeatUnit: true}
	default:
		return phonetic.Policy{}
	}
}
