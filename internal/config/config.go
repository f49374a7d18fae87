// SPDX-License-Identifier: Apache-2.0

// Package config loads the tcmapper configuration file and applies
// environment overrides.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Environment variables that override file values.
const (
	EnvSupabaseURL = "TCMAPPER_SUPABASE_URL"
	EnvSupabaseKey = "TCMAPPER_SUPABASE_KEY"
	EnvLogLevel    = "TCMAPPER_LOG_LEVEL"
)

// Mapping backends.
const (
	BackendAuto       = "auto"
	BackendSupabase   = "supabase"
	BackendSQLite     = "sqlite"
	BackendDictionary = "dictionary"
	BackendNone       = "none"
)

var backends = []string{BackendAuto, BackendSupabase, BackendSQLite, BackendDictionary, BackendNone}

type File struct {
	Supabase Supabase `yaml:"supabase" json:"supabase"`
	Mapping  Mapping  `yaml:"mapping" json:"mapping"`
	Logging  Logging  `yaml:"logging" json:"logging"`
}

type Supabase struct {
	URL     string `yaml:"url" json:"url"`
	Key     string `yaml:"key" json:"key"`
	Timeout string `yaml:"timeout" json:"timeout"`
}

type Mapping struct {
	Backend             string `yaml:"backend" json:"backend"`
	SQLitePath          string `yaml:"sqlite_path" json:"sqlite_path"`
	DictionaryPath      string `yaml:"dictionary_path" json:"dictionary_path"`
	AlternativeTimeout  string `yaml:"alternative_timeout" json:"alternative_timeout"`
	AlternativeKeywords int    `yaml:"alternative_keywords" json:"alternative_keywords"`
}

type Logging struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() File {
	return File{
		Supabase: Supabase{Timeout: "10s"},
		Mapping: Mapping{
			Backend:             BackendAuto,
			AlternativeTimeout:  "3s",
			AlternativeKeywords: 3,
		},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads the file at path, or starts from Default when path is empty,
// then applies environment overrides and validates the result.
func Load(path string) (File, error) {
	if path == "" {
		cfg := Default()
		cfg.applyEnv()
		return cfg, validate(cfg, "defaults")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config file %q: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes YAML config data. Unknown keys are rejected.
func Parse(data []byte, source string) (File, error) {
	cfg := Default()
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return cfg, fmt.Errorf("parse YAML in %q: %w", source, err)
	}
	cfg.fillDefaults()
	cfg.applyEnv()
	return cfg, validate(cfg, source)
}

func validate(cfg File, source string) error {
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("invalid config in %q: %s", source, strings.Join(errs, "; "))
	}
	return nil
}

// Validate reports every problem found in cfg.
func (cfg File) Validate() []string {
	var errs []string

	if !slices.Contains(backends, cfg.Mapping.Backend) {
		errs = append(errs, fmt.Sprintf("mapping.backend must be one of %s", strings.Join(backends, ",")))
	}
	switch cfg.Mapping.Backend {
	case BackendSupabase:
		if strings.TrimSpace(cfg.Supabase.URL) == "" {
			errs = append(errs, "supabase.url is required when mapping.backend is supabase")
		}
	case BackendSQLite:
		if strings.TrimSpace(cfg.Mapping.SQLitePath) == "" {
			errs = append(errs, "mapping.sqlite_path is required when mapping.backend is sqlite")
		}
	case BackendDictionary:
		if strings.TrimSpace(cfg.Mapping.DictionaryPath) == "" {
			errs = append(errs, "mapping.dictionary_path is required when mapping.backend is dictionary")
		}
	}

	if _, err := time.ParseDuration(cfg.Supabase.Timeout); err != nil {
		errs = append(errs, fmt.Sprintf("supabase.timeout %q is not a duration", cfg.Supabase.Timeout))
	}
	if d, err := time.ParseDuration(cfg.Mapping.AlternativeTimeout); err != nil {
		errs = append(errs, fmt.Sprintf("mapping.alternative_timeout %q is not a duration", cfg.Mapping.AlternativeTimeout))
	} else if d <= 0 {
		errs = append(errs, "mapping.alternative_timeout must be positive")
	}
	if cfg.Mapping.AlternativeKeywords < 0 {
		errs = append(errs, "mapping.alternative_keywords must be >= 0")
	}
	if f := cfg.Logging.Format; f != "text" && f != "json" {
		errs = append(errs, fmt.Sprintf("logging.format must be text or json, got %q", f))
	}
	return errs
}

// ResolvedBackend turns "auto" into a concrete backend: supabase when a URL
// is set, then sqlite, then dictionary, otherwise none.
func (cfg File) ResolvedBackend() string {
	if cfg.Mapping.Backend != BackendAuto {
		return cfg.Mapping.Backend
	}
	switch {
	case cfg.Supabase.URL != "":
		return BackendSupabase
	case cfg.Mapping.SQLitePath != "":
		return BackendSQLite
	case cfg.Mapping.DictionaryPath != "":
		return BackendDictionary
	default:
		return BackendNone
	}
}

// SupabaseTimeout returns the parsed HTTP timeout.
func (cfg File) SupabaseTimeout() time.Duration {
	d, _ := time.ParseDuration(cfg.Supabase.Timeout)
	return d
}

// AlternativeTimeout returns the parsed fan-out deadline.
func (cfg File) AlternativeTimeout() time.Duration {
	d, _ := time.ParseDuration(cfg.Mapping.AlternativeTimeout)
	return d
}

func (cfg *File) fillDefaults() {
	def := Default()
	if cfg.Supabase.Timeout == "" {
		cfg.Supabase.Timeout = def.Supabase.Timeout
	}
	if cfg.Mapping.Backend == "" {
		cfg.Mapping.Backend = def.Mapping.Backend
	}
	if cfg.Mapping.AlternativeTimeout == "" {
		cfg.Mapping.AlternativeTimeout = def.Mapping.AlternativeTimeout
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}
}

func (cfg *File) applyEnv() {
	if v, ok := os.LookupEnv(EnvSupabaseURL); ok {
		cfg.Supabase.URL = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvSupabaseKey); ok {
		cfg.Supabase.Key = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.Logging.Level = strings.TrimSpace(v)
	}
}
