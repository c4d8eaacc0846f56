// Package config assembles runtime settings from defaults, an optional
// TOML file and PROQUOTE_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/proquote/internal/llm"
	"github.com/pelletier/go-toml/v2"
)

// PricingConfig holds defaults applied when building and editing proposals.
type PricingConfig struct {
	// SalarySuggestionIndex picks which oracle suggestion a newly added role
	// receives. 1 is the second suggestion.
	SalarySuggestionIndex int     `toml:"salary_suggestion_index"`
	DefaultProfitMargin   float64 `toml:"default_profit_margin"`
}

type LoggingConfig struct {
	UseCases bool `toml:"use_cases"`
}

type Config struct {
	LLM     llm.LLMConfig `toml:"llm"`
	Pricing PricingConfig `toml:"pricing"`
	Logging LoggingConfig `toml:"logging"`
}

func Default() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Pricing: PricingConfig{
			SalarySuggestionIndex: 1,
			DefaultProfitMargin:   20,
		},
	}
}

// DefaultPath returns ~/.proquote/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".proquote", "config.toml"), nil
}

// Load builds the effective configuration. An empty path means
// DefaultPath; a missing file is not an error.
func Load(path string) (Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg, getenv)
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	fillTaskDefaults(&cfg.LLM)
	return nil
}

// fillTaskDefaults restores fields a partial [llm.tasks.*] table left at zero.
func fillTaskDefaults(cfg *llm.LLMConfig) {
	defaults := llm.DefaultConfig().Tasks
	if cfg.Tasks == nil {
		cfg.Tasks = defaults
		return
	}
	for task, def := range defaults {
		tc, ok := cfg.Tasks[task]
		if !ok {
			cfg.Tasks[task] = def
			continue
		}
		if tc.MaxTokens == 0 {
			tc.MaxTokens = def.MaxTokens
		}
		if tc.TimeoutMs == 0 {
			tc.TimeoutMs = def.TimeoutMs
		}
		cfg.Tasks[task] = tc
	}
}

func applyEnv(cfg *Config, getenv func(string) string) {
	llm.ApplyEnv(&cfg.LLM, getenv)

	if v := getenv("PROQUOTE_SALARY_SUGGESTION_INDEX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Pricing.SalarySuggestionIndex = n
		}
	}
	if v := getenv("PROQUOTE_DEFAULT_PROFIT_MARGIN"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			cfg.Pricing.DefaultProfitMargin = f
		}
	}
	if v := getenv("PROQUOTE_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.UseCases = b
		}
	}
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// WriteDefault writes the default configuration to path unless a file is
// already there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := Default().Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
