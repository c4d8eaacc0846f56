package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskTranslate   TaskType = "translate"
	TaskSalary      TaskType = "salary"
	TaskExtract     TaskType = "extract"
	TaskTechSuggest TaskType = "tech_suggest"
)

// AllTasks lists every task in a stable order.
var AllTasks = []TaskType{TaskTranslate, TaskSalary, TaskExtract, TaskTechSuggest}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
	TimeoutMs   int     `toml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled             bool                    `toml:"enabled"`
	LogCalls            bool                    `toml:"log_calls"`
	Endpoint            string                  `toml:"endpoint"`
	Model               string                  `toml:"model"`
	TimeoutMs           int                     `toml:"timeout_ms"`
	MaxRetries          int                     `toml:"max_retries"`
	ConfidenceThreshold float64                 `toml:"confidence_threshold"`
	Tasks               map[TaskType]TaskConfig `toml:"tasks"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:             false,
		LogCalls:            false,
		Endpoint:            "http://localhost:11434",
		Model:               "llama3.2",
		TimeoutMs:           15000,
		MaxRetries:          1,
		ConfidenceThreshold: 0.6,
		Tasks: map[TaskType]TaskConfig{
			TaskTranslate:   {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 15000},
			TaskSalary:      {Temperature: 0.2, MaxTokens: 512, TimeoutMs: 10000},
			TaskExtract:     {Temperature: 0.2, MaxTokens: 4096, TimeoutMs: 60000},
			TaskTechSuggest: {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg, os.Getenv)
	return cfg
}

// ApplyEnv overlays PROQUOTE_LLM_* variables onto cfg. Unparseable or
// out-of-range values are ignored.
func ApplyEnv(cfg *LLMConfig, getenv func(string) string) {
	if v := getenv("PROQUOTE_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Enabled = b
		}
	}
	if v := getenv("PROQUOTE_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := getenv("PROQUOTE_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := getenv("PROQUOTE_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := getenv("PROQUOTE_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := getenv("PROQUOTE_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := getenv("PROQUOTE_LLM_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.ConfidenceThreshold = f
		}
	}

	for _, task := range AllTasks {
		applyTaskTimeoutEnv(cfg, task, TaskTimeoutEnv(task), getenv)
	}
}

// TaskTimeoutEnv names the variable overriding one task's timeout,
// e.g. PROQUOTE_LLM_TECH_SUGGEST_TIMEOUT_MS.
func TaskTimeoutEnv(task TaskType) string {
	return "PROQUOTE_LLM_" + strings.ToUpper(string(task)) + "_TIMEOUT_MS"
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string, getenv func(string) string) {
	v := getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = map[TaskType]TaskConfig{}
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
