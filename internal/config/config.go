package config

// Package config handles configuration loading for FraudLens.
// It supports YAML config files with environment variable overrides.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	LLM     LLMConfig     `mapstructure:"llm"     yaml:"llm"`
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`
	Report  ReportConfig  `mapstructure:"report"  yaml:"report"`
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LLMConfig holds LLM provider configuration for document extraction.
type LLMConfig struct {
	Primary       string  `mapstructure:"primary"        yaml:"primary"` // "openai", "ollama", "gemini", "anthropic"
	OpenAIKey     string  `mapstructure:"openai_key"     yaml:"openai_key"`
	OllamaURL     string  `mapstructure:"ollama_url"     yaml:"ollama_url"`
	GeminiKey     string  `mapstructure:"gemini_key"     yaml:"gemini_key"`
	AnthropicKey  string  `mapstructure:"anthropic_key"  yaml:"anthropic_key"`
	Model         string  `mapstructure:"model"          yaml:"model"`
	FallbackModel string  `mapstructure:"fallback_model" yaml:"fallback_model"`
	Temperature   float64 `mapstructure:"temperature"    yaml:"temperature"`
	MaxTokens     int     `mapstructure:"max_tokens"     yaml:"max_tokens"`
}

// ExtractConfig holds document extraction settings.
type ExtractConfig struct {
	MaxFileSizeMB int `mapstructure:"max_file_size_mb" yaml:"max_file_size_mb"`
	MaxTextChars  int `mapstructure:"max_text_chars"   yaml:"max_text_chars"`  // cap on text sent to the LLM
	TimeoutSec    int `mapstructure:"timeout_sec"      yaml:"timeout_sec"`     // per-document extraction timeout
	Concurrency   int `mapstructure:"concurrency"      yaml:"concurrency"`     // batch analyze parallelism
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	PDFEngine string `mapstructure:"pdf_engine" yaml:"pdf_engine"` // "auto", "wkhtmltopdf", "chromium"
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.fraudlens/config.yaml (home directory)
//  3. /etc/fraudlens/config.yaml (system)
//
// Environment variables override config file values.
// Format: FRAUDLENS_<SECTION>_<KEY>, e.g., FRAUDLENS_LLM_OPENAI_KEY
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".fraudlens"))
	v.AddConfigPath("/etc/fraudlens")

	v.SetEnvPrefix("FRAUDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FRAUDLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// LLM defaults
	v.SetDefault("llm.primary", "openai")
	v.SetDefault("llm.ollama_url", "http://localhost:11434")
	v.SetDefault("llm.model", "gpt-4o")
	v.SetDefault("llm.temperature", 0.1)
	v.SetDefault("llm.max_tokens", 4096)

	// Extraction defaults
	v.SetDefault("extract.max_file_size_mb", 50)
	v.SetDefault("extract.max_text_chars", 120000)
	v.SetDefault("extract.timeout_sec", 120)
	v.SetDefault("extract.concurrency", 4)

	// Report defaults
	v.SetDefault("report.output_dir", ".")
	v.SetDefault("report.pdf_engine", "auto")

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("FRAUDLENS_LLM_OPENAI_KEY"); key != "" {
		cfg.LLM.OpenAIKey = key
	}
	if key := os.Getenv("FRAUDLENS_LLM_GEMINI_KEY"); key != "" {
		cfg.LLM.GeminiKey = key
	}
	if key := os.Getenv("FRAUDLENS_LLM_ANTHROPIC_KEY"); key != "" {
		cfg.LLM.AnthropicKey = key
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
