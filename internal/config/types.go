// Package config provides configuration loading for advisord.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fyrsmithlabs/advisord/internal/agent"
	"github.com/fyrsmithlabs/advisord/internal/embeddings"
	"github.com/fyrsmithlabs/advisord/internal/logging"
	"github.com/fyrsmithlabs/advisord/internal/telemetry"
	"github.com/fyrsmithlabs/advisord/internal/vectorstore"
)

// Duration wraps time.Duration for text unmarshaling (YAML, env vars).
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if parsed < 0 {
		return fmt.Errorf("duration cannot be negative: %s", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration().String()), nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Duration().String())
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the root advisord configuration.
type Config struct {
	Server      ServerConfig       `koanf:"server"`
	Corpus      CorpusConfig       `koanf:"corpus"`
	Vectorstore vectorstore.Config `koanf:"vectorstore"`
	Embeddings  embeddings.Config  `koanf:"embeddings"`
	Chat        ChatConfig         `koanf:"chat"`
	Logging     logging.Config     `koanf:"logging"`
	Telemetry   telemetry.Config   `koanf:"telemetry"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string   `koanf:"host"`
	Port            int      `koanf:"port"`
	ReadTimeout     Duration `koanf:"read_timeout"`
	WriteTimeout    Duration `koanf:"write_timeout"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// CorpusConfig holds corpus file settings.
type CorpusConfig struct {
	// Path is the raw corpus JSON file. The processed form is derived from
	// it and cached alongside.
	Path string `koanf:"path"`
}

// ChatConfig holds completion engine settings for the orchestrator.
type ChatConfig struct {
	// Model is the chat model name. Default: "gpt-4-turbo-preview"
	Model string `koanf:"model"`

	// Temperature for chat completions. Default: 0.7
	Temperature float64 `koanf:"temperature"`

	// BaseURL of the chat API. Empty means the embeddings base URL.
	BaseURL string `koanf:"base_url"`

	// APIKey for the chat API. Empty means the embeddings API key.
	APIKey string `koanf:"api_key"`

	// Agent holds orchestrator settings.
	Agent agent.Config `koanf:"agent"`
}

// applyDefaults fills zero values across all sections.
func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = Duration(30 * time.Second)
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = Duration(120 * time.Second)
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}
	if cfg.Corpus.Path == "" {
		cfg.Corpus.Path = "./data/use_cases.json"
	}
	cfg.Vectorstore.Chromem.ApplyDefaults()
	cfg.Vectorstore.Qdrant.ApplyDefaults()
	cfg.Embeddings.ApplyDefaults()
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4-turbo-preview"
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.7
	}
	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = cfg.Embeddings.BaseURL
	}
	if cfg.Chat.APIKey == "" {
		cfg.Chat.APIKey = cfg.Embeddings.APIKey
	}
	if cfg.Chat.Agent.Temperature == 0 {
		cfg.Chat.Agent.Temperature = cfg.Chat.Temperature
	}
	cfg.Chat.Agent.ApplyDefaults()
	cfg.Logging.ApplyDefaults()
	cfg.Telemetry.ApplyDefaults()
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Corpus.Path == "" {
		return fmt.Errorf("corpus path is required")
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
