// Package config holds the immutable runtime configuration. Values are
// defaults overridden by WIKIART_* environment variables; components
// receive the loaded Config at construction and never consult globals.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	Ollama  OllamaConfig
	Chat    ChatConfig
	Storage StorageConfig
	Server  ServerConfig
	Log     LogConfig
}

type OllamaConfig struct {
	BaseURL    string
	Model      string
	EmbedModel string
	Timeout    time.Duration
}

type ChatConfig struct {
	TopK       int
	MaxHistory int
}

type StorageConfig struct {
	DataDir      string
	MetadataPath string
	IndexPath    string
}

type ServerConfig struct {
	Port     int
	APIToken string // empty disables bearer auth
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Ollama: OllamaConfig{
			BaseURL:    "http://localhost:11434",
			Model:      "llama3.2",
			EmbedModel: "nomic-embed-text",
			Timeout:    30 * time.Second,
		},
		Chat: ChatConfig{
			TopK:       3,
			MaxHistory: 10,
		},
		Storage: StorageConfig{
			DataDir:      defaultDataDir(),
			MetadataPath: "wikiart_metadata.csv",
			IndexPath:    "wikiart_index.bin",
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".wikiart")
}

// Load returns the defaults with environment overrides applied.
func Load() (Config, error) {
	cfg := defaults()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Chat.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", cfg.Chat.TopK)
	}
	if cfg.Chat.MaxHistory <= 0 {
		return fmt.Errorf("max_history must be positive, got %d", cfg.Chat.MaxHistory)
	}
	if cfg.Ollama.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", cfg.Ollama.Timeout)
	}
	return nil
}
