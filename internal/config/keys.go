package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type keyType int

const (
	kString keyType = iota
	kInt
	kSeconds
)

type keySpec struct {
	key     string
	typ     keyType
	env     string
	apply   func(cfg *Config, v any)
	extract func(cfg Config) any
}

var specs = []keySpec{
	{
		key: "ollama.base_url", typ: kString, env: "WIKIART_OLLAMA_BASE_URL",
		apply:   func(cfg *Config, v any) { cfg.Ollama.BaseURL = v.(string) },
		extract: func(cfg Config) any { return cfg.Ollama.BaseURL },
	},
	{
		key: "ollama.model", typ: kString, env: "WIKIART_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Ollama.Model = v.(string) },
		extract: func(cfg Config) any { return cfg.Ollama.Model },
	},
	{
		key: "ollama.embed_model", typ: kString, env: "WIKIART_EMBED_MODEL",
		apply:   func(cfg *Config, v any) { cfg.Ollama.EmbedModel = v.(string) },
		extract: func(cfg Config) any { return cfg.Ollama.EmbedModel },
	},
	{
		key: "ollama.timeout", typ: kSeconds, env: "WIKIART_TIMEOUT",
		apply:   func(cfg *Config, v any) { cfg.Ollama.Timeout = v.(time.Duration) },
		extract: func(cfg Config) any { return cfg.Ollama.Timeout },
	},
	{
		key: "chat.top_k", typ: kInt, env: "WIKIART_TOP_K",
		apply:   func(cfg *Config, v any) { cfg.Chat.TopK = v.(int) },
		extract: func(cfg Config) any { return cfg.Chat.TopK },
	},
	{
		key: "chat.max_history", typ: kInt, env: "WIKIART_MAX_HISTORY",
		apply:   func(cfg *Config, v any) { cfg.Chat.MaxHistory = v.(int) },
		extract: func(cfg Config) any { return cfg.Chat.MaxHistory },
	},
	{
		key: "storage.data_dir", typ: kString, env: "WIKIART_DATA_DIR",
		apply:   func(cfg *Config, v any) { cfg.Storage.DataDir = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.DataDir },
	},
	{
		key: "storage.metadata_path", typ: kString, env: "WIKIART_METADATA_PATH",
		apply:   func(cfg *Config, v any) { cfg.Storage.MetadataPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.MetadataPath },
	},
	{
		key: "storage.index_path", typ: kString, env: "WIKIART_INDEX_PATH",
		apply:   func(cfg *Config, v any) { cfg.Storage.IndexPath = v.(string) },
		extract: func(cfg Config) any { return cfg.Storage.IndexPath },
	},
	{
		key: "server.port", typ: kInt, env: "WIKIART_SERVER_PORT",
		apply:   func(cfg *Config, v any) { cfg.Server.Port = v.(int) },
		extract: func(cfg Config) any { return cfg.Server.Port },
	},
	{
		key: "server.api_token", typ: kString, env: "WIKIART_API_TOKEN",
		apply:   func(cfg *Config, v any) { cfg.Server.APIToken = v.(string) },
		extract: func(cfg Config) any { return cfg.Server.APIToken },
	},
	{
		key: "log.level", typ: kString, env: "WIKIART_LOG_LEVEL",
		apply:   func(cfg *Config, v any) { cfg.Log.Level = v.(string) },
		extract: func(cfg Config) any { return cfg.Log.Level },
	},
}

func applyEnv(cfg *Config) error {
	for _, s := range specs {
		raw, ok := os.LookupEnv(s.env)
		if !ok || raw == "" {
			continue
		}
		switch s.typ {
		case kString:
			s.apply(cfg, raw)
		case kInt:
			i, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid integer in %s: %w", s.env, err)
			}
			s.apply(cfg, i)
		case kSeconds:
			i, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("invalid seconds value in %s: %w", s.env, err)
			}
			s.apply(cfg, time.Duration(i)*time.Second)
		}
	}
	return nil
}

// KeyInfo describes a config key for display purposes.
type KeyInfo struct {
	Key    string
	EnvVar string
	Value  string
}

// ShowAll returns all config key/value pairs from the given config.
func ShowAll(cfg Config) []KeyInfo {
	result := make([]KeyInfo, 0, len(specs))
	for _, s := range specs {
		result = append(result, KeyInfo{
			Key:    s.key,
			EnvVar: s.env,
			Value:  fmt.Sprintf("%v", s.extract(cfg)),
		})
	}
	return result
}
