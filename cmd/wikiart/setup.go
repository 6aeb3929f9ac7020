package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/chat"
	"github.com/ivo-gavran/wikiart-chatbot/internal/config"
	"github.com/ivo-gavran/wikiart-chatbot/internal/ollama"
	"github.com/ivo-gavran/wikiart-chatbot/internal/retrieval"
	"github.com/ivo-gavran/wikiart-chatbot/internal/storage"
)

// app bundles the wired pipeline shared by the chat, serve, and mcp
// commands.
type app struct {
	cfg       config.Config
	client    *ollama.Client
	catalog   *catalog.Catalog
	retriever *retrieval.Retriever
	manager   *chat.Manager
	store     *storage.Store
}

func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	initLogging(cfg.Log.Level)
	return cfg, nil
}

func initLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

// buildApp wires the full pipeline: config, Ollama readiness, catalog,
// index (reused or rebuilt), retriever, exchange log, and conversation
// manager.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	client := ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Timeout)
	if err := ollama.EnsureReady(ctx, client, cfg.Ollama.Model, cfg.Ollama.EmbedModel, os.Stderr); err != nil {
		return nil, err
	}

	cat, err := catalog.Load(cfg.Storage.MetadataPath)
	if err != nil {
		return nil, err
	}
	printStatus("Catalog", "%d artworks from %s", cat.Len(), cfg.Storage.MetadataPath)

	embedder := retrieval.NewEmbedder(client, cfg.Ollama.EmbedModel)
	builder := retrieval.NewBuilder(embedder, cfg.Storage.IndexPath)
	idx, err := builder.EnsureIndex(ctx, cat)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	retriever := retrieval.NewRetriever(embedder, idx, cat)
	manager := chat.NewManager(retriever, client, cfg.Ollama.Model, cfg.Chat.TopK, cfg.Chat.MaxHistory, store)

	return &app{
		cfg:       cfg,
		client:    client,
		catalog:   cat,
		retriever: retriever,
		manager:   manager,
		store:     store,
	}, nil
}
