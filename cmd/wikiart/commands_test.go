package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ivo-gavran/wikiart-chatbot/internal/config"
	"github.com/ivo-gavran/wikiart-chatbot/internal/storage"
)

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}
	if result != "test message" {
		t.Errorf("result = %q, want %q", result, "test message")
	}

	noColor = false
	result = colorize(colorGreen, "test message")
	if !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestStatusHelpers(t *testing.T) {
	oldOut, oldNoColor := statusOut, noColor
	defer func() { statusOut, noColor = oldOut, oldNoColor }()

	var buf bytes.Buffer
	statusOut = &buf
	noColor = true

	printSuccess("indexed %d artworks", 3)
	printError("index build failed")
	printStep("embedding catalog...")
	printStatus("Catalog", "%d artworks", 3)

	out := buf.String()
	for _, want := range []string{
		"✓ indexed 3 artworks",
		"✗ index build failed",
		"→ embedding catalog...",
		"Catalog: 3 artworks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestConfigShowAll(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = 9090
	cfg.Ollama.Model = "llama3.2"

	keys := config.ShowAll(cfg)
	if len(keys) == 0 {
		t.Fatal("expected non-empty keys from ShowAll")
	}

	found := false
	for _, k := range keys {
		if k.Key == "server.port" && k.Value == "9090" {
			found = true
		}
	}
	if !found {
		t.Error("expected to find server.port=9090 in ShowAll output")
	}
}

func TestOpenStoreUsesConfiguredDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WIKIART_DATA_DIR", dir)

	store, err := openStore()
	if err != nil {
		t.Fatalf("openStore: %v", err)
	}
	defer store.Close()

	if err := store.SaveExchange(storage.Exchange{
		ID:       "ex-1",
		Question: "who painted it?",
		Answer:   "Leonardo",
		Status:   "ok",
		Artworks: `["Mona Lisa"]`,
	}); err != nil {
		t.Fatalf("saving exchange: %v", err)
	}

	exchanges, err := store.ListExchanges(10)
	if err != nil {
		t.Fatalf("listing exchanges: %v", err)
	}
	if len(exchanges) != 1 || exchanges[0].ID != "ex-1" {
		t.Errorf("unexpected exchanges: %+v", exchanges)
	}
}
