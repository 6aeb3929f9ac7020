// Package chat owns per-session conversation state and drives the
// retrieve → format → generate pipeline for each turn.
package chat

import (
	"context"
	"log/slog"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/composer"
)

// Turn is a single conversation message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// apologyMessage is the fixed reply when retrieval finds nothing.
const apologyMessage = "I couldn't find any relevant artworks to answer your question."

// Searcher returns the top-k artworks for a query, best match first.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]catalog.Artwork, error)
}

// Generator produces an answer for a prompt using the named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Recorder receives a best-effort audit record of each processed turn.
// Implementations must not block for long; failures are the recorder's
// problem, never the conversation's.
type Recorder interface {
	Record(ctx context.Context, question, answer, status string, artworks []string)
}

// Exchange statuses passed to the Recorder.
const (
	StatusOK               = "ok"
	StatusNoResults        = "no_results"
	StatusSearchFailed     = "search_failed"
	StatusGenerationFailed = "generation_failed"
)

// Manager processes conversation turns. It holds no per-session state:
// the history belongs to the caller, is extended and trimmed per call,
// and is never retained past Process.
type Manager struct {
	retriever  Searcher
	generator  Generator
	model      string
	topK       int
	maxHistory int
	recorder   Recorder // optional
	logger     *slog.Logger
}

// NewManager creates a Manager. topK and maxHistory fall back to 3 and 10
// when non-positive. recorder may be nil.
func NewManager(retriever Searcher, generator Generator, model string, topK, maxHistory int, recorder Recorder) *Manager {
	if topK <= 0 {
		topK = 3
	}
	if maxHistory <= 0 {
		maxHistory = 10
	}
	return &Manager{
		retriever:  retriever,
		generator:  generator,
		model:      model,
		topK:       topK,
		maxHistory: maxHistory,
		recorder:   recorder,
		logger:     slog.Default(),
	}
}

// Process handles one user message: retrieve grounding artworks, generate
// an answer, append the (user, assistant) turn pair, and trim the history
// to the configured window.
//
// Process never returns an error. A failed retrieval or generation is
// converted into an assistant turn describing the failure, so one bad
// turn cannot abort the session or corrupt history ordering. The first
// return value is always the empty acknowledgement.
func (m *Manager) Process(ctx context.Context, message string, history []Turn) (string, []Turn) {
	matches, err := m.retriever.Search(ctx, message, m.topK)
	if err != nil {
		m.logger.Warn("search failed", "error", err)
		return m.finish(ctx, message, "I encountered an error: "+err.Error(), StatusSearchFailed, nil, history)
	}

	if len(matches) == 0 {
		return m.finish(ctx, message, apologyMessage, StatusNoResults, nil, history)
	}

	prompt := composer.BuildPrompt(composer.FormatArtworks(matches), message)
	answer, err := m.generator.Generate(ctx, m.model, prompt)
	if err != nil {
		m.logger.Warn("generation failed", "error", err)
		return m.finish(ctx, message, "I encountered an error: "+err.Error(), StatusGenerationFailed, titles(matches), history)
	}

	return m.finish(ctx, message, answer, StatusOK, titles(matches), history)
}

// finish appends the turn pair, records the exchange, and trims.
func (m *Manager) finish(ctx context.Context, message, reply, status string, artworks []string, history []Turn) (string, []Turn) {
	history = append(history,
		Turn{Role: RoleUser, Content: message},
		Turn{Role: RoleAssistant, Content: reply},
	)
	if m.recorder != nil {
		m.recorder.Record(ctx, message, reply, status, artworks)
	}
	return "", m.trim(history)
}

// trim drops the oldest turns so at most 2*maxHistory remain. Turns are
// only ever removed from the front, never mid-sequence.
func (m *Manager) trim(history []Turn) []Turn {
	limit := 2 * m.maxHistory
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history
}

func titles(artworks []catalog.Artwork) []string {
	names := make([]string, len(artworks))
	for i, a := range artworks {
		names[i] = a.Title
	}
	return names
}
