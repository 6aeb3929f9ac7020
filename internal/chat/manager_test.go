package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
)

type mockSearcher struct {
	searchFn func(ctx context.Context, query string, k int) ([]catalog.Artwork, error)
	calls    int
}

func (m *mockSearcher) Search(ctx context.Context, query string, k int) ([]catalog.Artwork, error) {
	m.calls++
	return m.searchFn(ctx, query, k)
}

type mockGenerator struct {
	generateFn func(ctx context.Context, model, prompt string) (string, error)
	calls      int
}

func (m *mockGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	m.calls++
	return m.generateFn(ctx, model, prompt)
}

type mockRecorder struct {
	statuses []string
}

func (m *mockRecorder) Record(_ context.Context, _, _, status string, _ []string) {
	m.statuses = append(m.statuses, status)
}

func someArtworks() []catalog.Artwork {
	return []catalog.Artwork{
		{Title: "Mona Lisa", Artist: "Leonardo da Vinci", Year: "1503", Style: "Renaissance", Genre: "Portrait", Description: "A painting"},
	}
}

func TestProcessAppendsTurnPair(t *testing.T) {
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, _ int) ([]catalog.Artwork, error) {
		return someArtworks(), nil
	}}
	generator := &mockGenerator{generateFn: func(_ context.Context, model, prompt string) (string, error) {
		if model != "llama3.2" {
			t.Errorf("model = %q, want llama3.2", model)
		}
		if !strings.Contains(prompt, "Title: Mona Lisa") {
			t.Error("prompt missing formatted context block")
		}
		if !strings.Contains(prompt, "who painted this?") {
			t.Error("prompt missing user question")
		}
		return "Leonardo painted it.", nil
	}}

	m := NewManager(searcher, generator, "llama3.2", 3, 10, nil)
	ack, history := m.Process(context.Background(), "who painted this?", nil)

	if ack != "" {
		t.Errorf("ack = %q, want empty", ack)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Role != RoleUser || history[0].Content != "who painted this?" {
		t.Errorf("unexpected user turn: %+v", history[0])
	}
	if history[1].Role != RoleAssistant || history[1].Content != "Leonardo painted it." {
		t.Errorf("unexpected assistant turn: %+v", history[1])
	}
}

// Empty retrieval appends the fixed apology pair without touching the
// generation client.
func TestProcessEmptyRetrieval(t *testing.T) {
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, _ int) ([]catalog.Artwork, error) {
		return nil, nil
	}}
	generator := &mockGenerator{generateFn: func(_ context.Context, _, _ string) (string, error) {
		return "should not be called", nil
	}}
	recorder := &mockRecorder{}

	m := NewManager(searcher, generator, "llama3.2", 3, 10, recorder)
	_, history := m.Process(context.Background(), "question", nil)

	if generator.calls != 0 {
		t.Errorf("generator called %d times, want 0", generator.calls)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[1].Content != apologyMessage {
		t.Errorf("assistant turn = %q, want apology", history[1].Content)
	}
	if len(recorder.statuses) != 1 || recorder.statuses[0] != StatusNoResults {
		t.Errorf("recorded statuses = %v, want [no_results]", recorder.statuses)
	}
}

// A generation failure must still yield a valid (ack, history) pair with
// an assistant turn describing the failure.
func TestProcessGenerationFailure(t *testing.T) {
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, _ int) ([]catalog.Artwork, error) {
		return someArtworks(), nil
	}}
	generator := &mockGenerator{generateFn: func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("could not connect to the AI model")
	}}
	recorder := &mockRecorder{}

	m := NewManager(searcher, generator, "llama3.2", 3, 10, recorder)
	ack, history := m.Process(context.Background(), "question", nil)

	if ack != "" {
		t.Errorf("ack = %q, want empty", ack)
	}
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if !strings.Contains(history[1].Content, "I encountered an error:") {
		t.Errorf("assistant turn = %q, want error description", history[1].Content)
	}
	if !strings.Contains(history[1].Content, "could not connect") {
		t.Errorf("assistant turn %q should carry the cause", history[1].Content)
	}
	if recorder.statuses[0] != StatusGenerationFailed {
		t.Errorf("status = %q, want generation_failed", recorder.statuses[0])
	}
}

func TestProcessSearchFailure(t *testing.T) {
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, _ int) ([]catalog.Artwork, error) {
		return nil, errors.New("index corrupted")
	}}
	generator := &mockGenerator{generateFn: func(_ context.Context, _, _ string) (string, error) {
		return "should not be called", nil
	}}

	m := NewManager(searcher, generator, "llama3.2", 3, 10, nil)
	_, history := m.Process(context.Background(), "question", nil)

	if generator.calls != 0 {
		t.Errorf("generator called %d times after search failure, want 0", generator.calls)
	}
	if len(history) != 2 || !strings.Contains(history[1].Content, "index corrupted") {
		t.Errorf("unexpected history after search failure: %+v", history)
	}
}

// After exceeding max_history turn pairs, exactly 2*max_history turns
// remain and they are the most recent ones.
func TestProcessTrimsHistory(t *testing.T) {
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, _ int) ([]catalog.Artwork, error) {
		return someArtworks(), nil
	}}
	n := 0
	generator := &mockGenerator{generateFn: func(_ context.Context, _, _ string) (string, error) {
		n++
		return fmt.Sprintf("answer %d", n), nil
	}}

	const maxHistory = 3
	m := NewManager(searcher, generator, "llama3.2", 3, maxHistory, nil)

	var history []Turn
	for i := 1; i <= maxHistory+2; i++ {
		_, history = m.Process(context.Background(), fmt.Sprintf("question %d", i), history)
	}

	if len(history) != 2*maxHistory {
		t.Fatalf("history length = %d, want %d", len(history), 2*maxHistory)
	}
	// Oldest surviving turn should be the user message of exchange 3.
	if history[0].Content != "question 3" {
		t.Errorf("oldest turn = %q, want question 3", history[0].Content)
	}
	if history[len(history)-1].Content != fmt.Sprintf("answer %d", maxHistory+2) {
		t.Errorf("newest turn = %q, want the last answer", history[len(history)-1].Content)
	}
}

func TestNewManagerDefaults(t *testing.T) {
	var gotK int
	searcher := &mockSearcher{searchFn: func(_ context.Context, _ string, k int) ([]catalog.Artwork, error) {
		gotK = k
		return nil, nil
	}}
	generator := &mockGenerator{generateFn: func(_ context.Context, _, _ string) (string, error) {
		return "", nil
	}}

	m := NewManager(searcher, generator, "llama3.2", 0, 0, nil)
	m.Process(context.Background(), "q", nil)

	if gotK != 3 {
		t.Errorf("default topK = %d, want 3", gotK)
	}
	if m.maxHistory != 10 {
		t.Errorf("default maxHistory = %d, want 10", m.maxHistory)
	}
}
