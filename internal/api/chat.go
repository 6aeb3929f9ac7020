// Package api exposes the chatbot over HTTP and MCP. Both transports sit
// behind the same single operation: process a message with a history.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ivo-gavran/wikiart-chatbot/internal/chat"
)

const maxChatBodySize = 1 << 20 // 1MB

// Processor is the conversation pipeline behind the API.
type Processor interface {
	Process(ctx context.Context, message string, history []chat.Turn) (string, []chat.Turn)
}

// Deps holds dependencies for the HTTP handler.
type Deps struct {
	Chat  Processor
	Token string // empty disables bearer auth
}

// ChatRequest is the body of POST /chat. History carries the caller's
// conversation so far; the server holds no session state.
type ChatRequest struct {
	Message string      `json:"message"`
	History []chat.Turn `json:"history"`
}

// ChatResponse mirrors the process contract: an acknowledgement plus the
// updated, trimmed history.
type ChatResponse struct {
	Ack     string      `json:"ack"`
	History []chat.Turn `json:"history"`
}

// NewHandler builds the HTTP router.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Group(func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/chat", handleChat(deps))
	})

	return r
}

func handleChat(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxChatBodySize)
		defer r.Body.Close()

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if req.Message == "" {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "message is required")
			return
		}

		ack, history := deps.Chat.Process(r.Context(), req.Message, req.History)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ChatResponse{Ack: ack, History: history})
	}
}

func httpError(w http.ResponseWriter, code int, errType string, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	msg := fmt.Sprintf(format, args...)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    errType,
		},
	})
}
