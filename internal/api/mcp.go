package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/chat"
)

// MCPSearcher abstracts semantic artwork search for the MCP layer.
type MCPSearcher interface {
	Search(ctx context.Context, query string, k int) ([]catalog.Artwork, error)
}

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Searcher MCPSearcher
	Chat     Processor
	TopK     int
}

// NewMCPServer creates an MCP server exposing the artwork knowledge base
// as tools.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"wikiart-chatbot",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("WikiArt chatbot: semantic search and expert answers over an artwork metadata corpus."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("search_artworks",
			mcp.WithDescription("Semantically search the artwork corpus and return the closest matching records."),
			mcp.WithString("query", mcp.Description("Search query"), mcp.Required()),
			mcp.WithNumber("limit", mcp.Description("Maximum number of results (default 3)")),
		),
		mcpSearchArtworks(deps),
	)

	s.AddTool(
		mcp.NewTool("ask_art_expert",
			mcp.WithDescription("Ask a question about artworks; the answer is grounded in retrieved corpus records."),
			mcp.WithString("question", mcp.Description("The question to answer"), mcp.Required()),
		),
		mcpAskArtExpert(deps),
	)

	return s
}

func mcpSearchArtworks(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		limit := req.GetInt("limit", deps.TopK)
		if limit <= 0 {
			limit = 3
		}
		if limit > 50 {
			limit = 50
		}

		artworks, err := deps.Searcher.Search(ctx, query, limit)
		if err != nil {
			return mcpError(fmt.Sprintf("search failed: %v", err)), nil
		}
		if len(artworks) == 0 {
			return mcpText("[]"), nil
		}

		type artworkResult struct {
			Title       string `json:"title"`
			Artist      string `json:"artist"`
			Year        string `json:"year"`
			Style       string `json:"style"`
			Genre       string `json:"genre"`
			Description string `json:"description"`
		}

		results := make([]artworkResult, len(artworks))
		for i, a := range artworks {
			results[i] = artworkResult{
				Title:       a.Title,
				Artist:      a.Artist,
				Year:        a.Year,
				Style:       a.Style,
				Genre:       a.Genre,
				Description: a.Description,
			}
		}

		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpAskArtExpert(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcpError("question is required"), nil
		}

		// Each tool call is a fresh single-turn conversation.
		_, history := deps.Chat.Process(ctx, question, nil)
		if len(history) == 0 {
			return mcpError("no answer produced"), nil
		}

		last := history[len(history)-1]
		if last.Role != chat.RoleAssistant {
			return mcpError("no assistant reply in history"), nil
		}
		return mcpText(last.Content), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
