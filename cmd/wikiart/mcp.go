package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/ivo-gavran/wikiart-chatbot/internal/api"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the artwork tools over MCP on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		s := api.NewMCPServer(api.MCPDeps{
			Searcher: a.retriever,
			Chat:     a.manager,
			TopK:     a.cfg.Chat.TopK,
		})

		return server.ServeStdio(s)
	},
}
