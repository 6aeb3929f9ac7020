package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivo-gavran/wikiart-chatbot/internal/storage"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the exchange log",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		exchanges, err := store.ListExchanges(limit)
		if err != nil {
			return err
		}
		total, err := store.CountExchanges()
		if err != nil {
			return err
		}
		if len(exchanges) == 0 {
			fmt.Println("No exchanges recorded.")
			return nil
		}

		for _, e := range exchanges {
			question := e.Question
			if len(question) > 80 {
				question = question[:80] + "..."
			}
			fmt.Printf("%s  %s  %-18s %s\n",
				colorize(colorCyan, e.ID[:8]),
				e.CreatedAt.Format("2006-01-02 15:04:05"),
				e.Status,
				question,
			)
		}
		fmt.Printf("showing %d of %d exchanges\n", len(exchanges), total)
		return nil
	},
}

var logShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single exchange",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.GetExchange(args[0])
		if err != nil {
			return err
		}

		out := map[string]any{
			"id":         e.ID,
			"created_at": e.CreatedAt,
			"question":   e.Question,
			"answer":     e.Answer,
			"status":     e.Status,
		}
		var artworks []string
		if json.Unmarshal([]byte(e.Artworks), &artworks) == nil {
			out["artworks"] = artworks
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.Storage.DataDir)
}

func init() {
	logListCmd.Flags().Int("limit", 20, "maximum number of exchanges to list")
	logCmd.AddCommand(logListCmd)
	logCmd.AddCommand(logShowCmd)
}
