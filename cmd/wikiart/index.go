package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ivo-gavran/wikiart-chatbot/internal/catalog"
	"github.com/ivo-gavran/wikiart-chatbot/internal/index"
	"github.com/ivo-gavran/wikiart-chatbot/internal/ollama"
	"github.com/ivo-gavran/wikiart-chatbot/internal/retrieval"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or rebuild the vector index from the metadata CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := ollama.New(cfg.Ollama.BaseURL, cfg.Ollama.Timeout)
		if err := ollama.EnsureReady(ctx, client, cfg.Ollama.Model, cfg.Ollama.EmbedModel, os.Stderr); err != nil {
			return err
		}

		cat, err := catalog.Load(cfg.Storage.MetadataPath)
		if err != nil {
			return err
		}
		printStatus("Catalog", "%d artworks from %s", cat.Len(), cfg.Storage.MetadataPath)

		embedder := retrieval.NewEmbedder(client, cfg.Ollama.EmbedModel)
		builder := retrieval.NewBuilder(embedder, cfg.Storage.IndexPath)

		var idx *index.Flat
		if force {
			printStep("Rebuilding index...")
			idx, err = builder.Rebuild(ctx, cat)
		} else {
			idx, err = builder.EnsureIndex(ctx, cat)
		}
		if err != nil {
			return err
		}

		printSuccess("Index ready: %d vectors, dim %d (%s)", idx.Len(), idx.Dim(), cfg.Storage.IndexPath)
		return nil
	},
}

func init() {
	indexCmd.Flags().Bool("force", false, "rebuild even if a persisted index exists")
}
