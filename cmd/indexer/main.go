package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"booking-orchestrator/internal/di"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/config"
	"booking-orchestrator/internal/infra/logger"
	"booking-orchestrator/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "indexer [files...]",
		Short: "Chunk, embed and index corpus documents",
		Long: "Indexes markdown and text files as-is. JSON files must hold an " +
			"array of flat objects; each object becomes one document.",
		Args: cobra.MinimumNArgs(1),
		RunE: runIndex,
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()
	log := logger.New()

	pool, err := infra.NewPostgresDB(ctx, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	container := di.NewIndexerContainer(cfg, pool, log)

	total := 0
	for _, path := range args {
		docs, err := loadDocuments(path)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			n, err := container.Indexer.Index(ctx, doc)
			if err != nil {
				return fmt.Errorf("failed to index %s: %w", doc.Source, err)
			}
			total += n
			log.Info("document indexed",
				slog.String("source", doc.Source),
				slog.Int("passages", n))
		}
	}

	log.Info("indexing complete", slog.Int("total_passages", total))
	return nil
}

func loadDocuments(path string) ([]usecase.CorpusDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	base := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return jsonDocuments(base, content)
	}

	return []usecase.CorpusDocument{{Source: base, Body: string(content)}}, nil
}

// jsonDocuments renders each record of a JSON array as one key-value text
// document, so structured reference data like hotel catalogs becomes
// searchable prose.
func jsonDocuments(source string, content []byte) ([]usecase.CorpusDocument, error) {
	var records []map[string]any
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s as an array of objects: %w", source, err)
	}

	docs := make([]usecase.CorpusDocument, 0, len(records))
	for i, record := range records {
		keys := make([]string, 0, len(record))
		for key := range record {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var sb strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&sb, "%s: %v\n", key, record[key])
		}
		docs = append(docs, usecase.CorpusDocument{
			Source: fmt.Sprintf("%s#%d", source, i),
			Body:   sb.String(),
		})
	}
	return docs, nil
}
