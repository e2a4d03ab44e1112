package main

import (
	"context"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"portfolio-chat-be/internal/config"
	"portfolio-chat-be/internal/repository/implementation"
	"portfolio-chat-be/pkg/database"
	"portfolio-chat-be/pkg/embedding"
	"portfolio-chat-be/pkg/knowledge"

	"github.com/fatih/color"
)

// ingest walks a content directory and (re)embeds every markdown file into
// knowledge_chunks. Each file's path relative to the root is its source key.
func main() {
	root := flag.String("dir", "content", "directory of markdown files to ingest")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, true); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	embedder := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	ingester := knowledge.NewIngester(embedder, implementation.NewKnowledgeChunkRepository(db))

	ctx := context.Background()
	files, chunks, failed := 0, 0, 0

	err = filepath.WalkDir(*root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			color.Red("  ✗ %s: %v", path, err)
			failed++
			return nil
		}

		source, _ := filepath.Rel(*root, path)
		n, err := ingester.Ingest(ctx, filepath.ToSlash(source), string(content))
		if err != nil {
			color.Red("  ✗ %s: %v", source, err)
			failed++
			return nil
		}

		color.Green("  ✓ %s (%d chunks)", source, n)
		files++
		chunks += n
		return nil
	})
	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}

	color.Cyan("Ingested %d files into %d chunks", files, chunks)
	if failed > 0 {
		color.Yellow("%d files failed", failed)
		os.Exit(1)
	}
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".mdx" || ext == ".mdoc"
}
