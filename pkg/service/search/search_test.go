package search_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/repository/memory"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding/mock"
	"github.com/mnemo-lab/mnemo/pkg/service/indexer"
	"github.com/mnemo-lab/mnemo/pkg/service/recall"
	"github.com/mnemo-lab/mnemo/pkg/service/search"
)

func writeMemoryFile(t *testing.T, root, dir, name, content string) {
	t.Helper()
	path := filepath.Join(root, "memory", dir, name)
	gt.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func seedArtifacts(t *testing.T, root string) {
	t.Helper()
	writeMemoryFile(t, root, "decisions", "2026-08-01-use-postgres.md",
		"# Use Postgres\n\nWe decided to use Postgres over SQLite for production.\n")
	writeMemoryFile(t, root, "gotchas", "2026-08-02-migration-locks.md",
		"# Migration locks\n\nSchema migration takes a table lock on Postgres.\n")
	writeMemoryFile(t, root, "conversations", "2026-08-03-caching.md",
		"# Caching\n\nDiscussed cache TTLs and eviction.\n")
}

func TestSearchFileFallbackWithoutRecall(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seedArtifacts(t, root)

	svc := search.New(nil)
	result, err := svc.Search(ctx, root, "postgres migration")
	gt.NoError(t, err).Required()

	gt.Value(t, result.Source).Equal(types.SearchSourceFile)
	gt.Number(t, len(result.Results)).GreaterOrEqual(1)

	// Both-token file outranks single-token files
	gt.Value(t, result.Results[0].Score).Equal(1.0)
	gt.String(t, result.Results[0].Text).Contains("Migration locks")
}

func TestSearchVectorSource(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seedArtifacts(t, root)

	store := memory.New()
	embedder := mock.New()
	idx := indexer.New(store, embedder)
	_, err := idx.IndexAll(ctx, root)
	gt.NoError(t, err).Required()

	svc := search.New(recall.New(store, embedder))
	result, err := svc.Search(ctx, root, "postgres")
	gt.NoError(t, err).Required()

	gt.Value(t, result.Source).Equal(types.SearchSourceVector)
	gt.Array(t, result.Results).Length(3)
}

func TestSearchFallsBackOnRecallFailure(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seedArtifacts(t, root)

	store := memory.New()
	embedder := mock.New()
	embedder.Fail = true

	svc := search.New(recall.New(store, embedder))
	result, err := svc.Search(ctx, root, "postgres")
	gt.NoError(t, err).Required()

	// Provider failures degrade silently to the file scan
	gt.Value(t, result.Source).Equal(types.SearchSourceFile)
	gt.Number(t, len(result.Results)).GreaterOrEqual(1)
}

func TestSearchNoMatches(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seedArtifacts(t, root)

	svc := search.New(nil)
	result, err := svc.Search(ctx, root, "zanzibar")
	gt.NoError(t, err).Required()

	gt.Value(t, result.Source).Equal(types.SearchSourceFile)
	gt.Array(t, result.Results).Length(0)
}

func TestSearchEmptyWorkspace(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	svc := search.New(nil)
	result, err := svc.Search(ctx, root, "anything")
	gt.NoError(t, err).Required()
	gt.Array(t, result.Results).Length(0)
}

func TestSearchMaxResults(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	seedArtifacts(t, root)

	svc := search.New(nil, search.WithMaxResults(1))
	result, err := svc.Search(ctx, root, "postgres")
	gt.NoError(t, err).Required()
	gt.Array(t, result.Results).Length(1)
}

func TestSearchFallbackSnippetMultibyte(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	content := "# Notes\n\n" + strings.Repeat("é", 400) + " postgres tuning " + strings.Repeat("ü", 400) + "\n"
	writeMemoryFile(t, root, "conversations", "2026-08-10-accents.md", content)

	svc := search.New(nil)
	result, err := svc.Search(ctx, root, "postgres")
	gt.NoError(t, err).Required()

	gt.Value(t, result.Source).Equal(types.SearchSourceFile)
	gt.Number(t, len(result.Results)).GreaterOrEqual(1)
	for _, hit := range result.Results {
		gt.Bool(t, utf8.ValidString(hit.Text)).True()
	}
}
