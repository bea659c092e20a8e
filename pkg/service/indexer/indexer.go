// Package indexer extracts clean text from stored artifacts or
// in-memory chunks, requests embeddings, and upserts entries into the
// vector store. It tracks what is already indexed so unchanged content
// is never re-embedded.
package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/utils/frontmatter"
	"github.com/mnemo-lab/mnemo/pkg/utils/logging"
)

// ProgressFunc receives the running progress of an indexing run. It is
// invoked at least once per processed file.
type ProgressFunc func(progress model.IndexProgress)

// Indexer is the sole writer of the vector store. Files are processed
// strictly one at a time so progress reporting and error accounting
// stay ordered and deterministic.
type Indexer struct {
	store    interfaces.VectorStore
	provider interfaces.EmbeddingProvider
}

// New creates an indexer over the given store and embedding provider
func New(store interfaces.VectorStore, provider interfaces.EmbeddingProvider) *Indexer {
	return &Indexer{
		store:    store,
		provider: provider,
	}
}

// Option configures a single indexing run
type Option func(*runConfig)

type runConfig struct {
	onProgress ProgressFunc
}

// WithProgress registers a progress callback for the run
func WithProgress(fn ProgressFunc) Option {
	return func(c *runConfig) {
		c.onProgress = fn
	}
}

// IndexAll enumerates markdown files under the decisions, gotchas and
// conversations subdirectories of root's memory directory and indexes
// each. Per-file failures increment Errors without aborting the batch;
// Indexed + Skipped + Errors always equals the number of candidates.
func (x *Indexer) IndexAll(ctx context.Context, root string, opts ...Option) (*model.IndexResult, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	candidates, err := x.enumerate(root)
	if err != nil {
		return nil, err
	}

	result := &model.IndexResult{}
	for _, c := range candidates {
		indexed, err := x.isIndexedFile(ctx, root, c.path)
		if err == nil && indexed {
			result.Skipped++
		} else {
			fr := x.indexOne(ctx, root, c.path, c.entryType)
			if fr.Success {
				result.Indexed++
			} else {
				result.Errors++
				logging.From(ctx).Warn("failed to index file",
					"path", c.path, "reason", fr.Reason)
			}
		}

		if cfg.onProgress != nil {
			cfg.onProgress(model.IndexProgress{
				Indexed: result.Indexed,
				Total:   len(candidates),
			})
		}
	}

	return result, nil
}

// IndexFile indexes a single file beneath root, used for incremental
// updates. Re-indexing a file whose content changed produces a fresh
// insert; failures degrade to a non-throwing result.
func (x *Indexer) IndexFile(ctx context.Context, root, path string) (*model.FileResult, error) {
	entryType := entryTypeForPath(path)
	return x.indexOne(ctx, root, path, entryType), nil
}

// IndexChunk indexes an in-memory chunk directly, bypassing the
// filesystem. The chunk's text is embedded verbatim.
func (x *Indexer) IndexChunk(ctx context.Context, root string, chunk *model.Chunk) (*model.FileResult, error) {
	text := chunk.PlainText()

	embedding, err := x.embed(ctx, text)
	if err != nil {
		return &model.FileResult{Success: false, Reason: "embedding unavailable"}, nil
	}

	entry := &model.VectorEntry{
		ID:         model.NewVectorEntryID(root, "chunk:"+string(chunk.ID)),
		Text:       text,
		Type:       types.EntryTypeConversation,
		SourceFile: "chunk:" + string(chunk.ID),
		Workspace:  root,
		Timestamp:  chunk.StartTime,
		Embedding:  embedding,
	}

	if err := x.store.Insert(ctx, entry); err != nil {
		return &model.FileResult{Success: false, Reason: "store insert failed"}, nil
	}
	return &model.FileResult{Success: true}, nil
}

// IsIndexed reports whether the file's current content already has a
// corresponding, unchanged entry in the store
func (x *Indexer) IsIndexed(ctx context.Context, root, path string) (bool, error) {
	return x.isIndexedFile(ctx, root, path)
}

// Rebuild clears the store, then re-runs the equivalent of IndexAll
func (x *Indexer) Rebuild(ctx context.Context, root string, opts ...Option) (*model.IndexResult, error) {
	if err := x.store.Rebuild(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to clear vector store")
	}
	return x.IndexAll(ctx, root, opts...)
}

type candidate struct {
	path      string
	entryType types.EntryType
}

// enumerate lists candidate markdown files in canonical order
func (x *Indexer) enumerate(root string) ([]candidate, error) {
	var candidates []candidate

	for _, entryType := range types.AllEntryTypes() {
		dir := filepath.Join(root, "memory", entryType.DirName())
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to read memory directory", goerr.V("dir", dir))
		}

		var files []string
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
				continue
			}
			files = append(files, filepath.Join(dir, e.Name()))
		}
		sort.Strings(files)

		for _, f := range files {
			candidates = append(candidates, candidate{path: f, entryType: entryType})
		}
	}

	return candidates, nil
}

// indexOne extracts, embeds and inserts a single file. All failure
// modes degrade to a FileResult; nothing panics on malformed input.
func (x *Indexer) indexOne(ctx context.Context, root, path string, entryType types.EntryType) *model.FileResult {
	raw, err := os.ReadFile(path)
	if err != nil {
		return &model.FileResult{Success: false, Reason: "unreadable file"}
	}

	if !utf8.Valid(raw) {
		return &model.FileResult{Success: false, Reason: "binary content"}
	}

	content := string(raw)
	_, body := frontmatter.Split(content)

	text := cleanText(body)
	if text == "" {
		return &model.FileResult{Success: false, Reason: "empty content"}
	}

	embedding, err := x.embed(ctx, text)
	if err != nil {
		return &model.FileResult{Success: false, Reason: "embedding unavailable"}
	}

	sourceFile := relPath(root, path)

	timestamp := time.Now().UTC()
	if info, err := os.Stat(path); err == nil {
		timestamp = info.ModTime().UTC()
	}

	entry := &model.VectorEntry{
		ID:         model.NewVectorEntryID(root, sourceFile),
		Text:       text,
		Type:       entryType,
		SourceFile: sourceFile,
		Workspace:  root,
		Timestamp:  timestamp,
		Embedding:  embedding,
		Permanent:  frontmatter.IsPermanent(content),
	}

	if err := x.store.Insert(ctx, entry); err != nil {
		return &model.FileResult{Success: false, Reason: "store insert failed"}
	}
	return &model.FileResult{Success: true}
}

// isIndexedFile matches by SourceFile and unchanged extracted text
func (x *Indexer) isIndexedFile(ctx context.Context, root, path string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, goerr.Wrap(err, "failed to read file", goerr.V("path", path))
	}
	if !utf8.Valid(raw) {
		return false, nil
	}

	_, body := frontmatter.Split(string(raw))
	text := cleanText(body)
	sourceFile := relPath(root, path)

	entries, err := x.store.GetAll(ctx)
	if err != nil {
		return false, goerr.Wrap(err, "failed to list vector entries")
	}

	for _, e := range entries {
		if e.SourceFile == sourceFile && e.Text == text {
			return true, nil
		}
	}
	return false, nil
}

// embed requests an embedding, treating an unavailable provider or an
// empty vector as ErrProviderUnavailable
func (x *Indexer) embed(ctx context.Context, text string) ([]float32, error) {
	if x.provider == nil {
		return nil, interfaces.ErrProviderUnavailable
	}

	embedding, err := x.provider.Embed(ctx, text)
	if err != nil {
		if errors.Is(err, interfaces.ErrProviderUnavailable) {
			return nil, err
		}
		return nil, goerr.Wrap(interfaces.ErrProviderUnavailable, "embedding call failed")
	}
	if len(embedding) == 0 {
		return nil, interfaces.ErrProviderUnavailable
	}
	return embedding, nil
}

func entryTypeForPath(path string) types.EntryType {
	dir := filepath.Base(filepath.Dir(path))
	if t, ok := types.EntryTypeFromDir(dir); ok {
		return t
	}
	return types.EntryTypeConversation
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
