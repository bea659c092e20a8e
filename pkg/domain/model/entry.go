package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
)

// EmbeddingDimension is the fixed length of embedding vectors stored in
// the vector store. It must match the vector index configuration.
const EmbeddingDimension = 768

// entryNamespace is the UUID namespace for stable vector entry IDs
var entryNamespace = uuid.MustParse("5f7b3a64-9c1d-4e8a-b2f0-6d1a4c3e9b70")

// VectorEntryID identifies a vector store entry
type VectorEntryID string

// NewVectorEntryID derives a stable entry ID from the entry's source
// identity so that re-indexing the same source is idempotent.
func NewVectorEntryID(workspace, sourceFile string) VectorEntryID {
	return VectorEntryID(uuid.NewSHA1(entryNamespace, []byte(workspace+"\x00"+sourceFile)).String())
}

// VectorEntry is the record shape passed across the vector store
// boundary. The indexer is the sole writer; the store owns entries once
// inserted.
type VectorEntry struct {
	ID         VectorEntryID
	Text       string
	Type       types.EntryType
	SourceFile string
	Workspace  string
	Timestamp  time.Time
	Embedding  []float32
	Permanent  bool
}
