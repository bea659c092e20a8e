// Package firestore provides a Firestore-backed vector store using
// native vector search (FindNearest over a vector index).
package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when an entry does not exist in the store
var ErrNotFound = goerr.New("entry not found")

const defaultCollection = "vector_entries"

// entryDoc is the Firestore document representation of a VectorEntry.
// Embedding is stored as firestore.Vector32 for FindNearest search.
type entryDoc struct {
	ID         string             `firestore:"ID"`
	Text       string             `firestore:"Text"`
	Type       string             `firestore:"Type"`
	SourceFile string             `firestore:"SourceFile"`
	Workspace  string             `firestore:"Workspace"`
	Timestamp  time.Time          `firestore:"Timestamp"`
	Embedding  firestore.Vector32 `firestore:"Embedding,omitempty"`
	Permanent  bool               `firestore:"Permanent"`
}

func toEntryDoc(e *model.VectorEntry) *entryDoc {
	doc := &entryDoc{
		ID:         string(e.ID),
		Text:       e.Text,
		Type:       e.Type.String(),
		SourceFile: e.SourceFile,
		Workspace:  e.Workspace,
		Timestamp:  e.Timestamp,
		Permanent:  e.Permanent,
	}
	if len(e.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(e.Embedding)
	}
	return doc
}

func fromEntryDoc(d *entryDoc) *model.VectorEntry {
	e := &model.VectorEntry{
		ID:         model.VectorEntryID(d.ID),
		Text:       d.Text,
		Type:       types.EntryType(d.Type),
		SourceFile: d.SourceFile,
		Workspace:  d.Workspace,
		Timestamp:  d.Timestamp,
		Permanent:  d.Permanent,
	}
	if len(d.Embedding) > 0 {
		e.Embedding = []float32(d.Embedding)
	}
	return e
}

// VectorStore is a Firestore-backed implementation of
// interfaces.VectorStore
type VectorStore struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.VectorStore = &VectorStore{}

// Option configures the VectorStore
type Option func(*VectorStore)

// WithCollection overrides the collection name
func WithCollection(name string) Option {
	return func(s *VectorStore) {
		s.collection = name
	}
}

// New creates a Firestore vector store. The caller owns Close.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*VectorStore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	s := &VectorStore{
		client:     client,
		collection: defaultCollection,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Close releases the underlying client
func (s *VectorStore) Close() error {
	return s.client.Close()
}

func (s *VectorStore) entries() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *VectorStore) Insert(ctx context.Context, entry *model.VectorEntry) error {
	if entry.ID == "" {
		return goerr.New("entry ID is required")
	}

	docRef := s.entries().Doc(string(entry.ID))
	if _, err := docRef.Set(ctx, toEntryDoc(entry)); err != nil {
		return goerr.Wrap(err, "failed to insert vector entry", goerr.V("id", entry.ID))
	}
	return nil
}

func (s *VectorStore) GetAll(ctx context.Context) ([]*model.VectorEntry, error) {
	iter := s.entries().OrderBy("SourceFile", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	result := make([]*model.VectorEntry, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector entries")
		}

		var d entryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal vector entry")
		}
		result = append(result, fromEntryDoc(&d))
	}

	return result, nil
}

func (s *VectorStore) Delete(ctx context.Context, id model.VectorEntryID) error {
	docRef := s.entries().Doc(string(id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "entry not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get vector entry", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete vector entry", goerr.V("id", id))
	}
	return nil
}

// Rebuild deletes every entry in batches as the full-rebuild signal
func (s *VectorStore) Rebuild(ctx context.Context) error {
	bulk := s.client.BulkWriter(ctx)

	iter := s.entries().Select().Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate entries for rebuild")
		}
		if _, err := bulk.Delete(doc.Ref); err != nil {
			return goerr.Wrap(err, "failed to schedule entry deletion")
		}
	}

	bulk.End()
	return nil
}

func (s *VectorStore) Count(ctx context.Context) (int, error) {
	iter := s.entries().Select().Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count vector entries")
		}
		count++
	}

	return count, nil
}

func (s *VectorStore) FindNearest(ctx context.Context, embedding []float32, limit int) ([]*model.VectorEntry, error) {
	vq := s.entries().FindNearest("Embedding", firestore.Vector32(embedding), limit,
		firestore.DistanceMeasureCosine, nil)

	iter := vq.Documents(ctx)
	defer iter.Stop()

	result := make([]*model.VectorEntry, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate vector search results")
		}

		var d entryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal vector search result")
		}
		result = append(result, fromEntryDoc(&d))
	}

	return result, nil
}
