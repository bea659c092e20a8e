package recall_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mnemo-lab/mnemo/pkg/domain/interfaces"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/repository/memory"
	"github.com/mnemo-lab/mnemo/pkg/service/embedding/mock"
	"github.com/mnemo-lab/mnemo/pkg/service/recall"
)

func seedStore(t *testing.T, ctx context.Context, store *memory.VectorStore, embedder *mock.Embedder, texts map[string]types.EntryType) {
	t.Helper()
	for text, entryType := range texts {
		embedding, err := embedder.Embed(ctx, text)
		gt.NoError(t, err).Required()
		gt.NoError(t, store.Insert(ctx, &model.VectorEntry{
			ID:         model.NewVectorEntryID("ws", text),
			Text:       text,
			Type:       entryType,
			SourceFile: text,
			Workspace:  "ws",
			Embedding:  embedding,
		}))
	}
}

func TestRecallRanksExactMatchFirst(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	embedder := mock.New()

	seedStore(t, ctx, store, embedder, map[string]types.EntryType{
		"we use postgres for relational data": types.EntryTypeDecision,
		"timestamps must be UTC":              types.EntryTypeGotcha,
		"token refresh flow discussion":       types.EntryTypeConversation,
	})

	svc := recall.New(store, embedder)
	hits, err := svc.Recall(ctx, "we use postgres for relational data", 3)
	gt.NoError(t, err).Required()

	gt.Array(t, hits).Length(3)
	// Identical text embeds identically, so the top score is ~1.0
	gt.String(t, hits[0].Text).Contains("postgres")
	gt.Number(t, hits[0].Score).Greater(0.99)
	gt.Number(t, hits[1].Score).LessOrEqual(hits[0].Score)
}

func TestRecallLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	embedder := mock.New()

	seedStore(t, ctx, store, embedder, map[string]types.EntryType{
		"first entry":  types.EntryTypeDecision,
		"second entry": types.EntryTypeGotcha,
		"third entry":  types.EntryTypeConversation,
	})

	svc := recall.New(store, embedder)
	hits, err := svc.Recall(ctx, "entry", 2)
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(2)
}

func TestRecallEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := recall.New(memory.New(), mock.New())

	hits, err := svc.Recall(ctx, "anything", 5)
	gt.NoError(t, err).Required()
	gt.Array(t, hits).Length(0)
}

func TestRecallNilProvider(t *testing.T) {
	ctx := context.Background()
	svc := recall.New(memory.New(), nil)

	_, err := svc.Recall(ctx, "anything", 5)
	gt.Error(t, err).Is(interfaces.ErrProviderUnavailable)
}

func TestRecallProviderFailure(t *testing.T) {
	ctx := context.Background()
	embedder := mock.New()
	embedder.Fail = true
	svc := recall.New(memory.New(), embedder)

	_, err := svc.Recall(ctx, "anything", 5)
	gt.Error(t, err).Is(interfaces.ErrProviderUnavailable)
}
