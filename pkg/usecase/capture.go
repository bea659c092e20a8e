package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mnemo-lab/mnemo/pkg/domain/model"
	"github.com/mnemo-lab/mnemo/pkg/domain/types"
	"github.com/mnemo-lab/mnemo/pkg/utils/logging"
)

// Capture runs the full ingestion pipeline for one batch of exchanges:
// guard checks, segmentation into chunks, decision classification,
// artifact writing and vector indexing. Captured counts the exchanges
// accepted by the guard; a fully deduplicated batch yields zero.
func (uc *UseCases) Capture(ctx context.Context, projectID types.ProjectID, exchanges []*model.Exchange) (*model.CaptureResult, error) {
	project, err := uc.registry.Get(projectID)
	if err != nil {
		return nil, err
	}

	fresh, deduplicated, err := uc.guard.Admit(projectID, exchanges)
	if err != nil {
		return nil, err
	}
	if len(fresh) == 0 {
		return &model.CaptureResult{Captured: 0, Deduplicated: deduplicated}, nil
	}

	chunks := uc.chunker.Chunk(fresh)
	logger := logging.From(ctx)

	for _, chunk := range chunks {
		path, err := uc.writer.WriteChunk(project.Root, chunk)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to write chunk artifact",
				goerr.V("project_id", projectID), goerr.V("chunk_id", chunk.ID))
		}
		logger.Debug("wrote conversation chunk", "path", path, "chunk_id", chunk.ID)

		if err := uc.writeDecisions(project.Root, chunk); err != nil {
			return nil, err
		}

		// Indexing is best-effort: an unavailable embedding provider
		// must not fail the capture, the artifact is already on disk
		if fr, err := uc.indexer.IndexChunk(ctx, project.Root, chunk); err != nil {
			logger.Warn("chunk indexing failed", "chunk_id", chunk.ID, "error", err.Error())
		} else if !fr.Success {
			logger.Debug("chunk not indexed", "chunk_id", chunk.ID, "reason", fr.Reason)
		}
	}

	return &model.CaptureResult{
		Captured:     len(fresh),
		Deduplicated: deduplicated,
	}, nil
}

// writeDecisions renders the chunk's extracted decisions as detail
// artifacts. Team-scoped decisions get their own record; personal ones
// stay only in the conversation artifact.
func (uc *UseCases) writeDecisions(root string, chunk *model.Chunk) error {
	for _, raw := range chunk.Metadata.Decisions {
		item := &model.MemoryItem{
			Kind:    types.MemoryKindDecision,
			Raw:     raw,
			Context: chunk.Title,
		}
		if uc.classifier.Classify(item) != types.ScopeTeam {
			continue
		}

		dec := &model.Decision{
			Title:     raw,
			Reasoning: raw,
			Context:   chunk.Title,
			Date:      chunk.StartTime,
		}
		if _, err := uc.writer.WriteDecision(root, dec); err != nil {
			return goerr.Wrap(err, "failed to write decision artifact",
				goerr.V("chunk_id", chunk.ID))
		}
	}
	return nil
}
