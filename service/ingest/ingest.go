package ingest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/chunk"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/vectorstore"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/extract"
)

// FileUpload describes one uploaded file already staged on local disk.
type FileUpload struct {
	Name      string
	Size      int64
	Extension string
	LocalPath string
}

// Service turns uploaded files into indexed chunks: extract text, split
// into token-bounded chunks, upsert one point per chunk into the user's
// collection.
type Service struct {
	splitter *chunk.Splitter
	store    *vectorstore.Client
}

func NewService(splitter *chunk.Splitter, store *vectorstore.Client) *Service {
	return &Service{
		splitter: splitter,
		store:    store,
	}
}

// IndexFile indexes a single file and returns the number of chunks
// written. A file that extracts to no text indexes zero chunks without
// touching the store.
func (s *Service) IndexFile(ctx context.Context, userID string, upload FileUpload) (int, *model.Error) {
	if userID == "" {
		return 0, model.NewError(model.ErrorParams, fmt.Errorf("userId is required"))
	}

	text, err := extract.Extract(upload.LocalPath, upload.Extension)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedType) {
			return 0, model.NewError(model.ErrorExtraction, fmt.Errorf("file %s: %w", upload.Name, err))
		}
		return 0, model.NewError(model.ErrorExtraction, fmt.Errorf("failed to extract %s: %w", upload.Name, err))
	}

	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		log.Warnf("file %s extracted to no indexable text", upload.Name)
		return 0, nil
	}

	points := make([]vectorstore.Point, len(chunks))
	for i, chunkText := range chunks {
		points[i] = vectorstore.Point{
			ID:   uuid.NewString(),
			Text: chunkText,
			Payload: map[string]interface{}{
				"page_content":   chunkText,
				"token_count":    s.splitter.CountTokens(chunkText),
				"file_name":      upload.Name,
				"file_size":      upload.Size,
				"file_extension": upload.Extension,
				"file_type":      upload.Extension,
			},
		}
	}

	if err := s.store.Upsert(ctx, userID, points); err != nil {
		return 0, model.NewError(model.ErrorIndexing, fmt.Errorf("failed to index %s for user %s: %w", upload.Name, userID, err))
	}

	log.Infof("indexed file %s: %d chunks into collection %s", upload.Name, len(points), userID)
	return len(points), nil
}

// IndexFiles indexes uploads in order. The first failing file aborts
// the remainder; files indexed before the failure stay indexed. The
// returned names cover the files indexed successfully.
func (s *Service) IndexFiles(ctx context.Context, userID string, uploads []FileUpload) ([]string, *model.Error) {
	indexed := make([]string, 0, len(uploads))

	for _, upload := range uploads {
		if _, err := s.IndexFile(ctx, userID, upload); err != nil {
			return indexed, err
		}
		indexed = append(indexed, upload.Name)
	}

	return indexed, nil
}
