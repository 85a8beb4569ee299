package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmineMekki01/rag-app-prod-example/constant"
	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/vectorstore"
)

const DefaultTopK = 3

// Service answers "what do we know about this query" for one user: a
// similarity search over the user's collection, with the hits folded
// into an augmented prompt.
type Service struct {
	store *vectorstore.Client
	topK  int
}

func NewService(store *vectorstore.Client, topK int) *Service {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Service{
		store: store,
		topK:  topK,
	}
}

// Retrieve returns the ranked hits for the query. Zero hits is an
// error here; callers decide whether to absorb it.
func (s *Service) Retrieve(ctx context.Context, userID string, query string) ([]vectorstore.Hit, *model.Error) {
	if userID == "" || query == "" {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("userId and query are required"))
	}

	hits, err := s.store.Query(ctx, userID, query, s.topK)
	if err != nil {
		return nil, model.NewError(model.ErrorSearch, fmt.Errorf("failed to query collection %s: %w", userID, err))
	}

	if len(hits) == 0 {
		return nil, model.NewError(model.ErrorNoDocuments, fmt.Errorf("no documents in collection %s for query", userID))
	}

	return hits, nil
}

// Augment retrieves context for the query and folds it into the fixed
// prompt template, hits joined one per line in ranked order.
func (s *Service) Augment(ctx context.Context, userID string, query string) (string, *model.Error) {
	hits, err := s.Retrieve(ctx, userID, query)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(hits))
	for _, hit := range hits {
		lines = append(lines, hit.Text)
	}

	return fmt.Sprintf(constant.AugmentedQueryTemplate, query, strings.Join(lines, "\n")), nil
}
