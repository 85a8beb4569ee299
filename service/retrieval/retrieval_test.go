package retrieval

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmineMekki01/rag-app-prod-example/model"
	"github.com/AmineMekki01/rag-app-prod-example/pkg/clients/vectorstore"
)

type fixedEmbedder struct{}

func (fixedEmbedder) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	return []float64{1, 0, 0}, nil
}

func (fixedEmbedder) GetTextEmbeddingBatch(ctx context.Context, texts []string) ([][]float64, error) {
	vectors := make([][]float64, len(texts))
	for i := range texts {
		vectors[i] = []float64{1, 0, 0}
	}
	return vectors, nil
}

func newTestService(t *testing.T, searchResponse string) (*Service, func()) {
	return newTestServiceWithStatus(t, http.StatusOK, searchResponse)
}

func newTestServiceWithStatus(t *testing.T, status int, searchResponse string) (*Service, func()) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(searchResponse))
	}))

	store := vectorstore.NewClient(&vectorstore.Config{Addr: server.URL, Dimension: 3}, fixedEmbedder{})
	return NewService(store, DefaultTopK), server.Close
}

func TestRetrieveRequiresParams(t *testing.T) {
	service, closeServer := newTestService(t, `{"result":[]}`)
	defer closeServer()

	_, err := service.Retrieve(context.Background(), "", "query")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorParams, err.Code)

	_, err = service.Retrieve(context.Background(), "user-1", "")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorParams, err.Code)
}

func TestRetrieveNoDocuments(t *testing.T) {
	service, closeServer := newTestService(t, `{"result":[]}`)
	defer closeServer()

	_, err := service.Retrieve(context.Background(), "user-1", "anything")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorNoDocuments, err.Code)
}

func TestRetrieveReturnsRankedHits(t *testing.T) {
	service, closeServer := newTestService(t, `{"result":[
		{"id":"a","score":0.9,"payload":{"page_content":"first"}},
		{"id":"b","score":0.4,"payload":{"page_content":"second"}}
	]}`)
	defer closeServer()

	hits, err := service.Retrieve(context.Background(), "user-1", "anything")
	require.Nil(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].Text)
	assert.Equal(t, "second", hits[1].Text)
}

func TestAugmentBuildsPrompt(t *testing.T) {
	service, closeServer := newTestService(t, `{"result":[
		{"id":"a","score":0.9,"payload":{"page_content":"cats purr"}},
		{"id":"b","score":0.4,"payload":{"document":"dogs bark"}}
	]}`)
	defer closeServer()

	augmented, err := service.Augment(context.Background(), "user-1", "what do animals do")
	require.Nil(t, err)

	assert.Contains(t, augmented, "QUERY:\nwhat do animals do")
	assert.Contains(t, augmented, "CONTEXT:\ncats purr\ndogs bark")
	assert.Contains(t, augmented, "Answer based only on the context")
}

func TestRetrieveMissingCollectionIsNoDocuments(t *testing.T) {
	service, closeServer := newTestServiceWithStatus(t, http.StatusNotFound,
		`{"status":{"error":"Collection doesn't exist"}}`)
	defer closeServer()

	_, err := service.Retrieve(context.Background(), "never-uploaded-user", "anything")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorNoDocuments, err.Code)
}

func TestRetrieveSearchFailure(t *testing.T) {
	service, closeServer := newTestServiceWithStatus(t, http.StatusInternalServerError,
		`{"status":{"error":"service unavailable"}}`)
	defer closeServer()

	_, err := service.Retrieve(context.Background(), "user-1", "anything")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorSearch, err.Code)
}

func TestAugmentPropagatesNoDocuments(t *testing.T) {
	service, closeServer := newTestService(t, `{"result":[]}`)
	defer closeServer()

	_, err := service.Augment(context.Background(), "user-1", "anything")
	require.NotNil(t, err)
	assert.Equal(t, model.ErrorNoDocuments, err.Code)
}
