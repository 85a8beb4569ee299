package embedding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type fakeEmbeddingsAPI struct {
	server   *httptest.Server
	requests int
	inputs   [][]string
}

func newFakeEmbeddingsAPI() *fakeEmbeddingsAPI {
	f := &fakeEmbeddingsAPI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests++

		var req struct {
			Input []string `json:"input"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.inputs = append(f.inputs, req.Input)

		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			data[i] = item{Object: "embedding", Index: i, Embedding: []float64{float64(i), 1, 2}}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"object": "list",
			"model":  "test-embedding-model",
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
	return f
}

type fakeRemoteCache struct {
	store map[string][]float64
	gets  int
	puts  int
}

func (c *fakeRemoteCache) Get(ctx context.Context, text string) ([]float64, bool) {
	c.gets++
	vector, ok := c.store[text]
	return vector, ok
}

func (c *fakeRemoteCache) Put(ctx context.Context, text string, vector []float64) {
	c.puts++
	c.store[text] = vector
}

type EmbeddingClientTest struct {
	suite.Suite

	fake   *fakeEmbeddingsAPI
	client *Client
}

func (s *EmbeddingClientTest) SetupTest() {
	s.fake = newFakeEmbeddingsAPI()

	client, err := NewClient(&Config{
		APIKey:    "test-key",
		BaseURL:   s.fake.server.URL,
		ModelName: "test-embedding-model",
	}, nil)
	s.Require().NoError(err)
	s.client = client
}

func (s *EmbeddingClientTest) TearDownTest() {
	s.fake.server.Close()
}

func (s *EmbeddingClientTest) TestNewClientRequiresKeyAndModel() {
	_, err := NewClient(&Config{ModelName: "m"}, nil)
	s.Error(err)

	_, err = NewClient(&Config{APIKey: "k"}, nil)
	s.Error(err)
}

func (s *EmbeddingClientTest) TestGetTextEmbedding() {
	vector, err := s.client.GetTextEmbedding(context.Background(), "hello")
	s.Require().NoError(err)

	s.Equal([]float64{0, 1, 2}, vector)
	s.Equal(1, s.fake.requests)
}

func (s *EmbeddingClientTest) TestGetTextEmbeddingBatchRejectsEmpty() {
	_, err := s.client.GetTextEmbeddingBatch(context.Background(), nil)
	s.Error(err)
}

func (s *EmbeddingClientTest) TestLRUCacheAvoidsSecondRequest() {
	_, err := s.client.GetTextEmbedding(context.Background(), "cached text")
	s.Require().NoError(err)
	_, err = s.client.GetTextEmbedding(context.Background(), "cached text")
	s.Require().NoError(err)

	s.Equal(1, s.fake.requests)

	metrics := s.client.GetMetrics()
	s.Equal(int64(2), metrics.QueryCount)
	s.Equal(int64(1), metrics.IngestCount)
}

func (s *EmbeddingClientTest) TestBatchOnlyRequestsMisses() {
	_, err := s.client.GetTextEmbedding(context.Background(), "already cached")
	s.Require().NoError(err)

	vectors, err := s.client.GetTextEmbeddingBatch(context.Background(), []string{"already cached", "fresh text"})
	s.Require().NoError(err)
	s.Len(vectors, 2)

	s.Require().Equal(2, s.fake.requests)
	s.Equal([]string{"fresh text"}, s.fake.inputs[1])
}

func (s *EmbeddingClientTest) TestBatchSplitting() {
	texts := make([]string, MaxBatchSize+1)
	for i := range texts {
		texts[i] = fmt.Sprintf("text %d", i)
	}

	vectors, err := s.client.GetTextEmbeddingBatch(context.Background(), texts)
	s.Require().NoError(err)

	s.Len(vectors, MaxBatchSize+1)
	s.Equal(2, s.fake.requests)
	s.Len(s.fake.inputs[0], MaxBatchSize)
	s.Len(s.fake.inputs[1], 1)
}

func (s *EmbeddingClientTest) TestRemoteCacheConsultedOnLRUMiss() {
	remote := &fakeRemoteCache{store: map[string][]float64{
		"shared text": {9, 9, 9},
	}}

	client, err := NewClient(&Config{
		APIKey:    "test-key",
		BaseURL:   s.fake.server.URL,
		ModelName: "test-embedding-model",
	}, remote)
	s.Require().NoError(err)

	vector, err := client.GetTextEmbedding(context.Background(), "shared text")
	s.Require().NoError(err)

	s.Equal([]float64{9, 9, 9}, vector)
	s.Zero(s.fake.requests)
	s.Equal(1, remote.gets)
}

func (s *EmbeddingClientTest) TestFreshEmbeddingsWrittenToRemoteCache() {
	remote := &fakeRemoteCache{store: map[string][]float64{}}

	client, err := NewClient(&Config{
		APIKey:    "test-key",
		BaseURL:   s.fake.server.URL,
		ModelName: "test-embedding-model",
	}, remote)
	s.Require().NoError(err)

	_, err = client.GetTextEmbedding(context.Background(), "new text")
	s.Require().NoError(err)

	s.Equal(1, remote.puts)
	s.Contains(remote.store, "new text")
}

func TestEmbeddingClient(t *testing.T) {
	suite.Run(t, new(EmbeddingClientTest))
}
