package embedding

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxBatchSize caps how many texts go into one embeddings request
	MaxBatchSize = 64
	// MaxRetries for a failed embeddings request
	MaxRetries = 3
	// LRUCacheCapacity is the in-process cache size
	LRUCacheCapacity = 5000
)

// Config carries everything needed to talk to the embeddings API.
type Config struct {
	APIKey    string
	BaseURL   string
	ModelName string
}

// Client wraps the OpenAI embeddings API with batching, retry, an
// in-process LRU cache and an optional shared remote cache.
type Client struct {
	client    openai.Client
	modelName string
	cache     *LRUCache
	remote    RemoteCache // optional second-level cache, may be nil

	mu      sync.Mutex
	metrics Metrics
}

// RemoteCache is the optional shared cache layer consulted on LRU
// misses. Lookups and writes are best effort; failures only log.
type RemoteCache interface {
	Get(ctx context.Context, text string) ([]float64, bool)
	Put(ctx context.Context, text string, vector []float64)
}

// Metrics counts embedding traffic.
type Metrics struct {
	IngestCount      int64
	QueryCount       int64
	EmbeddingLatency time.Duration
}

func NewClient(cfg *Config, remote RemoteCache) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding api key is required")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("embedding model name is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	// custom base_url supports OpenAI-compatible services
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		client:    openai.NewClient(opts...),
		modelName: cfg.ModelName,
		cache:     NewLRUCache(LRUCacheCapacity),
		remote:    remote,
	}, nil
}

// GetTextEmbedding returns the embedding of a single text.
func (c *Client) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	embeddings, err := c.GetTextEmbeddingBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return embeddings[0], nil
}

// GetTextEmbeddingBatch embeds texts with cache lookups, batch
// splitting and retry. Result order matches the input order.
func (c *Client) GetTextEmbeddingBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts cannot be empty")
	}

	c.mu.Lock()
	c.metrics.QueryCount++
	c.mu.Unlock()

	startTime := time.Now()
	defer func() {
		c.mu.Lock()
		c.metrics.EmbeddingLatency += time.Since(startTime)
		c.mu.Unlock()
	}()

	type textWithIndex struct {
		text  string
		index int
	}
	needRequest := make([]textWithIndex, 0)
	result := make([][]float64, len(texts))
	cacheHits := 0

	for i, text := range texts {
		if cached, ok := c.cache.Get(text); ok {
			result[i] = cached
			cacheHits++
			continue
		}
		if c.remote != nil {
			if cached, ok := c.remote.Get(ctx, text); ok {
				c.cache.Put(text, cached)
				result[i] = cached
				cacheHits++
				continue
			}
		}
		needRequest = append(needRequest, textWithIndex{text: text, index: i})
	}

	if len(needRequest) == 0 {
		log.Debugf("All embeddings retrieved from cache (count: %d)", len(texts))
		return result, nil
	}

	for i := 0; i < len(needRequest); i += MaxBatchSize {
		end := i + MaxBatchSize
		if end > len(needRequest) {
			end = len(needRequest)
		}

		batch := needRequest[i:end]
		batchTexts := make([]string, len(batch))
		for j, item := range batch {
			batchTexts[j] = item.text
		}

		embeddings, err := c.getTextEmbeddingBatchWithRetry(ctx, batchTexts)
		if err != nil {
			return nil, fmt.Errorf("failed to get embeddings for batch %d-%d: %w", i, end, err)
		}

		for j, item := range batch {
			if j < len(embeddings) {
				result[item.index] = embeddings[j]
				c.cache.Put(item.text, embeddings[j])
				if c.remote != nil {
					c.remote.Put(ctx, item.text, embeddings[j])
				}
			}
		}
	}

	log.Debugf("Embedding batch completed: total=%d, cache_hits=%d, requests=%d",
		len(texts), cacheHits, len(needRequest))

	c.mu.Lock()
	c.metrics.IngestCount += int64(len(needRequest))
	c.mu.Unlock()

	return result, nil
}

func (c *Client) getTextEmbeddingBatchWithRetry(ctx context.Context, texts []string) ([][]float64, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			// exponential backoff: 1s, 2s, 4s
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			log.Warnf("Retrying embedding request (attempt %d/%d) after %v", attempt+1, MaxRetries, backoff)
			time.Sleep(backoff)
		}

		embeddings, err := c.getTextEmbeddingBatchOnce(ctx, texts)
		if err == nil {
			return embeddings, nil
		}

		lastErr = err
		log.Errorf("Embedding request failed (attempt %d/%d): %v", attempt+1, MaxRetries, err)
	}

	return nil, fmt.Errorf("failed after %d retries: %w", MaxRetries, lastErr)
}

func (c *Client) getTextEmbeddingBatchOnce(ctx context.Context, texts []string) ([][]float64, error) {
	input := openai.EmbeddingNewParamsInputUnion{
		OfArrayOfStrings: texts,
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.modelName),
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}

	result := make([][]float64, 0, len(resp.Data))
	for _, item := range resp.Data {
		result = append(result, item.Embedding)
	}

	return result, nil
}

// GetMetrics returns a copy of the traffic counters.
func (c *Client) GetMetrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Metrics{
		IngestCount:      c.metrics.IngestCount,
		QueryCount:       c.metrics.QueryCount,
		EmbeddingLatency: c.metrics.EmbeddingLatency,
	}
}
