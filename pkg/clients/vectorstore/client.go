package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// errNotFound marks a 404 from the store, kept internal so callers
// only see it through the zero-hit behavior of Query.
var errNotFound = errors.New("not found")

const (
	// DefaultDimension matches text-embedding-ada-002 / -3-small output.
	DefaultDimension = 1536
	defaultTimeout   = 15 * time.Second
)

// Config points the client at a Qdrant deployment.
type Config struct {
	Addr      string
	APIKey    string
	Timeout   time.Duration
	Dimension int
}

// Embedder turns text into vectors. The store owns embedding so that
// callers only ever deal in text.
type Embedder interface {
	GetTextEmbedding(ctx context.Context, text string) ([]float64, error)
	GetTextEmbeddingBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Client is a REST client to Qdrant. Collections are partitions keyed
// by user id, created on first write with cosine distance.
type Client struct {
	addr      string
	apiKey    string
	dimension int
	http      *http.Client
	embedder  Embedder

	mu    sync.Mutex
	known map[string]bool // collections confirmed to exist
}

// Point is one record staged for upsert: the chunk text plus its
// metadata. The vector is computed inside the client.
type Point struct {
	ID      string
	Text    string
	Payload map[string]interface{}
}

// Hit is one ranked retrieval result with the payload text already
// resolved to a plain string.
type Hit struct {
	ID    string
	Score float64
	Text  string
}

func NewClient(cfg *Config, embedder Embedder) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = DefaultDimension
	}
	return &Client{
		addr:      cfg.Addr,
		apiKey:    cfg.APIKey,
		dimension: dimension,
		http:      &http.Client{Timeout: timeout},
		embedder:  embedder,
		known:     make(map[string]bool),
	}
}

// Upsert writes points into the named collection as one batch. An
// empty batch is a no-op, not an error.
func (c *Client) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	if err := c.ensureCollection(ctx, collection); err != nil {
		return err
	}

	texts := make([]string, len(points))
	for i := range points {
		texts[i] = points[i].Text
	}

	vectors, err := c.embedder.GetTextEmbeddingBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed %d points for %s: %w", len(points), collection, err)
	}

	body := map[string]interface{}{"points": buildPointRecords(points, vectors)}
	if err := c.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", c.addr, collection), body, nil); err != nil {
		return fmt.Errorf("failed to upsert %d points into %s: %w", len(points), collection, err)
	}

	log.Debugf("Upserted %d points into collection %s", len(points), collection)
	return nil
}

// Query runs a similarity search and returns hits in ranked order. A
// collection that does not exist yet is the zero-match state, not an
// error: nothing was ever written for that partition.
func (c *Client) Query(ctx context.Context, collection string, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 3
	}

	vector, err := c.embedder.GetTextEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query for %s: %w", collection, err)
	}

	req := map[string]interface{}{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}

	var resp struct {
		Result []struct {
			ID      interface{}            `json:"id"`
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	if err := c.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", c.addr, collection), req, &resp); err != nil {
		if errors.Is(err, errNotFound) {
			log.Debugf("collection %s does not exist, treating as zero hits", collection)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to search collection %s: %w", collection, err)
	}

	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, Hit{
			ID:    fmt.Sprintf("%v", r.ID),
			Score: r.Score,
			Text:  resolveHitText(r.Payload),
		})
	}
	return hits, nil
}

// resolveHitText extracts the document text from a hit payload. The
// payload key has varied across store versions (page_content, document,
// text); the ambiguity is resolved here once so callers only see text.
func resolveHitText(payload map[string]interface{}) string {
	for _, key := range []string{"page_content", "document", "text"} {
		if v, ok := payload[key].(string); ok {
			return v
		}
	}
	return ""
}

// ensureCollection creates the collection if missing. Qdrant answers
// 200 for an existing collection with the same schema.
func (c *Client) ensureCollection(ctx context.Context, name string) error {
	c.mu.Lock()
	exists := c.known[name]
	c.mu.Unlock()
	if exists {
		return nil
	}

	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     c.dimension,
			"distance": "Cosine",
		},
	}
	if err := c.putJSON(ctx, fmt.Sprintf("%s/collections/%s", c.addr, name), body, nil); err != nil {
		return fmt.Errorf("failed to ensure collection %s: %w", name, err)
	}

	c.mu.Lock()
	c.known[name] = true
	c.mu.Unlock()
	return nil
}

func buildPointRecords(points []Point, vectors [][]float64) []map[string]interface{} {
	records := make([]map[string]interface{}, len(points))
	for i := range points {
		payload := points[i].Payload
		if payload == nil {
			payload = make(map[string]interface{})
		}
		records[i] = map[string]interface{}{
			"id":      points[i].ID,
			"vector":  vectors[i],
			"payload": payload,
		}
	}
	return records
}

func (c *Client) putJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPut, url, body, out)
}

func (c *Client) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, url, body, out)
}

func (c *Client) doJSON(ctx context.Context, method string, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("qdrant %s %s: %w", method, url, errNotFound)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant %s %s failed: %s", method, url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
