package embedding

import (
	"context"
	"fmt"
	"math"

	"github.com/rawe/rag/internal/config"
)

// Mode selects the task prefix prepended to each text before it is sent
// to the embedding service. The E5 model family requires "passage: " on
// document text and "query: " on search queries; retrieval quality
// degrades without them.
type Mode string

const (
	ModePassage Mode = "passage" // document text at indexing time
	ModeQuery   Mode = "query"   // free-text search queries
	ModeNone    Mode = "none"    // raw text, no prefix
)

// prefix returns the literal prefix for the mode
func (m Mode) prefix() string {
	switch m {
	case ModePassage:
		return "passage: "
	case ModeQuery:
		return "query: "
	default:
		return ""
	}
}

// Client is the interface for embedding API clients
type Client interface {
	// Embed returns one vector per input text, positionally aligned
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model reports the model identifier announced by the provider
	Model() string
}

// Service provides embedding generation for the indexing and query
// pipelines. It validates inputs and applies mode prefixes before
// handing batches to the underlying client.
type Service struct {
	client Client
}

// NewService creates a new embedding service backed by the HTTP client
func NewService(cfg *config.EmbeddingConfig) *Service {
	return &Service{client: NewHTTPClient(cfg)}
}

// NewServiceWithClient creates a service with a custom client
func NewServiceWithClient(client Client) *Service {
	return &Service{client: client}
}

// Embed generates embeddings for a batch of texts. The returned slice
// is positionally aligned with the input. An empty batch or an empty
// string within the batch is a malformed request, matching the
// provider's own validation.
func (s *Service) Embed(ctx context.Context, texts []string, mode Mode) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("cannot embed an empty batch")
	}
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("cannot embed empty text at index %d", i)
		}
	}

	prefixed := texts
	if p := mode.prefix(); p != "" {
		prefixed = make([]string, len(texts))
		for i, text := range texts {
			prefixed[i] = p + text
		}
	}

	vectors, err := s.client.Embed(ctx, prefixed)
	if err != nil {
		return nil, err
	}

	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors))
	}

	return vectors, nil
}

// EmbedOne generates an embedding for a single text
func (s *Service) EmbedOne(ctx context.Context, text string, mode Mode) ([]float32, error) {
	vectors, err := s.Embed(ctx, []string{text}, mode)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// Model reports the model identifier of the underlying client
func (s *Service) Model() string {
	return s.client.Model()
}

// Similarity computes cosine similarity between two vectors. A zero
// vector on either side yields exactly 0. Vectors of different lengths
// are a programming error: all vectors in one index come from the same
// provider and model.
func Similarity(a, b []float32) float32 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("vector dimension mismatch: %d vs %d", len(a), len(b)))
	}

	var dotProduct float32
	var normA float32
	var normB float32

	for i := 0; i < len(a); i++ {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
