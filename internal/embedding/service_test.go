package embedding

import (
	"context"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a        []float32
		b        []float32
		expected float32
	}{
		{
			name:     "identical vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1, 2, 3},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float32{1, 0, 0},
			b:        []float32{0, 1, 0},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float32{1, 1, 1},
			b:        []float32{-1, -1, -1},
			expected: -1.0,
		},
		{
			name:     "zero vector on the left",
			a:        []float32{0, 0, 0},
			b:        []float32{1, 2, 3},
			expected: 0.0,
		},
		{
			name:     "zero vector on the right",
			a:        []float32{1, 2, 3},
			b:        []float32{0, 0, 0},
			expected: 0.0,
		},
		{
			name:     "similar vectors",
			a:        []float32{1, 2, 3},
			b:        []float32{1.1, 2.1, 3.1},
			expected: 0.999, // Approximately
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Similarity(tt.a, tt.b)
			diff := result - tt.expected
			if diff < 0 {
				diff = -diff
			}
			if diff > 0.001 {
				t.Errorf("Similarity() = %v, want %v (diff: %v)", result, tt.expected, diff)
			}
		})
	}
}

func TestSimilarityZeroVectorsExact(t *testing.T) {
	// The zero-vector contract is exact, not approximate
	if got := Similarity([]float32{0, 0}, []float32{0, 0}); got != 0 {
		t.Errorf("Similarity(zero, zero) = %v, want exactly 0", got)
	}
}

func TestSimilarityPanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic for dimension mismatch")
		}
	}()

	Similarity([]float32{1, 2}, []float32{1, 2, 3})
}

// stubClient records what the service hands to the wire layer
type stubClient struct {
	gotTexts []string
	vectors  [][]float32
	err      error
}

func (c *stubClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	c.gotTexts = texts
	if c.err != nil {
		return nil, c.err
	}
	if c.vectors != nil {
		return c.vectors, nil
	}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		vectors[i] = []float32{1, 0, 0, 0}
	}
	return vectors, nil
}

func (c *stubClient) Model() string { return "stub-model" }

func TestServicePrefixing(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		text     string
		expected string
	}{
		{"passage mode", ModePassage, "some document text", "passage: some document text"},
		{"query mode", ModeQuery, "find things", "query: find things"},
		{"none mode", ModeNone, "raw text", "raw text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{}
			svc := NewServiceWithClient(client)

			if _, err := svc.Embed(context.Background(), []string{tt.text}, tt.mode); err != nil {
				t.Fatalf("Embed() error: %v", err)
			}
			if len(client.gotTexts) != 1 || client.gotTexts[0] != tt.expected {
				t.Errorf("submitted texts = %q, want [%q]", client.gotTexts, tt.expected)
			}
		})
	}
}

func TestServiceRejectsMalformedInput(t *testing.T) {
	svc := NewServiceWithClient(&stubClient{})

	if _, err := svc.Embed(context.Background(), nil, ModePassage); err == nil {
		t.Error("expected error for empty batch")
	}
	if _, err := svc.Embed(context.Background(), []string{"ok", ""}, ModePassage); err == nil {
		t.Error("expected error for empty string in batch")
	}
}

func TestServiceEmbedOne(t *testing.T) {
	client := &stubClient{vectors: [][]float32{{0.1, 0.2}}}
	svc := NewServiceWithClient(client)

	vec, err := svc.EmbedOne(context.Background(), "hello", ModeQuery)
	if err != nil {
		t.Fatalf("EmbedOne() error: %v", err)
	}
	if len(vec) != 2 || vec[0] != 0.1 || vec[1] != 0.2 {
		t.Errorf("EmbedOne() = %v, want [0.1 0.2]", vec)
	}
}

func TestServiceCountMismatch(t *testing.T) {
	client := &stubClient{vectors: [][]float32{{1, 0}}}
	svc := NewServiceWithClient(client)

	_, err := svc.Embed(context.Background(), []string{"a", "b"}, ModeNone)
	if err == nil {
		t.Error("expected error when provider returns wrong embedding count")
	}
}
