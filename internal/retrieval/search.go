package retrieval

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rawe/rag/internal/embedding"
	"github.com/rawe/rag/internal/index"
)

// ErrEmptyIndex is returned when a query runs against an index with no
// records. An empty index is fine for indexing (first use) but a
// user-facing error for querying.
var ErrEmptyIndex = errors.New("index is empty")

// SearchResult is one ranked chunk
type SearchResult struct {
	Source     string  `json:"source"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float32 `json:"score"`
}

// Response is the complete answer to one query
type Response struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// SearchOptions controls ranking cutoffs
type SearchOptions struct {
	TopK     int     // maximum number of results
	MinScore float32 // drop results scoring strictly below this
}

// DefaultSearchOptions returns the standard cutoffs: top 3 results, no
// score threshold.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		TopK:     3,
		MinScore: float32(math.Inf(-1)),
	}
}

// Searcher ranks the persisted index against free-text queries
type Searcher struct {
	store *index.Store
	embed *embedding.Service
}

// NewSearcher creates a searcher over the given store and embedding
// service
func NewSearcher(store *index.Store, embed *embedding.Service) *Searcher {
	return &Searcher{store: store, embed: embed}
}

// Search embeds the query, scores every record by cosine similarity,
// and returns results sorted by score descending. Ties keep insertion
// order (stable sort). The score threshold applies after sorting and
// before truncation to opts.TopK.
func (s *Searcher) Search(ctx context.Context, query string, opts SearchOptions) (*Response, error) {
	idx, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if idx.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	queryVec, err := s.embed.EmbedOne(ctx, query, embedding.ModeQuery)
	if err != nil {
		return nil, err
	}

	if len(queryVec) != idx.Dimension() {
		return nil, fmt.Errorf("query embedding has dimension %d but the index has %d; "+
			"the index was built with a different embedding model, reindex or clean first",
			len(queryVec), idx.Dimension())
	}

	// Full scan: every record is scored unconditionally
	scored := make([]SearchResult, 0, idx.Len())
	for _, rec := range idx.Documents {
		scored = append(scored, SearchResult{
			Source:     rec.Source,
			ChunkIndex: rec.ChunkIndex,
			Text:       rec.Text,
			Score:      round4(embedding.Similarity(queryVec, rec.Embedding)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if !math.IsInf(float64(opts.MinScore), -1) {
		kept := scored[:0]
		for _, r := range scored {
			if r.Score >= opts.MinScore {
				kept = append(kept, r)
			}
		}
		scored = kept
	}

	topK := opts.TopK
	if topK <= 0 {
		topK = DefaultSearchOptions().TopK
	}
	if len(scored) > topK {
		scored = scored[:topK]
	}

	return &Response{Query: query, Results: scored}, nil
}

// round4 rounds a score to 4 decimals for presentation and stable
// tie-breaking
func round4(f float32) float32 {
	return float32(math.Round(float64(f)*10000) / 10000)
}
