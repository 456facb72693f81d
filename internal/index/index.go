package index

import (
	"fmt"
	"sort"
)

// Record is the atomic unit of the index: one chunk of one source
// document together with its embedding.
type Record struct {
	Source     string    `json:"source"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding"`
}

// Index is the full persisted collection of records. Order reflects
// insertion order; the indexing pipeline only ever appends.
type Index struct {
	Documents []Record `json:"documents"`
}

// New creates an empty index
func New() *Index {
	return &Index{}
}

// Len returns the number of records
func (idx *Index) Len() int {
	return len(idx.Documents)
}

// Dimension returns the embedding dimension shared by all records, or
// 0 for an empty index.
func (idx *Index) Dimension() int {
	if len(idx.Documents) == 0 {
		return 0
	}
	return len(idx.Documents[0].Embedding)
}

// Append adds records, enforcing that every embedding matches the
// index dimension. Mixing dimensions (switching embedding models
// between runs) is detected here instead of surfacing later as bogus
// similarity scores.
func (idx *Index) Append(records ...Record) error {
	dim := idx.Dimension()
	for _, rec := range records {
		if len(rec.Embedding) == 0 {
			return fmt.Errorf("record %s[%d] has an empty embedding", rec.Source, rec.ChunkIndex)
		}
		if dim == 0 {
			dim = len(rec.Embedding)
		} else if len(rec.Embedding) != dim {
			return fmt.Errorf("record %s[%d] has dimension %d, index has %d; "+
				"was the index built with a different embedding model?",
				rec.Source, rec.ChunkIndex, len(rec.Embedding), dim)
		}
		idx.Documents = append(idx.Documents, rec)
	}
	return nil
}

// Sources returns the distinct source names in the index, sorted
func (idx *Index) Sources() []string {
	seen := make(map[string]bool)
	var sources []string
	for _, rec := range idx.Documents {
		if !seen[rec.Source] {
			seen[rec.Source] = true
			sources = append(sources, rec.Source)
		}
	}
	sort.Strings(sources)
	return sources
}

// Validate checks that all records share one embedding dimension
func (idx *Index) Validate() error {
	dim := idx.Dimension()
	for i, rec := range idx.Documents {
		if len(rec.Embedding) != dim {
			return fmt.Errorf("record %d (%s[%d]) has dimension %d, expected %d",
				i, rec.Source, rec.ChunkIndex, len(rec.Embedding), dim)
		}
	}
	return nil
}
