package vectorstore

import (
	"context"
	"errors"
)

// ErrBatchMismatch signals an internal contract breach: the three batch
// slices passed to Upsert must have the same length.
var ErrBatchMismatch = errors.New("ids, texts and metadatas must be the same length")

// Metadata tags every stored chunk with its owning course and the
// filename it came from. Both are immutable once written.
type Metadata struct {
	CourseID string `json:"course_id"`
	Source   string `json:"source"`
}

// Result is one retrieved chunk with its similarity score.
type Result struct {
	Text     string
	Metadata Metadata
	Score    float64
}

// Embedder maps text to a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Store is a persistent index of (vector, text, metadata) triples.
//
// Upsert embeds each text and stores it under its id; the same id
// overwrites. Search returns up to k nearest neighbors among entries
// whose course_id is in courseIDs, ordered by decreasing similarity.
// The course filter is a strict pre-filter: a result outside courseIDs
// is a correctness bug, not a quality degradation.
type Store interface {
	Upsert(ctx context.Context, ids, texts []string, metas []Metadata) error
	Search(ctx context.Context, vector []float64, k int, courseIDs []string) ([]Result, error)
}
