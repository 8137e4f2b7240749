package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContentChunk is one embedded chunk row. The store exclusively owns
// this table; nothing else writes to it.
type ContentChunk struct {
	ID        uint   `gorm:"primarykey"`
	ChunkID   string `gorm:"uniqueIndex;not null"`
	CourseID  string `gorm:"index;not null"`
	Source    string `gorm:"not null"`
	Text      string `gorm:"type:text"`
	Embedding datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ContentChunk) TableName() string { return "content_chunks" }

// GormStore persists embedded chunks in a relational table and performs
// exact nearest-neighbor search with a SQL pre-filter on course_id.
// Concurrency is delegated to the database; upserts and searches may
// interleave safely.
type GormStore struct {
	db       *gorm.DB
	embedder Embedder
}

func NewGormStore(db *gorm.DB, embedder Embedder) (*GormStore, error) {
	if err := db.AutoMigrate(&ContentChunk{}); err != nil {
		return nil, fmt.Errorf("migrating content_chunks: %w", err)
	}
	return &GormStore{db: db, embedder: embedder}, nil
}

// Upsert embeds every text and writes the batch in one transaction, so
// a mid-batch failure leaves no partial state. The same chunk id
// overwrites the previous row.
func (s *GormStore) Upsert(ctx context.Context, ids, texts []string, metas []Metadata) error {
	if len(ids) != len(texts) || len(ids) != len(metas) {
		return ErrBatchMismatch
	}
	if len(ids) == 0 {
		return nil
	}

	rows := make([]ContentChunk, 0, len(ids))
	for i := range ids {
		vector, err := s.embedder.Embed(ctx, texts[i])
		if err != nil {
			return fmt.Errorf("embedding chunk %s: %w", ids[i], err)
		}
		raw, err := json.Marshal(vector)
		if err != nil {
			return fmt.Errorf("encoding embedding for chunk %s: %w", ids[i], err)
		}
		rows = append(rows, ContentChunk{
			ChunkID:   ids[i],
			CourseID:  metas[i].CourseID,
			Source:    metas[i].Source,
			Text:      texts[i],
			Embedding: datatypes.JSON(raw),
		})
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "chunk_id"}},
			DoUpdates: clause.AssignmentColumns(
				[]string{"course_id", "source", "text", "embedding", "updated_at"},
			),
		}).Create(&rows).Error
	})
}

// Search loads the candidate rows for the authorized courses and ranks
// them by cosine similarity. Ties keep insertion order, so results are
// deterministic for a fixed index state.
func (s *GormStore) Search(ctx context.Context, vector []float64, k int, courseIDs []string) ([]Result, error) {
	if k <= 0 || len(courseIDs) == 0 {
		return nil, nil
	}

	var rows []ContentChunk
	err := s.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("loading candidate chunks: %w", err)
	}

	results := make([]Result, 0, len(rows))
	for _, row := range rows {
		var stored []float64
		if err := json.Unmarshal(row.Embedding, &stored); err != nil {
			return nil, fmt.Errorf("decoding embedding for chunk %s: %w", row.ChunkID, err)
		}
		results = append(results, Result{
			Text:     row.Text,
			Metadata: Metadata{CourseID: row.CourseID, Source: row.Source},
			Score:    cosine(vector, stored),
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
