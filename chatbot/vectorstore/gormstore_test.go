package vectorstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedEmbedder maps known texts to fixed vectors so similarity ranking
// is fully controlled by the test.
type fixedEmbedder struct {
	vectors map[string][]float64
}

func (f *fixedEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float64{0, 0, 1}, nil
}

func newTestStore(t *testing.T, embedder Embedder) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := NewGormStore(db, embedder)
	require.NoError(t, err)
	return store
}

func TestUpsertBatchMismatch(t *testing.T) {
	store := newTestStore(t, &fixedEmbedder{})

	err := store.Upsert(context.Background(), []string{"a", "b"}, []string{"one"}, []Metadata{{}, {}})
	assert.ErrorIs(t, err, ErrBatchMismatch)
}

func TestUpsertEmptyBatchIsNoop(t *testing.T) {
	store := newTestStore(t, &fixedEmbedder{})

	require.NoError(t, store.Upsert(context.Background(), nil, nil, nil))
}

func TestSearchScopedToCourses(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float64{
		"normal forms": {1, 0, 0},
		"b-tree index": {0.9, 0.1, 0},
		"tcp handshake": {0, 1, 0},
	}}
	store := newTestStore(t, emb)

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx,
		[]string{"doc_1_db.txt_0", "doc_1_db.txt_1", "doc_2_net.txt_0"},
		[]string{"normal forms", "b-tree index", "tcp handshake"},
		[]Metadata{
			{CourseID: "1", Source: "db.txt"},
			{CourseID: "1", Source: "db.txt"},
			{CourseID: "2", Source: "net.txt"},
		},
	))

	results, err := store.Search(ctx, []float64{1, 0, 0}, 10, []string{"1"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, "1", r.Metadata.CourseID)
	}
	assert.Equal(t, "normal forms", results[0].Text)
	assert.Equal(t, "b-tree index", results[1].Text)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchHonorsK(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float64{}}
	store := newTestStore(t, emb)

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx,
		[]string{"c0", "c1", "c2"},
		[]string{"one", "two", "three"},
		[]Metadata{{CourseID: "1"}, {CourseID: "1"}, {CourseID: "1"}},
	))

	results, err := store.Search(ctx, []float64{0, 0, 1}, 2, []string{"1"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchEmptyScopeReturnsNothing(t *testing.T) {
	store := newTestStore(t, &fixedEmbedder{})

	require.NoError(t, store.Upsert(context.Background(),
		[]string{"c0"}, []string{"one"}, []Metadata{{CourseID: "1"}}))

	results, err := store.Search(context.Background(), []float64{1, 0, 0}, 4, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	// All texts embed to the same vector, so every score ties.
	store := newTestStore(t, &fixedEmbedder{vectors: map[string][]float64{}})

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx,
		[]string{"c0", "c1", "c2"},
		[]string{"first", "second", "third"},
		[]Metadata{{CourseID: "1"}, {CourseID: "1"}, {CourseID: "1"}},
	))

	results, err := store.Search(ctx, []float64{0, 0, 1}, 3, []string{"1"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].Text)
	assert.Equal(t, "second", results[1].Text)
	assert.Equal(t, "third", results[2].Text)
}

func TestUpsertSameChunkIDOverwrites(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float64{
		"old text": {1, 0, 0},
		"new text": {0, 1, 0},
	}}
	store := newTestStore(t, emb)

	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx,
		[]string{"doc_1_a.txt_0"}, []string{"old text"}, []Metadata{{CourseID: "1", Source: "a.txt"}}))
	require.NoError(t, store.Upsert(ctx,
		[]string{"doc_1_a.txt_0"}, []string{"new text"}, []Metadata{{CourseID: "1", Source: "a.txt"}}))

	results, err := store.Search(ctx, []float64{0, 1, 0}, 10, []string{"1"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new text", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 1e-9)
}
