package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus/chatbot/chunker"
	"campus/chatbot/extract"
	"campus/chatbot/vectorstore"
)

type fakeStore struct {
	ids   []string
	texts []string
	metas []vectorstore.Metadata
	calls int
	err   error
}

func (f *fakeStore) Upsert(ctx context.Context, ids, texts []string, metas []vectorstore.Metadata) error {
	f.calls++
	f.ids = ids
	f.texts = texts
	f.metas = metas
	return f.err
}

func (f *fakeStore) Search(ctx context.Context, vector []float64, k int, courseIDs []string) ([]vectorstore.Result, error) {
	return nil, nil
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIngestSmallDocumentSingleChunk(t *testing.T) {
	store := &fakeStore{}
	p := New(store, chunker.New(1000, 150))

	path := writeTemp(t, "upload.txt", "The midterm covers chapters one through four.\n")
	err := p.Ingest(context.Background(), path, 7, "exam info.txt")
	require.NoError(t, err)

	require.Equal(t, 1, store.calls)
	assert.Equal(t, []string{"doc_7_exam_info.txt_0"}, store.ids)
	assert.Equal(t, []string{"The midterm covers chapters one through four."}, store.texts)
	assert.Equal(t, []vectorstore.Metadata{{CourseID: "7", Source: "exam info.txt"}}, store.metas)
}

func TestIngestChunkIDsAreDeterministic(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString(fmt.Sprintf("lecture point %d. ", i))
	}
	path := writeTemp(t, "upload.txt", sb.String())

	first := &fakeStore{}
	require.NoError(t, New(first, chunker.New(1000, 150)).Ingest(context.Background(), path, 3, "notes.txt"))
	second := &fakeStore{}
	require.NoError(t, New(second, chunker.New(1000, 150)).Ingest(context.Background(), path, 3, "notes.txt"))

	require.Greater(t, len(first.ids), 1)
	assert.Equal(t, first.ids, second.ids)
	for i, id := range first.ids {
		assert.Equal(t, fmt.Sprintf("doc_3_notes.txt_%d", i), id)
	}
}

func TestIngestEmptyFile(t *testing.T) {
	store := &fakeStore{}
	p := New(store, chunker.New(1000, 150))

	path := writeTemp(t, "empty.txt", "   \n")
	err := p.Ingest(context.Background(), path, 1, "empty.txt")
	assert.ErrorIs(t, err, ErrNoTextExtracted)
	assert.Zero(t, store.calls)
}

func TestIngestUnsupportedExtension(t *testing.T) {
	store := &fakeStore{}
	p := New(store, chunker.New(1000, 150))

	path := writeTemp(t, "deck.pptx", "slides")
	err := p.Ingest(context.Background(), path, 1, "deck.pptx")
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
	assert.Zero(t, store.calls)
}

func TestIngestStoreFailureIsWrapped(t *testing.T) {
	storeErr := errors.New("index offline")
	store := &fakeStore{err: storeErr}
	p := New(store, chunker.New(1000, 150))

	path := writeTemp(t, "upload.txt", "Some course content.")
	err := p.Ingest(context.Background(), path, 1, "upload.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "vector store")
}
