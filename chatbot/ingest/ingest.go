// Package ingest turns an uploaded course document into embedded chunks
// in the vector index.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"campus/chatbot/chunker"
	"campus/chatbot/extract"
	"campus/chatbot/vectorstore"
)

var (
	// ErrNoTextExtracted means the file parsed but held no text.
	ErrNoTextExtracted = errors.New("no text extracted from file")
	// ErrNoChunksProduced means splitting the text yielded nothing.
	ErrNoChunksProduced = errors.New("text splitting resulted in no chunks")
)

// Pipeline composes extraction, chunking, embedding and indexing.
type Pipeline struct {
	store    vectorstore.Store
	splitter *chunker.Splitter
}

func New(store vectorstore.Store, splitter *chunker.Splitter) *Pipeline {
	return &Pipeline{store: store, splitter: splitter}
}

// Ingest extracts text from the file, splits it, and adds the chunks to
// the vector index scoped to courseID. Chunk ids are deterministic
// functions of (course, filename, index), so re-ingesting the same
// document overwrites its previous chunks instead of duplicating them.
// The caller keeps responsibility for removing the saved file on failure.
func (p *Pipeline) Ingest(ctx context.Context, filePath string, courseID uint, originalFilename string) error {
	text, err := extract.Text(filePath, filepath.Ext(filePath))
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return ErrNoTextExtracted
	}

	chunks := p.splitter.Split(text)
	if len(chunks) == 0 {
		return ErrNoChunksProduced
	}

	baseID := fmt.Sprintf("doc_%d_%s", courseID, strings.ReplaceAll(originalFilename, " ", "_"))
	ids := make([]string, len(chunks))
	metas := make([]vectorstore.Metadata, len(chunks))
	for i := range chunks {
		ids[i] = fmt.Sprintf("%s_%d", baseID, i)
		metas[i] = vectorstore.Metadata{
			CourseID: fmt.Sprintf("%d", courseID),
			Source:   originalFilename,
		}
	}

	log.Printf("Adding %d chunks from %s for course %d to vector store...", len(chunks), originalFilename, courseID)
	if err := p.store.Upsert(ctx, ids, chunks, metas); err != nil {
		return fmt.Errorf("adding document chunks to vector store: %w", err)
	}
	log.Printf("Successfully added document chunks from %s.", originalFilename)
	return nil
}
