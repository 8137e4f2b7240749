package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitEmptyInput(t *testing.T) {
	s := New(1000, 150)

	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := New(1000, 150)

	chunks := s.Split("A short lecture note.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short lecture note.", chunks[0])
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := New(1000, 0)

	para1 := strings.Repeat("alpha ", 100) + "alpha"
	para2 := strings.Repeat("beta ", 100) + "beta"
	text := para1 + "\n\n" + para2

	chunks := s.Split(text)
	require.Len(t, chunks, 2)
	assert.Equal(t, para1, chunks[0])
	assert.Equal(t, para2, chunks[1])
}

func TestSplitRespectsSizeBound(t *testing.T) {
	s := New(100, 20)

	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString(fmt.Sprintf("word%d ", i))
	}
	chunks := s.Split(sb.String())

	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.LessOrEqual(t, len([]rune(c)), 100+20+1, "chunk %d too large", i)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestSplitOverlapCarriesPreviousTail(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 300; i++ {
		sb.WriteString(fmt.Sprintf("word%d ", i))
	}
	text := sb.String()

	base := New(100, 0).Split(text)
	overlapped := New(100, 20).Split(text)
	require.Equal(t, len(base), len(overlapped))
	require.Greater(t, len(base), 1)

	assert.Equal(t, base[0], overlapped[0])
	for i := 1; i < len(base); i++ {
		require.True(t, strings.HasSuffix(overlapped[i], base[i]), "chunk %d lost its body", i)
		prefix := strings.TrimSpace(strings.TrimSuffix(overlapped[i], base[i]))
		if prefix == "" {
			continue
		}
		assert.True(t, strings.HasSuffix(base[i-1], prefix), "chunk %d overlap %q is not a tail of its predecessor", i, prefix)
	}
}

func TestSplitWithoutOverlapPreservesWords(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 500; i++ {
		sb.WriteString(fmt.Sprintf("token%d ", i))
	}
	text := strings.TrimSpace(sb.String())

	chunks := New(120, 0).Split(text)
	joined := strings.Join(chunks, " ")
	assert.Equal(t, strings.Fields(text), strings.Fields(joined))
}

func TestSplitHardCutOnUnbrokenText(t *testing.T) {
	s := New(50, 0)

	text := strings.Repeat("x", 175)
	chunks := s.Split(text)
	require.Len(t, chunks, 4)
	assert.Equal(t, strings.Repeat("x", 50), chunks[0])
	assert.Equal(t, strings.Repeat("x", 25), chunks[3])
}

func TestNewClampsDegenerateConfig(t *testing.T) {
	s := New(0, -5)

	assert.Equal(t, 1000, s.chunkSize)
	assert.Equal(t, 0, s.chunkOverlap)

	s = New(100, 200)
	assert.Equal(t, 50, s.chunkOverlap)
}
