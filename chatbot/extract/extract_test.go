package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextFromTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("Week 1: introduction to databases.\n"), 0644))

	text, err := Text(path, ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Week 1: introduction to databases.\n", text)
}

func TestTextExtensionCaseInsensitive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.TXT")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

	text, err := Text(path, ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestTextUnsupportedFormat(t *testing.T) {
	_, err := Text("slides.pptx", ".pptx")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".pptx")
}

func TestTextMissingFileYieldsEmpty(t *testing.T) {
	text, err := Text(filepath.Join(t.TempDir(), "gone.txt"), ".txt")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestTextFromDOCX(t *testing.T) {
	path := writeDOCX(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Syllabus overview.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Grading </w:t></w:r><w:r><w:t>policy.</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := Text(path, ".docx")
	require.NoError(t, err)
	assert.Equal(t, "Syllabus overview.\nGrading policy.\n", text)
}

func TestTextCorruptDOCXYieldsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0644))

	text, err := Text(path, ".docx")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func writeDOCX(t *testing.T, documentXML string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "doc.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}
