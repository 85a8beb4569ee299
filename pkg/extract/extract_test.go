package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func writeTestDocx(t *testing.T, paragraphs []string) string {
	t.Helper()

	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`
	for _, p := range paragraphs {
		document += `<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`
	}
	document += `</w:body></w:document>`

	path := filepath.Join(t.TempDir(), "test.docx")
	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	part, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(document))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	return path
}

func TestExtractTXT(t *testing.T) {
	path := writeTempFile(t, "doc.txt", []byte("plain text content"))

	text, err := Extract(path, ".txt")
	require.NoError(t, err)
	assert.Equal(t, "plain text content", text)
}

func TestExtractTXTRejectsInvalidUTF8(t *testing.T) {
	path := writeTempFile(t, "doc.txt", []byte{0xff, 0xfe, 0x41})

	_, err := Extract(path, ".txt")
	assert.Error(t, err)
}

func TestExtractDOCX(t *testing.T) {
	path := writeTestDocx(t, []string{"Hello.", "World."})

	text, err := Extract(path, ".docx")
	require.NoError(t, err)
	assert.Equal(t, "Hello.\nWorld.\n", text)
}

func TestExtractDOCXMissingDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = Extract(path, ".docx")
	assert.Error(t, err)
}

func TestExtractUnsupportedType(t *testing.T) {
	path := writeTempFile(t, "doc.csv", []byte("a,b,c"))

	_, err := Extract(path, ".csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestExtractExtensionCaseInsensitive(t *testing.T) {
	path := writeTempFile(t, "doc.txt", []byte("upper case extension"))

	text, err := Extract(path, ".TXT")
	require.NoError(t, err)
	assert.Equal(t, "upper case extension", text)
}
