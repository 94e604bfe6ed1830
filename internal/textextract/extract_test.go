package textextract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	assert.Equal(t, KindPDF, Detect("cv.bin", []byte("%PDF-1.7\n...")))
	assert.Equal(t, KindDOCX, Detect("cv.DOCX", []byte("PK\x03\x04rest")))
	assert.Equal(t, KindText, Detect("cv.txt", []byte("plain resume")))
	assert.Equal(t, Kind(""), Detect("cv.zip", []byte("PK\x03\x04rest")))
	assert.Equal(t, Kind(""), Detect("cv.png", []byte("\x89PNG\r\n")))
}

func TestExtract_PlainText(t *testing.T) {
	text, err := Extract("resume.txt", []byte("Experience\nSkills"))
	require.NoError(t, err)
	assert.Equal(t, "Experience\nSkills", text)
}

func TestExtract_Unsupported(t *testing.T) {
	_, err := Extract("photo.png", []byte("\x89PNG\r\n\x1a\n"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtract_Docx(t *testing.T) {
	data := buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>Skills &amp; Experience</w:t></w:r></w:p>`)

	text, err := Extract("resume.docx", data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSkills & Experience", text)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("resume.pdf", []byte("%PDF-1.4 not really a pdf"))
	assert.Error(t, err)
}
