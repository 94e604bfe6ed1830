// Package textextract 从上传的简历文件中提取纯文本。
package textextract

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nguyenthenguyen/docx"
)

// ErrUnsupported 表示文件类型无法识别。
var ErrUnsupported = errors.New("unsupported file type")

// Kind 是识别出的文件类型。
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindText Kind = "text"
)

var (
	pdfMagic = []byte("%PDF-")
	zipMagic = []byte("PK\x03\x04")

	paragraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)

	stripPolicy = bluemonday.StrictPolicy()
)

// Detect 依据文件头识别类型，文件头无法判断时参考扩展名。
func Detect(filename string, data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		return KindPDF
	case bytes.HasPrefix(data, zipMagic) && strings.EqualFold(filepath.Ext(filename), ".docx"):
		return KindDOCX
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", "":
		if utf8.Valid(data) {
			return KindText
		}
	}
	return ""
}

// Extract 返回文件中的文本。
func Extract(filename string, data []byte) (string, error) {
	switch Detect(filename, data) {
	case KindPDF:
		return extractPDF(data)
	case KindDOCX:
		return extractDOCX(data)
	case KindText:
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
	}
}

func extractPDF(data []byte) (text string, err error) {
	// 损坏的 PDF 可能让解析库 panic。
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()

	// GetContent 返回 document.xml 原文，段落结束处换行后去掉全部标签。
	raw := paragraphEnd.ReplaceAllString(doc.Editable().GetContent(), "\n")
	text := html.UnescapeString(stripPolicy.Sanitize(raw))
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
