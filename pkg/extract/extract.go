package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/AmineMekki01/rag-app-prod-example/pkg/file"
)

// ErrUnsupportedType marks an extension no extractor handles. The
// upload handler maps it to a 422 response.
var ErrUnsupportedType = errors.New("unsupported file type")

const (
	ExtPDF  = ".pdf"
	ExtTXT  = ".txt"
	ExtDOCX = ".docx"
)

// Extract converts the file at path into plain text according to its
// declared extension. The source file is only read, never modified.
func Extract(path string, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case ExtPDF:
		return fromPDF(path)
	case ExtTXT:
		return fromTXT(path)
	case ExtDOCX:
		return fromDOCX(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

// fromPDF concatenates the text of every page in page order. A single
// failing page fails the whole extraction; no partial result.
func fromPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf %s: %w", path, err)
	}
	defer f.Close()

	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			return "", fmt.Errorf("failed to read pdf %s: page %d is unreadable", path, pageNum)
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to extract pdf %s page %d: %w", path, pageNum, err)
		}
		sb.WriteString(text)
	}

	return sb.String(), nil
}

func fromTXT(path string) (string, error) {
	content, err := file.GetContent(path)
	if err != nil {
		return "", fmt.Errorf("failed to read txt %s: %w", path, err)
	}
	if !utf8.ValidString(content) {
		return "", fmt.Errorf("failed to decode txt %s: not valid UTF-8", path)
	}
	return content, nil
}

// documentXML mirrors the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []paragraph `xml:"p"`
	} `xml:"body"`
}

type paragraph struct {
	Runs []run `xml:"r"`
}

type run struct {
	Text []textElement `xml:"t"`
}

type textElement struct {
	Content string `xml:",chardata"`
}

// fromDOCX concatenates paragraph texts in document order, each
// followed by a newline.
func fromDOCX(path string) (string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx %s: %w", path, err)
	}
	defer reader.Close()

	for _, zf := range reader.File {
		if zf.Name != "word/document.xml" {
			continue
		}

		rc, err := zf.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open docx %s document part: %w", path, err)
		}

		var doc documentXML
		decodeErr := xml.NewDecoder(rc).Decode(&doc)
		rc.Close()
		if decodeErr != nil {
			return "", fmt.Errorf("failed to parse docx %s: %w", path, decodeErr)
		}

		var sb strings.Builder
		for _, para := range doc.Body.Paragraphs {
			for _, r := range para.Runs {
				for _, t := range r.Text {
					sb.WriteString(t.Content)
				}
			}
			sb.WriteString("\n")
		}
		return sb.String(), nil
	}

	return "", fmt.Errorf("failed to parse docx %s: word/document.xml missing", path)
}
