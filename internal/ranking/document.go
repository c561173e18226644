package ranking

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxDocumentSize bounds the size of a single resume.
const MaxDocumentSize = 10 << 20

const (
	binarySampleSize = 1000
	binaryThreshold  = 0.3
)

var (
	// ErrUnsupportedFormat is returned for resume files that are not pdf, docx, plain text or markdown.
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	// ErrNoText is returned when a resume holds no extractable text, e.g. a scanned pdf.
	ErrNoText = errors.New("no text could be extracted")
)

type extractor func(data []byte) (string, error)

var extractors = map[string]extractor{
	".pdf":  extractPDF,
	".docx": extractDOCX,
	".txt":  extractPlain,
	".md":   extractPlain,
}

// ReadDocument reads an uploaded resume and extracts its text.
// Accepted formats are .pdf, .docx, .txt and .md.
func ReadDocument(name string, r io.Reader) (Document, error) {
	base := filepath.Base(name)
	extract, ok := extractors[strings.ToLower(filepath.Ext(base))]
	if !ok {
		return Document{}, fmt.Errorf("%s: %w", base, ErrUnsupportedFormat)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return Document{}, fmt.Errorf("reading %s: %w", base, err)
	}
	if len(data) > MaxDocumentSize {
		return Document{}, fmt.Errorf("%s exceeds %d bytes", base, MaxDocumentSize)
	}

	text, err := extract(data)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", base, err)
	}
	if strings.TrimSpace(text) == "" {
		return Document{}, fmt.Errorf("%s: %w", base, ErrNoText)
	}

	return Document{Name: base, Text: text}, nil
}

func extractPlain(data []byte) (string, error) {
	if isBinary(data) {
		return "", errors.New("file looks like binary data, not text")
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	return string(data), nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	return string(out), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening docx: %w", err)
	}
	defer doc.Close()

	return documentText(doc.Editable().GetContent())
}

// documentText flattens WordprocessingML into plain text, one line per paragraph.
func documentText(content string) (string, error) {
	var b strings.Builder
	dec := xml.NewDecoder(strings.NewReader(content))
	inText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing docx content: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// isBinary reports whether data looks like a pdf, a zip archive or other binary content.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if bytes.HasPrefix(data, []byte("%PDF-")) || bytes.HasPrefix(data, []byte("PK")) {
		return true
	}

	sample := data[:min(binarySampleSize, len(data))]
	control := 0
	for _, c := range sample {
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			control++
		}
	}
	return float64(control)/float64(len(sample)) > binaryThreshold
}
