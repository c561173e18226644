package ranking

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// buildPDF writes a single page pdf that shows text with a base font.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	content := "BT ET"
	if text != "" {
		content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	}
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}

// buildDOCX writes a minimal word document with one paragraph per entry.
func buildDOCX(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}

	files := []struct{ name, body string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() +
			`</w:body></w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	return buf.Bytes()
}

func TestReadDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		file     string
		data     []byte
		wantName string
		want     []string
	}{
		{
			name:     "markdown",
			file:     "uploads/../alice.MD",
			data:     []byte("Go developer"),
			wantName: "alice.MD",
			want:     []string{"Go developer"},
		},
		{
			name:     "plain text",
			file:     "bob.txt",
			data:     []byte("Kubernetes operator"),
			wantName: "bob.txt",
			want:     []string{"Kubernetes operator"},
		},
		{
			name:     "pdf",
			file:     "carol.pdf",
			data:     buildPDF(t, "Senior Go engineer with Docker"),
			wantName: "carol.pdf",
			want:     []string{"Senior Go engineer with Docker"},
		},
		{
			name:     "docx",
			file:     "dave.DOCX",
			data:     buildDOCX(t, "Backend developer", "5 years of Go and PostgreSQL"),
			wantName: "dave.DOCX",
			want:     []string{"Backend developer\n", "5 years of Go and PostgreSQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := ReadDocument(tt.file, bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if doc.Name != tt.wantName {
				t.Fatalf("expected name %q, got %q", tt.wantName, doc.Name)
			}
			for _, w := range tt.want {
				if !strings.Contains(doc.Text, w) {
					t.Fatalf("expected text to contain %q, got %q", w, doc.Text)
				}
			}
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data []byte
		want error
	}{
		{name: "image", file: "photo.png", data: []byte("\x89PNG"), want: ErrUnsupportedFormat},
		{name: "legacy word", file: "old.doc", data: []byte("data"), want: ErrUnsupportedFormat},
		{name: "scanned pdf", file: "scan.pdf", data: buildPDF(t, ""), want: ErrNoText},
		{name: "empty docx", file: "empty.docx", data: buildDOCX(t), want: ErrNoText},
		{name: "blank text", file: "blank.txt", data: []byte(" \n\t"), want: ErrNoText},
		{name: "broken pdf", file: "broken.pdf", data: []byte("%PDF-1.4")},
		{name: "broken docx", file: "broken.docx", data: []byte("not a zip archive")},
		{name: "pdf renamed to txt", file: "resume.txt", data: buildPDF(t, "Go")},
		{name: "invalid utf8", file: "latin1.txt", data: []byte{'c', 'a', 'f', 0xe9}},
		{name: "too big", file: "big.txt", data: bytes.Repeat([]byte("a"), MaxDocumentSize+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadDocument(tt.file, bytes.NewReader(tt.data))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == nil && errors.Is(err, ErrUnsupportedFormat) {
				t.Fatalf("expected a read error, not an unsupported format: %v", err)
			}
		})
	}
}

func TestDocumentText(t *testing.T) {
	t.Parallel()

	content := `<w:document xmlns:w="urn:w"><w:body>` +
		`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Line one</w:t><w:br/><w:t>Line two</w:t></w:r><w:r><w:instrText>ignored</w:instrText></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := documentText(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Skills:\tGo\nLine one\nLine two\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	if _, err := documentText("<w:p><w:t>unclosed"); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte(""), false},
		{[]byte("Go developer\nDocker\tKubernetes\r\n"), false},
		{[]byte("%PDF-1.7 ..."), true},
		{[]byte("PK\x03\x04"), true},
		{[]byte("\x00\x01\x02\x03abc"), true},
	}

	for _, tt := range tests {
		if got := isBinary(tt.data); got != tt.want {
			t.Fatalf("isBinary(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
