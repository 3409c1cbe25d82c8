package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const docxWithTable = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>John Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Software Engineer</w:t></w:r></w:p>
    <w:p><w:r><w:t> </w:t></w:r></w:p>
    <w:tbl>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Python</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>5 years</w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t> </w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t> </w:t></w:r></w:p></w:tc>
      </w:tr>
      <w:tr>
        <w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc>
        <w:tc><w:p><w:r><w:t>2 years</w:t></w:r></w:p></w:tc>
      </w:tr>
    </w:tbl>
  </w:body>
</w:document>`

func TestTextPlainRoundTrip(t *testing.T) {
	doc := Document{Content: []byte("Data Scientist at Acme Corp\n"), Filename: "posting.TXT", Size: 28}
	got, err := Text(context.Background(), doc)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "Data Scientist at Acme Corp\n" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestTextUnsupportedExtension(t *testing.T) {
	doc := Document{Content: []byte("x"), Filename: "resume.xlsx", Size: 1}
	_, err := Text(context.Background(), doc)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
	if extErr.Format != "xlsx" {
		t.Fatalf("expected format xlsx, got %q", extErr.Format)
	}
}

func TestTextWhitespaceOnlyIsError(t *testing.T) {
	doc := Document{Content: []byte("   \n\t  \n"), Filename: "blank.txt", Size: 8}
	_, err := Text(context.Background(), doc)
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("expected ErrNoText, got %v", err)
	}
}

func TestTextInvalidUTF8IsError(t *testing.T) {
	doc := Document{Content: []byte{0xff, 0xfe, 0x41}, Filename: "weird.txt", Size: 3}
	if _, err := Text(context.Background(), doc); err == nil {
		t.Fatal("expected error for invalid UTF-8")
	}
}

func TestTextDocxParagraphsAndTables(t *testing.T) {
	doc := Document{Content: buildDocx(t, docxWithTable), Filename: "resume.docx"}
	got, err := Text(context.Background(), doc)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}

	wantBlocks := []string{
		"John Doe",
		"Software Engineer",
		"Python | 5 years",
		"Go | 2 years",
	}
	if got != strings.Join(wantBlocks, "\n\n") {
		t.Fatalf("unexpected docx text:\n%q", got)
	}
}

func TestTextDocxIsRepeatable(t *testing.T) {
	doc := Document{Content: buildDocx(t, docxWithTable), Filename: "resume.docx"}
	first, err := Text(context.Background(), doc)
	if err != nil {
		t.Fatalf("first Text: %v", err)
	}
	second, err := Text(context.Background(), doc)
	if err != nil {
		t.Fatalf("second Text: %v", err)
	}
	if first != second {
		t.Fatal("expected identical output across extractions of the same document")
	}
}

func TestTextDocExtensionUsesDocxPath(t *testing.T) {
	doc := Document{Content: buildDocx(t, docxWithTable), Filename: "legacy.doc"}
	got, err := Text(context.Background(), doc)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if !strings.Contains(got, "John Doe") {
		t.Fatalf("expected paragraph text, got %q", got)
	}
}

func TestTextCorruptPDF(t *testing.T) {
	doc := Document{Content: []byte("not a pdf"), Filename: "resume.pdf", Size: 9}
	_, err := Text(context.Background(), doc)
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *ExtractionError, got %T", err)
	}
	if extErr.Format != "pdf" {
		t.Fatalf("expected format pdf, got %q", extErr.Format)
	}
}

func TestTextZipWithoutDocumentXMLRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	doc := Document{Content: buf.Bytes(), Filename: "archive.docx"}
	if _, err := Text(context.Background(), doc); err == nil {
		t.Fatal("expected error for docx without document.xml")
	}
}

func TestSupportedExtension(t *testing.T) {
	for _, name := range []string{"a.pdf", "b.DOCX", "c.doc", "d.txt"} {
		if !SupportedExtension(name) {
			t.Fatalf("expected %q to be supported", name)
		}
	}
	for _, name := range []string{"a.xlsx", "noext", "e.html"} {
		if SupportedExtension(name) {
			t.Fatalf("expected %q to be unsupported", name)
		}
	}
}
