package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"easyapply-backend/internal/shared/telemetry"
)

// MaxFileSize is the upload cap for documents fed to the extractor.
const MaxFileSize = 10 << 20 // 10 MiB

// Document is an uploaded file held in memory. The extractor never mutates
// Content, so the same Document can be extracted more than once.
type Document struct {
	Content  []byte
	Filename string
	Size     int64
}

// SupportedExtension reports whether the extractor can handle the file's
// extension. Extensions are matched case-insensitively.
func SupportedExtension(filename string) bool {
	switch extension(filename) {
	case "pdf", "docx", "doc", "txt":
		return true
	}
	return false
}

// Text converts a document to a single UTF-8 text blob, dispatching on the
// file extension. It returns an *ExtractionError for unsupported extensions,
// parser failures, and documents that yield only whitespace.
func Text(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := extension(doc.Filename)
	var (
		text string
		err  error
	)
	switch ext {
	case "pdf":
		text, err = extractPDF(doc.Content)
	case "docx", "doc":
		text, err = extractDOCX(doc.Content)
	case "txt":
		text, err = extractPlain(doc.Content)
	default:
		return "", failed(ext, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext))
	}
	if err != nil {
		return "", failed(ext, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", failed(ext, ErrNoText)
	}
	return text, nil
}

func extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// extractPDF pulls text page by page via github.com/ledongthuc/pdf. Pages
// whose extraction fails are logged and skipped rather than aborting the
// whole document.
func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for num := 1; num <= reader.NumPage(); num++ {
		text, err := pdfPageText(reader, num)
		if err != nil {
			telemetry.Warn("extract.pdf_page_skipped", map[string]any{
				"page":  num,
				"error": err.Error(),
			})
			continue
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, strings.TrimSpace(text))
		}
	}
	if len(pages) == 0 {
		return "", ErrNoText
	}
	return strings.Join(pages, "\n\n"), nil
}

// pdfPageText extracts one page. The pdf library panics on some malformed
// content streams; those are converted to errors so the page can be skipped.
func pdfPageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page %d: %v", num, rec)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", fmt.Errorf("page %d: missing", num)
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d: %w", num, err)
	}
	return text, nil
}

// extractDOCX reads word/document.xml out of the OOXML container and flattens
// it: body paragraphs first, then table rows as "cell | cell" lines, blank
// rows skipped.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx container: %w", err)
	}

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("word/document.xml not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	paragraphs, rows, err := walkDocumentXML(rc)
	if err != nil {
		return "", err
	}

	blocks := paragraphs
	for _, row := range rows {
		blocks = append(blocks, strings.Join(row, " | "))
	}
	return strings.Join(blocks, "\n\n"), nil
}

// walkDocumentXML streams the WordprocessingML body, collecting top-level
// paragraph text and table cell text separately. Nested tables are flattened
// into the enclosing cell.
func walkDocumentXML(r io.Reader) (paragraphs []string, rows [][]string, err error) {
	decoder := xml.NewDecoder(r)

	var (
		para     strings.Builder
		cell     strings.Builder
		curRow   []string
		tblDepth int
		inCell   bool
	)

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("parse document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				tblDepth++
			case "tr":
				if tblDepth == 1 {
					curRow = curRow[:0]
				}
			case "tc":
				if tblDepth >= 1 {
					inCell = true
					cell.Reset()
				}
			case "br":
				if inCell {
					cell.WriteString("\n")
				} else if tblDepth == 0 {
					para.WriteString("\n")
				}
			}
		case xml.CharData:
			if inCell {
				cell.Write(t)
			} else if tblDepth == 0 {
				para.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if tblDepth == 0 {
					if text := strings.TrimSpace(para.String()); text != "" {
						paragraphs = append(paragraphs, text)
					}
					para.Reset()
				} else if inCell {
					cell.WriteString("\n")
				}
			case "tc":
				if tblDepth >= 1 {
					if text := strings.TrimSpace(cell.String()); text != "" {
						curRow = append(curRow, text)
					}
					inCell = false
				}
			case "tr":
				if tblDepth == 1 && len(curRow) > 0 {
					rows = append(rows, append([]string(nil), curRow...))
				}
			case "tbl":
				tblDepth--
			}
		}
	}
	return paragraphs, rows, nil
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8")
	}
	return string(data), nil
}
