package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"resume-critic/internal/shared/storage/object"
)

// Document is an uploaded résumé held in memory for the request lifetime.
type Document struct {
	FileName    string
	ContentType string
	Format      Format
	Data        []byte
}

// NewDocument builds a Document and resolves its format.
func NewDocument(fileName, contentType string, data []byte) Document {
	return Document{
		FileName:    fileName,
		ContentType: contentType,
		Format:      ResolveFormat(fileName, contentType, data),
		Data:        data,
	}
}

// Text extracts cleaned plain text from doc.
func Text(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var decode func([]byte) (string, error)
	switch doc.Format {
	case FormatPDF:
		decode = extractPDF
	case FormatDOCX:
		decode = extractDOCX
	default:
		return "", fmt.Errorf("extract %q: %w", doc.FileName, ErrUnsupportedFormat)
	}
	if len(doc.Data) == 0 {
		return "", fmt.Errorf("extract %q: %w", doc.FileName, ErrEmptyInput)
	}

	raw, err := safeDecode(decode, doc.Data)
	if err != nil {
		return "", fmt.Errorf("extract %s %q: %w: %v", doc.Format, doc.FileName, ErrParseFailure, err)
	}
	text := Clean(raw)
	if text == "" {
		return "", fmt.Errorf("extract %s %q: %w: no extractable text", doc.Format, doc.FileName, ErrParseFailure)
	}
	return text, nil
}

// FromStore reads storageKey from store, capped at maxBytes, and extracts it.
func FromStore(ctx context.Context, store object.Store, storageKey, fileName string, maxBytes int64) (Document, string, error) {
	if fileName == "" {
		fileName = storageKey
	}
	doc := NewDocument(fileName, "", nil)
	if doc.Format == FormatUnknown {
		return doc, "", fmt.Errorf("extract key=%s: %w", storageKey, ErrUnsupportedFormat)
	}

	body, err := store.Open(ctx, storageKey)
	if err != nil {
		return doc, "", fmt.Errorf("extract key=%s: %w", storageKey, err)
	}
	defer body.Close()

	reader := io.Reader(body)
	if maxBytes > 0 {
		reader = io.LimitReader(body, maxBytes+1)
	}
	raw, err := io.ReadAll(reader)
	if err != nil {
		return doc, "", fmt.Errorf("extract key=%s: read: %w", storageKey, err)
	}
	if maxBytes > 0 && int64(len(raw)) > maxBytes {
		return doc, "", fmt.Errorf("extract key=%s: %w", storageKey, ErrTooLarge)
	}
	doc.Data = raw
	doc.ContentType = doc.Format.ContentType()

	text, err := Text(ctx, doc)
	if err != nil {
		return doc, "", err
	}
	return doc, text, nil
}

// safeDecode turns decoder panics on malformed input into errors.
func safeDecode(decode func([]byte) (string, error), data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
			err = fmt.Errorf("decoder panic: %v", rec)
		}
	}()
	return decode(data)
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var out strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := pageText(page)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i, err)
		}
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(text)
	}
	return out.String(), nil
}

// pageText decodes one page's content stream. Each text object (BT) starts
// a new line, which keeps headers on lines of their own.
func pageText(page pdf.Page) (string, error) {
	return page.GetPlainText(nil)
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()

	return documentXMLText(doc.Editable().GetContent())
}
