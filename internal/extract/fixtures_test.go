package extract

import (
	"archive/zip"
	"bytes"
	"html"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

// buildDOCX writes a minimal word archive with one paragraph per line.
func buildDOCX(t *testing.T, lines ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		body.WriteString(html.EscapeString(line))
		body.WriteString(`</w:t></w:r></w:p>`)
	}
	document := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`

	return buildZip(t, map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"word/_rels/document.xml.rels": documentRelsXML,
		"word/document.xml":            document,
	})
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/_rels/document.xml.rels", "word/document.xml", "notes.txt"} {
		content, ok := files[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// buildPDF renders each line as its own text row.
func buildPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	return renderPDF(t, nil, lines)
}

// buildEncryptedPDF renders lines behind a user password.
func buildEncryptedPDF(t *testing.T, lines ...string) []byte {
	t.Helper()
	return renderPDF(t, func(doc *gofpdf.Fpdf) {
		doc.SetProtection(gofpdf.CnProtectPrint, "secret", "owner")
	}, lines)
}

func renderPDF(t *testing.T, setup func(*gofpdf.Fpdf), lines []string) []byte {
	t.Helper()

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	if setup != nil {
		setup(doc)
	}
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	for _, line := range lines {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("render pdf: %v", err)
	}
	return buf.Bytes()
}
