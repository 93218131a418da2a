package extract

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZip  = "application/zip"
)

// Format is the declared document format of an upload.
type Format int

const (
	FormatUnknown Format = iota
	FormatPDF
	FormatDOCX
)

func (f Format) String() string {
	switch f {
	case FormatPDF:
		return "pdf"
	case FormatDOCX:
		return "docx"
	default:
		return "unknown"
	}
}

// ContentType returns the canonical MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return mimePDF
	case FormatDOCX:
		return mimeDOCX
	default:
		return "application/octet-stream"
	}
}

// ResolveFormat picks the format from the file extension. Names without an
// extension fall back to the declared content type; a plain zip content type
// only counts as DOCX when the archive carries word/document.xml.
func ResolveFormat(fileName, contentType string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(fileName))) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	case "":
	default:
		return FormatUnknown
	}

	switch normalizeMimeType(contentType) {
	case mimePDF:
		return FormatPDF
	case mimeDOCX:
		return FormatDOCX
	case mimeZip:
		if zipHasWordDocument(data) {
			return FormatDOCX
		}
	}
	return FormatUnknown
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

func zipHasWordDocument(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
