package web

import (
	"archive/zip"
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/analyses"
)

func setupWebRouter(t *testing.T, maxUploadBytes int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.SetHTMLTemplate(Templates())
	NewHandler(&analyses.Service{}, nil, maxUploadBytes).RegisterRoutes(router)
	return router
}

func docxWithLines(t *testing.T, lines ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, line := range lines {
		body.WriteString(`<w:p><w:r><w:t>` + line + `</w:t></w:r></w:p>`)
	}
	files := []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`},
		{"word/_rels/document.xml.rels", `<?xml version="1.0" encoding="UTF-8"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`},
		{"word/document.xml", `<?xml version="1.0" encoding="UTF-8"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			t.Fatalf("create %s: %v", f.name, err)
		}
		if _, err := w.Write([]byte(f.content)); err != nil {
			t.Fatalf("write %s: %v", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, fileName string, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/upload-resume", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestFormPages(t *testing.T) {
	router := setupWebRouter(t, 10<<20)

	for _, path := range []string{"/", "/upload"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))

		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		body := resp.Body.String()
		for _, want := range []string{`action="/upload-resume"`, `name="file"`, `<option value="healthcare">Healthcare</option>`, "Maximum file size: 10 MB"} {
			if !strings.Contains(body, want) {
				t.Fatalf("%s: expected %q in form", path, want)
			}
		}
	}
}

func TestUploadRendersReport(t *testing.T) {
	router := setupWebRouter(t, 1<<20)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "resume.docx", docxWithLines(t, "Experience", "Software Engineer", "john@example.com")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := resp.Body.String()
	for _, want := range []string{
		"Analysis for: resume.docx",
		"52/100",
		`<div class="stat-number">4</div><div class="stat-label">Words</div>`,
		`<div class="stat-number">✓</div><div class="stat-label">Email Found</div>`,
		`<div class="stat-number">✗</div><div class="stat-label">Phone Found</div>`,
		"<strong>Found Keywords:</strong> none",
		"Keyword Density:</strong> Needs Improvement",
		"Contains 1 key sections: Experience",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in report:\n%s", want, body)
		}
	}
}

func TestUploadEscapesFileName(t *testing.T) {
	router := setupWebRouter(t, 1<<20)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "<script>x.docx", docxWithLines(t, "Experience")))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	if strings.Contains(body, "<script>x") || !strings.Contains(body, "&lt;script&gt;x.docx") {
		t.Fatalf("file name was not escaped:\n%s", body)
	}
}

func TestUploadErrorPages(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		data     []byte
		status   int
		message  string
	}{
		{"missing file", "", nil, http.StatusBadRequest, "A résumé file is required."},
		{"text file", "resume.txt", []byte("Experience"), http.StatusUnsupportedMediaType, "Only PDF and DOCX files are supported."},
		{"corrupt docx", "resume.docx", []byte("PK not a zip"), http.StatusUnprocessableEntity, "Could not extract text"},
		{"too large", "resume.pdf", bytes.Repeat([]byte("a"), 4096), http.StatusRequestEntityTooLarge, "upload size limit"},
	}

	router := setupWebRouter(t, 2048)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, uploadRequest(t, tt.fileName, tt.data))

			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Fatalf("expected html error page, got %q", ct)
			}
			body := resp.Body.String()
			if !strings.Contains(body, "Upload failed") || !strings.Contains(body, tt.message) {
				t.Fatalf("unexpected error page:\n%s", body)
			}
		})
	}
}
