package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages. Names are the file base names
// ("form.html", "report.html", "error.html").
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"join": func(items []string) string {
			if len(items) == 0 {
				return "none"
			}
			return strings.Join(items, ", ")
		},
		"check": func(v bool) string {
			if v {
				return "✓"
			}
			return "✗"
		},
	}).ParseFS(templateFS, "templates/*.html"))
}
