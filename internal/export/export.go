package export

import (
	"path/filepath"
	"strings"

	"resume-critic/internal/analyses/features"
	"resume-critic/internal/analyses/recommendations"
	"resume-critic/internal/analyses/scoring"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"
)

// Input is everything a downloadable report shows.
type Input struct {
	AnalysisID string
	FileName   string
	Signals    features.Set
	Report     scoring.Report
	Commentary string
}

// FileName derives the download name from the uploaded file name.
func FileName(uploaded, ext string) string {
	base := strings.TrimSuffix(filepath.Base(strings.TrimSpace(uploaded)), filepath.Ext(uploaded))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	base = strings.Trim(base, "_")
	if base == "" {
		base = "resume"
	}
	return base + "-critique." + ext
}

type feedbackRow struct {
	category string
	text     string
}

// feedbackRows flattens the report's message lists in display order.
func feedbackRows(r scoring.Report) []feedbackRow {
	var rows []feedbackRow
	for _, s := range r.Strengths {
		rows = append(rows, feedbackRow{"Strength", s})
	}
	for _, s := range r.Improvements {
		rows = append(rows, feedbackRow{"Improvement", s})
	}
	for _, s := range recommendations.Texts(r.Recommendations) {
		rows = append(rows, feedbackRow{"Recommendation", s})
	}
	for _, s := range r.Formatting.Suggestions {
		rows = append(rows, feedbackRow{"Formatting", s})
	}
	return rows
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
