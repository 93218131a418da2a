package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"resume-critic/internal/analyses/recommendations"
)

// PDF renders the report as a single-column A4 document.
func PDF(in Input) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetTitle("Résumé Critique", true)
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	r := in.Report
	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, tr("Resume Analysis Results"), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 11)
	doc.CellFormat(0, 6, tr("Analysis for: "+in.FileName), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "B", 28)
	doc.CellFormat(0, 14, fmt.Sprintf("%d/100", r.OverallScore), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	stats := fmt.Sprintf("Industry: %s   Words: %d   Lines: %d   Email: %s   Phone: %s",
		r.IndustryLabel, in.Signals.WordCount, in.Signals.LineCount, yesNo(in.Signals.HasEmail), yesNo(in.Signals.HasPhone))
	doc.CellFormat(0, 6, tr(stats), "", 1, "C", false, 0, "")
	doc.Ln(4)

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		doc.SetFont("Helvetica", "B", 13)
		doc.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 11)
		for _, item := range items {
			doc.MultiCell(0, 6, tr("- "+item), "", "L", false)
		}
		doc.Ln(2)
	}

	section("Strengths", r.Strengths)
	section("Areas for Improvement", r.Improvements)
	section("Keyword Analysis", []string{
		"Found Keywords: " + joinOrNone(r.KeywordsFound),
		"Suggested Keywords: " + joinOrNone(r.KeywordsSuggested),
		"Keyword Density: " + r.KeywordDensity,
	})
	section("Recommendations", recommendations.Texts(r.Recommendations))
	section("Formatting", append([]string{r.Formatting.Structure, r.Formatting.Readability}, r.Formatting.Suggestions...))
	if in.Commentary != "" {
		section("Reviewer Commentary", strings.Split(in.Commentary, "\n"))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
