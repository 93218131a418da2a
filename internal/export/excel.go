package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet  = "Summary"
	feedbackSheet = "Feedback"
	keywordsSheet = "Keywords"
)

// XLSX renders the report as a workbook with summary, feedback and keyword sheets.
func XLSX(in Input) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{feedbackSheet, keywordsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("label style: %w", err)
	}

	if err := writeSummarySheet(f, in, headerStyle, labelStyle); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeFeedbackSheet(f, in, headerStyle); err != nil {
		return nil, fmt.Errorf("feedback sheet: %w", err)
	}
	if err := writeKeywordsSheet(f, in, headerStyle); err != nil {
		return nil, fmt.Errorf("keywords sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, in Input, headerStyle, labelStyle int) error {
	r := in.Report
	rows := [][]any{
		{"Résumé Critique", ""},
		{"File", in.FileName},
		{"Analysis ID", in.AnalysisID},
		{"Overall Score", r.OverallScore},
		{"Industry", r.IndustryLabel},
		{"Keyword Density", r.KeywordDensity},
		{"Words", in.Signals.WordCount},
		{"Lines", in.Signals.LineCount},
		{"Email Found", yesNo(in.Signals.HasEmail)},
		{"Phone Found", yesNo(in.Signals.HasPhone)},
		{"Structure", r.Formatting.Structure},
		{"Readability", r.Formatting.Readability},
		{"Rules Version", r.RulesVersion},
	}
	if in.Commentary != "" {
		rows = append(rows, []any{"Commentary", in.Commentary})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A2", fmt.Sprintf("A%d", len(rows)), labelStyle); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func writeFeedbackSheet(f *excelize.File, in Input, headerStyle int) error {
	if err := f.SetSheetRow(feedbackSheet, "A1", &[]any{"Category", "#", "Feedback"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(feedbackSheet, "A1", "C1", headerStyle); err != nil {
		return err
	}
	counts := map[string]int{}
	for i, row := range feedbackRows(in.Report) {
		counts[row.category]++
		if err := f.SetSheetRow(feedbackSheet, fmt.Sprintf("A%d", i+2), &[]any{row.category, counts[row.category], row.text}); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(feedbackSheet, "A", "A", 18); err != nil {
		return err
	}
	return f.SetColWidth(feedbackSheet, "C", "C", 90)
}

func writeKeywordsSheet(f *excelize.File, in Input, headerStyle int) error {
	if err := f.SetSheetRow(keywordsSheet, "A1", &[]any{"Keyword", "Status"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(keywordsSheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	row := 2
	for _, kw := range in.Report.KeywordsFound {
		if err := f.SetSheetRow(keywordsSheet, fmt.Sprintf("A%d", row), &[]any{kw, "Found"}); err != nil {
			return err
		}
		row++
	}
	for _, kw := range in.Report.KeywordsSuggested {
		if err := f.SetSheetRow(keywordsSheet, fmt.Sprintf("A%d", row), &[]any{kw, "Suggested"}); err != nil {
			return err
		}
		row++
	}
	return f.SetColWidth(keywordsSheet, "A", "B", 22)
}
