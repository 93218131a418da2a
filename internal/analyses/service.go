package analyses

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-critic/internal/analyses/features"
	"resume-critic/internal/analyses/rules"
	"resume-critic/internal/analyses/scoring"
	"resume-critic/internal/export"
	"resume-critic/internal/extract"
	"resume-critic/internal/llm"
	"resume-critic/internal/shared/metrics"
	"resume-critic/internal/shared/storage/object"
	"resume-critic/internal/shared/telemetry"
	"resume-critic/internal/shared/util"
)

const maxJobDescriptionChars = 10000

// Service runs the extract, detect and score pipeline for one document.
type Service struct {
	Rules             *rules.Table
	Source            object.Store
	Commentary        llm.Client
	CommentaryTimeout time.Duration
	MaxBytes          int64
}

// Input is an uploaded document plus optional hints.
type Input struct {
	FileName       string
	ContentType    string
	Data           []byte
	Industry       string
	JobDescription string
}

// Stats is the summary panel shown next to the report.
type Stats struct {
	Words      int  `json:"words"`
	Lines      int  `json:"lines"`
	Characters int  `json:"characters"`
	EmailFound bool `json:"emailFound"`
	PhoneFound bool `json:"phoneFound"`
}

// Result is a completed analysis. Report is a pure function of the document
// bytes, the hints and the rule table.
type Result struct {
	ID             string         `json:"id"`
	FileName       string         `json:"fileName"`
	Format         string         `json:"format"`
	DocumentSHA256 string         `json:"documentSha256"`
	Stats          Stats          `json:"stats"`
	Signals        features.Set   `json:"signals"`
	Report         scoring.Report `json:"report"`
	Commentary     string         `json:"commentary,omitempty"`
}

// Export converts the result into the download renderer's input.
func (r Result) Export() export.Input {
	return export.Input{
		AnalysisID: r.ID,
		FileName:   r.FileName,
		Signals:    r.Signals,
		Report:     r.Report,
		Commentary: r.Commentary,
	}
}

// Analyze extracts, detects and scores an uploaded document.
func (s *Service) Analyze(ctx context.Context, in Input) (Result, error) {
	startedAt := time.Now()
	metrics.IncAnalysisStarted()

	doc := extract.NewDocument(in.FileName, in.ContentType, in.Data)
	text, err := extract.Text(ctx, doc)
	if err != nil {
		return Result{}, s.fail(ctx, doc, err, startedAt)
	}
	return s.complete(ctx, doc, text, hintsFrom(in.Industry, in.JobDescription), startedAt), nil
}

// AnalyzeStored analyzes an object from the configured source store.
func (s *Service) AnalyzeStored(ctx context.Context, storageKey, fileName, industry, jobDescription string) (Result, error) {
	startedAt := time.Now()
	metrics.IncAnalysisStarted()

	if s.Source == nil {
		return Result{}, s.fail(ctx, extract.Document{FileName: fileName}, ErrSourceUnavailable, startedAt)
	}
	doc, text, err := extract.FromStore(ctx, s.Source, storageKey, fileName, s.MaxBytes)
	if err != nil {
		return Result{}, s.fail(ctx, doc, err, startedAt)
	}
	return s.complete(ctx, doc, text, hintsFrom(industry, jobDescription), startedAt), nil
}

func (s *Service) complete(ctx context.Context, doc extract.Document, text string, hints features.Hints, startedAt time.Time) Result {
	table := s.table()
	set := features.Detect(text, hints, table)
	report := scoring.Score(set, table)

	result := Result{
		ID:             uuid.NewString(),
		FileName:       doc.FileName,
		Format:         doc.Format.String(),
		DocumentSHA256: util.HashContent(doc.Data),
		Stats: Stats{
			Words:      set.WordCount,
			Lines:      set.LineCount,
			Characters: set.CharCount,
			EmailFound: set.HasEmail,
			PhoneFound: set.HasPhone,
		},
		Signals: set,
		Report:  report,
	}
	result.Commentary = s.commentary(ctx, result.ID, text, hints, report)

	durationMs := elapsedMs(startedAt)
	metrics.IncAnalysisCompleted(result.Format)
	metrics.ObserveScore(report.OverallScore)
	metrics.ObserveAnalysisDurationMs(durationMs)
	telemetry.Info("analysis.completed", logFields(ctx, map[string]any{
		"analysis_id":   result.ID,
		"file_name":     result.FileName,
		"format":        result.Format,
		"industry":      report.Industry,
		"score":         report.OverallScore,
		"words":         set.WordCount,
		"rules_version": report.RulesVersion,
		"duration_ms":   durationMs,
	}))
	return result
}

func (s *Service) fail(ctx context.Context, doc extract.Document, err error, startedAt time.Time) error {
	failure := Classify(err)
	durationMs := elapsedMs(startedAt)
	metrics.IncAnalysisFailed(failure.Code)
	metrics.ObserveAnalysisDurationMs(durationMs)

	fields := logFields(ctx, map[string]any{
		"file_name":   doc.FileName,
		"format":      doc.Format.String(),
		"code":        failure.Code,
		"err":         sanitizeError(err),
		"duration_ms": durationMs,
	})
	if failure.Status >= 500 {
		telemetry.Error("analysis.failed", fields)
	} else {
		telemetry.Warn("analysis.failed", fields)
	}
	return err
}

// commentary is best effort: failures are logged and counted, never returned.
func (s *Service) commentary(ctx context.Context, analysisID, text string, hints features.Hints, report scoring.Report) string {
	if s.Commentary == nil {
		return ""
	}
	if s.CommentaryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CommentaryTimeout)
		defer cancel()
	}

	client := newRetryingCommentary(s.Commentary, analysisID, requestIDFromContext(ctx))
	out, err := client.Critique(ctx, llm.CritiqueInput{
		ResumeText:     text,
		JobDescription: hints.JobDescription,
		Industry:       report.IndustryLabel,
		Score:          report.OverallScore,
		Strengths:      report.Strengths,
		Improvements:   report.Improvements,
		PromptVersion:  llm.DefaultPromptVersion,
	})
	if err != nil {
		if !errors.Is(err, llm.ErrDisabled) {
			metrics.IncCommentaryFailed()
			telemetry.Warn("commentary.failed", logFields(ctx, map[string]any{
				"analysis_id": analysisID,
				"err":         sanitizeError(err),
			}))
		}
		return ""
	}
	return strings.TrimSpace(out)
}

func (s *Service) table() *rules.Table {
	if s.Rules != nil {
		return s.Rules
	}
	return rules.Default()
}

func hintsFrom(industry, jobDescription string) features.Hints {
	jd := strings.TrimSpace(jobDescription)
	if runes := []rune(jd); len(runes) > maxJobDescriptionChars {
		jd = string(runes[:maxJobDescriptionChars])
	}
	return features.Hints{
		Industry:       strings.TrimSpace(industry),
		JobDescription: jd,
	}
}

func elapsedMs(startedAt time.Time) float64 {
	return float64(time.Since(startedAt).Microseconds()) / 1000.0
}
