package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-critic/internal/analyses"
	"resume-critic/internal/analyses/rules"
	"resume-critic/internal/export"
	"resume-critic/internal/llm"
	openai "resume-critic/internal/llm/openai"
	"resume-critic/internal/shared/config"
	"resume-critic/internal/shared/telemetry"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run analyzes one local résumé and writes the result as JSON, XLSX or PDF.
func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.Load()
	telemetry.Setup(stderr, "console", "warn")

	fs := flag.NewFlagSet("critique", flag.ContinueOnError)
	fs.SetOutput(stderr)
	resumePath := fs.String("resume", "", "Path to resume file (pdf or docx)")
	industry := fs.String("industry", "", "Industry profile (optional, detected when empty)")
	jdPath := fs.String("jd", "", "Path to job description file (optional)")
	rulesPath := fs.String("rules", cfg.RulesFile, "Rule table YAML (optional)")
	format := fs.String("format", "json", "Output format: json, xlsx or pdf")
	outPath := fs.String("out", "", "Path to write output (stdout when empty)")
	provider := fs.String("provider", cfg.LLMProvider, "Commentary provider: none or openai")
	model := fs.String("model", cfg.LLMModel, "Commentary model")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if strings.TrimSpace(*resumePath) == "" {
		return fail(stderr, "resume path is required")
	}
	resumeBytes, err := os.ReadFile(*resumePath)
	if err != nil {
		return fail(stderr, fmt.Sprintf("read resume: %v", err))
	}

	jobDescription := ""
	if strings.TrimSpace(*jdPath) != "" {
		jdBytes, err := os.ReadFile(*jdPath)
		if err != nil {
			return fail(stderr, fmt.Sprintf("read job description: %v", err))
		}
		jobDescription = string(jdBytes)
	}

	table, err := rules.Load(*rulesPath)
	if err != nil {
		return fail(stderr, err.Error())
	}
	client, err := buildClient(*provider, *model, cfg)
	if err != nil {
		return fail(stderr, err.Error())
	}

	svc := &analyses.Service{Rules: table, Commentary: client, CommentaryTimeout: cfg.LLMTimeout}
	result, err := svc.Analyze(context.Background(), analyses.Input{
		FileName:       filepath.Base(*resumePath),
		Data:           resumeBytes,
		Industry:       *industry,
		JobDescription: jobDescription,
	})
	if err != nil {
		f := analyses.Classify(err)
		return fail(stderr, fmt.Sprintf("%s: %v", f.Code, err))
	}

	payload, err := render(result, *format)
	if err != nil {
		return fail(stderr, err.Error())
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, payload, 0o644); err != nil {
			return fail(stderr, fmt.Sprintf("write output: %v", err))
		}
		return 0
	}
	if _, err := stdout.Write(payload); err != nil {
		return fail(stderr, fmt.Sprintf("write stdout: %v", err))
	}
	return 0
}

func render(result analyses.Result, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("format json: %w", err)
		}
		return append(payload, '\n'), nil
	case "xlsx":
		return export.XLSX(result.Export())
	case "pdf":
		return export.PDF(result.Export())
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func buildClient(provider, model string, cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "none":
		return nil, nil
	case "openai":
		return openai.NewClient(cfg.LLMAPIKey, model, cfg.LLMBaseURL)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func fail(stderr io.Writer, msg string) int {
	_, _ = fmt.Fprintln(stderr, msg)
	return 1
}
