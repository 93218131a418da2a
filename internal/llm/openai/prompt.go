package openai

import (
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"resume-critic/internal/llm"
	"resume-critic/internal/shared/telemetry"
)

const systemPrompt = "You are an experienced technical recruiter giving concise, specific résumé feedback."

// maxResumeChars bounds the résumé text sent to the model.
const maxResumeChars = 12000

// BuildPrompt creates the chat messages for a critique request.
func BuildPrompt(input llm.CritiqueInput) []openai.ChatCompletionMessage {
	_, developer := resolvePromptTemplate(input)
	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt + "\n\n" + developer},
		{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(input.ResumeText, input.JobDescription)},
	}
}

func resolvePromptTemplate(input llm.CritiqueInput) (string, string) {
	version := strings.TrimSpace(input.PromptVersion)
	if version == "" {
		version = llm.DefaultPromptVersion
	}
	template, ok := llm.PromptTemplate(version)
	usedVersion := version
	if !ok {
		telemetry.Warn("llm.prompt_version_unknown", map[string]any{"version": version, "fallback": llm.DefaultPromptVersion})
		usedVersion = llm.DefaultPromptVersion
	}

	jobDescriptionProvided := "true"
	if strings.TrimSpace(input.JobDescription) == "" {
		jobDescriptionProvided = "false"
	}

	replacer := strings.NewReplacer(
		"{{INDUSTRY}}", input.Industry,
		"{{SCORE}}", strconv.Itoa(input.Score),
		"{{STRENGTHS}}", bulletList(input.Strengths),
		"{{IMPROVEMENTS}}", bulletList(input.Improvements),
		"{{JOB_DESCRIPTION_PROVIDED}}", jobDescriptionProvided,
	)
	return usedVersion, replacer.Replace(template)
}

func bulletList(items []string) string {
	if len(items) == 0 {
		return "- (none)"
	}
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- ")
		b.WriteString(item)
	}
	return b.String()
}

func buildUserPrompt(resumeText, jobDescription string) string {
	resume := resumeText
	if runes := []rune(resume); len(runes) > maxResumeChars {
		resume = string(runes[:maxResumeChars])
	}
	jd := jobDescription
	if strings.TrimSpace(jd) == "" {
		jd = "N/A"
	}
	return fmt.Sprintf("Resume Text:\n%s\n\nJob Description:\n%s", resume, jd)
}

func promptStringFromMessages(messages []openai.ChatCompletionMessage) string {
	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.Role)
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}
