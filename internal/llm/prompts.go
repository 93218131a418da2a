package llm

import _ "embed"

// DefaultPromptVersion is used when CritiqueInput.PromptVersion is empty or unknown.
const DefaultPromptVersion = "critique_v1"

var (
	//go:embed prompts/critique_v1.txt
	promptCritiqueV1 string
)

// PromptTemplate returns the prompt template text and whether the version was recognized.
func PromptTemplate(version string) (string, bool) {
	switch version {
	case "critique_v1":
		return promptCritiqueV1, true
	default:
		return promptCritiqueV1, false
	}
}
