package recommendations

import (
	"strings"
	"unicode"
)

// Recommendation is one numbered next step shown under a report.
type Recommendation struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
	Order    int    `json:"order"`
}

// Build turns catalog messages, given in rule evaluation order, into numbered
// recommendations. Messages that share an ID keep the first occurrence and
// at most limit items are returned.
func Build(messages []string, limit int) []Recommendation {
	candidates := make([]Recommendation, 0, len(messages))
	for _, msg := range messages {
		text := strings.TrimSpace(msg)
		if text == "" {
			continue
		}
		candidates = append(candidates, Recommendation{
			ID:       messageID(text),
			Category: inferCategory(text),
			Text:     text,
		})
	}

	deduped := dedupe(candidates)
	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}
	for i := range deduped {
		deduped[i].Order = i + 1
	}
	return deduped
}

// Texts returns the recommendation texts in order.
func Texts(items []Recommendation) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Text)
	}
	return out
}

// messageID slugs the label before a colon so templated messages keep a
// stable ID across inputs.
func messageID(text string) string {
	label := text
	if idx := strings.Index(text, ":"); idx > 0 {
		label = text[:idx]
	}
	return strings.ToUpper(strings.ReplaceAll(slugify(label), "-", "_"))
}

func slugify(input string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(input)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "item"
	}
	return out
}

func dedupe(items []Recommendation) []Recommendation {
	seen := make(map[string]bool, len(items))
	out := make([]Recommendation, 0, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

func inferCategory(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "keyword") || strings.Contains(lower, "consider adding"):
		return "SKILLS"
	case strings.Contains(lower, "metric") || strings.Contains(lower, "quantif"):
		return "IMPACT"
	case strings.Contains(lower, "section") || strings.Contains(lower, "header"):
		return "STRUCTURE"
	case strings.Contains(lower, "format") || strings.Contains(lower, "bullet"):
		return "FORMATTING"
	default:
		return "ATS"
	}
}
