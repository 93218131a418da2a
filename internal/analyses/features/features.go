package features

import (
	"strings"
	"unicode/utf8"

	"resume-critic/internal/analyses/rules"
)

// Set is the signal set derived from résumé text. Absence of a signal is a
// valid value: empty slices, zero counts, false flags.
type Set struct {
	Industry        string   `json:"industry"`
	WordCount       int      `json:"wordCount"`
	LineCount       int      `json:"lineCount"`
	CharCount       int      `json:"charCount"`
	Emails          []string `json:"emails"`
	Phones          []string `json:"phones"`
	HasEmail        bool     `json:"hasEmail"`
	HasPhone        bool     `json:"hasPhone"`
	HasLinkedIn     bool     `json:"hasLinkedIn"`
	HasGitHub       bool     `json:"hasGitHub"`
	Sections        []string `json:"sections"`
	CoreSections    []string `json:"coreSections"`
	KeywordsFound   []string `json:"keywordsFound"`
	KeywordsMissing []string `json:"keywordsMissing"`
	Achievements    int      `json:"achievements"`
}

// Hints are optional caller-supplied inputs for industry selection.
type Hints struct {
	Industry       string
	JobDescription string
}

// HasSection reports whether name was found as a header.
func (s Set) HasSection(name string) bool {
	for _, found := range s.Sections {
		if found == name {
			return true
		}
	}
	return false
}

// Detect computes the signal set for text. It never fails.
func Detect(text string, hints Hints, table *rules.Table) Set {
	lower := strings.ToLower(text)
	lines := nonEmptyLines(text)

	industry := DetectIndustry(text, hints, table)
	profile, _ := table.Industry(industry)

	emails := uniqueMatches(table.Email().FindAllString(text, -1))
	phones := uniqueMatches(table.Phone().FindAllString(text, -1))

	found, missing := matchKeywords(lower, profile.Keywords, table)
	sections, core := detectSections(lines, table)

	return Set{
		Industry:        industry,
		WordCount:       len(strings.Fields(text)),
		LineCount:       len(lines),
		CharCount:       utf8.RuneCountInString(text),
		Emails:          emails,
		Phones:          phones,
		HasEmail:        len(emails) > 0,
		HasPhone:        len(phones) > 0,
		HasLinkedIn:     strings.Contains(lower, "linkedin"),
		HasGitHub:       strings.Contains(lower, "github"),
		Sections:        sections,
		CoreSections:    core,
		KeywordsFound:   found,
		KeywordsMissing: missing,
		Achievements:    len(table.Achievement().FindAllString(lower, -1)),
	}
}

// DetectIndustry returns the explicit hint when it names a profile. Otherwise
// each profile scores 3 per role marker and 1 per keyword present in the
// résumé plus job description; ties keep table order and a zero best score
// falls back to the default industry.
func DetectIndustry(text string, hints Hints, table *rules.Table) string {
	if ind, ok := table.Industry(hints.Industry); ok {
		return ind.Name
	}

	haystack := strings.ToLower(text + "\n" + hints.JobDescription)
	best, bestScore := table.DefaultIndustry, 0
	for _, ind := range table.Industries {
		score := 0
		for _, marker := range ind.RoleMarkers {
			if table.ContainsKeyword(haystack, marker) {
				score += 3
			}
		}
		for _, kw := range ind.Keywords {
			if table.ContainsKeyword(haystack, kw) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = ind.Name, score
		}
	}
	return best
}

func matchKeywords(lower string, vocabulary []string, table *rules.Table) (found, missing []string) {
	found = []string{}
	missing = []string{}
	for _, kw := range vocabulary {
		if table.ContainsKeyword(lower, kw) {
			found = append(found, kw)
		} else {
			missing = append(missing, kw)
		}
	}
	return found, missing
}

// detectSections treats a line as a header when it is at most
// MaxHeaderWords words long and contains one of a section's aliases.
func detectSections(lines []string, table *rules.Table) (all, core []string) {
	hit := make(map[string]bool, len(table.Sections))
	for _, line := range lines {
		if len(strings.Fields(line)) > table.MaxHeaderWords {
			continue
		}
		lower := strings.ToLower(line)
		for _, section := range table.Sections {
			if hit[section.Name] {
				continue
			}
			for _, alias := range section.Aliases {
				if strings.Contains(lower, alias) {
					hit[section.Name] = true
					break
				}
			}
		}
	}

	all = []string{}
	core = []string{}
	for _, section := range table.Sections {
		if !hit[section.Name] {
			continue
		}
		all = append(all, section.Name)
		if section.Core {
			core = append(core, section.Name)
		}
	}
	return all, core
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func uniqueMatches(matches []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
