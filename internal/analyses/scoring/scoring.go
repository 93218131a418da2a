package scoring

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"resume-critic/internal/analyses/features"
	"resume-critic/internal/analyses/recommendations"
	"resume-critic/internal/analyses/rules"
)

const (
	minScore = 0
	maxScore = 100
)

// Score maps a signal set through the rule table. It is a total function and
// uses no clock or randomness.
func Score(set features.Set, table *rules.Table) Report {
	profile, ok := table.Industry(set.Industry)
	if !ok {
		profile = table.DefaultProfile()
	}

	score, breakdown := overallScore(set, profile, table)
	return Report{
		OverallScore:      score,
		Industry:          profile.Name,
		IndustryLabel:     profile.Label,
		Strengths:         strengths(set, profile, table),
		Improvements:      improvements(set, profile, table),
		Recommendations:   recommendations.Build(recommendationMessages(set, profile, table), table.Limits.Recommendations),
		KeywordsFound:     displayKeywords(set.KeywordsFound, 0),
		KeywordsSuggested: displayKeywords(set.KeywordsMissing, table.Limits.SuggestedKeywords),
		KeywordDensity:    keywordDensity(len(set.KeywordsFound), table.Feedback),
		Formatting:        formatting(set, profile, table),
		Breakdown:         breakdown,
		RulesVersion:      table.Version,
	}
}

func overallScore(set features.Set, profile rules.Industry, table *rules.Table) (int, []Adjustment) {
	s := table.Scoring
	score := table.BaseScore
	breakdown := []Adjustment{}
	add := func(rule string, delta int) {
		if delta == 0 {
			return
		}
		score += delta
		breakdown = append(breakdown, Adjustment{Rule: rule, Delta: delta})
	}

	add("word_count", s.WordCount.Apply(set.WordCount))
	if set.HasEmail {
		add("email", s.Email)
	}
	if set.HasPhone {
		add("phone", s.Phone)
	}
	if set.HasLinkedIn {
		add("linkedin", s.LinkedIn)
	}
	if set.HasGitHub && profile.RewardGitHub {
		add("github", s.GitHub)
	}
	add("keywords", s.Keywords.Apply(len(set.KeywordsFound)))
	add("sections", s.Sections.Apply(len(set.CoreSections)))
	add("achievements", s.Achievements.Apply(set.Achievements))

	return clamp(score), breakdown
}

func clamp(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func strengths(set features.Set, profile rules.Industry, table *rules.Table) []string {
	fb := table.Feedback
	out := []string{}
	if set.WordCount >= table.Scoring.WordCount.IdealMin {
		out = append(out, fmt.Sprintf(msgSubstantive, set.WordCount))
	}
	if set.HasEmail && set.HasPhone {
		out = append(out, msgContactComplete)
	}
	if len(set.KeywordsFound) >= fb.StrongKeywords {
		examples := displayKeywords(set.KeywordsFound, 3)
		out = append(out, fmt.Sprintf(msgKeywordsStrong, len(set.KeywordsFound), profile.Label, strings.Join(examples, ", ")))
	}
	if len(set.CoreSections) >= fb.StructuredSections {
		out = append(out, fmt.Sprintf(msgClearStructure, strings.Join(set.Sections, ", ")))
	}
	if set.Achievements > 0 {
		out = append(out, msgQuantified)
	}

	limit := table.Limits.Strengths
	if len(out) < limit {
		out = append(out, strengthFillers...)
	}
	return capList(out, limit)
}

func improvements(set features.Set, profile rules.Industry, table *rules.Table) []string {
	fb := table.Feedback
	out := []string{}
	switch {
	case set.WordCount < table.Scoring.WordCount.IdealMin:
		out = append(out, fmt.Sprintf(msgExpand, set.WordCount))
	case set.WordCount > fb.CondenseAbove:
		out = append(out, fmt.Sprintf(msgCondense, set.WordCount))
	}
	if !set.HasEmail {
		out = append(out, msgAddEmail)
	}
	if !set.HasPhone {
		out = append(out, msgAddPhone)
	}
	if len(set.KeywordsFound) < fb.FewKeywords {
		out = append(out, fmt.Sprintf(msgMoreKeywords, profile.Label))
	}
	if set.Achievements == 0 {
		out = append(out, msgQuantify)
	}
	if hint := industryHint(set, profile); hint != "" {
		out = append(out, hint)
	}

	if len(out) == 0 {
		return []string{msgFallback}
	}
	return capList(out, table.Limits.Improvements)
}

func industryHint(set features.Set, profile rules.Industry) string {
	h := profile.Hint
	if h == nil || h.Message == "" {
		return ""
	}
	if h.WhenSectionMissing != "" && !set.HasSection(h.WhenSectionMissing) {
		return h.Message
	}
	if h.WhenAchievementsBelow > 0 && set.Achievements < h.WhenAchievementsBelow {
		return h.Message
	}
	return ""
}

func recommendationMessages(set features.Set, profile rules.Industry, table *rules.Table) []string {
	out := []string{}
	if len(set.KeywordsMissing) > 0 {
		missing := displayKeywords(set.KeywordsMissing, table.Limits.MissingInRecommendation)
		out = append(out, fmt.Sprintf(msgConsiderAdding, strings.Join(missing, ", ")))
	}
	if set.Achievements < table.Feedback.FewMetrics {
		out = append(out, msgMoreMetrics)
	}
	var missingSections []string
	for _, name := range profile.RequiredSections {
		if !set.HasSection(name) {
			missingSections = append(missingSections, name)
		}
	}
	if len(missingSections) > 0 {
		out = append(out, fmt.Sprintf(msgCoreSections, strings.Join(missingSections, ", ")))
	}
	return append(out, msgTailor)
}

func formatting(set features.Set, profile rules.Industry, table *rules.Table) Formatting {
	wc := table.Scoring.WordCount
	fb := table.Feedback

	f := Formatting{Structure: msgStructureBasic}
	if len(set.Sections) > 0 {
		f.Structure = fmt.Sprintf(msgStructure, len(set.Sections), strings.Join(set.Sections, ", "))
	}
	if set.WordCount >= wc.IdealMin && set.WordCount <= wc.IdealMax {
		f.Readability = fmt.Sprintf(msgGoodLength, set.WordCount)
	} else {
		f.Readability = fmt.Sprintf(msgAdjustLength, set.WordCount)
	}

	suggestions := []string{}
	if set.WordCount > fb.BulletsAbove {
		suggestions = append(suggestions, msgBullets)
	}
	if set.Achievements == 0 {
		suggestions = append(suggestions, msgStrongVerbs)
	}
	if len(set.CoreSections) < fb.StructuredSections {
		suggestions = append(suggestions, msgSectionHeaders)
	}
	if profile.CertificationsFirst {
		suggestions = append(suggestions, msgCertsFirst)
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, msgConsistent)
	}
	f.Suggestions = suggestions
	return f
}

func keywordDensity(found int, fb rules.Feedback) string {
	switch {
	case found >= fb.DensityExcellent:
		return densityExcellent
	case found >= fb.DensityGood:
		return densityGood
	default:
		return densityLow
	}
}

// displayKeywords title-cases keywords for display; limit <= 0 keeps all.
func displayKeywords(keywords []string, limit int) []string {
	caser := cases.Title(language.English)
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, caser.String(kw))
	}
	return out
}

func capList(items []string, limit int) []string {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
