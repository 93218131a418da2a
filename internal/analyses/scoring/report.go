package scoring

import "resume-critic/internal/analyses/recommendations"

// Adjustment is one rule's contribution to the overall score.
type Adjustment struct {
	Rule  string `json:"rule"`
	Delta int    `json:"delta"`
}

type Formatting struct {
	Structure   string   `json:"structure"`
	Readability string   `json:"readability"`
	Suggestions []string `json:"suggestions"`
}

// Report is the critic's verdict on one résumé.
type Report struct {
	OverallScore      int                              `json:"overallScore"`
	Industry          string                           `json:"industry"`
	IndustryLabel     string                           `json:"industryLabel"`
	Strengths         []string                         `json:"strengths"`
	Improvements      []string                         `json:"improvements"`
	Recommendations   []recommendations.Recommendation `json:"recommendations"`
	KeywordsFound     []string                         `json:"keywordsFound"`
	KeywordsSuggested []string                         `json:"keywordsSuggested"`
	KeywordDensity    string                           `json:"keywordDensity"`
	Formatting        Formatting                       `json:"formatting"`
	Breakdown         []Adjustment                     `json:"breakdown"`
	RulesVersion      string                           `json:"rulesVersion"`
}
