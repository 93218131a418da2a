package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Table is the complete, read-only rule set driving detection and scoring.
// Two runs over the same text with the same Table produce the same report.
type Table struct {
	Version         string     `yaml:"version"`
	BaseScore       int        `yaml:"baseScore"`
	DefaultIndustry string     `yaml:"defaultIndustry"`
	MaxHeaderWords  int        `yaml:"maxHeaderWords"`
	KeywordMatch    string     `yaml:"keywordMatch"`
	Patterns        Patterns   `yaml:"patterns"`
	Sections        []Section  `yaml:"sections"`
	Scoring         Scoring    `yaml:"scoring"`
	Feedback        Feedback   `yaml:"feedback"`
	Limits          Limits     `yaml:"limits"`
	Industries      []Industry `yaml:"industries"`

	email       *regexp.Regexp
	phone       *regexp.Regexp
	achievement *regexp.Regexp
}

// Keyword match modes. Substring counts "go" inside "google"; word requires
// the keyword to be bounded by non-alphanumeric characters.
const (
	KeywordMatchSubstring = "substring"
	KeywordMatchWord      = "word"
)

type Patterns struct {
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	Achievement string `yaml:"achievement"`
}

// Section is a résumé section recognized from a short header line.
type Section struct {
	Name    string   `yaml:"name"`
	Core    bool     `yaml:"core"`
	Aliases []string `yaml:"aliases"`
}

type Scoring struct {
	WordCount    WordCountRule `yaml:"wordCount"`
	Email        int           `yaml:"email"`
	Phone        int           `yaml:"phone"`
	LinkedIn     int           `yaml:"linkedin"`
	GitHub       int           `yaml:"github"`
	Keywords     TierRule      `yaml:"keywords"`
	Sections     SectionRule   `yaml:"sections"`
	Achievements TierRule      `yaml:"achievements"`
}

// WordCountRule awards IdealDelta inside [IdealMin, IdealMax], otherwise
// ShortDelta below ShortBelow or LongDelta above LongAbove.
type WordCountRule struct {
	IdealMin   int `yaml:"idealMin"`
	IdealMax   int `yaml:"idealMax"`
	IdealDelta int `yaml:"idealDelta"`
	ShortBelow int `yaml:"shortBelow"`
	ShortDelta int `yaml:"shortDelta"`
	LongAbove  int `yaml:"longAbove"`
	LongDelta  int `yaml:"longDelta"`
}

// Apply returns the delta for a word count.
func (r WordCountRule) Apply(words int) int {
	switch {
	case words >= r.IdealMin && words <= r.IdealMax:
		return r.IdealDelta
	case words < r.ShortBelow:
		return r.ShortDelta
	case words > r.LongAbove:
		return r.LongDelta
	default:
		return 0
	}
}

type Tier struct {
	AtLeast int `yaml:"atLeast"`
	Delta   int `yaml:"delta"`
}

// TierRule picks the first tier whose AtLeast the count reaches. Tiers are
// ordered by descending AtLeast.
type TierRule struct {
	Tiers     []Tier `yaml:"tiers"`
	Otherwise int    `yaml:"otherwise"`
}

// Apply returns the delta for count.
func (r TierRule) Apply(count int) int {
	for _, tier := range r.Tiers {
		if count >= tier.AtLeast {
			return tier.Delta
		}
	}
	return r.Otherwise
}

type SectionRule struct {
	PerCore       int `yaml:"perCore"`
	Cap           int `yaml:"cap"`
	MinCore       int `yaml:"minCore"`
	BelowMinDelta int `yaml:"belowMinDelta"`
}

// Apply returns the delta for the number of distinct core sections found.
func (r SectionRule) Apply(core int) int {
	delta := core * r.PerCore
	if r.Cap > 0 && delta > r.Cap {
		delta = r.Cap
	}
	if core < r.MinCore {
		delta += r.BelowMinDelta
	}
	return delta
}

// Feedback holds the thresholds used to pick catalog messages.
type Feedback struct {
	StrongKeywords     int `yaml:"strongKeywords"`
	StructuredSections int `yaml:"structuredSections"`
	CondenseAbove      int `yaml:"condenseAbove"`
	FewKeywords        int `yaml:"fewKeywords"`
	BulletsAbove       int `yaml:"bulletsAbove"`
	FewMetrics         int `yaml:"fewMetrics"`
	DensityExcellent   int `yaml:"densityExcellent"`
	DensityGood        int `yaml:"densityGood"`
}

type Limits struct {
	Strengths               int `yaml:"strengths"`
	Improvements            int `yaml:"improvements"`
	Recommendations         int `yaml:"recommendations"`
	SuggestedKeywords       int `yaml:"suggestedKeywords"`
	MissingInRecommendation int `yaml:"missingInRecommendation"`
}

// Industry is a keyword bank plus the advice specific to one field.
type Industry struct {
	Name                string   `yaml:"name"`
	Label               string   `yaml:"label"`
	RewardGitHub        bool     `yaml:"rewardGitHub"`
	CertificationsFirst bool     `yaml:"certificationsFirst"`
	Keywords            []string `yaml:"keywords"`
	RoleMarkers         []string `yaml:"roleMarkers"`
	RequiredSections    []string `yaml:"requiredSections"`
	OptionalSections    []string `yaml:"optionalSections"`
	Hint                *Hint    `yaml:"hint"`
}

// Hint is an industry-specific improvement shown when its condition holds.
type Hint struct {
	Message               string `yaml:"message"`
	WhenSectionMissing    string `yaml:"whenSectionMissing"`
	WhenAchievementsBelow int    `yaml:"whenAchievementsBelow"`
}

// Email returns the compiled email pattern.
func (t *Table) Email() *regexp.Regexp { return t.email }

// Phone returns the compiled phone pattern.
func (t *Table) Phone() *regexp.Regexp { return t.phone }

// Achievement returns the compiled quantified-achievement pattern.
func (t *Table) Achievement() *regexp.Regexp { return t.achievement }

// Industry looks up a profile by name, case-insensitively.
func (t *Table) Industry(name string) (Industry, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Industry{}, false
	}
	for _, ind := range t.Industries {
		if ind.Name == name {
			return ind, true
		}
	}
	return Industry{}, false
}

// DefaultProfile returns the default industry profile.
func (t *Table) DefaultProfile() Industry {
	ind, _ := t.Industry(t.DefaultIndustry)
	return ind
}

// IndustryNames lists profile names in table order.
func (t *Table) IndustryNames() []string {
	out := make([]string, 0, len(t.Industries))
	for _, ind := range t.Industries {
		out = append(out, ind.Name)
	}
	return out
}

// CoreSections lists core section names in table order.
func (t *Table) CoreSections() []string {
	var out []string
	for _, s := range t.Sections {
		if s.Core {
			out = append(out, s.Name)
		}
	}
	return out
}

// ContainsKeyword reports whether kw occurs in lowerText under the table's
// keyword match mode. Both arguments are expected in lower case.
func (t *Table) ContainsKeyword(lowerText, kw string) bool {
	if t.KeywordMatch != KeywordMatchWord {
		return strings.Contains(lowerText, kw)
	}
	for from := 0; from <= len(lowerText)-len(kw); {
		i := strings.Index(lowerText[from:], kw)
		if i < 0 {
			return false
		}
		start, end := from+i, from+i+len(kw)
		if !wordRuneBefore(lowerText, start) && !wordRuneAfter(lowerText, end) {
			return true
		}
		_, size := utf8.DecodeRuneInString(lowerText[start:])
		from = start + size
	}
	return false
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordRuneAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
