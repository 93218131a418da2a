package rules

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded rule table. It panics if the embedded file is
// invalid.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(defaultRules)
		if err != nil {
			panic(fmt.Sprintf("rules: embedded table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Load reads a YAML rule table from path, or returns Default when path is empty.
func Load(path string) (*Table, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a YAML rule table.
func Parse(data []byte) (*Table, error) {
	var t Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	normalize(&t)
	if err := t.compile(); err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// normalize lower-cases everything matched against lower-cased text.
func normalize(t *Table) {
	t.DefaultIndustry = strings.ToLower(strings.TrimSpace(t.DefaultIndustry))
	t.KeywordMatch = strings.ToLower(strings.TrimSpace(t.KeywordMatch))
	if t.KeywordMatch == "" {
		t.KeywordMatch = KeywordMatchSubstring
	}
	for i := range t.Sections {
		t.Sections[i].Aliases = lowerAll(t.Sections[i].Aliases)
	}
	for i := range t.Industries {
		ind := &t.Industries[i]
		ind.Name = strings.ToLower(strings.TrimSpace(ind.Name))
		ind.Keywords = lowerAll(ind.Keywords)
		ind.RoleMarkers = lowerAll(ind.RoleMarkers)
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if v := strings.ToLower(strings.TrimSpace(s)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (t *Table) compile() error {
	var err error
	if t.email, err = compilePattern("email", t.Patterns.Email); err != nil {
		return err
	}
	if t.phone, err = compilePattern("phone", t.Patterns.Phone); err != nil {
		return err
	}
	if t.achievement, err = compilePattern("achievement", t.Patterns.Achievement); err != nil {
		return err
	}
	return nil
}

func compilePattern(name, expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, fmt.Errorf("pattern %s is required", name)
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", name, err)
	}
	return re, nil
}

// Validate checks the invariants scoring relies on.
func (t *Table) Validate() error {
	var errs []error
	if strings.TrimSpace(t.Version) == "" {
		errs = append(errs, errors.New("version is required"))
	}
	if t.BaseScore < 0 || t.BaseScore > 100 {
		errs = append(errs, fmt.Errorf("baseScore %d out of range 0..100", t.BaseScore))
	}
	if t.MaxHeaderWords <= 0 {
		errs = append(errs, errors.New("maxHeaderWords must be positive"))
	}
	if t.KeywordMatch != KeywordMatchSubstring && t.KeywordMatch != KeywordMatchWord {
		errs = append(errs, fmt.Errorf("keywordMatch %q must be %s or %s", t.KeywordMatch, KeywordMatchSubstring, KeywordMatchWord))
	}
	if len(t.CoreSections()) == 0 {
		errs = append(errs, errors.New("at least one core section is required"))
	}
	sectionNames := make(map[string]bool, len(t.Sections))
	for _, s := range t.Sections {
		if s.Name == "" || len(s.Aliases) == 0 {
			errs = append(errs, fmt.Errorf("section %q needs a name and aliases", s.Name))
		}
		sectionNames[s.Name] = true
	}
	if len(t.Industries) == 0 {
		errs = append(errs, errors.New("at least one industry is required"))
	}
	seen := make(map[string]bool, len(t.Industries))
	for _, ind := range t.Industries {
		if ind.Name == "" || len(ind.Keywords) == 0 {
			errs = append(errs, fmt.Errorf("industry %q needs a name and keywords", ind.Name))
		}
		if seen[ind.Name] {
			errs = append(errs, fmt.Errorf("industry %q is duplicated", ind.Name))
		}
		seen[ind.Name] = true
		for _, req := range ind.RequiredSections {
			if !sectionNames[req] {
				errs = append(errs, fmt.Errorf("industry %q requires unknown section %q", ind.Name, req))
			}
		}
		if ind.Hint != nil && ind.Hint.WhenSectionMissing != "" && !sectionNames[ind.Hint.WhenSectionMissing] {
			errs = append(errs, fmt.Errorf("industry %q hint references unknown section %q", ind.Name, ind.Hint.WhenSectionMissing))
		}
	}
	if _, ok := t.Industry(t.DefaultIndustry); !ok {
		errs = append(errs, fmt.Errorf("defaultIndustry %q is not a defined industry", t.DefaultIndustry))
	}
	tierRules := []struct {
		name string
		rule TierRule
	}{
		{"keywords", t.Scoring.Keywords},
		{"achievements", t.Scoring.Achievements},
	}
	for _, tr := range tierRules {
		for i := 1; i < len(tr.rule.Tiers); i++ {
			if tr.rule.Tiers[i].AtLeast >= tr.rule.Tiers[i-1].AtLeast {
				errs = append(errs, fmt.Errorf("scoring.%s tiers must be in descending atLeast order", tr.name))
				break
			}
		}
	}
	wc := t.Scoring.WordCount
	if wc.IdealMin > wc.IdealMax {
		errs = append(errs, errors.New("scoring.wordCount idealMin exceeds idealMax"))
	}
	l := t.Limits
	if l.Strengths <= 0 || l.Improvements <= 0 || l.Recommendations <= 0 || l.SuggestedKeywords <= 0 {
		errs = append(errs, errors.New("limits must be positive"))
	}
	return errors.Join(errs...)
}
