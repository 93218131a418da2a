package recommendations

import (
	"reflect"
	"testing"
)

func TestBuildKeepsEvaluationOrder(t *testing.T) {
	got := Build([]string{
		"Consider adding: Python, Go",
		"Add more metrics (e.g., \"Cut costs by $75k\")",
		"Add core sections: Skills",
		"Tailor examples to the target job description(s)",
	}, 4)

	want := []Recommendation{
		{ID: "CONSIDER_ADDING", Category: "SKILLS", Text: "Consider adding: Python, Go", Order: 1},
		{ID: "ADD_MORE_METRICS_E_G_CUT_COSTS_BY_75K", Category: "IMPACT", Text: "Add more metrics (e.g., \"Cut costs by $75k\")", Order: 2},
		{ID: "ADD_CORE_SECTIONS", Category: "STRUCTURE", Text: "Add core sections: Skills", Order: 3},
		{ID: "TAILOR_EXAMPLES_TO_THE_TARGET_JOB_DESCRIPTION_S", Category: "ATS", Text: "Tailor examples to the target job description(s)", Order: 4},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected recommendations:\n%+v\nwant\n%+v", got, want)
	}
}

func TestBuildDedupesAndCaps(t *testing.T) {
	got := Build([]string{
		"Consider adding: Python",
		"Consider adding: Rust",
		"  ",
		"Add core sections: Skills",
		"Use bullets",
		"Tailor examples",
	}, 3)

	if len(got) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got))
	}
	if got[0].Text != "Consider adding: Python" {
		t.Fatalf("expected first duplicate kept, got %q", got[0].Text)
	}
	if got[2].Order != 3 || got[2].Category != "FORMATTING" {
		t.Fatalf("unexpected third item %+v", got[2])
	}
	if texts := Texts(got); len(texts) != 3 || texts[1] != "Add core sections: Skills" {
		t.Fatalf("unexpected texts %v", texts)
	}
}

func TestBuildEmpty(t *testing.T) {
	if got := Build(nil, 4); len(got) != 0 {
		t.Fatalf("expected no recommendations, got %v", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add core sections": "add-core-sections",
		"  --  ":            "item",
		"C++ / CI/CD":       "c-ci-cd",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
