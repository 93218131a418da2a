package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		err  error
	}{
		{name: "trims", in: " resume.pdf ", want: "resume.pdf"},
		{name: "separators", in: "dir/sub\\cv.docx", want: "dir_sub_cv.docx"},
		{name: "collapses whitespace", in: "Jane \t  Doe\n CV.pdf", want: "Jane Doe CV.pdf"},
		{name: "drops control chars", in: "cv\x00\x07.pdf", want: "cv.pdf"},
		{name: "keeps unicode", in: "résumé.docx", want: "résumé.docx"},
		{name: "traversal", in: "../etc/passwd", err: ErrInvalidFileName},
		{name: "blank", in: "   ", err: ErrInvalidFileName},
		{name: "only separators", in: "//", err: ErrInvalidFileName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeFileName(tt.in)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %q, %v", tt.err, got, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestSanitizeFileNameTruncatesKeepingExtension(t *testing.T) {
	long := strings.Repeat("é", 150) + ".docx"
	got, err := SanitizeFileName(long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > MaxFileNameLength {
		t.Fatalf("expected at most %d bytes, got %d", MaxFileNameLength, len(got))
	}
	if !strings.HasSuffix(got, ".docx") {
		t.Fatalf("expected extension kept, got %q", got)
	}
	if !strings.HasPrefix(got, "é") || strings.ContainsRune(got, '�') {
		t.Fatalf("expected whole runes, got %q", got)
	}
}
