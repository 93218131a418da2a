package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFileNameLength caps sanitized names, measured in bytes.
const MaxFileNameLength = 200

// ErrInvalidFileName is returned for names that are empty after cleaning or
// that try to climb directories.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes a client-supplied name safe to embed in a storage
// key: separators become underscores, control characters are dropped, runs
// of whitespace collapse, and the stem is shortened to fit MaxFileNameLength
// while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}

	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteByte('_')
			space = false
		case unicode.IsSpace(r):
			if !space {
				b.WriteByte(' ')
			}
			space = true
		case unicode.IsControl(r) || r == utf8.RuneError:
		default:
			b.WriteRune(r)
			space = false
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" || strings.Trim(cleaned, "_.") == "" {
		return "", ErrInvalidFileName
	}
	return truncateKeepingExt(cleaned, MaxFileNameLength), nil
}

func truncateKeepingExt(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	ext := path.Ext(name)
	if len(ext) >= limit {
		ext = ""
	}
	stem := name[:len(name)-len(ext)]
	budget := limit - len(ext)
	for len(stem) > budget {
		_, size := utf8.DecodeLastRuneInString(stem)
		stem = stem[:len(stem)-size]
	}
	return stem + ext
}
