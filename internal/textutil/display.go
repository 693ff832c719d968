package textutil

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DisplayName returns a log-safe rendering of the base name of path. The name is
// NFC-normalized and every rune outside printable ASCII becomes '?'. The result
// is for display only; use the original path for I/O.
func DisplayName(path string) string {
	name := filepath.Base(path)
	if path == "" || name == "." {
		return ""
	}
	return Printable(name)
}

// Printable NFC-normalizes s and replaces runes outside printable ASCII with '?'.
func Printable(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			b.WriteByte('?')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
