// internal/data/slug.go
// Slug generation for books. A slug is derived from the title exactly once,
// immediately before the record is first persisted, and must be unique across
// the whole books table. The database carries a UNIQUE constraint as the
// final arbiter; the probe here just keeps the common path conflict-free.
package data

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrSlugGeneration is returned when no unique slug could be found within
// the retry budget.
var ErrSlugGeneration = errors.New("unable to generate a unique slug")

// maxSlugAttempts bounds the numeric-suffix search before giving up.
const maxSlugAttempts = 10

// slugMaxLen caps the base slug so suffixes never push it past the column width.
const slugMaxLen = 100

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphens  = regexp.MustCompile(`-+`)
)

// Slugify converts free text into a URL-safe slug containing only [a-z0-9-].
// Diacritics are stripped (é becomes e), runs of other characters collapse to
// a single hyphen, and leading/trailing hyphens are trimmed. An input with no
// usable characters at all falls back to "book" so the result is never empty.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	// Decompose accented characters and drop the combining marks.
	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = b.String()

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if len(s) > slugMaxLen {
		s = strings.Trim(s[:slugMaxLen], "-")
	}
	if s == "" {
		s = "book"
	}
	return s
}

// GenerateUniqueSlug derives a slug from title and disambiguates collisions
// with numeric suffixes ("dune", "dune-2", "dune-3", ...). The exists probe
// reports whether a candidate is already taken. After maxSlugAttempts numeric
// tries a short random suffix is attempted once; if that is taken too, the
// search fails with ErrSlugGeneration.
func GenerateUniqueSlug(title string, exists func(slug string) (bool, error)) (string, error) {
	base := Slugify(title)

	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}

	// Numeric suffixes exhausted; fall back to a random token.
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	candidate = fmt.Sprintf("%s-%s", base, hex.EncodeToString(suffix))

	taken, err := exists(candidate)
	if err != nil {
		return "", err
	}
	if taken {
		return "", ErrSlugGeneration
	}
	return candidate, nil
}
