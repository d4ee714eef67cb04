package data

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Dune",
			expected: "dune",
		},
		{
			name:     "spaces and punctuation collapse to hyphens",
			input:    "The Hitchhiker's Guide to the Galaxy!",
			expected: "the-hitchhiker-s-guide-to-the-galaxy",
		},
		{
			name:     "diacritics are stripped",
			input:    "Les Misérables",
			expected: "les-miserables",
		},
		{
			name:     "leading and trailing separators trimmed",
			input:    "  --War and Peace--  ",
			expected: "war-and-peace",
		},
		{
			name:     "runs of separators compress",
			input:    "1984    ***    Orwell",
			expected: "1984-orwell",
		},
		{
			name:     "no usable characters falls back",
			input:    "!!! ---",
			expected: "book",
		},
		{
			name:     "empty string falls back",
			input:    "",
			expected: "book",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}

func TestSlugifyLengthCap(t *testing.T) {
	long := strings.Repeat("verylongword ", 30)
	slug := Slugify(long)
	assert.LessOrEqual(t, len(slug), slugMaxLen)
	assert.False(t, strings.HasSuffix(slug, "-"), "capped slug must not end with a hyphen")
}

// existsIn builds an existence probe over a fixed set of taken slugs.
func existsIn(taken ...string) func(string) (bool, error) {
	set := make(map[string]bool, len(taken))
	for _, s := range taken {
		set[s] = true
	}
	return func(slug string) (bool, error) {
		return set[slug], nil
	}
}

func TestGenerateUniqueSlug(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		taken    []string
		expected string
	}{
		{
			name:     "no collision keeps the base slug",
			title:    "Dune",
			taken:    nil,
			expected: "dune",
		},
		{
			name:     "first collision takes the -2 suffix",
			title:    "Dune",
			taken:    []string{"dune"},
			expected: "dune-2",
		},
		{
			name:     "suffixes keep counting past earlier duplicates",
			title:    "Dune",
			taken:    []string{"dune", "dune-2", "dune-3"},
			expected: "dune-4",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			slug, err := GenerateUniqueSlug(tc.title, existsIn(tc.taken...))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, slug)
		})
	}
}

func TestGenerateUniqueSlugIdenticalTitlesAreDistinct(t *testing.T) {
	// Simulate creating two books with the same title back to back.
	taken := map[string]bool{}
	exists := func(slug string) (bool, error) { return taken[slug], nil }

	first, err := GenerateUniqueSlug("Dune", exists)
	require.NoError(t, err)
	taken[first] = true

	second, err := GenerateUniqueSlug("Dune", exists)
	require.NoError(t, err)

	assert.Equal(t, "dune", first)
	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(second, "dune-"))
}

func TestGenerateUniqueSlugFallsBackToRandomSuffix(t *testing.T) {
	// Base and every numeric suffix are taken, so the generator must reach
	// for a random token.
	taken := []string{"dune"}
	for i := 2; i <= maxSlugAttempts; i++ {
		taken = append(taken, fmt.Sprintf("dune-%d", i))
	}

	slug, err := GenerateUniqueSlug("Dune", existsIn(taken...))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(slug, "dune-"))
	assert.NotContains(t, taken, slug)
}

func TestGenerateUniqueSlugExhaustion(t *testing.T) {
	// Every candidate is reported as taken, including the random fallback.
	alwaysTaken := func(string) (bool, error) { return true, nil }

	_, err := GenerateUniqueSlug("Dune", alwaysTaken)
	assert.ErrorIs(t, err, ErrSlugGeneration)
}

func TestGenerateUniqueSlugPropagatesProbeError(t *testing.T) {
	probeErr := errors.New("connection lost")
	failing := func(string) (bool, error) { return false, probeErr }

	_, err := GenerateUniqueSlug("Dune", failing)
	assert.ErrorIs(t, err, probeErr)
}
