package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelichko/locallibrary/internal/validator"
)

func validBook() *Book {
	return &Book{
		Title:    "Dune",
		Summary:  "A desert planet, a noble family, and a spice worth killing for.",
		ISBN:     "9780441013593",
		GenreIDs: []int64{1, 2},
	}
}

func TestValidateBook(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(*Book)
		wantValid bool
		wantField string
	}{
		{
			name:      "valid book",
			mutate:    func(b *Book) {},
			wantValid: true,
		},
		{
			name:      "missing title",
			mutate:    func(b *Book) { b.Title = "" },
			wantValid: false,
			wantField: "title",
		},
		{
			name:      "title too long",
			mutate:    func(b *Book) { b.Title = strings.Repeat("a", 201) },
			wantValid: false,
			wantField: "title",
		},
		{
			name:      "missing summary",
			mutate:    func(b *Book) { b.Summary = "" },
			wantValid: false,
			wantField: "summary",
		},
		{
			name:      "summary too long",
			mutate:    func(b *Book) { b.Summary = strings.Repeat("a", 1001) },
			wantValid: false,
			wantField: "summary",
		},
		{
			name:      "isbn too short",
			mutate:    func(b *Book) { b.ISBN = "12345" },
			wantValid: false,
			wantField: "isbn",
		},
		{
			name:      "isbn too long",
			mutate:    func(b *Book) { b.ISBN = "97804410135930" },
			wantValid: false,
			wantField: "isbn",
		},
		{
			// Only the length is checked; the catalog accepts any
			// 13-character string as an ISBN.
			name:      "non-numeric isbn of the right length",
			mutate:    func(b *Book) { b.ISBN = "ABCDEFGHIJKLM" },
			wantValid: true,
		},
		{
			name:      "duplicate genre ids",
			mutate:    func(b *Book) { b.GenreIDs = []int64{1, 1} },
			wantValid: false,
			wantField: "genre_ids",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			book := validBook()
			tc.mutate(book)

			v := validator.New()
			ValidateBook(v, book)
			assert.Equal(t, tc.wantValid, v.Valid())
			if !tc.wantValid {
				assert.Contains(t, v.Errors, tc.wantField)
			}
		})
	}
}
