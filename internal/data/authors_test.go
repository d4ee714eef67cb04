package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/avelichko/locallibrary/internal/validator"
)

func TestValidateAuthor(t *testing.T) {
	born := ptrDate(NewDate(1920, time.August, 22))
	died := ptrDate(NewDate(2012, time.June, 5))

	testCases := []struct {
		name      string
		author    *Author
		wantValid bool
		wantField string
	}{
		{
			name:      "valid author with both dates",
			author:    &Author{FirstName: "Ray", LastName: "Bradbury", DateOfBirth: born, DateOfDeath: died},
			wantValid: true,
		},
		{
			name:      "valid author with no dates",
			author:    &Author{FirstName: "Ray", LastName: "Bradbury"},
			wantValid: true,
		},
		{
			name:      "missing first name",
			author:    &Author{LastName: "Bradbury"},
			wantValid: false,
			wantField: "first_name",
		},
		{
			name:      "missing last name",
			author:    &Author{FirstName: "Ray"},
			wantValid: false,
			wantField: "last_name",
		},
		{
			name:      "death before birth",
			author:    &Author{FirstName: "Ray", LastName: "Bradbury", DateOfBirth: died, DateOfDeath: born},
			wantValid: false,
			wantField: "date_of_death",
		},
		{
			name:      "death on birth date is allowed",
			author:    &Author{FirstName: "Ray", LastName: "Bradbury", DateOfBirth: born, DateOfDeath: born},
			wantValid: true,
		},
		{
			// A death date with no birth date is permitted, matching the
			// optionality of both fields.
			name:      "death date only",
			author:    &Author{FirstName: "Ray", LastName: "Bradbury", DateOfDeath: died},
			wantValid: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := validator.New()
			ValidateAuthor(v, tc.author)
			assert.Equal(t, tc.wantValid, v.Valid())
			if !tc.wantValid {
				assert.Contains(t, v.Errors, tc.wantField)
			}
		})
	}
}
