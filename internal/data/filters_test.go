package data

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelichko/locallibrary/internal/validator"
)

func TestFiltersSortColumnAndDirection(t *testing.T) {
	testCases := []struct {
		name          string
		filters       Filters
		wantColumn    string
		wantDirection string
	}{
		{
			name:          "plain sort value ascends",
			filters:       Filters{Sort: "title", SortSafeList: []string{"title", "-title"}},
			wantColumn:    "title",
			wantDirection: "ASC",
		},
		{
			name:          "hyphen prefix descends",
			filters:       Filters{Sort: "-title", SortSafeList: []string{"title", "-title"}},
			wantColumn:    "title",
			wantDirection: "DESC",
		},
		{
			name:          "unknown sort falls back to the safelist head",
			filters:       Filters{Sort: "isbn; DROP TABLE books", SortSafeList: []string{"due_back"}},
			wantColumn:    "due_back",
			wantDirection: "ASC",
		},
		{
			name:          "empty safelist falls back to id",
			filters:       Filters{Sort: "anything"},
			wantColumn:    "id",
			wantDirection: "ASC",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantColumn, tc.filters.sortColumn())
			assert.Equal(t, tc.wantDirection, tc.filters.sortDirection())
		})
	}
}

func TestFiltersLimitOffset(t *testing.T) {
	f := Filters{Page: 3, PageSize: 20}
	assert.Equal(t, 20, f.limit())
	assert.Equal(t, 40, f.offset())
}

func TestValidateFilters(t *testing.T) {
	safe := []string{"title", "-title"}

	valid := Filters{Page: 1, PageSize: 20, Sort: "title", SortSafeList: safe}
	v := validator.New()
	ValidateFilters(v, valid)
	assert.True(t, v.Valid())

	invalid := Filters{Page: 0, PageSize: 500, Sort: "isbn", SortSafeList: safe}
	v = validator.New()
	ValidateFilters(v, invalid)
	assert.Contains(t, v.Errors, "page")
	assert.Contains(t, v.Errors, "page_size")
	assert.Contains(t, v.Errors, "sort")
}

func TestCalculateMetadata(t *testing.T) {
	metadata := calculateMetadata(101, 2, 20)
	assert.Equal(t, Metadata{
		CurrentPage:  2,
		PageSize:     20,
		FirstPage:    1,
		LastPage:     6,
		TotalRecords: 101,
	}, metadata)

	// No records means empty metadata, not a zero-page structure.
	assert.Equal(t, Metadata{}, calculateMetadata(0, 1, 20))
}
