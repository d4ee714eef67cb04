package data

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.January, 15)

	out, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-01-15"`, string(out))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-02-01"`), &parsed))
	assert.Equal(t, NewDate(2024, time.February, 1), parsed)

	// A timestamp is not a date.
	err = json.Unmarshal([]byte(`"2024-02-01T10:00:00Z"`), &parsed)
	assert.Error(t, err)
}

func TestDateComparisons(t *testing.T) {
	earlier := NewDate(2024, time.January, 15)
	later := NewDate(2024, time.February, 1)

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier))
}

func TestDateOf(t *testing.T) {
	moment := time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.March, 5), DateOf(moment))
}
