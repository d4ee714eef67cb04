package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorCheck(t *testing.T) {
	v := New()
	assert.True(t, v.Valid())

	v.Check(true, "title", "must be provided")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])
}

func TestValidatorKeepsFirstError(t *testing.T) {
	v := New()
	v.AddError("isbn", "first message")
	v.AddError("isbn", "second message")
	assert.Equal(t, "first message", v.Errors["isbn"])
}

func TestIn(t *testing.T) {
	assert.True(t, In("title", "title", "-title", "id"))
	assert.False(t, In("isbn", "title", "-title", "id"))
	assert.False(t, In("title"))
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("reader@example.com", EmailRX))
	assert.False(t, Matches("not an email", EmailRX))
}

func TestUnique(t *testing.T) {
	assert.True(t, Unique([]string{"a", "b", "c"}))
	assert.False(t, Unique([]string{"a", "b", "a"}))
	assert.True(t, Unique(nil))
}

func TestUniqueInt64(t *testing.T) {
	assert.True(t, UniqueInt64([]int64{1, 2, 3}))
	assert.False(t, UniqueInt64([]int64{1, 2, 1}))
	assert.True(t, UniqueInt64(nil))
}
