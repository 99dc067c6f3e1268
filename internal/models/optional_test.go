package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalDistinguishesOmittedFromNull(t *testing.T) {
	type patch struct {
		Name  Optional[string] `json:"name"`
		Color Optional[string] `json:"color"`
	}

	var p patch
	err := json.Unmarshal([]byte(`{"color": null}`), &p)
	assert.NoError(t, err)

	// Omitted key: untouched
	assert.False(t, p.Name.Set)

	// Explicit null: set but not valid
	assert.True(t, p.Color.Set)
	assert.False(t, p.Color.Valid)
}

func TestOptionalValue(t *testing.T) {
	var o Optional[string]
	err := json.Unmarshal([]byte(`"green"`), &o)
	assert.NoError(t, err)
	assert.True(t, o.Set)
	assert.True(t, o.Valid)
	assert.Equal(t, "green", o.Value)

	var n Optional[int64]
	err = json.Unmarshal([]byte(`42`), &n)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), n.Value)

	// Type mismatch surfaces as an unmarshal error
	var bad Optional[int64]
	err = json.Unmarshal([]byte(`"forty-two"`), &bad)
	assert.Error(t, err)
}

func TestOptionalConstructorsAndMarshal(t *testing.T) {
	some := Some("x")
	assert.True(t, some.Set)
	assert.True(t, some.Valid)

	null := Null[string]()
	assert.True(t, null.Set)
	assert.False(t, null.Valid)

	b, err := json.Marshal(some)
	assert.NoError(t, err)
	assert.Equal(t, `"x"`, string(b))

	b, err = json.Marshal(null)
	assert.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
