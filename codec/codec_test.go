package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}} {
		got, ok := ByName(c.Name())
		require.True(t, ok)
		assert.Equal(t, c, got)
	}

	_, ok := ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	std := MustMarshal(JSON{}, benchRecord)
	fast := MustMarshal(GoJSON{}, benchRecord)
	assert.JSONEq(t, string(std), string(fast))

	for _, c := range []Codec{JSON{}, GoJSON{}} {
		var got benchInfo
		require.NoError(t, c.Unmarshal(fast, &got), c.Name())
		assert.Equal(t, benchRecord, got, c.Name())
	}
}

func TestGoJSONAppend(t *testing.T) {
	out, err := GoJSON{}.Append([]byte("x="), map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `x={"a":1}`, string(out))
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `[1,2]`, string(MustMarshal(nil, []int{1, 2})))
	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
}
