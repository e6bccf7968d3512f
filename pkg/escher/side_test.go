package escher

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSide_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Buy)
	require.NoError(t, err)
	assert.Equal(t, `"buy"`, string(b))

	b, err = json.Marshal(Sell)
	require.NoError(t, err)
	assert.Equal(t, `"sell"`, string(b))
}

func TestSide_UnmarshalJSON(t *testing.T) {
	cases := map[string]Side{
		`"buy"`:  Buy,
		`"sell"`: Sell,
		`"BUY"`:  Buy,
		`"Sell"`: Sell,
	}
	for in, want := range cases {
		var s Side
		require.NoError(t, json.Unmarshal([]byte(in), &s), in)
		assert.Equal(t, want, s, in)
	}
}

func TestSide_Invalid(t *testing.T) {
	var s Side
	err := json.Unmarshal([]byte(`"hold"`), &s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSide))

	_, err = json.Marshal(Side(0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSide))

	assert.Equal(t, "unknown", Side(7).String())
}

func TestParseSide(t *testing.T) {
	s, err := ParseSide("  buy ")
	require.NoError(t, err)
	assert.Equal(t, Buy, s)

	_, err = ParseSide("")
	assert.ErrorIs(t, err, ErrInvalidSide)
}
