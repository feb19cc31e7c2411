package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurifyLeavesPlainValuesEqual(t *testing.T) {
	in := map[string]any{"a": 1, "b": []any{true, "x", 2.5}}
	out, err := Purify(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestPurifyNormalizesTypedValues(t *testing.T) {
	type point struct {
		X int
		Y int
	}
	out, err := Purify(point{X: 1, Y: 2})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1, "y": 2}, out)
}

func TestPurifyNil(t *testing.T) {
	out, err := Purify(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}
