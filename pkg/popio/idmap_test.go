package popio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBijection(t *testing.T) {
	b, err := NewBijection([]Pair{{"b", "1"}, {"a", "0"}})
	require.NoError(t, err)

	in, ok := b.Internal("a")
	assert.True(t, ok)
	assert.Equal(t, "0", in)
	ext, ok := b.External("1")
	assert.True(t, ok)
	assert.Equal(t, "b", ext)
	_, ok = b.Internal("c")
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "a"}, b.Externals())
	assert.Equal(t, 2, b.Len())

	exts := b.Externals()
	exts[0] = "z"
	assert.Equal(t, []string{"b", "a"}, b.Externals())
}

func TestBijectionRejectsDuplicates(t *testing.T) {
	_, err := NewBijection([]Pair{{"a", "0"}, {"a", "1"}})
	assert.ErrorContains(t, err, `external id "a"`)

	_, err = NewBijection([]Pair{{"a", "0"}, {"b", "0"}})
	assert.ErrorContains(t, err, `internal id "0"`)
}

func TestIdentifierMapUnknownIDs(t *testing.T) {
	ids := testIDs(t)

	_, err := ids.reactionExternal(7, "r99")
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 7, fe.Line)
	assert.Equal(t, `line 7: unknown reaction id "r99"`, err.Error())

	_, err = ids.modelInternal("nope")
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, `unknown model "nope"`, err.Error())
}
