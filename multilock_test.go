package vsnsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndrewDonelson/vsnsl"
)

func TestMultiEncode_Concrete(t *testing.T) {
	c := newCodec(t)

	enc, err := c.MultiEncode([]int{1, 2, 3}, "hi")
	require.NoError(t, err)
	require.NotEmpty(t, enc)

	dec, err := c.MultiDecode([]int{1, 2, 3}, enc)
	require.NoError(t, err)
	assert.Equal(t, "hi", dec)
}

func TestMultiEncode_LayersSingleEncodes(t *testing.T) {
	c := newCodec(t)

	multi, err := c.MultiEncode([]int{1, 2}, "abc")
	require.NoError(t, err)

	layer1, err := c.EncodeData("abc", 1)
	require.NoError(t, err)
	layer2, err := c.EncodeData(layer1, 2)
	require.NoError(t, err)
	assert.Equal(t, layer2, multi)
}

func TestMultiEncode_SingleLock(t *testing.T) {
	c := newCodec(t)

	multi, err := c.MultiEncode([]int{4}, "hello")
	require.NoError(t, err)

	single, err := c.EncodeData("hello", 4)
	require.NoError(t, err)
	assert.Equal(t, single, multi)
}

func TestMultiEncode_RoundTripSequences(t *testing.T) {
	c := newCodec(t)

	sequences := [][]int{
		{1},
		{1, 2, 3},
		{5, 5},
		{0, 0, 0},
		{3, 1, 4, 1, 5},
	}
	for _, locks := range sequences {
		for _, text := range []string{"hi", "hello world", "mix 42!"} {
			enc, err := c.MultiEncode(locks, text)
			require.NoError(t, err, "locks %v text %q", locks, text)

			dec, err := c.MultiDecode(locks, enc)
			require.NoError(t, err, "locks %v text %q", locks, text)
			assert.Equal(t, text, dec, "locks %v", locks)
		}
	}
}

func TestMultiEncode_EmptyLockSequence(t *testing.T) {
	c := newCodec(t)

	_, err := c.MultiEncode(nil, "hi")
	assert.ErrorIs(t, err, vsnsl.ErrEmptyLockSequence)

	_, err = c.MultiDecode([]int{}, "107108")
	assert.ErrorIs(t, err, vsnsl.ErrEmptyLockSequence)
}

func TestMultiLock_DigitsNotMapped(t *testing.T) {
	// A table without the decimal digits supports exactly one layer.
	tbl, err := vsnsl.NewTable(map[rune]int{'a': 10, 'b': 11, 'c': 12})
	require.NoError(t, err)

	c, err := vsnsl.NewCodec(vsnsl.Config{Table: tbl})
	require.NoError(t, err)
	defer c.Close()

	enc, err := c.MultiEncode([]int{1}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "111213", enc)

	_, err = c.MultiEncode([]int{1, 2}, "abc")
	assert.ErrorIs(t, err, vsnsl.ErrDigitsNotMapped)

	_, err = c.MultiDecode([]int{1, 2}, "111213")
	assert.ErrorIs(t, err, vsnsl.ErrDigitsNotMapped)
}

func TestMultiEncode_OverflowMidLayer(t *testing.T) {
	c := newCodec(t)

	// The first layer fits; the second pushes digit codes past three
	// digits.
	_, err := c.MultiEncode([]int{1, 900}, "hi")
	assert.ErrorIs(t, err, vsnsl.ErrLockOverflow)
}

func TestMultiDecode_WrongLockOrderDoesNotRoundTrip(t *testing.T) {
	c := newCodec(t)

	enc, err := c.MultiEncode([]int{10, 20}, "hi")
	require.NoError(t, err)

	// Peeling with the sequence reversed applies the wrong lock to each
	// layer; either an error or a different text is acceptable, but never
	// the original.
	dec, err := c.MultiDecode([]int{20, 10}, enc)
	if err == nil {
		assert.NotEqual(t, "hi", dec)
	}
}
