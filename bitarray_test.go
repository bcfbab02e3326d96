package litematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitArrayRoundTrip(t *testing.T) {
	values := []uint64{0, 0, 0, 12, 13, 0, 4, 0, 2, 4, 1, 3, 3, 7, 65, 9}
	arr, err := NewBitArray(len(values), 7)
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, arr.Set(i, v))
	}
	for i, want := range values {
		got, err := arr.Get(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	assert.True(t, arr.Contains(13))
	assert.False(t, arr.Contains(15))
}

func TestBitArrayScenarioS3Errors(t *testing.T) {
	values := []uint64{0, 0, 0, 12, 13, 0, 4, 0, 2, 4, 1, 3, 3, 7, 65, 9}
	arr, err := NewBitArray(len(values), 7)
	require.NoError(t, err)
	for i, v := range values {
		require.NoError(t, arr.Set(i, v))
	}

	err = arr.Set(0, 128)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ValueOutOfRange, lerr.Kind())

	_, err = arr.Get(16)
	require.Error(t, err)
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, IndexOutOfRange, lerr.Kind())

	err = arr.Set(16, 1)
	require.Error(t, err)
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, IndexOutOfRange, lerr.Kind())
}

func TestBitArrayWordsRoundTrip(t *testing.T) {
	arr, err := NewBitArray(20, 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.NoError(t, arr.Set(i, uint64(i%32)))
	}
	words := arr.Words()
	rebuilt, err := FromWords(words, 20, 5)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		a, _ := arr.Get(i)
		b, _ := rebuilt.Get(i)
		assert.Equal(t, a, b)
	}
}

func TestFromWordsLengthMismatch(t *testing.T) {
	_, err := FromWords([]uint64{0, 0, 0}, 20, 5)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, LengthMismatch, lerr.Kind())
}

func TestBitArrayReversedIsMaterializedCopy(t *testing.T) {
	arr, _ := NewBitArray(4, 3)
	for i := 0; i < 4; i++ {
		_ = arr.Set(i, uint64(i+1))
	}
	rev := arr.Reversed()
	for i := 0; i < 4; i++ {
		orig, _ := arr.Get(i)
		got, _ := rev.Get(3 - i)
		assert.Equal(t, orig, got)
	}
	// mutating the original must not affect the reversed copy
	_ = arr.Set(0, 0)
	got, _ := rev.Get(3)
	assert.Equal(t, uint64(1), got)
}

func TestBitArrayStraddlingWordBoundary(t *testing.T) {
	// 7-bit cells straddle 64-bit word boundaries repeatedly.
	arr, err := NewBitArray(30, 7)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		require.NoError(t, arr.Set(i, uint64((i*37)%128)))
	}
	for i := 0; i < 30; i++ {
		got, _ := arr.Get(i)
		assert.Equal(t, uint64((i*37)%128), got)
	}
}
