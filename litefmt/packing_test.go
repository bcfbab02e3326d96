package litefmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackUnpackTightRoundTrip(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 127, 64, 1, 0, 0, 31}
	packed := packTight(values, 7)
	got := unpackTight(packed, 7, len(values))
	assert.Equal(t, values, got)
}

func TestPackUnpackStandardRoundTrip(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 127, 64, 1, 0, 0, 31}
	packed := packStandard(values, 7)
	got := unpackStandard(packed, 7, len(values))
	assert.Equal(t, values, got)
}

func TestPackStandardNeverStraddlesWordBoundary(t *testing.T) {
	// With 5-bit entries, 12 whole cells fit per 64-bit word (floor(64/5)).
	values := make([]int, 20)
	for i := range values {
		values[i] = i % 32
	}
	packed := packStandard(values, 5)
	assert.Len(t, packed, 2)
	got := unpackStandard(packed, 5, len(values))
	assert.Equal(t, values, got)
}

func TestPackTightStraddlesWordBoundary(t *testing.T) {
	// With 5-bit entries packed tight, some cell must straddle the boundary
	// between the 12th cell (ends at bit 60) and beyond, since 64 isn't a
	// multiple of 5.
	values := make([]int, 20)
	for i := range values {
		values[i] = i % 32
	}
	packed := packTight(values, 5)
	got := unpackTight(packed, 5, len(values))
	assert.Equal(t, values, got)
}

func TestPackZeroBitsPerEntry(t *testing.T) {
	assert.Nil(t, packTight(nil, 0))
	assert.Nil(t, packStandard(nil, 0))
}
