package litematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionS1PruneAfterOverwriteToAir(t *testing.T) {
	r, err := NewRegion([3]int{0, 0, 0}, [3]int{10, 10, 10})
	require.NoError(t, err)

	stone, _ := NewBlockState("minecraft:stone", nil)
	require.NoError(t, r.Set(0, 0, 0, stone))
	require.NoError(t, r.Set(0, 0, 0, AIR))

	r.Prune()
	assert.Equal(t, 1, r.Palette().Len())
	assert.False(t, r.Contains(stone))
}

func TestRegionS2NegativeSizeCoordinates(t *testing.T) {
	r, err := NewRegion([3]int{-10, -10, -10}, [3]int{-10, -10, -10})
	require.NoError(t, err)

	assert.Equal(t, -19, r.MinSchemX())
	assert.Equal(t, -10, r.MaxSchemX())
	assert.Equal(t, -9, r.MinX())
	assert.Equal(t, 0, r.MaxX())
}

func TestRegionIndexedAccessAndLinearization(t *testing.T) {
	r, err := NewRegion([3]int{0, 0, 0}, [3]int{2, 2, 2})
	require.NoError(t, err)

	stone, _ := NewBlockState("minecraft:stone", nil)
	require.NoError(t, r.Set(1, 1, 1, stone))

	got, err := r.At(1, 1, 1)
	require.NoError(t, err)
	assert.True(t, got.Equal(stone))

	// (1,1,1) in a 2x2x2 region is cell y*Lx*Lz + z*Lx + x = 4 + 2 + 1 = 7.
	cell, err := r.Blocks().Get(7)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cell)

	other, err := r.At(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, other.Equal(AIR))
}

func TestRegionSetOutOfRangeFails(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{2, 2, 2})
	stone, _ := NewBlockState("minecraft:stone", nil)
	err := r.Set(2, 0, 0, stone)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, IndexOutOfRange, lerr.Kind())
}

func TestRegionInvariantEveryCellValid(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{4, 4, 4})
	names := []string{"minecraft:stone", "minecraft:dirt", "minecraft:glass", "minecraft:oak_planks"}
	i := 0
	r.Positions(func(x, y, z int) bool {
		s, _ := NewBlockState(names[i%len(names)], nil)
		_ = r.Set(x, y, z, s)
		i++
		return true
	})

	r.Blocks().All(func(_ int, v uint64) bool {
		assert.Less(t, int(v), r.Palette().Len())
		return true
	})
}

func TestRegionFilterIdentityLeavesBlocksUnchanged(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{3, 3, 3})
	stone, _ := NewBlockState("minecraft:stone", nil)
	require.NoError(t, r.Set(1, 1, 1, stone))

	r.Filter(func(s BlockState) BlockState { return s })

	got, err := r.At(1, 1, 1)
	require.NoError(t, err)
	assert.True(t, got.Equal(stone))
}

func TestRegionFilterAIRToNonAIRKeepsAIRAtZero(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{2, 2, 2})
	glowstone, _ := NewBlockState("minecraft:glowstone", nil)

	r.Filter(func(s BlockState) BlockState {
		if s.Equal(AIR) {
			return glowstone
		}
		return s
	})

	first, err := r.Palette().Get(0)
	require.NoError(t, err)
	assert.True(t, first.Equal(AIR))

	got, err := r.At(0, 0, 0)
	require.NoError(t, err)
	assert.True(t, got.Equal(glowstone))
}

func TestRegionReplaceCorrectness(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{2, 1, 1})
	stone, _ := NewBlockState("minecraft:stone", nil)
	dirt, _ := NewBlockState("minecraft:dirt", nil)
	require.NoError(t, r.Set(0, 0, 0, stone))
	require.NoError(t, r.Set(1, 0, 0, dirt))

	r.Replace(stone, dirt)

	a, _ := r.At(0, 0, 0)
	b, _ := r.At(1, 0, 0)
	assert.True(t, a.Equal(dirt))
	assert.True(t, b.Equal(dirt))
}

func TestRegionPruneStability(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{4, 4, 4})
	stone, _ := NewBlockState("minecraft:stone", nil)
	dirt, _ := NewBlockState("minecraft:dirt", nil)
	require.NoError(t, r.Set(0, 0, 0, stone))
	require.NoError(t, r.Set(1, 0, 0, dirt))
	require.NoError(t, r.Set(1, 0, 0, AIR))

	r.Prune()
	used := r.UsedIndices()
	for idx := 1; idx < r.Palette().Len(); idx++ {
		assert.Contains(t, used, idx)
	}
}

func TestRegionTileEntities(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{4, 4, 4})
	te := &TileEntity{Identifier: "minecraft:chest", Pos: [3]int{1, 2, 3}, Data: map[string]any{}}
	r.SetBlockEntity(te)

	got, ok := r.BlockEntity([3]int{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, "minecraft:chest", got.Identifier)

	removed, ok := r.RemoveBlockEntity([3]int{1, 2, 3})
	require.True(t, ok)
	assert.Equal(t, te, removed)

	_, ok = r.BlockEntity([3]int{1, 2, 3})
	assert.False(t, ok)
}

func TestRegionBitArrayGrowsWithPalette(t *testing.T) {
	r, _ := NewRegion([3]int{0, 0, 0}, [3]int{4, 4, 4})
	assert.Equal(t, 2, r.Blocks().Bits())
	for i := 0; i < 10; i++ {
		s, _ := NewBlockState("minecraft:block"+string(rune('a'+i)), nil)
		require.NoError(t, r.Set(i%4, 0, 0, s))
	}
	assert.GreaterOrEqual(t, r.Blocks().Bits(), r.Palette().RequiredBitWidth())
}

func TestRegionRejectsZeroSize(t *testing.T) {
	_, err := NewRegion([3]int{0, 0, 0}, [3]int{0, 1, 1})
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, CorruptedSchematic, lerr.Kind())
}
