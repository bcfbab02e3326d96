package litematic

import "github.com/brentp/intintmap"

// Region owns a palette, packed block storage, and the auxiliary lists
// (entities, tile entities, pending ticks) for one axis-aligned box of the
// schematic. Blocks are addressed by zero-based local coordinates
// [0,|size.x|) x [0,|size.y|) x [0,|size.z|); Region also exposes the
// signed local and schematic-space extents implied by a possibly-negative
// size.
type Region struct {
	position [3]int
	size     [3]int

	palette *Palette
	blocks  *BitArray

	entities     []*Entity
	tileEntities map[[3]int]*TileEntity
	blockTicks   []BlockTick
	fluidTicks   []FluidTick

	extra map[string]any
}

// NewRegion constructs a Region with the given schematic-space origin and
// signed size. All three size components must be non-zero. The region
// starts with a palette containing only AIR and every cell zeroed (AIR).
func NewRegion(position [3]int, size [3]int) (*Region, error) {
	if size[0] == 0 || size[1] == 0 || size[2] == 0 {
		return nil, errCorruptedSchematic("region size components must be non-zero, got %v", size)
	}
	count := axisLen(size[0]) * axisLen(size[1]) * axisLen(size[2])
	palette := NewPalette()
	blocks, err := NewBitArray(count, palette.RequiredBitWidth())
	if err != nil {
		return nil, err
	}
	return &Region{
		position:     position,
		size:         size,
		palette:      palette,
		blocks:       blocks,
		tileEntities: make(map[[3]int]*TileEntity),
	}, nil
}

// NewRegionFromDecoded builds a Region directly from a decoded palette and
// per-cell palette-index values, preserving the palette's original order
// instead of re-deriving indices through insertion order. cellValues must
// have exactly axisLen(size.x)*axisLen(size.y)*axisLen(size.z) entries in
// linearization order, and must not reference an index outside states.
// Used by the NBT codec, which already knows the exact on-disk palette and
// cell layout and must not perturb either.
func NewRegionFromDecoded(position, size [3]int, states []BlockState, cellValues []int) (*Region, error) {
	if size[0] == 0 || size[1] == 0 || size[2] == 0 {
		return nil, errCorruptedSchematic("region size components must be non-zero, got %v", size)
	}
	if len(states) == 0 || !states[0].Equal(AIR) {
		return nil, errCorruptedSchematic("decoded palette must start with AIR at index 0")
	}
	count := axisLen(size[0]) * axisLen(size[1]) * axisLen(size[2])
	if len(cellValues) != count {
		return nil, errLengthMismatch("expected %d cell values, got %d", count, len(cellValues))
	}

	palette := &Palette{
		blocks: make([]BlockState, len(states)),
		index:  make(map[uint64]int, len(states)),
	}
	copy(palette.blocks, states)
	for i, s := range palette.blocks {
		if _, exists := palette.index[s.Hash()]; !exists {
			palette.index[s.Hash()] = i
		}
	}

	blocks, err := NewBitArray(count, requiredBitWidth(len(states)))
	if err != nil {
		return nil, err
	}
	for i, v := range cellValues {
		if v < 0 || v >= len(states) {
			return nil, errCorruptedSchematic("cell %d references out-of-range palette index %d", i, v)
		}
		if err := blocks.Set(i, uint64(v)); err != nil {
			return nil, err
		}
	}

	return &Region{
		position:     position,
		size:         size,
		palette:      palette,
		blocks:       blocks,
		tileEntities: make(map[[3]int]*TileEntity),
	}, nil
}

// Position returns the region's schematic-space origin.
func (r *Region) Position() [3]int {
	return r.position
}

// Size returns the region's signed size.
func (r *Region) Size() [3]int {
	return r.size
}

// axisLens returns the absolute per-axis lengths (Lx, Ly, Lz).
func (r *Region) axisLens() (lx, ly, lz int) {
	return axisLen(r.size[0]), axisLen(r.size[1]), axisLen(r.size[2])
}

// index computes the linear cell index for local (x,y,z), preserving the
// y*Lx*Lz + z*Lx + x order required for format compatibility.
func (r *Region) index(x, y, z int) (int, error) {
	lx, ly, lz := r.axisLens()
	if x < 0 || x >= lx || y < 0 || y >= ly || z < 0 || z >= lz {
		return 0, errIndexOutOfRange("local position (%d,%d,%d) outside bounds (%d,%d,%d)", x, y, z, lx, ly, lz)
	}
	return y*lx*lz + z*lx + x, nil
}

// At returns the BlockState stored at local (x,y,z).
func (r *Region) At(x, y, z int) (BlockState, error) {
	idx, err := r.index(x, y, z)
	if err != nil {
		return BlockState{}, err
	}
	cell, err := r.blocks.Get(idx)
	if err != nil {
		return BlockState{}, err
	}
	return r.palette.Get(int(cell))
}

// Set stores s at local (x,y,z). If s is new to the palette, the backing
// BitArray is widened in place (every existing cell copied) before the
// write when the palette's required bit width grows.
func (r *Region) Set(x, y, z int, s BlockState) error {
	idx, err := r.index(x, y, z)
	if err != nil {
		return err
	}
	newIdx := r.palette.IndexOf(s)
	if want := r.palette.RequiredBitWidth(); want > r.blocks.Bits() {
		r.growBlocks(want)
	}
	return r.blocks.Set(idx, uint64(newIdx))
}

// growBlocks rebuilds the backing BitArray at the given width, copying
// every cell.
func (r *Region) growBlocks(width int) {
	grown, _ := NewBitArray(r.blocks.Len(), width)
	r.blocks.All(func(i int, v uint64) bool {
		_ = grown.Set(i, v)
		return true
	})
	r.blocks = grown
}

// Positions yields every local (x,y,z) in linearization order.
func (r *Region) Positions(yield func(x, y, z int) bool) {
	lx, ly, lz := r.axisLens()
	for y := 0; y < ly; y++ {
		for z := 0; z < lz; z++ {
			for x := 0; x < lx; x++ {
				if !yield(x, y, z) {
					return
				}
			}
		}
	}
}

// MinX returns the local-space lower x bound: 0 when size.x > 0, or
// -(|size.x|-1) when size.x < 0.
func (r *Region) MinX() int { min, _ := localBounds(r.size[0]); return min }

// MaxX returns the local-space upper x bound.
func (r *Region) MaxX() int { _, max := localBounds(r.size[0]); return max }

// MinY returns the local-space lower y bound.
func (r *Region) MinY() int { min, _ := localBounds(r.size[1]); return min }

// MaxY returns the local-space upper y bound.
func (r *Region) MaxY() int { _, max := localBounds(r.size[1]); return max }

// MinZ returns the local-space lower z bound.
func (r *Region) MinZ() int { min, _ := localBounds(r.size[2]); return min }

// MaxZ returns the local-space upper z bound.
func (r *Region) MaxZ() int { _, max := localBounds(r.size[2]); return max }

// MinSchemX returns the schematic-space lower x bound.
func (r *Region) MinSchemX() int { min, _ := schemBounds(r.position[0], r.size[0]); return min }

// MaxSchemX returns the schematic-space upper x bound.
func (r *Region) MaxSchemX() int { _, max := schemBounds(r.position[0], r.size[0]); return max }

// MinSchemY returns the schematic-space lower y bound.
func (r *Region) MinSchemY() int { min, _ := schemBounds(r.position[1], r.size[1]); return min }

// MaxSchemY returns the schematic-space upper y bound.
func (r *Region) MaxSchemY() int { _, max := schemBounds(r.position[1], r.size[1]); return max }

// MinSchemZ returns the schematic-space lower z bound.
func (r *Region) MinSchemZ() int { min, _ := schemBounds(r.position[2], r.size[2]); return min }

// MaxSchemZ returns the schematic-space upper z bound.
func (r *Region) MaxSchemZ() int { _, max := schemBounds(r.position[2], r.size[2]); return max }

// SchemPosition converts zero-based local (x,y,z) to schematic space,
// following the sign of each size component.
func (r *Region) SchemPosition(x, y, z int) [3]int {
	return [3]int{
		toSchem(x, r.position[0], r.size[0]),
		toSchem(y, r.position[1], r.size[1]),
		toSchem(z, r.position[2], r.size[2]),
	}
}

// Contains reports whether the palette holds s AND some cell references
// that palette index.
func (r *Region) Contains(s BlockState) bool {
	h := s.Hash()
	found := -1
	r.palette.All(func(i int, state BlockState) bool {
		if state.Hash() == h && state.Equal(s) {
			found = i
			return false
		}
		return true
	})
	if found < 0 {
		return false
	}
	return r.blocks.Contains(uint64(found))
}

// Filter applies fn to every palette entry in place, merging palette
// entries that collide under fn, rewriting every cell through the
// resulting remap, and pruning unused entries afterward. AIR always keeps
// palette index 0: if fn(AIR) != AIR, the mapped state is inserted as a new
// entry and every cell that pointed at AIR is rewritten to point at it,
// while index 0 continues to hold AIR.
func (r *Region) Filter(fn func(BlockState) BlockState) {
	oldLen := r.palette.Len()
	remap := make([]int, oldLen)

	newPalette := NewPalette()
	for i := 0; i < oldLen; i++ {
		old, _ := r.palette.Get(i)
		if i == 0 {
			remap[0] = 0
			mapped := fn(old)
			if !mapped.Equal(AIR) {
				remap[0] = newPalette.IndexOf(mapped)
			}
			continue
		}
		mapped := fn(old)
		remap[i] = newPalette.IndexOf(mapped)
	}

	width := newPalette.RequiredBitWidth()
	if width < r.blocks.Bits() {
		width = r.blocks.Bits()
	}
	newBlocks, _ := NewBitArray(r.blocks.Len(), width)
	r.blocks.All(func(i int, v uint64) bool {
		_ = newBlocks.Set(i, uint64(remap[int(v)]))
		return true
	})

	r.palette = newPalette
	r.blocks = newBlocks
	r.Prune()
}

// Replace is equivalent to Filter(s -> new if s == old else s).
func (r *Region) Replace(old, new BlockState) {
	r.Filter(func(s BlockState) BlockState {
		if s.Equal(old) {
			return new
		}
		return s
	})
}

// Prune scans every cell, collects the used palette indices, rebuilds the
// palette keeping only those entries (plus AIR), and rewrites every cell
// through the resulting remap. The backing BitArray is also narrowed back
// down to the pruned palette's required width.
func (r *Region) Prune() {
	distinct := r.usedIndexSet()
	usedMap := make(map[int]struct{}, len(distinct))
	for _, k := range distinct {
		usedMap[int(k)] = struct{}{}
	}

	remap := r.palette.Prune(usedMap)
	width := r.palette.RequiredBitWidth()
	newBlocks, _ := NewBitArray(r.blocks.Len(), width)
	r.blocks.All(func(i int, v uint64) bool {
		_ = newBlocks.Set(i, uint64(remap[int(v)]))
		return true
	})
	r.blocks = newBlocks
}

// usedIndexSet scans every cell of the backing BitArray, using a fast
// int-keyed set to dedup on the hot path, and returns the distinct palette
// indices referenced by at least one cell.
func (r *Region) usedIndexSet() []int64 {
	seen := intintmap.New(int64(r.blocks.Len()), 0.75)
	var distinct []int64
	r.blocks.All(func(_ int, v uint64) bool {
		key := int64(v)
		if _, ok := seen.Get(key); !ok {
			seen.Put(key, 1)
			distinct = append(distinct, key)
		}
		return true
	})
	return distinct
}

// UsedIndices returns the set of palette indices currently referenced by at
// least one cell, scanning every cell of the backing BitArray.
func (r *Region) UsedIndices() map[int]struct{} {
	distinct := r.usedIndexSet()
	out := make(map[int]struct{}, len(distinct))
	for _, k := range distinct {
		out[int(k)] = struct{}{}
	}
	return out
}

// Palette returns the region's palette.
func (r *Region) Palette() *Palette {
	return r.palette
}

// Blocks returns the region's packed block storage.
func (r *Region) Blocks() *BitArray {
	return r.blocks
}

// BlockEntity returns the tile entity stored at pos, if any.
func (r *Region) BlockEntity(pos [3]int) (*TileEntity, bool) {
	te, ok := r.tileEntities[pos]
	return te, ok
}

// SetBlockEntity stores te at its own Pos, replacing any prior entry there.
func (r *Region) SetBlockEntity(te *TileEntity) {
	r.tileEntities[te.Pos] = te
}

// RemoveBlockEntity removes and returns the tile entity at pos, if any.
func (r *Region) RemoveBlockEntity(pos [3]int) (*TileEntity, bool) {
	te, ok := r.tileEntities[pos]
	if ok {
		delete(r.tileEntities, pos)
	}
	return te, ok
}

// TileEntities returns every stored tile entity, in no particular order.
func (r *Region) TileEntities() []*TileEntity {
	out := make([]*TileEntity, 0, len(r.tileEntities))
	for _, te := range r.tileEntities {
		out = append(out, te)
	}
	return out
}

// Entities returns the region's free-floating entities, in insertion order.
func (r *Region) Entities() []*Entity {
	return r.entities
}

// AddEntity appends e to the region's entity list.
func (r *Region) AddEntity(e *Entity) {
	r.entities = append(r.entities, e)
}

// BlockTicks returns the region's pending block ticks.
func (r *Region) BlockTicks() []BlockTick {
	return r.blockTicks
}

// SetBlockTicks replaces the region's pending block ticks.
func (r *Region) SetBlockTicks(ticks []BlockTick) {
	r.blockTicks = ticks
}

// FluidTicks returns the region's pending fluid ticks.
func (r *Region) FluidTicks() []FluidTick {
	return r.fluidTicks
}

// SetFluidTicks replaces the region's pending fluid ticks.
func (r *Region) SetFluidTicks(ticks []FluidTick) {
	r.fluidTicks = ticks
}

// Extra returns the region's unrecognized NBT keys, carried losslessly
// between decode and re-encode.
func (r *Region) Extra() map[string]any {
	return r.extra
}

// SetExtra replaces the region's unrecognized NBT keys.
func (r *Region) SetExtra(extra map[string]any) {
	r.extra = extra
}
