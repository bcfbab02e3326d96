package litematic

// Palette is an ordered, deduplicated list of BlockState. Index 0 is always
// AIR, present from construction even if no air block is ever stored.
// Indices are assigned sequentially as new states are added.
type Palette struct {
	blocks []BlockState
	index  map[uint64]int
}

// NewPalette returns a Palette containing only AIR at index 0.
func NewPalette() *Palette {
	p := &Palette{
		blocks: make([]BlockState, 0, 8),
		index:  make(map[uint64]int),
	}
	p.blocks = append(p.blocks, AIR)
	p.index[AIR.Hash()] = 0
	return p
}

// IndexOf returns the existing index of state, or appends it and returns
// the new index.
func (p *Palette) IndexOf(state BlockState) int {
	h := state.Hash()
	if idx, ok := p.index[h]; ok && p.blocks[idx].Equal(state) {
		return idx
	}
	idx := len(p.blocks)
	p.blocks = append(p.blocks, state)
	p.index[h] = idx
	return idx
}

// Get returns the state at index i, or fails with IndexOutOfRange.
func (p *Palette) Get(i int) (BlockState, error) {
	if i < 0 || i >= len(p.blocks) {
		return BlockState{}, errIndexOutOfRange("palette index %d outside [0,%d)", i, len(p.blocks))
	}
	return p.blocks[i], nil
}

// Len returns the number of palette entries.
func (p *Palette) Len() int {
	return len(p.blocks)
}

// All yields every (index, state) pair in index order.
func (p *Palette) All(yield func(i int, s BlockState) bool) {
	for i, s := range p.blocks {
		if !yield(i, s) {
			return
		}
	}
}

// RequiredBitWidth returns max(2, ceil(log2(len))).
func (p *Palette) RequiredBitWidth() int {
	return requiredBitWidth(len(p.blocks))
}

// Prune rebuilds the palette keeping index 0 (AIR) and only the entries
// whose old index is present in used. It returns a remap from old index to
// new index; old unused indices (other than AIR) are absent from the
// returned map.
func (p *Palette) Prune(used map[int]struct{}) map[int]int {
	remap := make(map[int]int, len(used)+1)
	newBlocks := make([]BlockState, 0, len(used)+1)
	newIndex := make(map[uint64]int, len(used)+1)

	newBlocks = append(newBlocks, AIR)
	newIndex[AIR.Hash()] = 0
	remap[0] = 0

	for oldIdx := 1; oldIdx < len(p.blocks); oldIdx++ {
		if _, ok := used[oldIdx]; !ok {
			continue
		}
		state := p.blocks[oldIdx]
		h := state.Hash()
		if existing, ok := newIndex[h]; ok && newBlocks[existing].Equal(state) {
			remap[oldIdx] = existing
			continue
		}
		newIdx := len(newBlocks)
		newBlocks = append(newBlocks, state)
		newIndex[h] = newIdx
		remap[oldIdx] = newIdx
	}

	p.blocks = newBlocks
	p.index = newIndex
	return remap
}
