package litematic

import "github.com/google/uuid"

// Entity is a free-floating actor stored at a floating-point position with
// rotation and motion vectors, plus arbitrary extra NBT data.
type Entity struct {
	Identifier string
	Pos        [3]float64
	Rotation   [2]float32
	Motion     [3]float64
	UUID       uuid.UUID
	Data       map[string]any
}

// NewEntity builds an Entity with a freshly generated random UUID.
func NewEntity(identifier string, pos [3]float64) *Entity {
	return &Entity{
		Identifier: identifier,
		Pos:        pos,
		UUID:       uuid.New(),
		Data:       make(map[string]any),
	}
}

// UUIDInts converts e's UUID to the 4 int32s the NBT "UUID" tag holds.
func (e *Entity) UUIDInts() [4]int32 {
	id := e.UUID
	var out [4]int32
	for i := 0; i < 4; i++ {
		out[i] = int32(uint32(id[i*4])<<24 | uint32(id[i*4+1])<<16 | uint32(id[i*4+2])<<8 | uint32(id[i*4+3]))
	}
	return out
}

// UUIDFromInts converts the 4 int32s of the NBT "UUID" tag back to a UUID.
func UUIDFromInts(ints [4]int32) uuid.UUID {
	var id uuid.UUID
	for i := 0; i < 4; i++ {
		v := uint32(ints[i])
		id[i*4] = byte(v >> 24)
		id[i*4+1] = byte(v >> 16)
		id[i*4+2] = byte(v >> 8)
		id[i*4+3] = byte(v)
	}
	return id
}

// TileEntity is extended per-block data (e.g. a chest's inventory) stored at
// an integer position in region-local coordinates.
type TileEntity struct {
	Identifier string
	Pos        [3]int
	Data       map[string]any
}

// BlockTick is a pending scheduled update on a block, carrying its target
// identifier, position, and timing.
type BlockTick struct {
	Block    string
	Priority int32
	SubTick  int64
	Time     int32
	X, Y, Z  int
}

// FluidTick is a pending scheduled update on a fluid.
type FluidTick struct {
	Fluid    string
	Priority int32
	SubTick  int64
	Time     int32
	X, Y, Z  int
}
