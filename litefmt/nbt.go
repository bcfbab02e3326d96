// Package litefmt implements the gzip-compressed NBT codec for Litematica
// schematics: encoding and decoding between the litematic domain model and
// the v6/v7 wire formats.
package litefmt

import "github.com/nyxcraft/litematic"

type xyz struct {
	X int32 `nbt:"x"`
	Y int32 `nbt:"y"`
	Z int32 `nbt:"z"`
}

type paletteEntryNBT struct {
	Name       string            `nbt:"Name"`
	Properties map[string]string `nbt:"Properties,omitempty"`
}

type blockTickNBT struct {
	Block    string `nbt:"block"`
	Priority int32  `nbt:"priority"`
	SubTick  int64  `nbt:"sub_tick"`
	Time     int32  `nbt:"time"`
	X        int32  `nbt:"x"`
	Y        int32  `nbt:"y"`
	Z        int32  `nbt:"z"`
}

type fluidTickNBT struct {
	Fluid    string `nbt:"fluid"`
	Priority int32  `nbt:"priority"`
	SubTick  int64  `nbt:"sub_tick"`
	Time     int32  `nbt:"time"`
	X        int32  `nbt:"x"`
	Y        int32  `nbt:"y"`
	Z        int32  `nbt:"z"`
}

type entityNBT struct {
	ID       string    `nbt:"id"`
	Pos      []float64 `nbt:"Pos"`
	Rotation []float32 `nbt:"Rotation"`
	Motion   []float64 `nbt:"Motion"`
	UUID     []int32   `nbt:"UUID,omitempty"`

	Extra map[string]any `nbt:"*"`
}

type tileEntityNBT struct {
	ID string `nbt:"id"`
	X  int32  `nbt:"x"`
	Y  int32  `nbt:"y"`
	Z  int32  `nbt:"z"`

	Extra map[string]any `nbt:"*"`
}

type regionNBT struct {
	Position xyz `nbt:"Position"`
	Size     xyz `nbt:"Size"`

	BlockStatePalette []paletteEntryNBT `nbt:"BlockStatePalette"`
	BlockStates       []int64           `nbt:"BlockStates,array"`

	Entities          []entityNBT     `nbt:"Entities"`
	TileEntities      []tileEntityNBT `nbt:"TileEntities"`
	PendingBlockTicks []blockTickNBT  `nbt:"PendingBlockTicks,omitempty"`
	PendingFluidTicks []fluidTickNBT  `nbt:"PendingFluidTicks,omitempty"`

	Extra map[string]any `nbt:"*"`
}

type metadataNBT struct {
	Name          string `nbt:"Name"`
	Author        string `nbt:"Author"`
	Description   string `nbt:"Description"`
	TimeCreated   int64  `nbt:"TimeCreated"`
	TimeModified  int64  `nbt:"TimeModified"`
	RegionCount   int32  `nbt:"RegionCount"`
	TotalBlocks   int32  `nbt:"TotalBlocks"`
	TotalVolume   int32  `nbt:"TotalVolume"`
	EnclosingSize xyz    `nbt:"EnclosingSize"`

	PreviewImageData []int32 `nbt:"PreviewImageData,array,omitempty"`

	Extra map[string]any `nbt:"*"`
}

type rootNBT struct {
	Version              int32       `nbt:"Version"`
	SubVersion           int32       `nbt:"SubVersion,omitempty"`
	MinecraftDataVersion int32       `nbt:"MinecraftDataVersion"`
	Metadata             metadataNBT `nbt:"Metadata"`
	Regions              map[string]regionNBT `nbt:"Regions"`

	Extra map[string]any `nbt:"*"`
}

func toEntityNBT(e *litematic.Entity) entityNBT {
	ints := e.UUIDInts()
	return entityNBT{
		ID:       e.Identifier,
		Pos:      []float64{e.Pos[0], e.Pos[1], e.Pos[2]},
		Rotation: []float32{e.Rotation[0], e.Rotation[1]},
		Motion:   []float64{e.Motion[0], e.Motion[1], e.Motion[2]},
		UUID:     ints[:],
		Extra:    e.Data,
	}
}

func fromEntityNBT(n entityNBT) (*litematic.Entity, error) {
	if n.ID == "" {
		return nil, litematic.NewRequiredKeyMissingError("entity compound is missing required key \"id\"")
	}
	e := &litematic.Entity{
		Identifier: n.ID,
		Data:       n.Extra,
	}
	if len(n.Pos) >= 3 {
		e.Pos = [3]float64{n.Pos[0], n.Pos[1], n.Pos[2]}
	}
	if len(n.Rotation) >= 2 {
		e.Rotation = [2]float32{n.Rotation[0], n.Rotation[1]}
	}
	if len(n.Motion) >= 3 {
		e.Motion = [3]float64{n.Motion[0], n.Motion[1], n.Motion[2]}
	}
	if len(n.UUID) == 4 {
		e.UUID = litematic.UUIDFromInts([4]int32{n.UUID[0], n.UUID[1], n.UUID[2], n.UUID[3]})
	}
	if e.Data == nil {
		e.Data = make(map[string]any)
	}
	return e, nil
}

func toTileEntityNBT(te *litematic.TileEntity) tileEntityNBT {
	return tileEntityNBT{
		ID:    te.Identifier,
		X:     int32(te.Pos[0]),
		Y:     int32(te.Pos[1]),
		Z:     int32(te.Pos[2]),
		Extra: te.Data,
	}
}

func fromTileEntityNBT(n tileEntityNBT) *litematic.TileEntity {
	data := n.Extra
	if data == nil {
		data = make(map[string]any)
	}
	return &litematic.TileEntity{
		Identifier: n.ID,
		Pos:        [3]int{int(n.X), int(n.Y), int(n.Z)},
		Data:       data,
	}
}

func toBlockTickNBT(t litematic.BlockTick) blockTickNBT {
	return blockTickNBT{
		Block:    t.Block,
		Priority: t.Priority,
		SubTick:  t.SubTick,
		Time:     t.Time,
		X:        int32(t.X),
		Y:        int32(t.Y),
		Z:        int32(t.Z),
	}
}

func fromBlockTickNBT(n blockTickNBT) litematic.BlockTick {
	return litematic.BlockTick{
		Block:    n.Block,
		Priority: n.Priority,
		SubTick:  n.SubTick,
		Time:     n.Time,
		X:        int(n.X),
		Y:        int(n.Y),
		Z:        int(n.Z),
	}
}

func toFluidTickNBT(t litematic.FluidTick) fluidTickNBT {
	return fluidTickNBT{
		Fluid:    t.Fluid,
		Priority: t.Priority,
		SubTick:  t.SubTick,
		Time:     t.Time,
		X:        int32(t.X),
		Y:        int32(t.Y),
		Z:        int32(t.Z),
	}
}

func fromFluidTickNBT(n fluidTickNBT) litematic.FluidTick {
	return litematic.FluidTick{
		Fluid:    n.Fluid,
		Priority: n.Priority,
		SubTick:  n.SubTick,
		Time:     n.Time,
		X:        int(n.X),
		Y:        int(n.Y),
		Z:        int(n.Z),
	}
}
