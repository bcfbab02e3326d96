package litefmt

import (
	"bytes"
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/oriumgames/nbt"

	"github.com/nyxcraft/litematic"
)

// Save gzip-compresses and NBT-encodes s to w, using its configured
// FormatVersion (v6 tight packing or v7 standard packing). Each region's
// palette is pruned before encoding so a round trip never carries unused
// palette entries forward.
func Save(w io.Writer, s *litematic.Schematic) error {
	root, err := buildRoot(s)
	if err != nil {
		return err
	}
	gz := gzip.NewWriter(w)
	if err := nbt.NewEncoderWithEncoding(gz, nbt.BigEndian).Encode(root); err != nil {
		gz.Close()
		return fmt.Errorf("encode nbt: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// SaveFile writes s to path atomically: the encoded schematic is written to
// a temporary file in the same directory, then renamed over path, so a
// failed encode never touches a prior file at path.
func SaveFile(path string, s *litematic.Schematic) error {
	s.TouchSave(time.Now())

	var buf bytes.Buffer
	if err := Save(&buf, s); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write temp file in %s: %w", dir, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file to %s: %w", path, err)
	}
	return nil
}

// Load decodes a gzip-compressed NBT schematic from r.
func Load(r io.Reader) (*litematic.Schematic, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer gz.Close()

	var root rootNBT
	if err := nbt.NewDecoderWithEncoding(gz, nbt.BigEndian).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode nbt: %w", err)
	}
	return buildSchematic(root)
}

// LoadFile decodes the schematic stored at path.
func LoadFile(path string) (*litematic.Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

func buildRoot(s *litematic.Schematic) (rootNBT, error) {
	meta := s.Metadata()
	version := meta.FormatVersion
	if version != litematic.FormatV6 && version != litematic.FormatV7 {
		version = litematic.FormatV6
	}

	regions := make(map[string]regionNBT, len(s.RegionNames()))
	totalBlocks := 0
	for _, name := range s.RegionNames() {
		r, _ := s.Region(name)
		r.Prune()

		rn, blocks := buildRegionNBT(r, version)
		regions[name] = rn
		totalBlocks += blocks
	}

	root := rootNBT{
		Version:              int32(version),
		MinecraftDataVersion: meta.DataVersion,
		Regions:              regions,
		Extra:                s.Extra(),
	}
	if meta.HasSubVersion {
		root.SubVersion = meta.SubVersion
	}
	root.Metadata = metadataNBT{
		Name:        meta.Name,
		Author:      meta.Author,
		Description: meta.Description,
		RegionCount: int32(len(regions)),
		TotalBlocks: int32(totalBlocks),
		TotalVolume: int32(s.TotalVolume()),
		EnclosingSize: xyz{
			X: int32(s.Width()),
			Y: int32(s.Height()),
			Z: int32(s.Length()),
		},
		PreviewImageData: meta.PreviewImageData,
	}
	if !meta.TimeCreated.IsZero() {
		root.Metadata.TimeCreated = meta.TimeCreated.UnixMilli()
	}
	if !meta.TimeModified.IsZero() {
		root.Metadata.TimeModified = meta.TimeModified.UnixMilli()
	}
	return root, nil
}

func buildRegionNBT(r *litematic.Region, version litematic.FormatVersion) (regionNBT, int) {
	pos, size := r.Position(), r.Size()
	palette := r.Palette()

	entries := make([]paletteEntryNBT, palette.Len())
	palette.All(func(i int, s litematic.BlockState) bool {
		entries[i] = paletteEntryNBT{Name: s.Identifier(), Properties: s.Properties()}
		return true
	})

	blocks := r.Blocks()
	cellCount := blocks.Len()
	values := make([]int, cellCount)
	totalBlocks := 0
	blocks.All(func(i int, v uint64) bool {
		values[i] = int(v)
		if v != 0 {
			totalBlocks++
		}
		return true
	})

	bitsPerEntry := max(bits.Len(uint(palette.Len()-1)), 2)
	var packed []int64
	if version == litematic.FormatV7 {
		packed = packStandard(values, bitsPerEntry)
	} else {
		packed = packTight(values, bitsPerEntry)
	}

	rn := regionNBT{
		Position:          xyz{X: int32(pos[0]), Y: int32(pos[1]), Z: int32(pos[2])},
		Size:              xyz{X: int32(size[0]), Y: int32(size[1]), Z: int32(size[2])},
		BlockStatePalette: entries,
		BlockStates:       packed,
		Extra:             r.Extra(),
	}
	for _, te := range r.TileEntities() {
		rn.TileEntities = append(rn.TileEntities, toTileEntityNBT(te))
	}
	for _, e := range r.Entities() {
		rn.Entities = append(rn.Entities, toEntityNBT(e))
	}
	for _, t := range r.BlockTicks() {
		rn.PendingBlockTicks = append(rn.PendingBlockTicks, toBlockTickNBT(t))
	}
	for _, t := range r.FluidTicks() {
		rn.PendingFluidTicks = append(rn.PendingFluidTicks, toFluidTickNBT(t))
	}
	return rn, totalBlocks
}

func buildSchematic(root rootNBT) (*litematic.Schematic, error) {
	if root.Version != 6 && root.Version != 7 {
		return nil, litematic.NewUnsupportedVersionError(int(root.Version))
	}
	version := litematic.FormatVersion(root.Version)

	opts := []litematic.SchematicOption{
		litematic.WithName(root.Metadata.Name),
		litematic.WithAuthor(root.Metadata.Author),
		litematic.WithDescription(root.Metadata.Description),
		litematic.WithFormatVersion(version),
		litematic.WithDataVersion(root.MinecraftDataVersion),
	}
	s := litematic.NewSchematic(opts...)

	meta := s.Metadata()
	if root.Metadata.TimeCreated != 0 {
		meta.TimeCreated = time.UnixMilli(root.Metadata.TimeCreated)
	}
	if root.Metadata.TimeModified != 0 {
		meta.TimeModified = time.UnixMilli(root.Metadata.TimeModified)
	}
	if root.SubVersion != 0 {
		meta.SubVersion = root.SubVersion
		meta.HasSubVersion = true
	}
	meta.PreviewImageData = root.Metadata.PreviewImageData
	s.SetMetadata(meta)
	s.SetExtra(root.Extra)

	for name, rn := range root.Regions {
		region, err := buildRegion(rn, version)
		if err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
		if err := s.PutRegion(name, region); err != nil {
			return nil, fmt.Errorf("region %q: %w", name, err)
		}
	}
	return s, nil
}

func buildRegion(rn regionNBT, version litematic.FormatVersion) (*litematic.Region, error) {
	pos := [3]int{int(rn.Position.X), int(rn.Position.Y), int(rn.Position.Z)}
	size := [3]int{int(rn.Size.X), int(rn.Size.Y), int(rn.Size.Z)}

	if len(rn.BlockStatePalette) == 0 {
		return nil, litematic.NewCorruptedSchematicError("region has no palette entries")
	}

	lx, ly, lz := abs(size[0]), abs(size[1]), abs(size[2])
	cellCount := lx * ly * lz
	bitsPerEntry := max(bits.Len(uint(len(rn.BlockStatePalette)-1)), 2)

	wantLongs := expectedLongCount(cellCount, bitsPerEntry, version)
	if len(rn.BlockStates) != wantLongs {
		return nil, litematic.NewLengthMismatchError(
			"region BlockStates has %d longs, expected %d for %d cells at %d bits/entry",
			len(rn.BlockStates), wantLongs, cellCount, bitsPerEntry)
	}

	var values []int
	if version == litematic.FormatV7 {
		values = unpackStandard(rn.BlockStates, bitsPerEntry, cellCount)
	} else {
		values = unpackTight(rn.BlockStates, bitsPerEntry, cellCount)
	}

	states := make([]litematic.BlockState, len(rn.BlockStatePalette))
	for i, p := range rn.BlockStatePalette {
		st, err := litematic.NewBlockState(p.Name, p.Properties)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}

	region, err := litematic.NewRegionFromDecoded(pos, size, states, values)
	if err != nil {
		return nil, err
	}
	region.SetExtra(rn.Extra)

	for _, te := range rn.TileEntities {
		region.SetBlockEntity(fromTileEntityNBT(te))
	}
	for _, e := range rn.Entities {
		entity, err := fromEntityNBT(e)
		if err != nil {
			return nil, err
		}
		region.AddEntity(entity)
	}
	if len(rn.PendingBlockTicks) > 0 {
		ticks := make([]litematic.BlockTick, len(rn.PendingBlockTicks))
		for i, t := range rn.PendingBlockTicks {
			ticks[i] = fromBlockTickNBT(t)
		}
		region.SetBlockTicks(ticks)
	}
	if len(rn.PendingFluidTicks) > 0 {
		ticks := make([]litematic.FluidTick, len(rn.PendingFluidTicks))
		for i, t := range rn.PendingFluidTicks {
			ticks[i] = fromFluidTickNBT(t)
		}
		region.SetFluidTicks(ticks)
	}
	return region, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// expectedLongCount returns the long-array length a well-formed region's
// BlockStates must have for the given cell count and bits-per-entry: the
// tight (v6) packing straddles word boundaries, the standard (v7) packing
// fits floor(64/bits) whole cells per word.
func expectedLongCount(cellCount, bitsPerEntry int, version litematic.FormatVersion) int {
	if version == litematic.FormatV7 {
		valuesPerLong := 64 / bitsPerEntry
		return (cellCount + valuesPerLong - 1) / valuesPerLong
	}
	return (cellCount*bitsPerEntry + 63) / 64
}
