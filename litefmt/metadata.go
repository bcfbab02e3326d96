package litefmt

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/oriumgames/nbt"

	"github.com/nyxcraft/litematic"
)

// Metadata is the fast metadata-only view of a schematic file: name,
// author, description, format/data version, timestamps, region count and
// volume totals, enclosing size, and optional preview image — decoded
// without constructing any Region.
type Metadata struct {
	Name        string
	Author      string
	Description string

	FormatVersion litematic.FormatVersion
	SubVersion    int32
	HasSubVersion bool
	DataVersion   int32

	TimeCreated  time.Time
	TimeModified time.Time

	RegionCount int32
	TotalBlocks int32
	TotalVolume int32

	EnclosingSize [3]int32

	PreviewImageData []int32
}

// metadataRootNBT mirrors rootNBT but skips decoding the (potentially
// large) per-region block data, letting Go's NBT decoder skip those bytes.
type metadataRootNBT struct {
	Version              int32       `nbt:"Version"`
	SubVersion           int32       `nbt:"SubVersion,omitempty"`
	MinecraftDataVersion int32       `nbt:"MinecraftDataVersion"`
	Metadata             metadataNBT `nbt:"Metadata"`
}

// ReadMetadata decodes just the metadata block of a gzip-compressed NBT
// schematic from r, without building any Region.
func ReadMetadata(r io.Reader) (*Metadata, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip decompress: %w", err)
	}
	defer gz.Close()

	var root metadataRootNBT
	if err := nbt.NewDecoderWithEncoding(gz, nbt.BigEndian).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode nbt: %w", err)
	}
	if root.Version != 6 && root.Version != 7 {
		return nil, litematic.NewUnsupportedVersionError(int(root.Version))
	}

	m := &Metadata{
		Name:          root.Metadata.Name,
		Author:        root.Metadata.Author,
		Description:   root.Metadata.Description,
		FormatVersion: litematic.FormatVersion(root.Version),
		DataVersion:   root.MinecraftDataVersion,
		RegionCount:   root.Metadata.RegionCount,
		TotalBlocks:   root.Metadata.TotalBlocks,
		TotalVolume:   root.Metadata.TotalVolume,
		EnclosingSize: [3]int32{root.Metadata.EnclosingSize.X, root.Metadata.EnclosingSize.Y, root.Metadata.EnclosingSize.Z},
		PreviewImageData: root.Metadata.PreviewImageData,
	}
	if root.SubVersion != 0 {
		m.SubVersion = root.SubVersion
		m.HasSubVersion = true
	}
	if root.Metadata.TimeCreated != 0 {
		m.TimeCreated = time.UnixMilli(root.Metadata.TimeCreated)
	}
	if root.Metadata.TimeModified != 0 {
		m.TimeModified = time.UnixMilli(root.Metadata.TimeModified)
	}
	return m, nil
}

// ReadMetadataFile decodes just the metadata block of the schematic file at
// path, letting libraries scan large collections of schematics cheaply.
func ReadMetadataFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadMetadata(f)
}
