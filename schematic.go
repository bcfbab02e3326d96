package litematic

import (
	"image"
	"image/color"
	"time"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// FormatVersion is the Litematica wire format version, 6 or 7.
type FormatVersion int

const (
	// FormatV6 is the original tight (straddling) block-index packing.
	FormatV6 FormatVersion = 6
	// FormatV7 is the non-straddling block-index packing.
	FormatV7 FormatVersion = 7
)

// Metadata holds the descriptive fields persisted alongside a Schematic's
// regions: name/author/description, data version, format version and
// optional subversion, creation/modification timestamps, and an optional
// 140x140 ARGB preview.
type Metadata struct {
	Name        string
	Author      string
	Description string

	DataVersion   int32
	FormatVersion FormatVersion
	SubVersion    int32
	HasSubVersion bool

	TimeCreated  time.Time
	TimeModified time.Time

	PreviewImageData []int32
}

// SchematicOption configures a Schematic at construction time.
type SchematicOption func(*Schematic)

// WithName sets the schematic's display name.
func WithName(name string) SchematicOption {
	return func(s *Schematic) { s.metadata.Name = name }
}

// WithAuthor sets the schematic's author.
func WithAuthor(author string) SchematicOption {
	return func(s *Schematic) { s.metadata.Author = author }
}

// WithDescription sets the schematic's description.
func WithDescription(desc string) SchematicOption {
	return func(s *Schematic) { s.metadata.Description = desc }
}

// WithFormatVersion sets the wire format version (default FormatV6).
func WithFormatVersion(v FormatVersion) SchematicOption {
	return func(s *Schematic) { s.metadata.FormatVersion = v }
}

// WithDataVersion sets the Minecraft data version the schematic targets.
func WithDataVersion(v int32) SchematicOption {
	return func(s *Schematic) { s.metadata.DataVersion = v }
}

// Schematic is the aggregate of named regions plus metadata. Regions are
// held in a DiscriminatingMap that rejects anything nil and keeps cached
// extents consistent on every add/remove.
type Schematic struct {
	regions  *DiscriminatingMap[string, *Region]
	metadata Metadata

	extentsDirty bool
	width        int
	height       int
	length       int

	extra map[string]any
}

// NewSchematic constructs an empty Schematic with FormatV6 as the default
// wire version, configured by the given options.
func NewSchematic(opts ...SchematicOption) *Schematic {
	s := &Schematic{
		metadata: Metadata{FormatVersion: FormatV6},
	}
	s.regions = NewDiscriminatingMap[string, *Region](
		func(_ string, r *Region) (bool, string) {
			if r == nil {
				return false, "region must not be nil"
			}
			return true, ""
		},
		func(_ string, _ *Region) { s.extentsDirty = true },
		func(_ string, _ *Region) { s.extentsDirty = true },
	)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutRegion inserts or replaces the named region.
func (s *Schematic) PutRegion(name string, r *Region) error {
	return s.regions.Set(name, r)
}

// Region returns the named region, if present.
func (s *Schematic) Region(name string) (*Region, bool) {
	return s.regions.Get(name)
}

// RemoveRegion removes and returns the named region, if present.
func (s *Schematic) RemoveRegion(name string) (*Region, bool) {
	r, ok := s.regions.Get(name)
	if !ok {
		return nil, false
	}
	s.regions.Delete(name)
	return r, true
}

// RegionNames returns the region names in insertion order.
func (s *Schematic) RegionNames() []string {
	return s.regions.Keys()
}

// RegionCount returns the number of regions.
func (s *Schematic) RegionCount() int {
	return s.regions.Len()
}

// recomputeExtents rolls up the union bounding box of every region's
// schematic-space extents.
func (s *Schematic) recomputeExtents() {
	s.extentsDirty = false
	names := s.regions.Keys()
	if len(names) == 0 {
		s.width, s.height, s.length = 0, 0, 0
		return
	}
	minX, maxX := 0, 0
	minY, maxY := 0, 0
	minZ, maxZ := 0, 0
	first := true
	for _, name := range names {
		r, _ := s.regions.Get(name)
		rMinX, rMaxX := r.MinSchemX(), r.MaxSchemX()
		rMinY, rMaxY := r.MinSchemY(), r.MaxSchemY()
		rMinZ, rMaxZ := r.MinSchemZ(), r.MaxSchemZ()
		if first {
			minX, maxX = rMinX, rMaxX
			minY, maxY = rMinY, rMaxY
			minZ, maxZ = rMinZ, rMaxZ
			first = false
			continue
		}
		minX, maxX = min(minX, rMinX), max(maxX, rMaxX)
		minY, maxY = min(minY, rMinY), max(maxY, rMaxY)
		minZ, maxZ = min(minZ, rMinZ), max(maxZ, rMaxZ)
	}
	s.width = maxX - minX + 1
	s.height = maxY - minY + 1
	s.length = maxZ - minZ + 1
}

// Width returns the extent of the union bounding box of all regions on the
// x-axis, 0 when the schematic has no regions.
func (s *Schematic) Width() int {
	if s.extentsDirty {
		s.recomputeExtents()
	}
	return s.width
}

// Height returns the extent on the y-axis.
func (s *Schematic) Height() int {
	if s.extentsDirty {
		s.recomputeExtents()
	}
	return s.height
}

// Length returns the extent on the z-axis.
func (s *Schematic) Length() int {
	if s.extentsDirty {
		s.recomputeExtents()
	}
	return s.length
}

// Metadata returns a copy of the schematic's metadata.
func (s *Schematic) Metadata() Metadata {
	return s.metadata
}

// SetMetadata replaces the schematic's metadata wholesale.
func (s *Schematic) SetMetadata(m Metadata) {
	s.metadata = m
}

// TotalBlocks counts non-AIR cells across every region.
func (s *Schematic) TotalBlocks() int {
	total := 0
	for _, name := range s.regions.Keys() {
		r, _ := s.regions.Get(name)
		r.Blocks().All(func(_ int, v uint64) bool {
			if v != 0 {
				total++
			}
			return true
		})
	}
	return total
}

// Extra returns the schematic's unrecognized root-level NBT keys, carried
// losslessly between decode and re-encode.
func (s *Schematic) Extra() map[string]any {
	return s.extra
}

// SetExtra replaces the schematic's unrecognized root-level NBT keys.
func (s *Schematic) SetExtra(extra map[string]any) {
	s.extra = extra
}

// TotalVolume sums the block count of every region.
func (s *Schematic) TotalVolume() int {
	total := 0
	for _, name := range s.regions.Keys() {
		r, _ := s.regions.Get(name)
		total += r.Blocks().Len()
	}
	return total
}

// TouchSave stamps TimeCreated on first save and always refreshes
// TimeModified, matching the "time_created set on first save" lifecycle.
func (s *Schematic) TouchSave(now time.Time) {
	if s.metadata.TimeCreated.IsZero() {
		s.metadata.TimeCreated = now
	}
	s.metadata.TimeModified = now
}

// GeneratePreviewImage resizes img down to 140x140 with Lanczos resampling
// and packs it into the ARGB int32 layout the Metadata.PreviewImageData
// field stores.
func GeneratePreviewImage(img image.Image) []int32 {
	const size = 140
	resized := imaging.Resize(img, size, size, imaging.Lanczos)
	out := make([]int32, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, a := resized.At(x, y).RGBA()
			argb := uint32(a>>8)<<24 | uint32(r>>8)<<16 | uint32(g>>8)<<8 | uint32(b>>8)
			out[y*size+x] = int32(argb)
		}
	}
	return out
}

// PreviewAverageColor decodes the ARGB preview data and averages it in
// go-colorful's perceptual Lab space, returning a representative swatch
// color. Reports false when no preview data is present.
func (m *Metadata) PreviewAverageColor() (color.Color, bool) {
	if len(m.PreviewImageData) == 0 {
		return nil, false
	}
	var l, a, b float64
	n := 0
	for _, px := range m.PreviewImageData {
		u := uint32(px)
		alpha := uint8(u >> 24)
		if alpha == 0 {
			continue
		}
		c := colorful.Color{
			R: float64(uint8(u>>16)) / 255,
			G: float64(uint8(u>>8)) / 255,
			B: float64(uint8(u)) / 255,
		}
		cl, ca, cb := c.Lab()
		l += cl
		a += ca
		b += cb
		n++
	}
	if n == 0 {
		return nil, false
	}
	avg := colorful.Lab(l/float64(n), a/float64(n), b/float64(n))
	return avg.Clamped(), true
}
