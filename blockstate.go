package litematic

import (
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// AIR is the reserved block state that always occupies palette index 0.
var AIR = BlockState{identifier: "minecraft:air"}

// BlockState is an immutable (identifier, properties) value identifying one
// variant of a block. Two BlockStates are equal iff their identifiers match
// and their property maps match as sets of key/value pairs. Mutators return
// new instances; the zero value is not a valid BlockState (use NewBlockState
// or AIR).
type BlockState struct {
	identifier string
	properties map[string]string
}

// NewBlockState builds a BlockState from an identifier and an optional
// property map. The identifier must be non-empty; property keys and values
// are copied so later mutation of the caller's map has no effect.
func NewBlockState(identifier string, properties map[string]string) (BlockState, error) {
	if identifier == "" {
		return BlockState{}, errInvalidIdentifier("block identifier must not be empty")
	}
	return BlockState{identifier: identifier, properties: cloneProps(properties)}, nil
}

func cloneProps(props map[string]string) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// WithIdentifier returns a copy of b with its identifier replaced, keeping
// the existing properties.
func (b BlockState) WithIdentifier(id string) (BlockState, error) {
	if id == "" {
		return BlockState{}, errInvalidIdentifier("block identifier must not be empty")
	}
	return BlockState{identifier: id, properties: cloneProps(b.properties)}, nil
}

// WithProperties returns a copy of b with changes applied: a nil value for a
// key removes that property, any other value sets it.
func (b BlockState) WithProperties(changes map[string]*string) BlockState {
	merged := cloneProps(b.properties)
	if merged == nil && len(changes) > 0 {
		merged = make(map[string]string, len(changes))
	}
	for k, v := range changes {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = *v
	}
	if len(merged) == 0 {
		merged = nil
	}
	return BlockState{identifier: b.identifier, properties: merged}
}

// Identifier returns the namespaced block identifier, e.g. "minecraft:stone".
func (b BlockState) Identifier() string {
	return b.identifier
}

// Properties returns a copy of the property map; mutating it does not
// affect b.
func (b BlockState) Properties() map[string]string {
	return cloneProps(b.properties)
}

// HasProperty reports whether b carries the given property key.
func (b BlockState) HasProperty(key string) bool {
	_, ok := b.properties[key]
	return ok
}

// sortedKeys returns the property keys in sorted order.
func (b BlockState) sortedKeys() []string {
	keys := make([]string, 0, len(b.properties))
	for k := range b.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String returns the canonical text form: "ns:path" with no properties, or
// "ns:path[k1=v1,k2=v2,...]" with keys in sorted order.
func (b BlockState) String() string {
	if len(b.properties) == 0 {
		return b.identifier
	}
	var buf strings.Builder
	buf.WriteString(b.identifier)
	buf.WriteByte('[')
	for i, k := range b.sortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(b.properties[k])
	}
	buf.WriteByte(']')
	return buf.String()
}

// Equal reports whether b and other have the same identifier and the same
// set of properties.
func (b BlockState) Equal(other BlockState) bool {
	if b.identifier != other.identifier {
		return false
	}
	if len(b.properties) != len(other.properties) {
		return false
	}
	for k, v := range b.properties {
		if ov, ok := other.properties[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Hash returns a hash of the canonical text form, stable across process
// runs (xxhash has no seed randomization), suitable for Palette's dedup
// index.
func (b BlockState) Hash() uint64 {
	return xxhash.Sum64String(b.String())
}
