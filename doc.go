// Package litematic implements the in-memory model of a Litematica
// schematic: block states, a self-maintaining palette, packed bit-array
// block storage, regions with dual coordinate spaces, and the schematic
// aggregate that owns a named set of regions plus metadata.
//
// The NBT wire codec lives in the sibling package litematic/litefmt,
// which imports this package but is never imported by it.
package litematic
