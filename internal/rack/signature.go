package rack

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/layout"
)

// Signatures are FNV-1a structural hashes over the inputs that determine
// a unit's visual content. Equal signature means interchangeable content,
// so the previous build's unit can be kept instead of rebuilt.

type hasher struct {
	buf [8]byte
	sum uint64
}

func newHasher() *hasher {
	return &hasher{sum: 14695981039346656037} // FNV-1a offset basis
}

func (h *hasher) writeBytes(p []byte) {
	for _, b := range p {
		h.sum ^= uint64(b)
		h.sum *= 1099511628211 // FNV-1a prime
	}
}

func (h *hasher) writeUint64(v uint64) {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.writeBytes(h.buf[:])
}

func (h *hasher) writeInt(v int) {
	h.writeUint64(uint64(int64(v)))
}

func (h *hasher) writeString(s string) {
	h.writeInt(len(s))
	h.writeBytes([]byte(s))
}

func (h *hasher) writeFloat32(f float32) {
	h.writeUint64(uint64(math.Float32bits(f)))
}

func (h *hasher) writeVec3(v mgl32.Vec3) {
	h.writeFloat32(v[0])
	h.writeFloat32(v[1])
	h.writeFloat32(v[2])
}

func (h *hasher) writeSelector(s layout.Selector) {
	if s.IsAny() {
		h.writeBytes([]byte{'*'})
		return
	}
	vals := s.Values()
	sort.Ints(vals)
	h.writeInt(len(vals))
	for _, v := range vals {
		h.writeInt(v)
	}
}

func (h *hasher) writeRule(r layout.Rule) {
	h.writeSelector(r.Aisle)
	h.writeSelector(r.Level)
	h.writeSelector(r.Module)
	h.writeSelector(r.Depth)
	h.writeSelector(r.Position)
	h.writeString(r.Type)
}

// shapeSignature fingerprints the grid dimensions alone. Any change here
// invalidates every cached module and bucket.
func shapeSignature(s layout.Shape) uint64 {
	h := newHasher()
	h.writeInt(s.Aisles)
	h.writeInt(s.ModulesPerAisle)
	h.writeInt(s.LocationsPerModule)
	h.writeInt(s.StorageDepth)
	h.writeInt(len(s.LevelsPerAisle))
	for _, l := range s.LevelsPerAisle {
		h.writeInt(l)
	}
	return h.sum
}

// configSignature fingerprints the whole build input: shape plus both
// rule lists. Used for the O(1) short-circuit when nothing changed.
// A pathological input that cannot be hashed falls back to a unique
// random signature, forcing a full rebuild instead of failing the build.
func configSignature(s layout.Shape, missing, types []layout.Rule, showMissing bool) (sig uint64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("signature: %v", r)
		}
	}()
	h := newHasher()
	h.writeUint64(shapeSignature(s))
	h.writeInt(len(missing))
	for _, r := range missing {
		h.writeRule(r)
	}
	h.writeInt(len(types))
	for _, r := range types {
		h.writeRule(r)
	}
	if showMissing {
		h.writeBytes([]byte{1})
	}
	return h.sum, nil
}

// randomSignature returns a value that compares unequal to any cached
// signature with overwhelming probability.
func randomSignature() uint64 {
	return rand.Uint64()
}

// bucketSignature fingerprints one instanced bucket: instance count, the
// ordered world positions, and the type the bucket renders.
func bucketSignature(typeName string, positions []mgl32.Vec3) uint64 {
	h := newHasher()
	h.writeInt(len(positions))
	for _, p := range positions {
		h.writeVec3(p)
	}
	h.writeString(typeName)
	return h.sum
}

// moduleSignature fingerprints one module's rendered content: for every
// depth/position slot either a missing marker or its resolved type. A
// missing slot renders differently depending on the placeholder flag, so
// the marker encodes it; modules without missing slots are unaffected by
// the flag.
func moduleSignature(s layout.Shape, missing, types []layout.Rule, aisle, side, level, module int, showMissing bool) uint64 {
	h := newHasher()
	h.writeInt(side)
	marker := byte('x')
	if showMissing {
		marker = 'X'
	}
	for depth := 0; depth < s.StorageDepth; depth++ {
		for pos := 0; pos < s.LocationsPerModule; pos++ {
			loc := layout.Location{Aisle: aisle, Level: level, Module: module, Depth: depth, Position: pos}
			if layout.IsMissing(loc, missing) {
				h.writeBytes([]byte{marker})
				continue
			}
			h.writeString(layout.ResolveType(loc, types))
		}
	}
	return h.sum
}
