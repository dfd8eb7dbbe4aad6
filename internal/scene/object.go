package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/material"
)

// InstanceBuffer holds the per-instance transforms of one hardware
// instanced draw group. The transform list is immutable once built;
// reuse across rebuilds keeps the same buffer handle alive instead of
// recomputing transforms.
type InstanceBuffer struct {
	Transforms []mgl32.Mat4

	// OnRelease frees any GPU-side resource tied to this buffer. Set by
	// the rendering layer after upload; nil until then.
	OnRelease func()

	refs     int
	released bool
}

// NewInstanceBuffer wraps a transform list with a single reference.
func NewInstanceBuffer(transforms []mgl32.Mat4) *InstanceBuffer {
	return &InstanceBuffer{Transforms: transforms, refs: 1}
}

// Count returns the number of instances.
func (ib *InstanceBuffer) Count() int {
	if ib == nil {
		return 0
	}
	return len(ib.Transforms)
}

// Retain adds a reference for another holder of the buffer.
func (ib *InstanceBuffer) Retain() {
	ib.refs++
}

// Release drops one reference and frees the underlying resource when the
// last holder lets go. Safe to call on an already-released buffer.
func (ib *InstanceBuffer) Release() {
	if ib == nil || ib.released {
		return
	}
	ib.refs--
	if ib.refs > 0 {
		return
	}
	ib.released = true
	if ib.OnRelease != nil {
		ib.OnRelease()
	}
}

// Appearance is the per-object shading state the LOD manager is allowed
// to mutate. Materials themselves stay shared and immutable.
type Appearance struct {
	Roughness float32
	Metalness float32
}

// Object is one renderable primitive: either a single box at Position or
// an instanced draw group when Instances is non-nil.
type Object struct {
	Name     string
	Position mgl32.Vec3
	Size     mgl32.Vec3

	Material   *material.Material
	Appearance Appearance

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	// Opacity below 1 marks translucent placeholders.
	Opacity float32

	Instances *InstanceBuffer

	bounds    Bounds
	hasBounds bool
}

// NewObject creates a visible single-primitive object with bounds derived
// from its position and size.
func NewObject(name string, pos, size mgl32.Vec3, mat *material.Material) *Object {
	o := &Object{
		Name:     name,
		Position: pos,
		Size:     size,
		Material: mat,
		Visible:  true,
		Opacity:  1,
	}
	if mat != nil {
		o.Appearance = Appearance{Roughness: mat.Roughness, Metalness: mat.Metalness}
	}
	o.SetBounds(BoundsAround(pos, size))
	return o
}

// NewInstancedObject creates a visible instanced object. Its position and
// bounds cover all instances, so culling treats the whole group as one
// unit.
func NewInstancedObject(name string, buf *InstanceBuffer, size mgl32.Vec3, mat *material.Material) *Object {
	o := &Object{
		Name:      name,
		Size:      size,
		Material:  mat,
		Visible:   true,
		Opacity:   1,
		Instances: buf,
	}
	if mat != nil {
		o.Appearance = Appearance{Roughness: mat.Roughness, Metalness: mat.Metalness}
	}
	if buf.Count() > 0 {
		b := BoundsAround(translationOf(buf.Transforms[0]), size)
		for _, m := range buf.Transforms[1:] {
			b = b.Expand(BoundsAround(translationOf(m), size))
		}
		o.SetBounds(b)
		o.Position = b.Center()
	}
	return o
}

func translationOf(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m[12], m[13], m[14]}
}

// Bounds returns the object's world AABB; ok is false when the object
// carries no bounding information and must be treated as always visible.
func (o *Object) Bounds() (Bounds, bool) {
	return o.bounds, o.hasBounds
}

// SetBounds attaches bounding information to the object.
func (o *Object) SetBounds(b Bounds) {
	o.bounds = b
	o.hasBounds = true
}

// ResetAppearance restores the authored material values after LOD
// adjustments.
func (o *Object) ResetAppearance() {
	if o.Material != nil {
		o.Appearance = Appearance{Roughness: o.Material.Roughness, Metalness: o.Material.Metalness}
	}
}

// Dispose releases the object's instance buffer, if any.
func (o *Object) Dispose() {
	if o.Instances != nil {
		o.Instances.Release()
	}
}
