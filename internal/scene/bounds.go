package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Bounds is an axis-aligned bounding box in world space.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// BoundsAround returns the AABB of a box of the given size centered at c.
func BoundsAround(c, size mgl32.Vec3) Bounds {
	half := size.Mul(0.5)
	return Bounds{Min: c.Sub(half), Max: c.Add(half)}
}

// Center returns the centroid of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand grows the box to contain the other box.
func (b Bounds) Expand(o Bounds) Bounds {
	for i := 0; i < 3; i++ {
		if o.Min[i] < b.Min[i] {
			b.Min[i] = o.Min[i]
		}
		if o.Max[i] > b.Max[i] {
			b.Max[i] = o.Max[i]
		}
	}
	return b
}
