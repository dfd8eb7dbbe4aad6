package layout

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry converts rack grid coordinates into world-space positions.
// Modules run along +X, levels stack along +Y, and aisles are spaced
// along +Z with storage rows on both sides of each travel corridor.
type Geometry struct {
	// Dimensions of one storage location, in meters.
	LocationWidth  float32
	LocationHeight float32
	LocationDepth  float32

	// Width of the travel corridor between the two rack rows of an aisle.
	AisleWidth float32

	// Gap left between consecutive modules along the aisle.
	ModuleGap float32

	// Depth slots per side, used to compute the aisle pitch.
	StorageDepth int
}

// DefaultGeometry returns the standard rack dimensions used when the
// configuration supplies none.
func DefaultGeometry(storageDepth int) Geometry {
	return Geometry{
		LocationWidth:  1.0,
		LocationHeight: 1.2,
		LocationDepth:  1.4,
		AisleWidth:     3.0,
		ModuleGap:      0.15,
		StorageDepth:   storageDepth,
	}
}

// ModuleWidth returns the X extent of one module including its gap.
func (g Geometry) ModuleWidth(locationsPerModule int) float32 {
	return float32(locationsPerModule)*g.LocationWidth + g.ModuleGap
}

// AislePitch returns the Z distance between the centerlines of two
// consecutive aisles: the corridor plus a full rack row on both sides.
func (g Geometry) AislePitch() float32 {
	return g.AisleWidth + 2*float32(g.StorageDepth)*g.LocationDepth
}

// SlotCenter returns the world-space center of a storage slot. Depth
// increases away from the aisle corridor on both sides, so the display
// depth order is mirrored between SideLeft and SideRight.
func (g Geometry) SlotCenter(l Location, side int, locationsPerModule int) mgl32.Vec3 {
	x := float32(l.Module)*g.ModuleWidth(locationsPerModule) +
		(float32(l.Position)+0.5)*g.LocationWidth
	y := (float32(l.Level) + 0.5) * g.LocationHeight

	aisleZ := float32(l.Aisle) * g.AislePitch()
	depthOut := g.AisleWidth/2 + (float32(l.Depth)+0.5)*g.LocationDepth
	var z float32
	if side == SideLeft {
		z = aisleZ - depthOut
	} else {
		z = aisleZ + depthOut
	}
	return mgl32.Vec3{x, y, z}
}

// FrameCenter returns the world-space center of the upright frame bar at
// the near edge of a module on one side of an aisle.
func (g Geometry) FrameCenter(aisle, side, level, module int, locationsPerModule int) mgl32.Vec3 {
	x := float32(module) * g.ModuleWidth(locationsPerModule)
	y := (float32(level) + 0.5) * g.LocationHeight

	aisleZ := float32(aisle) * g.AislePitch()
	edge := g.AisleWidth / 2
	var z float32
	if side == SideLeft {
		z = aisleZ - edge
	} else {
		z = aisleZ + edge
	}
	return mgl32.Vec3{x, y, z}
}

// SlotSize returns the world-space extents of one storage location.
func (g Geometry) SlotSize() mgl32.Vec3 {
	return mgl32.Vec3{g.LocationWidth, g.LocationHeight, g.LocationDepth}
}
