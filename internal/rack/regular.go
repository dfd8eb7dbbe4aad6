package rack

import (
	"fmt"

	"rackview/internal/layout"
	"rackview/internal/scene"
)

// buildRegular builds one group per (aisle, side) containing one module
// group per (level, module). Module groups whose signature is unchanged
// since the previous build keep their children untouched; a shape change
// drops every cached signature and rebuilds everything.
func (b *Builder) buildRegular(shape layout.Shape, missing, types []layout.Rule, geom layout.Geometry, opts Options) *scene.Group {
	shapeSig := shapeSignature(shape)
	fullRebuild := !b.haveShapeSig || shapeSig != b.lastShapeSig
	b.lastShapeSig = shapeSig
	b.haveShapeSig = true

	root := scene.NewGroup("rack-regular")
	next := make(map[moduleKey]*moduleEntry)

	for aisle := 0; aisle < shape.Aisles; aisle++ {
		levels := shape.Levels(aisle)
		for side := 0; side < layout.NumSides; side++ {
			sideGroup := scene.NewGroup(fmt.Sprintf("aisle_%d_side_%d", aisle, side))
			root.AddGroup(sideGroup)
			for level := 0; level < levels; level++ {
				for module := 0; module < shape.ModulesPerAisle; module++ {
					key := moduleKey{Aisle: aisle, Side: side, Level: level, Module: module}
					sig := moduleSignature(shape, missing, types, aisle, side, level, module, opts.ShowMissing)

					entry := b.modules[key]
					if entry != nil && !fullRebuild && entry.sig == sig {
						next[key] = entry
						sideGroup.AddGroup(entry.group)
						b.stats.Reused++
						continue
					}
					if entry == nil {
						entry = &moduleEntry{
							group: scene.NewGroup(fmt.Sprintf("module_%d_%d_%d_%d", aisle, side, level, module)),
						}
					}
					b.populateModule(entry.group, shape, missing, types, geom, key, opts)
					entry.sig = sig
					next[key] = entry
					sideGroup.AddGroup(entry.group)
					b.stats.Rebuilt++
				}
			}
		}
	}

	// Modules that fell out of the shape release their primitives.
	for key, entry := range b.modules {
		if next[key] != entry {
			entry.group.ClearAndDispose()
		}
	}
	b.modules = next
	b.stats.TotalModules = len(next)
	return root
}

// populateModule clears the module group and regenerates one primitive
// per present slot.
func (b *Builder) populateModule(g *scene.Group, shape layout.Shape, missing, types []layout.Rule, geom layout.Geometry, key moduleKey, opts Options) {
	g.ClearAndDispose()
	slotSize := geom.SlotSize()
	for depth := 0; depth < shape.StorageDepth; depth++ {
		for pos := 0; pos < shape.LocationsPerModule; pos++ {
			loc := layout.Location{Aisle: key.Aisle, Level: key.Level, Module: key.Module, Depth: depth, Position: pos}
			center := geom.SlotCenter(loc, key.Side, shape.LocationsPerModule)
			if layout.IsMissing(loc, missing) {
				if opts.ShowMissing {
					name := fmt.Sprintf("missing_%d_%d", depth, pos)
					o := scene.NewObject(name, center, slotSize, b.materials.Get(MissingType))
					o.Opacity = 0.3
					g.AddObject(o)
				}
				continue
			}
			t := layout.ResolveType(loc, types)
			name := fmt.Sprintf("loc_%d_%d_%d_%d_%d_%d", key.Aisle, key.Side, key.Level, key.Module, depth, pos)
			g.AddObject(scene.NewObject(name, center, slotSize, b.materials.Get(t)))
		}
	}
}
