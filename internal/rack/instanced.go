package rack

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/layout"
	"rackview/internal/scene"
)

// MissingType is the bucket type used for low-opacity placeholders of
// suppressed locations.
const MissingType = "Missing"

// frameBarSize is the extent of one structural frame bar instance.
var frameBarSize = mgl32.Vec3{0.12, 1.2, 0.12}

// buildInstanced sweeps every slot once, aggregates world positions into
// buckets keyed by (resolvedType, side), and emits one instanced object
// per bucket. Buckets whose signature matches the previous build keep
// their instance buffer untouched.
func (b *Builder) buildInstanced(shape layout.Shape, missing, types []layout.Rule, geom layout.Geometry, opts Options) *scene.Group {
	group := scene.NewGroup("rack-instanced")

	pending := make(map[bucketKey][]mgl32.Vec3)
	var framePositions []mgl32.Vec3

	for aisle := 0; aisle < shape.Aisles; aisle++ {
		levels := shape.Levels(aisle)
		for side := 0; side < layout.NumSides; side++ {
			for level := 0; level < levels; level++ {
				for module := 0; module < shape.ModulesPerAisle; module++ {
					framePositions = append(framePositions,
						geom.FrameCenter(aisle, side, level, module, shape.LocationsPerModule))
					for depth := 0; depth < shape.StorageDepth; depth++ {
						for pos := 0; pos < shape.LocationsPerModule; pos++ {
							loc := layout.Location{Aisle: aisle, Level: level, Module: module, Depth: depth, Position: pos}
							center := geom.SlotCenter(loc, side, shape.LocationsPerModule)
							if layout.IsMissing(loc, missing) {
								if opts.ShowMissing {
									key := bucketKey{Type: MissingType, Side: side}
									pending[key] = append(pending[key], center)
								}
								continue
							}
							key := bucketKey{Type: layout.ResolveType(loc, types), Side: side}
							pending[key] = append(pending[key], center)
						}
					}
				}
			}
		}
	}

	// Deterministic bucket order keeps signatures and stats stable.
	keys := make([]bucketKey, 0, len(pending))
	for k := range pending {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Type != keys[j].Type {
			return keys[i].Type < keys[j].Type
		}
		return keys[i].Side < keys[j].Side
	})

	slotSize := geom.SlotSize()
	next := make(map[bucketKey]*bucketEntry, len(pending))
	for _, key := range keys {
		positions := pending[key]
		sig := bucketSignature(key.Type, positions)
		if prev, ok := b.buckets[key]; ok && prev.sig == sig {
			// Same content: keep the instance buffer handle, just attach
			// the object under the new root.
			next[key] = prev
			group.AddObject(prev.obj)
			b.stats.Reused++
			continue
		}
		obj := b.newBucketObject(key, positions, slotSize)
		next[key] = &bucketEntry{sig: sig, obj: obj}
		group.AddObject(obj)
		b.stats.Rebuilt++
	}

	// Release superseded buckets.
	for key, prev := range b.buckets {
		if next[key] != prev {
			prev.obj.Dispose()
		}
	}
	b.buckets = next

	// Structural frame bars: one instance per aisle/side/level/module.
	// Frames never change type, only count, so a count check is enough.
	frameSig := uint64(len(framePositions))
	if b.frame != nil && b.frame.sig == frameSig {
		group.AddObject(b.frame.obj)
		b.stats.Reused++
	} else {
		if b.frame != nil {
			b.frame.obj.Dispose()
		}
		buf := scene.NewInstanceBuffer(translations(framePositions))
		obj := scene.NewInstancedObject("frames", buf, frameBarSize, b.materials.Get("Frame"))
		b.frame = &bucketEntry{sig: frameSig, obj: obj}
		group.AddObject(obj)
		b.stats.Rebuilt++
	}

	b.stats.BucketCount = len(next) + 1
	return group
}

func (b *Builder) newBucketObject(key bucketKey, positions []mgl32.Vec3, slotSize mgl32.Vec3) *scene.Object {
	buf := scene.NewInstanceBuffer(translations(positions))
	name := fmt.Sprintf("%s_%d", key.Type, key.Side)
	obj := scene.NewInstancedObject(name, buf, slotSize, b.materials.Get(key.Type))
	if key.Type == MissingType {
		obj.Opacity = 0.3
	}
	return obj
}

func translations(positions []mgl32.Vec3) []mgl32.Mat4 {
	ms := make([]mgl32.Mat4, len(positions))
	for i, p := range positions {
		ms[i] = mgl32.Translate3D(p[0], p[1], p[2])
	}
	return ms
}
