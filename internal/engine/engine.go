package engine

import (
	"rackview/internal/config"
	"rackview/internal/cull"
	"rackview/internal/layout"
	"rackview/internal/lod"
	"rackview/internal/material"
	"rackview/internal/profiling"
	"rackview/internal/rack"
	"rackview/internal/scene"
)

// FrameStats aggregates per-stage statistics for the external monitor.
type FrameStats struct {
	Build rack.BuildStats
	Cull  cull.Stats
	LOD   lod.Stats
}

// Engine drives the per-frame pipeline: structural rebuild (only on
// configuration change), spatial re-indexing (only on structural change),
// culling, then LOD application. Everything runs synchronously on the
// host's render thread; there is no cross-frame race because there is
// only one thread.
type Engine struct {
	builder *rack.Builder
	culler  *cull.Manager
	lod     *lod.Manager

	shape   layout.Shape
	missing []layout.Rule
	types   []layout.Rule

	configDirty bool
	root        *scene.Group
	objScratch  []*scene.Object

	// AutoLOD enables the closed-loop tier controller.
	AutoLOD bool

	onStats func(FrameStats)
}

// New assembles an engine around a freshly built pipeline. onStats may be
// nil.
func New(mode rack.Mode, geom layout.Geometry, mats *material.Cache, onStats func(FrameStats)) *Engine {
	e := &Engine{
		culler:  cull.NewManager(config.GetSpatialCellSize()),
		lod:     lod.NewManager(),
		AutoLOD: true,
		onStats: onStats,
	}
	e.builder = rack.NewBuilder(mode, geom, mats, nil)
	return e
}

// SetConfiguration replaces the declarative warehouse configuration. The
// rebuild happens on the next Step, never immediately.
func (e *Engine) SetConfiguration(shape layout.Shape, missing, types []layout.Rule) {
	e.shape = shape
	e.missing = missing
	e.types = types
	e.configDirty = true
}

// Invalidate forces a rebuild pass on the next Step, e.g. after a render
// setting that feeds the builder changed.
func (e *Engine) Invalidate() {
	e.configDirty = true
}

// Root returns the current rack subtree, nil before the first Step.
func (e *Engine) Root() *scene.Group {
	return e.root
}

// Builder exposes the rack builder, mainly for the demo viewer.
func (e *Engine) Builder() *rack.Builder {
	return e.builder
}

// LOD exposes the LOD manager.
func (e *Engine) LOD() *lod.Manager {
	return e.lod
}

// Culler exposes the frustum-culling manager.
func (e *Engine) Culler() *cull.Manager {
	return e.culler
}

// Step runs one frame of the pipeline and returns the visibility set.
// Stage order within a frame is fixed: build, re-index, cull, LOD.
func (e *Engine) Step(cam cull.Camera, dt float64) *cull.VisibilitySet {
	defer profiling.Track("engine.Step")()

	structural := false
	if e.configDirty || e.root == nil {
		prev := e.root
		e.root = e.builder.Build(e.shape, e.missing, e.types, rack.Options{
			ShowMissing: config.GetShowMissing(),
		})
		// A build pass that actually ran returns a fresh root group; the
		// unchanged-signature short-circuit hands back the previous one.
		structural = e.root != prev
		e.configDirty = false
	}

	if structural {
		e.objScratch = e.objScratch[:0]
		if e.root != nil {
			e.objScratch = e.root.CollectObjects(e.objScratch)
		}
		e.culler.BuildIndex(e.objScratch)
	}

	vis := e.culler.Cull(cam)
	e.lod.Update(cam, vis, dt, e.AutoLOD)

	if e.onStats != nil {
		e.onStats(FrameStats{
			Build: e.builder.LastStats(),
			Cull:  e.culler.Stats(),
			LOD:   e.lod.Stats(),
		})
	}
	return vis
}
