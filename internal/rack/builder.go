package rack

import (
	"time"

	"rackview/internal/layout"
	"rackview/internal/material"
	"rackview/internal/profiling"
	"rackview/internal/scene"
)

// Mode selects the build strategy at construction time.
type Mode int

const (
	// ModeInstanced batches same-type, same-side locations into a small
	// number of hardware-instanced draw groups.
	ModeInstanced Mode = iota
	// ModeRegular builds one primitive per location, grouped into
	// incrementally-rebuildable module groups.
	ModeRegular
)

func (m Mode) String() string {
	if m == ModeRegular {
		return "regular"
	}
	return "instanced"
}

// BuildStats describes one build pass for the external performance
// monitor. Instanced and regular builds report different count fields.
type BuildStats struct {
	Mode         string
	Reused       int
	Rebuilt      int
	BucketCount  int // instanced mode
	TotalModules int // regular mode
	Duration     time.Duration
}

// Options tunes one build call.
type Options struct {
	// ForceIncremental runs the incremental diff even when the overall
	// configuration signature is unchanged.
	ForceIncremental bool
	// ShowMissing renders suppressed locations as low-opacity
	// placeholders in a dedicated bucket.
	ShowMissing bool
}

// Builder turns a warehouse shape plus exception rules into a renderable
// scene subtree, reusing unchanged units across rebuilds by signature.
// The returned group is owned by the caller; the builder only keeps it to
// short-circuit identical rebuilds.
type Builder struct {
	mode      Mode
	geom      layout.Geometry
	materials *material.Cache
	onStats   func(BuildStats)

	haveConfigSig bool
	lastConfigSig uint64
	haveShapeSig  bool
	lastShapeSig  uint64
	root          *scene.Group

	buckets map[bucketKey]*bucketEntry
	frame   *bucketEntry
	modules map[moduleKey]*moduleEntry

	stats BuildStats
}

type bucketKey struct {
	Type string
	Side int
}

type bucketEntry struct {
	sig uint64
	obj *scene.Object
}

type moduleKey struct {
	Aisle  int
	Side   int
	Level  int
	Module int
}

type moduleEntry struct {
	sig   uint64
	group *scene.Group
}

// NewBuilder creates a builder for the given strategy. onStats may be nil.
func NewBuilder(mode Mode, geom layout.Geometry, materials *material.Cache, onStats func(BuildStats)) *Builder {
	return &Builder{
		mode:      mode,
		geom:      geom,
		materials: materials,
		onStats:   onStats,
		buckets:   make(map[bucketKey]*bucketEntry),
		modules:   make(map[moduleKey]*moduleEntry),
	}
}

// Mode returns the strategy the builder was constructed with.
func (b *Builder) Mode() Mode {
	return b.mode
}

// LastStats returns the statistics of the most recent build pass.
func (b *Builder) LastStats() BuildStats {
	return b.stats
}

// Build produces the rack scene subtree for the given shape and rules.
// When the configuration is unchanged since the previous call and
// ForceIncremental is not requested, the previous group is returned
// as-is. Inputs are never mutated.
func (b *Builder) Build(shape layout.Shape, missing, types []layout.Rule, opts Options) *scene.Group {
	defer profiling.Track("rack.Build")()
	start := time.Now()

	sig, err := configSignature(shape, missing, types, opts.ShowMissing)
	if err != nil {
		// Render something rather than fail: a unique signature defeats
		// every reuse path and forces a full rebuild.
		sig = randomSignature()
	}
	if b.root != nil && b.haveConfigSig && sig == b.lastConfigSig && !opts.ForceIncremental {
		return b.root
	}
	b.lastConfigSig = sig
	b.haveConfigSig = true

	geom := b.geom
	geom.StorageDepth = shape.StorageDepth

	b.stats = BuildStats{Mode: b.mode.String()}
	if b.mode == ModeRegular {
		b.root = b.buildRegular(shape, missing, types, geom, opts)
	} else {
		b.root = b.buildInstanced(shape, missing, types, geom, opts)
	}
	b.stats.Duration = time.Since(start)
	if b.onStats != nil {
		b.onStats(b.stats)
	}
	return b.root
}

// Dispose releases every cached unit. The builder can be reused after.
func (b *Builder) Dispose() {
	for _, e := range b.buckets {
		e.obj.Dispose()
	}
	b.buckets = make(map[bucketKey]*bucketEntry)
	if b.frame != nil {
		b.frame.obj.Dispose()
		b.frame = nil
	}
	for _, e := range b.modules {
		e.group.ClearAndDispose()
	}
	b.modules = make(map[moduleKey]*moduleEntry)
	b.root = nil
	b.haveConfigSig = false
	b.haveShapeSig = false
}
