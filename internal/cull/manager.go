package cull

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/config"
	"rackview/internal/profiling"
	"rackview/internal/scene"
)

// Camera is the view the culler tests against: a world position plus a
// combined projection*view matrix, supplied once per frame by the host.
type Camera interface {
	Position() mgl32.Vec3
	ViewProjection() mgl32.Mat4
}

// VisibilitySet is the per-frame culling result consumed by the LOD
// manager.
type VisibilitySet struct {
	Objects []*scene.Object
	Total   int
	Culled  int
}

// Stats describes the most recent cull pass for the external monitor.
type Stats struct {
	TotalObjects   int
	VisibleObjects int
	CulledObjects  int
	SpatialCells   int
	CullRatio      float64
}

type cellCoord struct {
	X, Z int
}

// cell is one fixed-size square of the horizontal grid, owning the
// objects whose world position falls inside it.
type cell struct {
	objects   []*scene.Object
	bounds    scene.Bounds
	hasBounds bool
	distSq    float32 // camera distance, recomputed each cull
}

// Manager partitions renderables into a uniform grid over the XZ plane
// and answers per-frame visibility queries. The grid is rebuilt only on
// structural change, never on camera movement.
type Manager struct {
	cellSize float32

	cells     map[cellCoord]*cell
	unbounded []*scene.Object // no bounding info: conservatively visible
	indexed   bool
	total     int

	// Scratch buffers reused across frames.
	order      []*cell
	visScratch []*scene.Object

	stats Stats
}

// NewManager creates a culler with the given grid cell edge length.
// Non-positive sizes fall back to the configured default.
func NewManager(cellSize float32) *Manager {
	if cellSize <= 0 {
		cellSize = config.GetSpatialCellSize()
	}
	return &Manager{
		cellSize: cellSize,
		cells:    make(map[cellCoord]*cell),
	}
}

// CellSize returns the grid cell edge length.
func (m *Manager) CellSize() float32 {
	return m.cellSize
}

// Stats returns the statistics of the most recent cull pass.
func (m *Manager) Stats() Stats {
	return m.stats
}

// BuildIndex assigns every renderable to exactly one grid cell keyed by
// its world position. Called only when the scene's object set changes
// structurally.
func (m *Manager) BuildIndex(objects []*scene.Object) {
	defer profiling.Track("cull.BuildIndex")()

	m.cells = make(map[cellCoord]*cell)
	m.unbounded = m.unbounded[:0]
	m.total = len(objects)

	for _, o := range objects {
		b, ok := o.Bounds()
		if !ok {
			m.unbounded = append(m.unbounded, o)
			continue
		}
		coord := cellCoord{
			X: int(floor(o.Position[0] / m.cellSize)),
			Z: int(floor(o.Position[2] / m.cellSize)),
		}
		c := m.cells[coord]
		if c == nil {
			c = &cell{bounds: b, hasBounds: true}
			m.cells[coord] = c
		} else {
			c.bounds = c.bounds.Expand(b)
		}
		c.objects = append(c.objects, o)
	}
	m.indexed = true
}

// Cull computes which objects intersect the camera frustum. Cells are
// tested nearest first; near cells get per-object tests while surviving
// far cells are accepted wholesale, trading a little over-draw for
// avoiding per-object work at long range. Calling Cull before BuildIndex
// yields an empty set, not an error.
func (m *Manager) Cull(cam Camera) *VisibilitySet {
	defer profiling.Track("cull.Cull")()

	vis := &VisibilitySet{Total: m.total}
	if !m.indexed || m.total == 0 {
		m.stats = Stats{SpatialCells: len(m.cells)}
		return vis
	}

	planes := extractFrustumPlanes(cam.ViewProjection())
	camPos := cam.Position()
	cutoff := config.GetCullDistance()
	cutoffSq := cutoff * cutoff
	nearRadius := config.GetNearCellRadius()
	nearSq := nearRadius * nearRadius

	m.order = m.order[:0]
	for _, c := range m.cells {
		center := c.bounds.Center()
		c.distSq = center.Sub(camPos).LenSqr()
		m.order = append(m.order, c)
	}
	sort.Slice(m.order, func(i, j int) bool { return m.order[i].distSq < m.order[j].distSq })

	m.visScratch = m.visScratch[:0]
	for _, c := range m.order {
		if c.distSq > cutoffSq || !boundsIntersectPlanes(c.bounds, planes) {
			for _, o := range c.objects {
				o.Visible = false
			}
			continue
		}
		if c.distSq <= nearSq {
			// Near cell: finer per-object test.
			for _, o := range c.objects {
				b, ok := o.Bounds()
				if ok && !boundsIntersectPlanes(b, planes) {
					o.Visible = false
					continue
				}
				o.Visible = true
				m.visScratch = append(m.visScratch, o)
			}
			continue
		}
		// Far cell: accept all members without per-object tests.
		for _, o := range c.objects {
			o.Visible = true
			m.visScratch = append(m.visScratch, o)
		}
	}

	// Objects without bounding info are never silently dropped.
	for _, o := range m.unbounded {
		o.Visible = true
		m.visScratch = append(m.visScratch, o)
	}

	vis.Objects = m.visScratch
	vis.Culled = vis.Total - len(vis.Objects)

	ratio := 0.0
	if vis.Total > 0 {
		ratio = float64(vis.Culled) / float64(vis.Total)
	}
	m.stats = Stats{
		TotalObjects:   vis.Total,
		VisibleObjects: len(vis.Objects),
		CulledObjects:  vis.Culled,
		SpatialCells:   len(m.cells),
		CullRatio:      ratio,
	}
	return vis
}

func floor(f float32) float32 {
	return float32(math.Floor(float64(f)))
}
