package cull

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/scene"
)

// testCamera is a fixed camera for headless culling tests.
type testCamera struct {
	pos mgl32.Vec3
	vp  mgl32.Mat4
}

func (c *testCamera) Position() mgl32.Vec3       { return c.pos }
func (c *testCamera) ViewProjection() mgl32.Mat4 { return c.vp }

// newTestCamera looks from pos toward target with a 60 degree square
// frustum.
func newTestCamera(pos, target mgl32.Vec3) *testCamera {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1.0, 0.1, 1000)
	view := mgl32.LookAtV(pos, target, mgl32.Vec3{0, 1, 0})
	return &testCamera{pos: pos, vp: proj.Mul4(view)}
}

func boxAt(name string, pos mgl32.Vec3) *scene.Object {
	return scene.NewObject(name, pos, mgl32.Vec3{1, 1, 1}, nil)
}

func visibleNames(vis *VisibilitySet) map[string]bool {
	out := make(map[string]bool, len(vis.Objects))
	for _, o := range vis.Objects {
		out[o.Name] = true
	}
	return out
}

func TestCullBeforeBuildIndexIsEmpty(t *testing.T) {
	m := NewManager(20)
	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	vis := m.Cull(cam)
	if len(vis.Objects) != 0 || vis.Total != 0 {
		t.Fatalf("expected empty visibility before BuildIndex, got %d/%d", len(vis.Objects), vis.Total)
	}
}

func TestCullFrontVisibleBehindCulled(t *testing.T) {
	m := NewManager(20)
	front := boxAt("front", mgl32.Vec3{50, 0, 0})
	behind := boxAt("behind", mgl32.Vec3{-50, 0, 0})
	m.BuildIndex([]*scene.Object{front, behind})

	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	vis := m.Cull(cam)
	names := visibleNames(vis)
	if !names["front"] {
		t.Fatal("object in front of the camera was culled")
	}
	if names["behind"] {
		t.Fatal("object behind the camera reported visible")
	}
	if behind.Visible {
		t.Fatal("culled object not marked invisible")
	}
	if vis.Culled != 1 {
		t.Fatalf("Culled = %d, want 1", vis.Culled)
	}
}

func TestNearCellPerObjectTest(t *testing.T) {
	m := NewManager(20)
	// Same grid cell, 40m ahead (inside the near radius): one object
	// inside the frustum, one outside it.
	inside := boxAt("inside", mgl32.Vec3{40, 0, 22})
	outside := boxAt("outside", mgl32.Vec3{40, 0, 30})
	m.BuildIndex([]*scene.Object{inside, outside})

	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	vis := m.Cull(cam)
	names := visibleNames(vis)
	if !names["inside"] {
		t.Fatal("in-frustum object culled in a near cell")
	}
	if names["outside"] {
		t.Fatal("near cell must get per-object tests: out-of-frustum member reported visible")
	}
}

func TestFarCellAcceptedWholesale(t *testing.T) {
	m := NewManager(20)
	// Same cell at 150m (beyond the near radius, inside the cutoff),
	// straddling the frustum edge: at that range the frustum half-width
	// is ~87m, so one member is inside and one is out.
	edgeIn := boxAt("edgeIn", mgl32.Vec3{150, 0, 85})
	edgeOut := boxAt("edgeOut", mgl32.Vec3{150, 0, 95})
	m.BuildIndex([]*scene.Object{edgeIn, edgeOut})

	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	vis := m.Cull(cam)
	names := visibleNames(vis)
	if !names["edgeIn"] || !names["edgeOut"] {
		t.Fatal("far cell members must be accepted without per-object tests")
	}
}

func TestHardDistanceCutoff(t *testing.T) {
	m := NewManager(20)
	far := boxAt("far", mgl32.Vec3{500, 0, 0})
	m.BuildIndex([]*scene.Object{far})

	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	vis := m.Cull(cam)
	if len(vis.Objects) != 0 {
		t.Fatal("object beyond the hard cutoff reported visible")
	}
	if far.Visible {
		t.Fatal("cutoff object not marked invisible")
	}
}

func TestUnboundedObjectConservativelyVisible(t *testing.T) {
	m := NewManager(20)
	ghost := &scene.Object{Name: "ghost", Visible: true}
	m.BuildIndex([]*scene.Object{ghost})

	// Camera looks the other way; the ghost must still be reported.
	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{-1, 0, 0})
	vis := m.Cull(cam)
	if !visibleNames(vis)["ghost"] {
		t.Fatal("object without bounds must be treated as visible")
	}
}

func TestCullSoundnessNearRange(t *testing.T) {
	// Objects scattered around the camera within the near radius: every
	// one reported visible must intersect the frustum.
	m := NewManager(20)
	var objs []*scene.Object
	for x := -60; x <= 60; x += 15 {
		for z := -60; z <= 60; z += 15 {
			objs = append(objs, boxAt("o", mgl32.Vec3{float32(x), 0, float32(z)}))
		}
	}
	m.BuildIndex(objs)

	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	planes := extractFrustumPlanes(cam.ViewProjection())
	vis := m.Cull(cam)
	for _, o := range vis.Objects {
		b, ok := o.Bounds()
		if !ok {
			continue
		}
		if !boundsIntersectPlanes(b, planes) {
			t.Fatalf("near-range false positive at %v", o.Position)
		}
	}
	if len(vis.Objects) == 0 {
		t.Fatal("expected some visible objects")
	}
}

func TestStatsReported(t *testing.T) {
	m := NewManager(20)
	objs := []*scene.Object{
		boxAt("a", mgl32.Vec3{50, 0, 0}),
		boxAt("b", mgl32.Vec3{-50, 0, 0}),
	}
	m.BuildIndex(objs)
	cam := newTestCamera(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})
	m.Cull(cam)

	s := m.Stats()
	if s.TotalObjects != 2 || s.VisibleObjects != 1 || s.CulledObjects != 1 {
		t.Fatalf("stats = %+v", s)
	}
	if s.SpatialCells != 2 {
		t.Fatalf("SpatialCells = %d, want 2", s.SpatialCells)
	}
	if s.CullRatio != 0.5 {
		t.Fatalf("CullRatio = %f, want 0.5", s.CullRatio)
	}
}

func BenchmarkCull(b *testing.B) {
	m := NewManager(20)
	var objs []*scene.Object
	for x := 0; x < 100; x++ {
		for z := 0; z < 50; z++ {
			objs = append(objs, boxAt("o", mgl32.Vec3{float32(x * 3), 0, float32(z * 3)}))
		}
	}
	m.BuildIndex(objs)
	cam := newTestCamera(mgl32.Vec3{-10, 20, 75}, mgl32.Vec3{150, 0, 75})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Cull(cam)
	}
}
