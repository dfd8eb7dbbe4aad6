package cull

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/scene"
)

type plane struct {
	a, b, c, d float32
}

// extractFrustumPlanes builds six planes from the combined
// projection*view matrix. Planes are returned in order: left, right,
// bottom, top, near, far.
func extractFrustumPlanes(clip mgl32.Mat4) [6]plane {
	// Matrix is in column-major order in mgl32
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	pl := [6]plane{}
	// Left  = m3 + m0
	pl[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03})
	// Right = m3 - m0
	pl[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03})
	// Bottom = m3 + m1
	pl[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13})
	// Top = m3 - m1
	pl[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13})
	// Near = m3 + m2
	pl[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23})
	// Far = m3 - m2
	pl[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23})
	return pl
}

func normalizePlane(p plane) plane {
	len := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if len == 0 {
		return p
	}
	return plane{p.a / len, p.b / len, p.c / len, p.d / len}
}

// boundsIntersectPlanes tests an AABB against precomputed planes by
// checking the positive vertex for each plane normal.
func boundsIntersectPlanes(b scene.Bounds, planes [6]plane) bool {
	for i := 0; i < 6; i++ {
		p := planes[i]
		px := b.Max[0]
		if p.a < 0 {
			px = b.Min[0]
		}
		py := b.Max[1]
		if p.b < 0 {
			py = b.Min[1]
		}
		pz := b.Max[2]
		if p.c < 0 {
			pz = b.Min[2]
		}
		// If the positive vertex is outside, the AABB is outside
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}
