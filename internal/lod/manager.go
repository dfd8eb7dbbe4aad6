package lod

import (
	"rackview/internal/config"
	"rackview/internal/cull"
	"rackview/internal/profiling"
	"rackview/internal/scene"
)

// evalEvery is the number of frames between controller evaluations. The
// global tier never moves more than one step per evaluation, which keeps
// the closed loop from oscillating.
const evalEvery = 30

// Stats describes the most recent LOD pass for the external monitor.
type Stats struct {
	CurrentLOD string
	FrameTime  float64 // rolling average, milliseconds
	Applied    int
	Hidden     int
}

// Manager assigns each visible object a detail tier by camera distance,
// applies the tier's shadow/material/visibility policy, and adaptively
// shifts the global tier ceiling based on measured frame time.
type Manager struct {
	ceiling Tier // most detailed tier currently allowed: HIGH..LOW

	frameTimes        []float64 // ring buffer of frame durations, seconds
	frameIdx          int
	frameCount        int
	framesSinceAdjust int

	stats Stats
}

// NewManager creates a manager starting at the HIGH ceiling.
func NewManager() *Manager {
	return &Manager{
		ceiling:    TierHigh,
		frameTimes: make([]float64, config.GetLODFrameWindow()),
	}
}

// Ceiling returns the current global tier ceiling.
func (m *Manager) Ceiling() Tier {
	return m.ceiling
}

// SetCeiling pins the global tier ceiling, clamped to HIGH..LOW.
func (m *Manager) SetCeiling(t Tier) {
	if t < TierHigh {
		t = TierHigh
	}
	if t > TierLow {
		t = TierLow
	}
	m.ceiling = t
}

// Stats returns the statistics of the most recent update.
func (m *Manager) Stats() Stats {
	return m.stats
}

// TierFor maps a camera distance to a tier. The mapping is monotone:
// larger distances never yield a more detailed tier. The global ceiling
// degrades detail but never hides an object on its own.
func (m *Manager) TierFor(dist float32) Tier {
	high, medium, low := config.GetLODDistances()
	var t Tier
	switch {
	case dist <= high:
		t = TierHigh
	case dist <= medium:
		t = TierMedium
	case dist <= low:
		t = TierLow
	default:
		return TierHidden
	}
	if t < m.ceiling {
		t = m.ceiling
	}
	return t
}

// Update applies tier policy to every object in the visibility set and
// records the frame duration. When autoAdjust is set, the rolling
// frame-time average steers the global tier ceiling one step at a time.
func (m *Manager) Update(cam cull.Camera, vis *cull.VisibilitySet, dt float64, autoAdjust bool) {
	defer profiling.Track("lod.Update")()

	camPos := cam.Position()
	applied, hidden := 0, 0
	for _, o := range vis.Objects {
		dist := o.Position.Sub(camPos).Len()
		tier := m.TierFor(dist)
		if tier == TierHidden {
			o.Visible = false
			hidden++
			continue
		}
		applyTier(o, tier)
		applied++
	}

	avg := m.recordFrame(dt)
	if autoAdjust {
		m.adjust(avg)
	}

	m.stats = Stats{
		CurrentLOD: m.ceiling.String(),
		FrameTime:  avg * 1000,
		Applied:    applied,
		Hidden:     hidden,
	}
}

func applyTier(o *scene.Object, tier Tier) {
	p := policies[tier]
	o.Visible = true
	o.CastShadow = p.castShadow
	o.ReceiveShadow = p.receiveShadow
	if o.Material == nil {
		return
	}
	// Nudge shading away from the authored values proportionally to the
	// tier, without swapping geometry.
	loss := p.detailLoss
	o.Appearance.Roughness = o.Material.Roughness + (1-o.Material.Roughness)*loss
	o.Appearance.Metalness = o.Material.Metalness * (1 - loss)
}

// recordFrame pushes one frame duration into the rolling window and
// returns the current average in seconds.
func (m *Manager) recordFrame(dt float64) float64 {
	if dt <= 0 {
		dt = 1.0 / 60.0
	}
	if n := config.GetLODFrameWindow(); n != len(m.frameTimes) {
		m.frameTimes = make([]float64, n)
		m.frameIdx = 0
		m.frameCount = 0
	}
	m.frameTimes[m.frameIdx] = dt
	m.frameIdx = (m.frameIdx + 1) % len(m.frameTimes)
	if m.frameCount < len(m.frameTimes) {
		m.frameCount++
	}
	sum := 0.0
	for i := 0; i < m.frameCount; i++ {
		sum += m.frameTimes[i]
	}
	return sum / float64(m.frameCount)
}

// adjust shifts the ceiling by at most one step per evaluation: down when
// the rolling FPS drops below the low threshold, up when it exceeds the
// high threshold. Inside the band nothing moves.
func (m *Manager) adjust(avgFrame float64) {
	m.framesSinceAdjust++
	if m.framesSinceAdjust < evalEvery || m.frameCount < len(m.frameTimes) {
		return
	}
	m.framesSinceAdjust = 0

	if avgFrame <= 0 {
		return
	}
	fps := 1.0 / avgFrame
	lowFPS, highFPS := config.GetLODFPSThresholds()
	switch {
	case fps < lowFPS && m.ceiling < TierLow:
		m.ceiling++
	case fps > highFPS && m.ceiling > TierHigh:
		m.ceiling--
	}
}
