package config

import "sync"

// RenderSettings holds render configuration
type RenderSettings struct {
	mu              sync.RWMutex
	spatialCellSize float32 // edge length of one culling grid cell, meters
	cullDistance    float32 // hard visibility cutoff, meters
	nearCellRadius  float32 // below this distance cells get per-object tests
	showMissing     bool    // render suppressed locations as placeholders
	fpsLimit        int
}

var globalRenderSettings = &RenderSettings{
	spatialCellSize: 20.0,
	cullDistance:    320.0,
	nearCellRadius:  80.0,
	showMissing:     false,
	fpsLimit:        120,
}

// GetSpatialCellSize returns the culling grid cell edge length in meters
func GetSpatialCellSize() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.spatialCellSize
}

// SetSpatialCellSize sets the culling grid cell edge length
func SetSpatialCellSize(size float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if size < 4 {
		size = 4
	}
	if size > 200 {
		size = 200
	}
	globalRenderSettings.spatialCellSize = size
}

// GetCullDistance returns the hard visibility cutoff in meters
func GetCullDistance() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.cullDistance
}

// SetCullDistance sets the hard visibility cutoff
func SetCullDistance(d float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if d < 50 {
		d = 50
	}
	globalRenderSettings.cullDistance = d
}

// GetNearCellRadius returns the distance below which cells receive
// per-object frustum tests
func GetNearCellRadius() float32 {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.nearCellRadius
}

// SetNearCellRadius sets the per-object test distance threshold
func SetNearCellRadius(d float32) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if d < 0 {
		d = 0
	}
	globalRenderSettings.nearCellRadius = d
}

// GetShowMissing returns whether suppressed locations render as
// low-opacity placeholders
func GetShowMissing() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showMissing
}

// SetShowMissing toggles placeholder rendering for suppressed locations
func SetShowMissing(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showMissing = enabled
}

// GetFPSLimit returns the frame rate cap (0 = uncapped)
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame rate cap
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	globalRenderSettings.fpsLimit = limit
}
