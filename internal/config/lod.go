package config

import "sync"

// LODSettings holds level-of-detail configuration
type LODSettings struct {
	mu sync.RWMutex

	// Distance ceilings for the HIGH, MEDIUM and LOW tiers, meters.
	// Anything past lowMax is hidden.
	highMax   float32
	mediumMax float32
	lowMax    float32

	// Closed-loop controller thresholds, frames per second.
	lowFPS  float64
	highFPS float64

	// Rolling frame-time window length.
	frameWindow int
}

var globalLODSettings = &LODSettings{
	highMax:     45.0,
	mediumMax:   120.0,
	lowMax:      260.0,
	lowFPS:      30.0,
	highFPS:     55.0,
	frameWindow: 60,
}

// GetLODDistances returns the distance ceilings for HIGH, MEDIUM and LOW
func GetLODDistances() (high, medium, low float32) {
	globalLODSettings.mu.RLock()
	defer globalLODSettings.mu.RUnlock()
	return globalLODSettings.highMax, globalLODSettings.mediumMax, globalLODSettings.lowMax
}

// SetLODDistances sets the tier distance ceilings, keeping them ordered
func SetLODDistances(high, medium, low float32) {
	globalLODSettings.mu.Lock()
	defer globalLODSettings.mu.Unlock()
	if high < 1 {
		high = 1
	}
	if medium < high {
		medium = high
	}
	if low < medium {
		low = medium
	}
	globalLODSettings.highMax = high
	globalLODSettings.mediumMax = medium
	globalLODSettings.lowMax = low
}

// GetLODFPSThresholds returns the low and high FPS bounds of the
// auto-adjust hysteresis band
func GetLODFPSThresholds() (lowFPS, highFPS float64) {
	globalLODSettings.mu.RLock()
	defer globalLODSettings.mu.RUnlock()
	return globalLODSettings.lowFPS, globalLODSettings.highFPS
}

// SetLODFPSThresholds sets the auto-adjust hysteresis band
func SetLODFPSThresholds(lowFPS, highFPS float64) {
	globalLODSettings.mu.Lock()
	defer globalLODSettings.mu.Unlock()
	if lowFPS < 1 {
		lowFPS = 1
	}
	if highFPS <= lowFPS {
		highFPS = lowFPS + 1
	}
	globalLODSettings.lowFPS = lowFPS
	globalLODSettings.highFPS = highFPS
}

// GetLODFrameWindow returns the rolling frame-time window length
func GetLODFrameWindow() int {
	globalLODSettings.mu.RLock()
	defer globalLODSettings.mu.RUnlock()
	return globalLODSettings.frameWindow
}

// SetLODFrameWindow sets the rolling frame-time window length
func SetLODFrameWindow(n int) {
	globalLODSettings.mu.Lock()
	defer globalLODSettings.mu.Unlock()
	if n < 5 {
		n = 5
	}
	if n > 600 {
		n = 600
	}
	globalLODSettings.frameWindow = n
}
