// Package config holds process-wide tunables behind sync.RWMutex-guarded
// package globals. A small settings struct would be overkill for values
// read every frame from arbitrary goroutines (the streamer pool included),
// and a mutex-guarded global keeps call sites terse — the same shape the
// teacher uses for its render and world-gen settings.
package config

import "sync"

// RenderSettings holds renderer/LOD tunables.
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int  // chunks of full-resolution mesh
	frontierRadius int  // additional chunks of far-LOD frontier mesh (§4.3)
	fpsLimit       int  // 0 means uncapped, otherwise target FPS
	wireframeMode  bool
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 12,
	frontierRadius: 16,
	fpsLimit:       180,
	wireframeMode:  false,
}

// GetRenderDistance returns the current render distance in chunks.
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks, clamped to a sane
// range.
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if distance < 2 {
		distance = 2
	}
	if distance > 64 {
		distance = 64
	}
	globalRenderSettings.renderDistance = distance
}

// GetFrontierRadius returns the additional radius, beyond the render
// distance, meshed at frontier (far-LOD) resolution.
func GetFrontierRadius() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.frontierRadius
}

// SetFrontierRadius sets the frontier radius in chunks.
func SetFrontierRadius(radius int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if radius < 0 {
		radius = 0
	}
	globalRenderSettings.frontierRadius = radius
}

// GetFPSLimit returns the configured FPS cap (0 means uncapped).
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the FPS cap; 0 disables the cap.
func SetFPSLimit(limit int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	if limit > 240 {
		limit = 240
	}
	globalRenderSettings.fpsLimit = limit
}

// GetWireframeMode returns whether wireframe rendering is enabled.
func GetWireframeMode() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.wireframeMode
}

// SetWireframeMode sets wireframe rendering on/off.
func SetWireframeMode(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = enabled
}

// ToggleWireframeMode flips wireframe rendering on/off.
func ToggleWireframeMode() {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.wireframeMode = !globalRenderSettings.wireframeMode
}
