package config

import "sync"

// WorldGenSettings holds the tunables worldgen.Generator reads when
// composing a column: sea level, the island falloff radius, and the cave
// carver toggle/parameters from §4.4.1.
type WorldGenSettings struct {
	mu sync.RWMutex

	seaLevel     int
	islandRadius float64 // distance scale of the falloff: 0 at the origin, 16 at this radius
	caves        bool
	caveLevels   int     // vertical carve passes, §4.4.1
	caveRadius   float64 // horizontal scale of the cave carver noise, in blocks
}

var globalWorldGenSettings = &WorldGenSettings{
	seaLevel:     62,
	islandRadius: 1024,
	caves:        true,
	caveLevels:   3,
	caveRadius:   3.5,
}

// GetSeaLevel returns the configured sea level (inclusive y of the top
// water layer).
func GetSeaLevel() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seaLevel
}

// SetSeaLevel sets the sea level.
func SetSeaLevel(level int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seaLevel = level
}

// GetIslandRadius returns the distance scale, in blocks from the origin,
// of the island falloff mask: the mask is zero at the origin, grows with
// the square of distance, and equals 16 at this radius.
func GetIslandRadius() float64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.islandRadius
}

// SetIslandRadius sets the island falloff radius.
func SetIslandRadius(radius float64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	if radius < 1 {
		radius = 1
	}
	globalWorldGenSettings.islandRadius = radius
}

// GetCaves returns whether the cave carver runs during column generation.
func GetCaves() bool {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.caves
}

// SetCaves toggles the cave carver.
func SetCaves(enabled bool) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.caves = enabled
}

// GetCaveLevels returns the number of vertical carve passes per column.
func GetCaveLevels() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.caveLevels
}

// SetCaveLevels sets the number of vertical carve passes.
func SetCaveLevels(n int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	if n < 1 {
		n = 1
	}
	globalWorldGenSettings.caveLevels = n
}

// GetCaveRadius returns the horizontal scale of the cave carver noise:
// column x and z are divided by it before the carver noise is sampled.
func GetCaveRadius() float64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.caveRadius
}

// SetCaveRadius sets the horizontal scale of the cave carver noise.
func SetCaveRadius(radius float64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	if radius < 0.5 {
		radius = 0.5
	}
	globalWorldGenSettings.caveRadius = radius
}
