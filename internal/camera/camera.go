// Package camera turns raw per-frame pointer/scroll deltas into a smoothed
// heading, pitch, and zoom level, and builds the resulting view/projection
// matrices. It is a boundary collaborator: nothing in internal/mesher,
// internal/worldgen, or internal/pathfind depends on it, but it's the
// thing a renderer frontend wires those packages' output through.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	jerkThreshold   = 400.0
	jerkRatio       = 4.0
	jerkBlend       = 0.5
	degreesPerDelta = 0.066
	pitchEpsilon    = 0.01
	maxZoom         = 10
)

// Camera accumulates pointer deltas into a heading/pitch orientation with
// single-frame spike suppression, plus an integer scroll zoom level.
type Camera struct {
	Position mgl32.Vec3

	heading float64
	pitch   float64
	zoom    int

	lastDX, lastDY float64

	fov, aspect, near, far float32
}

// New returns a camera at the origin looking along +z, with the given
// perspective projection parameters.
func New(fovDegrees, aspect, near, far float32) *Camera {
	return &Camera{fov: fovDegrees, aspect: aspect, near: near, far: far}
}

// SetAspect updates the projection's aspect ratio, e.g. on window resize.
func (c *Camera) SetAspect(aspect float32) { c.aspect = aspect }

// Update folds one frame's pointer/scroll deltas into the camera's
// orientation and zoom level.
func (c *Camera) Update(dx, dy, dscroll float64) {
	dx = c.dejerk(dx, c.lastDX)
	dy = c.dejerk(dy, c.lastDY)
	c.lastDX, c.lastDY = dx, dy

	c.heading += dx * degreesPerDelta * math.Pi / 180
	c.heading = wrapAngle(c.heading)

	c.pitch += dy * degreesPerDelta * math.Pi / 180
	maxPitch := math.Pi/2 - pitchEpsilon
	if c.pitch > maxPitch {
		c.pitch = maxPitch
	}
	if c.pitch < -maxPitch {
		c.pitch = -maxPitch
	}

	if dscroll > 0 {
		c.zoom++
	} else if dscroll < 0 {
		c.zoom--
	}
	if c.zoom < 0 {
		c.zoom = 0
	}
	if c.zoom > maxZoom {
		c.zoom = maxZoom
	}
}

// dejerk suppresses a single-frame pointer-lock spike: a new delta far
// larger than, and wildly disproportionate to, the previous one is
// replaced by a blend toward that previous delta instead of applied
// directly.
func (c *Camera) dejerk(delta, last float64) float64 {
	if math.Abs(delta) > jerkThreshold && last != 0 && math.Abs(delta/last) > jerkRatio {
		return last + (delta-last)*jerkBlend
	}
	return delta
}

func wrapAngle(a float64) float64 {
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	for a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// Heading and Pitch expose the smoothed orientation, in radians.
func (c *Camera) Heading() float64 { return c.heading }
func (c *Camera) Pitch() float64   { return c.pitch }

// Zoom returns the current integer zoom level, 0..10.
func (c *Camera) Zoom() int { return c.zoom }

// Direction returns the unit look vector: +z rotated about x by pitch,
// then about y by heading.
func (c *Camera) Direction() mgl32.Vec3 {
	p, h := float32(c.pitch), float32(c.heading)
	dir := mgl32.Vec3{0, 0, 1}
	dir = mgl32.HomogRotate3DX(p).Mul4x1(dir.Vec4(0)).Vec3()
	dir = mgl32.HomogRotate3DY(h).Mul4x1(dir.Vec4(0)).Vec3()
	return dir.Normalize()
}

// ViewMatrix looks from Position along Direction.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	dir := c.Direction()
	return mgl32.LookAtV(c.Position, c.Position.Add(dir), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// Transform returns projection * view.
func (c *Camera) Transform() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

// GetTransformFor returns the camera's transform as seen from Position
// minus offset — used so a mesh's own world-space chunk origin can be
// folded into the view matrix instead of baked into every vertex.
func (c *Camera) GetTransformFor(offset mgl32.Vec3) mgl32.Mat4 {
	dir := c.Direction()
	origin := c.Position.Sub(offset)
	view := mgl32.LookAtV(origin, origin.Add(dir), mgl32.Vec3{0, 1, 0})
	return c.ProjectionMatrix().Mul4(view)
}
