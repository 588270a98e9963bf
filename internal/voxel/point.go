// Package voxel holds the math primitives shared by the rest of the core:
// integer grid points, cardinal directions, and the dense voxel tensor.
package voxel

import "math"

// Point is an immutable (x, y, z) of signed integers.
type Point struct {
	X, Y, Z int
}

// Pt is a small constructor to keep call sites terse.
func Pt(x, y, z int) Point { return Point{x, y, z} }

func (p Point) Add(o Point) Point { return Point{p.X + o.X, p.Y + o.Y, p.Z + o.Z} }
func (p Point) Sub(o Point) Point { return Point{p.X - o.X, p.Y - o.Y, p.Z - o.Z} }

func (p Point) Equal(o Point) bool { return p.X == o.X && p.Y == o.Y && p.Z == o.Z }

// DistSq returns the squared Euclidean distance between p and o.
func (p Point) DistSq(o Point) int {
	dx, dy, dz := p.X-o.X, p.Y-o.Y, p.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	return math.Sqrt(float64(p.DistSq(o)))
}
