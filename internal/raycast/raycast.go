// Package raycast finds the first solid voxel along a ray, for block
// targeting and placement (feeding mesher.MeshHighlight and the block
// edit commands).
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/voxel"
)

// SolidFunc reports whether a voxel cell blocks the ray.
type SolidFunc func(p voxel.Point) bool

// Cast walks a DDA grid traversal from origin along dir (need not be
// normalized) out to maxDist, returning the first solid cell hit, the
// last empty cell stepped through before it (where a new block would be
// placed), the distance to the hit, and whether anything was hit.
func Cast(origin, dir mgl32.Vec3, maxDist float32, solid SolidFunc) (hit, place voxel.Point, distance float32, ok bool) {
	dir = dir.Normalize()

	gridX := int(math.Floor(float64(origin.X())))
	gridY := int(math.Floor(float64(origin.Y())))
	gridZ := int(math.Floor(float64(origin.Z())))

	deltaX := safeInvAbs(dir.X())
	deltaY := safeInvAbs(dir.Y())
	deltaZ := safeInvAbs(dir.Z())

	stepX, sideDistX := stepAndSideDist(dir.X(), origin.X(), gridX, deltaX)
	stepY, sideDistY := stepAndSideDist(dir.Y(), origin.Y(), gridY, deltaY)
	stepZ, sideDistZ := stepAndSideDist(dir.Z(), origin.Z(), gridZ, deltaZ)

	lastEmpty := voxel.Pt(gridX, gridY, gridZ)
	var dist float32

	for dist < maxDist {
		switch {
		case sideDistX < sideDistY && sideDistX < sideDistZ:
			sideDistX += deltaX
			gridX += stepX
			dist = sideDistX - deltaX
		case sideDistY < sideDistZ:
			sideDistY += deltaY
			gridY += stepY
			dist = sideDistY - deltaY
		default:
			sideDistZ += deltaZ
			gridZ += stepZ
			dist = sideDistZ - deltaZ
		}

		cell := voxel.Pt(gridX, gridY, gridZ)
		if solid(cell) {
			return cell, lastEmpty, dist, true
		}
		lastEmpty = cell
	}

	return voxel.Point{}, voxel.Point{}, 0, false
}

func safeInvAbs(v float32) float32 {
	if v == 0 {
		return float32(math.Inf(1))
	}
	return float32(math.Abs(1.0 / float64(v)))
}

func stepAndSideDist(dirComp, originComp float32, grid int, delta float32) (step int, sideDist float32) {
	if dirComp == 0 {
		return 0, float32(math.Inf(1))
	}
	if dirComp > 0 {
		return 1, (float32(grid) + 1 - originComp) * delta
	}
	return -1, (originComp - float32(grid)) * delta
}
