package raycast

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/voxel"
)

func solidSet(points ...voxel.Point) SolidFunc {
	set := map[voxel.Point]bool{}
	for _, p := range points {
		set[p] = true
	}
	return func(p voxel.Point) bool { return set[p] }
}

func TestCastHitsBlockBelow(t *testing.T) {
	solid := solidSet(voxel.Pt(0, 1, 0))

	hit, place, dist, ok := Cast(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, -1, 0}, 3, solid)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit != voxel.Pt(0, 1, 0) {
		t.Errorf("expected hit at (0,1,0), got %v", hit)
	}
	if place != voxel.Pt(0, 2, 0) {
		t.Errorf("expected place at (0,2,0), got %v", place)
	}
	if dist != 0 {
		t.Errorf("expected distance 0: the origin lies on the hit block's top face, got %v", dist)
	}
}

func TestCastHitsBlockToTheSide(t *testing.T) {
	solid := solidSet(voxel.Pt(0, 0, 0))

	hit, place, _, ok := Cast(mgl32.Vec3{-1, 0.5, 0}, mgl32.Vec3{1, 0, 0}, 2, solid)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit != voxel.Pt(0, 0, 0) {
		t.Errorf("expected hit at (0,0,0), got %v", hit)
	}
	if place != voxel.Pt(-1, 0, 0) {
		t.Errorf("expected place at (-1,0,0), got %v", place)
	}
}

func TestCastMissesEmptySpace(t *testing.T) {
	solid := solidSet(voxel.Pt(0, 0, 0))

	_, _, _, ok := Cast(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{1, 0, 0}, 2, solid)
	if ok {
		t.Fatal("expected no hit in empty space")
	}
}

func TestCastRespectsMaxDistance(t *testing.T) {
	solid := solidSet(voxel.Pt(10, 0, 0))

	_, _, _, ok := Cast(mgl32.Vec3{0, 0.5, 0}, mgl32.Vec3{1, 0, 0}, 2, solid)
	if ok {
		t.Fatal("expected the block beyond maxDist to be unreachable")
	}
}
