package pathfind

import (
	"testing"

	"voxelcore/internal/voxel"
)

// world is a small sparse solid-block set for test scenarios. check
// reports a cell passable (empty) when it is not in the set.
type world map[voxel.Point]bool

func (w world) check(p voxel.Point) bool { return !w[p] }

func fillFloor(w world, x0, x1, z0, z1, y int) {
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			w[voxel.Pt(x, y, z)] = true
		}
	}
}

func TestAStarFlatGroundStraightLine(t *testing.T) {
	w := world{}
	fillFloor(w, -1, 10, -1, 1, 0)

	source := voxel.Pt(0, 1, 0)
	target := voxel.Pt(8, 1, 0)

	path := AStar(source, target, w.check, nil)
	if len(path) == 0 {
		t.Fatal("expected a path across flat ground")
	}
	if !path[len(path)-1].Equal(target) {
		t.Fatalf("expected path to end at target, got %v", path[len(path)-1])
	}
	if !path[0].Equal(source) {
		t.Fatalf("expected path to start at source, got %v", path[0])
	}
}

func TestAStarStepUpOneBlock(t *testing.T) {
	w := world{}
	fillFloor(w, -1, 3, -1, 1, 0)
	fillFloor(w, 4, 10, -1, 1, 1)

	source := voxel.Pt(0, 1, 0)
	target := voxel.Pt(8, 2, 0)

	path := AStar(source, target, w.check, nil)
	if len(path) == 0 {
		t.Fatal("expected a path across a single-block step")
	}
	if !path[len(path)-1].Equal(target) {
		t.Fatalf("expected path to end at target, got %v", path[len(path)-1])
	}

	maxStep := 0
	for i := 1; i < len(path); i++ {
		if d := path[i].Y - path[i-1].Y; d > maxStep {
			maxStep = d
		}
	}
	if maxStep > 1 {
		t.Fatalf("expected no step taller than 1 block, saw %d", maxStep)
	}
}

func TestAStarBlockedReturnsPartialOrNilPath(t *testing.T) {
	w := world{}
	fillFloor(w, -1, 10, -1, 1, 0)
	// A wall across the whole floor strip at x=4, too tall to jump over.
	for x := 4; x <= 4; x++ {
		for z := -2; z <= 2; z++ {
			for y := 1; y <= 6; y++ {
				w[voxel.Pt(x, y, z)] = true
			}
		}
	}

	source := voxel.Pt(0, 1, 0)
	target := voxel.Pt(8, 1, 0)

	path := AStar(source, target, w.check, nil)
	for _, p := range path {
		if p.Equal(target) {
			t.Fatal("expected the wall to prevent reaching the target")
		}
	}
}

func TestAStarRejectsMultiBlockFallToTarget(t *testing.T) {
	w := world{}
	fillFloor(w, -1, 5, -1, 1, 5)
	// A floor 3 blocks below the approach level, with nothing but open
	// air between — reaching it requires a single step descending more
	// than one block.
	fillFloor(w, 6, 10, -1, 1, 2)

	source := voxel.Pt(0, 6, 0)
	// Requested 2 blocks above its own floor (which rests at y=3), so
	// the fall-gap gate is armed: any resulting path containing an
	// unsplittable multi-block drop is rejected outright.
	target := voxel.Pt(8, 5, 0)

	path := AStar(source, target, w.check, nil)
	if path != nil {
		t.Fatalf("expected nil path when the only route requires an unsplittable multi-block fall, got %v", path)
	}
}

func TestAStarLeapChainDownSlope(t *testing.T) {
	w := world{}
	// A staircase descending one block per step toward the target, open
	// enough above each step for the leap chain to fire.
	for i := 0; i <= 10; i++ {
		y := 6 - i
		if y < 0 {
			y = 0
		}
		fillFloor(w, i, i, -1, 1, y)
	}

	source := voxel.Pt(0, 7, 0)
	target := voxel.Pt(10, 1, 0)

	path := AStar(source, target, w.check, nil)
	if len(path) == 0 {
		t.Fatal("expected a path down the staircase")
	}
	if !path[len(path)-1].Equal(target) {
		t.Fatalf("expected path to end at target, got %v", path[len(path)-1])
	}
}

func TestAStarRespectsPopLimit(t *testing.T) {
	w := world{}
	fillFloor(w, -50, 50, -50, 50, 0)

	source := voxel.Pt(0, 1, 0)
	target := voxel.Pt(40, 1, 40)

	path := AStar(source, target, w.check, &Options{Limit: 5})
	if len(path) == 0 {
		t.Fatal("expected a best-effort partial path even under a tight pop limit")
	}
	if path[len(path)-1].Equal(target) {
		t.Fatal("did not expect to actually reach a far target with only 5 pops")
	}
}

func TestAStarRecordCallback(t *testing.T) {
	w := world{}
	fillFloor(w, -1, 10, -1, 1, 0)

	source := voxel.Pt(0, 1, 0)
	target := voxel.Pt(5, 1, 0)

	var popped []voxel.Point
	path := AStar(source, target, w.check, &Options{Record: func(p voxel.Point) {
		popped = append(popped, p)
	}})
	if len(path) == 0 {
		t.Fatal("expected a path")
	}
	if len(popped) == 0 {
		t.Fatal("expected Record to be called at least once")
	}
}

func TestAStarKeyDistinguishesOffsets(t *testing.T) {
	source := voxel.Pt(0, 0, 0)
	a := astarKey(voxel.Pt(1, 0, 0), source)
	b := astarKey(voxel.Pt(0, 1, 0), source)
	c := astarKey(voxel.Pt(0, 0, 1), source)
	if a == b || b == c || a == c {
		t.Fatalf("expected distinct keys per axis, got %d %d %d", a, b, c)
	}
	if astarKey(source, source) != 0 {
		t.Fatalf("expected the source's own key to be 0")
	}
}

func TestStepCostPrefersDescent(t *testing.T) {
	flat := stepCost(voxel.Pt(0, 0, 0), voxel.Pt(1, 0, 0))
	up := stepCost(voxel.Pt(0, 0, 0), voxel.Pt(1, 1, 0))
	down := stepCost(voxel.Pt(0, 0, 0), voxel.Pt(1, -1, 0))

	if !(down < flat && flat < up) {
		t.Fatalf("expected down < flat < up, got down=%v flat=%v up=%v", down, flat, up)
	}
}
