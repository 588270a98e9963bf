// Package pathfind implements a 3D A* search over a passability
// predicate, with fall/jump/variable-cost movement semantics suited to
// voxel terrain: diagonal steps, vertical climbs and drops, and short
// "leap" shortcuts down a slope.
package pathfind

import (
	"container/heap"
	"math"

	"voxelcore/internal/voxel"
)

// Movement costs. Ascending is expensive; descending actually reduces
// total path cost, so the search mildly prefers routes that fall rather
// than climb when both reach the same place.
const (
	UnitCost        = 16
	DiagonalPenalty = 1
	UpCost          = 64
	DownCost        = 4
)

const (
	defaultLimit = 256
	flatLimit    = 4
	jumpLimit    = 3
)

// CheckFunc reports whether a cell is passable (empty).
type CheckFunc func(p voxel.Point) bool

// Options configures AStar. A zero Options is valid: Limit defaults to
// 256 pops and Record is a no-op.
type Options struct {
	Limit  int
	Record func(p voxel.Point)
}

// node is a search node. index mirrors the spec's heap_index: it is the
// node's live position in the open heap, or -1 once the node has been
// popped and closed. heap_index == -1 (closed) combined with the
// intentionally inadmissible heuristic means a closed node is never
// reopened even if a cheaper route to it is later discovered — see
// AStar's neighbor-relaxation loop.
type node struct {
	point    voxel.Point
	parent   *node
	distance float64
	score    float64
	index    int
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].score < h[j].score }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) {
	n := x.(*node)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*h = old[:n-1]
	return item
}

// astarKey packs a 30-bit signed offset from source into one int32: ten
// bits each of (x-sx), (y-sy), (z-sz), low to high. This bounds the
// search to roughly ±512 per axis relative to the source.
func astarKey(p, source voxel.Point) int32 {
	dx := int32(p.X-source.X) & 0x3ff
	dy := int32(p.Y-source.Y) & 0x3ff
	dz := int32(p.Z-source.Z) & 0x3ff
	return dx | dy<<10 | dz<<20
}

// maxDrop caps how far dropToFloor descends in one call, matching the
// ±512 range astarKey can encode per axis.
const maxDrop = 512

// dropToFloor repeatedly steps p down while the cell below is passable,
// returning the lowest empty cell directly above solid ground, or the
// cell maxDrop blocks below p when the column stays passable that far.
func dropToFloor(p voxel.Point, check CheckFunc) voxel.Point {
	for i := 0; i < maxDrop && check(voxel.Pt(p.X, p.Y-1, p.Z)); i++ {
		p = voxel.Pt(p.X, p.Y-1, p.Z)
	}
	return p
}

// astarHeight resolves the y coordinate a step from source to the
// horizontal cell of target should land on: target's own floor if
// target is passable, or a single jump-over (landing one block above
// target) if both the source's and target's headroom are clear. ok is
// false when neither is possible.
func astarHeight(source, target voxel.Point, check CheckFunc) (y int, ok bool) {
	if check(target) {
		return dropToFloor(target, check).Y, true
	}
	up := voxel.Up
	if check(source.Add(up)) && check(target.Add(up)) {
		return target.Y + 1, true
	}
	return 0, false
}

// astarNeighbors expands source into its reachable neighbor cells: the
// eight horizontal directions (cardinals may block their two adjacent
// diagonals when impassable), plus any leap-chain extensions off a
// downward cardinal step. isFirst drops source to its floor before
// expansion, matching the very first call in a search.
func astarNeighbors(source voxel.Point, check CheckFunc, isFirst bool) []voxel.Point {
	if isFirst {
		source = dropToFloor(source, check)
	}

	var blocked [8]bool
	var out []voxel.Point

	for i, dir := range voxel.All {
		if blocked[i] {
			continue
		}
		target := voxel.Pt(source.X+dir.X, source.Y, source.Z+dir.Z)

		y, ok := astarHeight(source, target, check)
		if !ok {
			if i%2 == 0 {
				a, b := voxel.AdjacentDiagonals(i)
				blocked[a] = true
				blocked[b] = true
			}
			continue
		}

		next := voxel.Pt(target.X, y, target.Z)
		out = append(out, next)

		if i%2 == 0 && next.Y < source.Y &&
			check(source.Add(voxel.Up)) && check(next.Add(voxel.Up)) {
			out = append(out, leapChain(source, next, dir, check)...)
		}
	}
	return out
}

// leapChain extends a downward cardinal step with up to flatLimit
// further unit steps in the same direction, each requiring clear
// headroom one block up (and, from jumpLimit onward, two blocks up, to
// leave room for a taller jump arc). Each step drops to its own floor;
// the chain stops as soon as a step would rise back above source.
func leapChain(source, next, dir voxel.Point, check CheckFunc) []voxel.Point {
	var out []voxel.Point
	cur := next
	for j := 1; j <= flatLimit; j++ {
		cand := voxel.Pt(cur.X+dir.X, cur.Y, cur.Z+dir.Z)

		jumpUp := voxel.Pt(cand.X, cur.Y+1, cand.Z)
		if !check(jumpUp) {
			break
		}
		if j >= jumpLimit {
			jump := voxel.Pt(cand.X, cur.Y+2, cand.Z)
			if !check(jump) {
				break
			}
		}

		dropped := dropToFloor(cand, check)
		if dropped.Y > source.Y {
			break
		}
		out = append(out, dropped)
		cur = dropped
	}
	return out
}

// stepCost prices a single edge: chebyshev-ish horizontal cost (full
// UnitCost on the longer axis, a small DiagonalPenalty on the shorter),
// plus a vertical term that charges UpCost per block climbed and
// credits DownCost per block dropped.
func stepCost(from, to voxel.Point) float64 {
	dx, dz := abs(to.X-from.X), abs(to.Z-from.Z)
	horiz := float64(max(dx, dz))*UnitCost + float64(min(dx, dz))*DiagonalPenalty

	dy := to.Y - from.Y
	var vert float64
	switch {
	case dy > 0:
		vert = float64(dy) * UpCost
	case dy < 0:
		vert = float64(dy) * DownCost
	}
	return horiz + vert
}

// heuristic is deliberately inadmissible: on top of the usual
// chebyshev+vertical estimate to target, it adds the perpendicular
// distance of p from the source->target line, steering the search
// toward that line. Because it can overestimate, the search may later
// find a cheaper route to an already-closed node — which is exactly
// why closed nodes are never reopened (see node.index).
func heuristic(p, source, target voxel.Point) float64 {
	dx, dy, dz := float64(target.X-source.X), float64(target.Y-source.Y), float64(target.Z-source.Z)
	length := math.Sqrt(dx*dx + dy*dy + dz*dz)
	var ux, uy, uz float64
	if length > 0 {
		ux, uy, uz = dx/length, dy/length, dz/length
	}

	ax, ay, az := float64(p.X-target.X), float64(p.Y-target.Y), float64(p.Z-target.Z)
	dot := ax*ux + ay*uy + az*uz
	offX, offY, offZ := ax-dot*ux, ay-dot*uy, az-dot*uz
	off := math.Sqrt(offX*offX + offY*offY + offZ*offZ)

	horiz := math.Max(math.Abs(ax), math.Abs(az))*UnitCost + math.Min(math.Abs(ax), math.Abs(az))*DiagonalPenalty

	var vert float64
	if ay > 0 {
		vert = ay * DownCost
	} else {
		vert = -ay * UpCost
	}

	return horiz + off + vert
}

// AStar searches from source to target under check, returning the
// source-to-target path, or, when target is not reached within limit,
// the path to the node with the lowest heuristic seen. When target sits
// more than one block above its floor, a returned path that contains a
// drop of more than one block is rejected and nil is returned instead.
// limit (default 256)
// bounds the number of heap pops; record, if set, is called with every
// popped point in pop order for visualization.
func AStar(source, target voxel.Point, check CheckFunc, opts *Options) []voxel.Point {
	limit := defaultLimit
	var record func(voxel.Point)
	if opts != nil {
		if opts.Limit > 0 {
			limit = opts.Limit
		}
		record = opts.Record
	}

	sourceDropped := dropToFloor(source, check)
	if sourceDropped.Y < source.Y-1 {
		sourceDropped = source
	}
	targetDropped := dropToFloor(target, check)
	drop := target.Y - targetDropped.Y

	start := &node{point: sourceDropped}
	start.score = heuristic(sourceDropped, sourceDropped, targetDropped)

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, start)

	seen := map[int32]*node{astarKey(sourceDropped, sourceDropped): start}

	best := start
	bestH := start.score - start.distance

	var targetNode *node
	first := true

	for pops := 0; open.Len() > 0 && pops < limit; pops++ {
		cur := heap.Pop(open).(*node)
		if record != nil {
			record(cur.point)
		}

		if cur.point.Equal(targetDropped) {
			targetNode = cur
			break
		}

		if h := cur.score - cur.distance; h < bestH {
			bestH = h
			best = cur
		}

		for _, p := range astarNeighbors(cur.point, check, first) {
			key := astarKey(p, sourceDropped)
			newDist := cur.distance + stepCost(cur.point, p)

			if existing, ok := seen[key]; ok {
				if existing.index == -1 {
					continue // closed: never reopened
				}
				if newDist < existing.distance {
					delta := newDist - existing.distance
					existing.distance = newDist
					existing.score += delta
					existing.parent = cur
					heap.Fix(open, existing.index)
				}
				continue
			}

			n := &node{
				point:    p,
				parent:   cur,
				distance: newDist,
				score:    newDist + heuristic(p, sourceDropped, targetDropped),
			}
			seen[key] = n
			heap.Push(open, n)
		}

		first = false
	}

	result := targetNode
	if result == nil {
		result = best
	}
	path := reconstructPath(result)

	if drop > 1 {
		for i := 1; i < len(path); i++ {
			if path[i-1].Y-path[i].Y > 1 {
				return nil
			}
		}
	}
	return path
}

func reconstructPath(n *node) []voxel.Point {
	var rev []voxel.Point
	for cur := n; cur != nil; cur = cur.parent {
		rev = append(rev, cur.point)
	}
	path := make([]voxel.Point, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
