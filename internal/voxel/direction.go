package voxel

// Direction is a Point restricted to the unit-step cardinal, diagonal, and
// vertical set. Go has no subtyping story that fits "Point, but only some
// values" cleanly, so Direction is modeled as a namespace of named Point
// constants plus the arrays the pathfinder walks, rather than as a distinct
// type — matching the design note that this is a value type, not a subclass.
var (
	North     = Pt(0, 0, -1)
	NorthEast = Pt(1, 0, -1)
	East      = Pt(1, 0, 0)
	SouthEast = Pt(1, 0, 1)
	South     = Pt(0, 0, 1)
	SouthWest = Pt(-1, 0, 1)
	West      = Pt(-1, 0, 0)
	NorthWest = Pt(-1, 0, -1)

	Up   = Pt(0, 1, 0)
	Down = Pt(0, -1, 0)
)

// All holds the eight horizontal directions in clockwise order starting at
// North. The order is load-bearing: the pathfinder's blocked-diagonal mask
// (§4.5) assumes cardinals sit at even indices and each cardinal's two
// neighboring diagonals sit at index±1 (mod 8).
var All = [8]Point{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Cardinal holds the four axis-aligned horizontal directions, in the same
// clockwise order as they appear in All.
var Cardinal = [4]Point{North, East, South, West}

// Diagonal holds the four diagonal horizontal directions, in the same
// clockwise order as they appear in All.
var Diagonal = [4]Point{NorthEast, SouthEast, SouthWest, NorthWest}

// AdjacentDiagonals returns the indices into All of the two diagonals
// neighboring the cardinal at index i (which must be even: 0, 2, 4, or 6).
func AdjacentDiagonals(i int) (int, int) {
	return (i + 7) % 8, (i + 1) % 8
}
