package mesher

// highlightEpsilon enlarges the highlight cube slightly past the unit
// cube so its quads don't z-fight with the block's own terrain faces.
const highlightEpsilon = float32(1.0 / 256)

// MeshHighlight builds the six-quad outline drawn around a targeted
// block: the unit cube enlarged by highlightEpsilon on every side,
// translucent white, one quad per face tagged with its face index
// 0..5 in Mask so the shader can draw (or fade) a single face at a
// time.
func MeshHighlight() *Geometry {
	geo := NewGeometry()
	lo, hi := -highlightEpsilon, 1+highlightEpsilon
	size := hi - lo

	faces := [6]struct {
		dim, dir int
		pos      [3]float32
	}{
		{0, 1, [3]float32{hi, lo, lo}},
		{0, -1, [3]float32{lo, lo, lo}},
		{1, 1, [3]float32{lo, hi, lo}},
		{1, -1, [3]float32{lo, lo, lo}},
		{2, 1, [3]float32{lo, lo, hi}},
		{2, -1, [3]float32{lo, lo, lo}},
	}

	for i, f := range faces {
		geo.appendQuad(quad{
			pos:   f.pos,
			size:  [2]float32{size, size},
			color: [4]float32{1, 1, 1, 0.4},
			ao:    [4]int{3, 3, 3, 3},
			dim:   f.dim,
			dir:   f.dir,
			mask:  float32(i),
		})
	}
	return geo
}
