package mesher

// Stride is the number of float32 values per emitted quad. The offsets
// below are the external, bit-exact contract the renderer's shader
// indexes vertex attributes by; they must stay stable.
const (
	OffsetPos     = 0
	OffsetSize    = OffsetPos + 3
	OffsetColor   = OffsetSize + 2
	OffsetAOs     = OffsetColor + 4
	OffsetDim     = OffsetAOs + 1
	OffsetDir     = OffsetDim + 1
	OffsetMask    = OffsetDir + 1
	OffsetWave    = OffsetMask + 1
	OffsetTexture = OffsetWave + 1
	OffsetIndices = OffsetTexture + 1
	Stride        = OffsetIndices + 1
)

// Geometry is a flat, fixed-stride buffer of greedy-meshed quads. A mesh
// owns its Geometry; the renderer borrows it to upload to the GPU and
// may request a replacement via setGeometry, but never mutates it
// mid-frame.
type Geometry struct {
	Data  []float32
	dirty bool
}

// NewGeometry returns an empty geometry buffer.
func NewGeometry() *Geometry {
	return &Geometry{}
}

// NumQuads reports how many quads are currently packed into Data.
func (g *Geometry) NumQuads() int {
	return len(g.Data) / Stride
}

// Dirty reports whether the buffer changed since the last ClearDirty,
// signaling the renderer it needs to re-upload.
func (g *Geometry) Dirty() bool { return g.dirty }

// ClearDirty acknowledges a pending change; called by the renderer
// after it re-uploads.
func (g *Geometry) ClearDirty() { g.dirty = false }

// reset truncates the buffer for reuse without releasing its backing
// array.
func (g *Geometry) reset() {
	g.Data = g.Data[:0]
}

// quad is the mesher's working representation of one emitted rectangle,
// before it's flattened into Geometry's packed float32 layout.
type quad struct {
	pos     [3]float32
	size    [2]float32
	color   [4]float32
	ao      [4]int // a00, a10, a11, a01, each in 0..3
	dim     int
	dir     int // +1 or -1
	mask    float32
	wave    float32
	texture float32
}

func packAO(ao [4]int) float32 {
	return float32(ao[0] | ao[1]<<2 | ao[2]<<4 | ao[3]<<6)
}

// splitKind identifies which diagonal a quad's two triangles share.
type splitKind int

const (
	split0011 splitKind = iota
	split1001
)

// chooseSplit picks the triangle-fan diagonal that keeps AO gradients
// continuous, given the four packed corner AO values in a00,a10,a11,a01
// order.
func chooseSplit(a00, a10, a11, a01 int) splitKind {
	if a00 == a11 {
		if a10 == a01 {
			return split1001
		}
		if a00 == 3 {
			return split1001
		}
		return split0011
	}
	if a10 == a01 {
		return split0011
	}
	if a00+a11 >= a10+a01 {
		return split0011
	}
	return split1001
}

// packIndices packs the six triangle-fan vertex indices (corner indices
// 0=a00, 1=a10, 2=a11, 3=a01, two bits each) for the chosen split and
// winding direction into a 12-bit value. A, B, C, D are the four fixed
// permutations: A/B share the 00-11 diagonal with opposite winding, C/D
// share the 10-01 diagonal with opposite winding.
func packIndices(split splitKind, dir int) float32 {
	var idx [6]int
	switch {
	case split == split0011 && dir > 0: // A
		idx = [6]int{0, 1, 2, 0, 2, 3}
	case split == split0011: // B
		idx = [6]int{0, 2, 1, 0, 3, 2}
	case split == split1001 && dir > 0: // C
		idx = [6]int{0, 1, 3, 1, 2, 3}
	default: // D
		idx = [6]int{0, 3, 1, 1, 3, 2}
	}
	packed := 0
	for i, v := range idx {
		packed |= v << uint(2*i)
	}
	return float32(packed)
}

func (g *Geometry) appendQuad(q quad) {
	split := chooseSplit(q.ao[0], q.ao[1], q.ao[2], q.ao[3])
	g.Data = append(g.Data,
		q.pos[0], q.pos[1], q.pos[2],
		q.size[0], q.size[1],
		q.color[0], q.color[1], q.color[2], q.color[3],
		packAO(q.ao),
		float32(q.dim),
		float32(q.dir),
		q.mask,
		q.wave,
		q.texture,
		packIndices(split, q.dir),
	)
	g.dirty = true
}
