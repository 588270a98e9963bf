package voxel

// BlockId identifies a registered block. Zero is the canonical empty block.
type BlockId int32

// MaterialId identifies a registered material. Zero means "no material."
type MaterialId int32

const (
	EmptyBlock   BlockId    = 0
	NoMaterialId MaterialId = 0
)

// Tensor3 is a dense, X-major 3D buffer of block ids with shape (X, Y, Z).
// Stride is (1, X, X*Y) the way a flattened column-of-columns voxel chunk
// is laid out in every example repo in the pack (dantero's Chunk sections,
// Barreto's world arrays) — X and Z are the short, bounded axes and Y is
// full world height, so X-major keeps a vertical column contiguous-ish
// while still giving O(1) random access.
type Tensor3 struct {
	SizeX, SizeY, SizeZ int
	data                []BlockId
}

// NewTensor3 allocates a zero-filled (all-empty) tensor of the given shape.
func NewTensor3(sx, sy, sz int) *Tensor3 {
	return &Tensor3{
		SizeX: sx, SizeY: sy, SizeZ: sz,
		data: make([]BlockId, sx*sy*sz),
	}
}

func (t *Tensor3) index(x, y, z int) int {
	return x + y*t.SizeX + z*t.SizeX*t.SizeY
}

// InBounds reports whether (x, y, z) addresses a cell of t.
func (t *Tensor3) InBounds(x, y, z int) bool {
	return x >= 0 && x < t.SizeX && y >= 0 && y < t.SizeY && z >= 0 && z < t.SizeZ
}

// At returns the block id at (x, y, z), or EmptyBlock if out of bounds.
func (t *Tensor3) At(x, y, z int) BlockId {
	if !t.InBounds(x, y, z) {
		return EmptyBlock
	}
	return t.data[t.index(x, y, z)]
}

// Set writes the block id at (x, y, z). Out-of-bounds writes are a
// contract violation and panic, matching §7's "programming bug" category.
func (t *Tensor3) Set(x, y, z int, id BlockId) {
	if !t.InBounds(x, y, z) {
		panic("voxel: Tensor3.Set out of bounds")
	}
	t.data[t.index(x, y, z)] = id
}

// AtPoint and SetPoint are Point-keyed convenience wrappers.
func (t *Tensor3) AtPoint(p Point) BlockId        { return t.At(p.X, p.Y, p.Z) }
func (t *Tensor3) SetPoint(p Point, id BlockId)   { t.Set(p.X, p.Y, p.Z, id) }
func (t *Tensor3) Shape() (int, int, int)         { return t.SizeX, t.SizeY, t.SizeZ }
