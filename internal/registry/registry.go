// Package registry assigns stable integer ids to blocks and materials and
// records the per-block solidity/opacity and per-face material data the
// mesher needs. It is pure data: no rendering, no I/O beyond the texture
// handle it carries around on behalf of the renderer.
package registry

import (
	"fmt"
	"sync"

	"voxelcore/internal/voxel"
)

// Face identifies one of the six faces of a block, in the order the mesher
// walks the three axes: [+x, -x, +y, -y, +z, -z].
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

const facesPerBlock = 6

// RGBA is a color with 8 bits per channel, matching the teacher's
// 0xRRGGBB-style tint encoding extended with an alpha channel since the
// mesher's opaque/translucent split keys off it.
type RGBA struct {
	R, G, B, A uint8
}

// Opaque reports whether this color is fully opaque (alpha == 255). The
// mesher routes a material's quads to the translucent geometry buffer
// whenever this is false.
func (c RGBA) Opaque() bool { return c.A == 255 }

// Texture is an opaque handle to a renderer-side texture. The core never
// looks inside it; only the lazily-populated TextureIndex on Material
// matters to the mesher.
type Texture interface{}

// Material describes one paintable surface: a color (used directly for
// untextured/vertex-colored quads and for the translucency test), an
// optional texture handle, and whether it represents a liquid (used by the
// mesher's face-culling rule in §4.3 step 2).
type Material struct {
	Name      string
	Color     RGBA
	Liquid    bool
	Texture   Texture
	AlphaTest bool

	// mu guards textureIndex: chunk meshing runs on a streamer worker
	// pool, so more than one goroutine can race to resolve the same
	// material's texture on its first mesh emission.
	mu           sync.Mutex
	textureIndex int
}

// TextureIndex returns the cached renderer-assigned texture slot, or 0 if
// the material has not yet been seen by a mesh emission.
func (m *Material) TextureIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textureIndex
}

// ResolveTextureIndex returns the cached texture slot, calling resolve to
// populate it on the material's first mesh emission and caching the
// result for every emission after. This is the "lazy texture
// registration, populated on first mesh emission and thereafter cached"
// mechanism the mesher relies on (internal/mesher.TextureResolver); the
// lock makes it safe for concurrent workers to race on the same material
// without double-registering its texture with the renderer.
func (m *Material) ResolveTextureIndex(resolve func() int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.textureIndex != 0 || resolve == nil {
		return m.textureIndex
	}
	m.textureIndex = resolve()
	return m.textureIndex
}

// Registry owns material and block definitions. It is not safe for
// concurrent mutation; all addMaterial*/addBlock calls are expected to
// happen during startup/load, the same way the teacher's InitRegistry runs
// once before the render loop starts.
type Registry struct {
	materials     []*Material // index 0 is the kNoMaterial sentinel
	materialNames map[string]voxel.MaterialId

	blockNames map[string]voxel.BlockId
	solid      []bool          // indexed by BlockId; entry 0 is false
	opaque     []bool          // indexed by BlockId; entry 0 is false
	faces      []voxel.MaterialId // flat, facesPerBlock*len(solid); stores materialId+1
}

// New returns an empty registry with BlockId 0 / MaterialId 0 reserved as
// the empty-block / no-material sentinels.
func New() *Registry {
	return &Registry{
		materials:     []*Material{nil},
		materialNames: make(map[string]voxel.MaterialId),
		blockNames:    make(map[string]voxel.BlockId),
		solid:         []bool{false},
		opaque:        []bool{false},
		faces:         make([]voxel.MaterialId, facesPerBlock),
	}
}

func (r *Registry) addMaterial(name string, m *Material) voxel.MaterialId {
	if name == "" {
		panic("registry: material name must not be empty")
	}
	if _, dup := r.materialNames[name]; dup {
		panic(fmt.Sprintf("registry: duplicate material name %q", name))
	}
	m.Name = name
	id := voxel.MaterialId(len(r.materials))
	r.materials = append(r.materials, m)
	r.materialNames[name] = id
	return id
}

// AddMaterialOfColor registers a flat-colored, untextured material.
func (r *Registry) AddMaterialOfColor(name string, color RGBA) voxel.MaterialId {
	return r.addMaterial(name, &Material{Color: color})
}

// AddMaterialOfTexture registers a textured material. alphaTest marks
// cutout materials (leaves, fences) that the mesher double-emits (§4.3
// step 6) so both faces of a one-sided quad render.
func (r *Registry) AddMaterialOfTexture(name string, texture Texture, alphaTest bool) voxel.MaterialId {
	return r.addMaterial(name, &Material{Color: RGBA{255, 255, 255, 255}, Texture: texture, AlphaTest: alphaTest})
}

// remapFace maps a face index (in the canonical [+x,-x,+y,-y,+z,-z] order)
// to an index into a names slice of the given length, per §4.1's expansion
// rule: 1 name -> all faces; 2 -> [top/bottom, sides]; 3 -> [top, bottom,
// sides]; 6 -> explicit face order.
func remapFace(f Face, n int) int {
	switch n {
	case 1:
		return 0
	case 2:
		if f == FacePosY || f == FaceNegY {
			return 0
		}
		return 1
	case 3:
		switch f {
		case FacePosY:
			return 0
		case FaceNegY:
			return 1
		default:
			return 2
		}
	case 6:
		return int(f)
	default:
		panic(fmt.Sprintf("registry: addBlock needs 1, 2, 3, or 6 names, got %d", n))
	}
}

// AddBlock registers a new solid/liquid block whose six face materials are
// expanded from names per remapFace, and returns its freshly assigned id.
func (r *Registry) AddBlock(names []string, solid bool) voxel.BlockId {
	if len(names) != 1 && len(names) != 2 && len(names) != 3 && len(names) != 6 {
		panic(fmt.Sprintf("registry: addBlock needs 1, 2, 3, or 6 names, got %d", len(names)))
	}

	var faceMaterials [facesPerBlock]voxel.MaterialId
	allOpaque := true
	for f := Face(0); f < facesPerBlock; f++ {
		name := names[remapFace(f, len(names))]
		matId, ok := r.materialNames[name]
		if !ok {
			panic(fmt.Sprintf("registry: addBlock references unknown material %q", name))
		}
		faceMaterials[f] = matId
		mat := r.materials[matId]
		if mat.Liquid || !mat.Color.Opaque() {
			allOpaque = false
		}
	}

	id := voxel.BlockId(len(r.solid))
	r.solid = append(r.solid, solid)
	r.opaque = append(r.opaque, solid && allOpaque)
	r.faces = append(r.faces, make([]voxel.MaterialId, facesPerBlock)...)
	base := int(id) * facesPerBlock
	for f := 0; f < facesPerBlock; f++ {
		r.faces[base+f] = faceMaterials[f] + 1 // stored as materialId+1, 0 means "no face material"
	}
	return id
}

// IsSolid reports whether id occupies its full cube (used by the mesher's
// "both sides opaque -> no face" rule via IsOpaque, and by the pathfinder's
// passability predicate upstream of this package).
func (r *Registry) IsSolid(id voxel.BlockId) bool {
	if id < 0 || int(id) >= len(r.solid) {
		return false
	}
	return r.solid[id]
}

// IsOpaque reports whether id fully occludes whatever is behind it.
func (r *Registry) IsOpaque(id voxel.BlockId) bool {
	if id < 0 || int(id) >= len(r.opaque) {
		return false
	}
	return r.opaque[id]
}

// GetBlockFaceMaterial returns the material id painted on the given face of
// block id, or voxel.NoMaterialId if id is out of range or empty.
func (r *Registry) GetBlockFaceMaterial(id voxel.BlockId, face Face) voxel.MaterialId {
	if id <= 0 || int(id)*facesPerBlock+int(face) >= len(r.faces) {
		return voxel.NoMaterialId
	}
	packed := r.faces[int(id)*facesPerBlock+int(face)]
	if packed == 0 {
		return voxel.NoMaterialId
	}
	return packed - 1
}

// GetMaterialData returns the material registered under id. It panics for
// id == 0 or an id outside the registered range — both are programming
// bugs per §7, not recoverable conditions.
func (r *Registry) GetMaterialData(id voxel.MaterialId) *Material {
	if id <= 0 || int(id) >= len(r.materials) {
		panic(fmt.Sprintf("registry: GetMaterialData: invalid material id %d", id))
	}
	return r.materials[id]
}

// NumBlocks returns the number of registered blocks, including the empty
// sentinel at id 0.
func (r *Registry) NumBlocks() int { return len(r.solid) }

// BlockIdByName looks up a block id by its registration name, for callers
// (world generator, demo glue) that want to refer to blocks symbolically.
func (r *Registry) BlockIdByName(name string) (voxel.BlockId, bool) {
	id, ok := r.blockNames[name]
	return id, ok
}

// RegisterBlockName records a human-readable name for a block id returned
// by AddBlock, mirroring the teacher's BlockNames map.
func (r *Registry) RegisterBlockName(name string, id voxel.BlockId) {
	r.blockNames[name] = id
}
