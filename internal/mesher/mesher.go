// Package mesher turns a chunk's voxel tensor into greedy-merged quad
// geometry with baked ambient occlusion: the terrain mesh proper
// (MeshChunk), the cheap far-LOD frontier mesh (MeshFrontier), and the
// block-targeting highlight overlay (MeshHighlight).
package mesher

import (
	"voxelcore/internal/registry"
	"voxelcore/internal/voxel"
)

// TerrainMesher holds the scratch buffers greedy meshing reuses across
// calls so MeshChunk doesn't allocate on every chunk. Scratch state
// lives on the instance rather than as package globals so a worker pool
// (internal/streamer) can give each worker its own mesher instead of
// serializing through a shared one.
type TerrainMesher struct {
	maskData []int32
}

// NewTerrainMesher returns a mesher with empty scratch buffers; they
// grow on first use and are reused thereafter.
func NewTerrainMesher() *TerrainMesher {
	return &TerrainMesher{}
}

var axisOrder = [3]int{0, 1, 2}

// TextureResolver maps a material's renderer-opaque texture handle to the
// renderer-assigned slot a quad's Texture field should carry. It is called
// at most once per material, the first time any mesh emission references
// a textured material; the result is cached on the material itself
// (registry.Material.ResolveTextureIndex) and reused after that. A nil
// resolver leaves every textured material at index 0, which is fine for
// untextured, flat-colored registries.
type TextureResolver func(tex registry.Texture) int

// textureIndexOf resolves and caches mat's renderer texture slot, or
// returns 0 for an untextured material.
func textureIndexOf(mat *registry.Material, resolve TextureResolver) float32 {
	if mat.Texture == nil {
		return 0
	}
	idx := mat.ResolveTextureIndex(func() int { return resolve(mat.Texture) })
	return float32(idx)
}

// MeshChunk greedy-meshes voxels across all three axes. voxels must
// carry a one-voxel halo of neighbor-chunk data on every side, so face
// visibility at a chunk's edge can be decided without the mesher ever
// querying a neighboring chunk directly. oldSolid and oldWater, when
// non-nil, have their backing arrays reused instead of allocating fresh
// Geometry. A nil return for either mesh means it would have been
// empty. resolve resolves textured materials' renderer slots on first
// emission (see TextureResolver); pass nil for an untextured registry.
func (m *TerrainMesher) MeshChunk(voxels *voxel.Tensor3, reg *registry.Registry, oldSolid, oldWater *Geometry, resolve TextureResolver) (solid, water *Geometry) {
	solidGeo := oldSolid
	if solidGeo == nil {
		solidGeo = NewGeometry()
	} else {
		solidGeo.reset()
	}
	waterGeo := oldWater
	if waterGeo == nil {
		waterGeo = NewGeometry()
	} else {
		waterGeo.reset()
	}

	shape := [3]int{voxels.SizeX, voxels.SizeY, voxels.SizeZ}

	for _, d := range axisOrder {
		u, v := axisUV(d)
		lu, lv := shape[u]-2, shape[v]-2
		if lu <= 0 || lv <= 0 {
			continue
		}
		m.meshAxis(voxels, reg, d, u, v, shape, lu, lv, solidGeo, waterGeo, resolve)
	}

	if solidGeo.NumQuads() > 0 {
		solid = solidGeo
	}
	if waterGeo.NumQuads() > 0 {
		water = waterGeo
	}
	return
}

// axisUV returns the two axes orthogonal to d, in scan order (u is the
// inner/width axis, v the outer/height axis of the mask). For d == 0
// the natural (d+1, d+2) permutation is swapped so that y stays the
// inner greedy-merge dimension on every axis — chunks are tall and
// narrow, and merging along y first produces longer runs.
func axisUV(d int) (u, v int) {
	naturalU, naturalV := (d+1)%3, (d+2)%3
	if d == 0 {
		return naturalV, naturalU
	}
	return naturalU, naturalV
}

// point3 builds a voxel.Point from a value along axis d and values
// along axes u and v.
func point3(d, u, v, dVal, uVal, vVal int) voxel.Point {
	var c [3]int
	c[d], c[u], c[v] = dVal, uVal, vVal
	return voxel.Pt(c[0], c[1], c[2])
}

var faceForAxis = [3][2]registry.Face{
	0: {registry.FacePosX, registry.FaceNegX},
	1: {registry.FacePosY, registry.FaceNegY},
	2: {registry.FacePosZ, registry.FaceNegZ},
}

// faceFor returns the registry.Face a block shows when it owns a face
// on axis d pointing in the given sign (+1 or -1).
func faceFor(d, sign int) registry.Face {
	if sign > 0 {
		return faceForAxis[d][0]
	}
	return faceForAxis[d][1]
}

// faceMaterial decides whether a face exists between block0 (slab id)
// and block1 (slab id+1) along axis d, and if so which block owns it.
// ownerIsLow is true when block0 owns the face (its visible side points
// toward +d); ok is false when no face should be emitted at all.
func faceMaterial(reg *registry.Registry, block0, block1 voxel.BlockId, d int) (ownerIsLow bool, matID voxel.MaterialId, ok bool) {
	op0, op1 := reg.IsOpaque(block0), reg.IsOpaque(block1)
	switch {
	case op0 && op1:
		return false, 0, false
	case op0:
		return true, reg.GetBlockFaceMaterial(block0, faceFor(d, 1)), true
	case op1:
		return false, reg.GetBlockFaceMaterial(block1, faceFor(d, -1)), true
	}

	// Neither side is opaque (liquid against leaves, leaves against air,
	// etc): compare each side's own material for this face and cancel
	// when they agree, including when both have no material at all.
	m0 := reg.GetBlockFaceMaterial(block0, faceFor(d, 1))
	m1 := reg.GetBlockFaceMaterial(block1, faceFor(d, -1))
	switch {
	case m0 == m1:
		return false, 0, false
	case m0 == voxel.NoMaterialId:
		return false, m1, true
	case m1 == voxel.NoMaterialId:
		return true, m0, true
	default:
		return false, 0, false
	}
}

// cornerAO computes the four packed corner AO values for the face cell
// at (iu, iv) on the given layer, which is the layer the face looks out
// into (one step past the owning block along the face normal). For each
// corner, it samples the two edge-adjacent neighbors and the one diagonal
// neighbor in that (u, v) layer — the cluster of blocks that would
// cast a shadow into that corner. Corner order is a00, a10, a11, a01.
func cornerAOs(voxels *voxel.Tensor3, reg *registry.Registry, d, u, v, layer, iu, iv int) [4]int {
	offsets := [4][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	var ao [4]int
	for i, o := range offsets {
		du, dv := o[0], o[1]
		edge1 := reg.IsSolid(voxels.AtPoint(point3(d, u, v, layer, iu+du, iv)))
		edge2 := reg.IsSolid(voxels.AtPoint(point3(d, u, v, layer, iu, iv+dv)))
		diag := reg.IsSolid(voxels.AtPoint(point3(d, u, v, layer, iu+du, iv+dv)))
		ao[i] = cornerAO(edge1, edge2, diag)
	}
	return ao
}

// cornerAO counts solid voxels among the two edge-adjacent neighbors and
// the diagonal neighbor, maxing out at 3 when both edges are solid
// (the diagonal can't make a corner any more occluded than that).
func cornerAO(edge1, edge2, diag bool) int {
	if edge1 && edge2 {
		return 3
	}
	count := 0
	if edge1 {
		count++
	}
	if edge2 {
		count++
	}
	if diag {
		count++
	}
	return count
}

func packAOInt(ao [4]int) int32 {
	return int32(ao[0] | ao[1]<<2 | ao[2]<<4 | ao[3]<<6)
}

// meshAxis scans every slab along axis d, building a 2D mask of packed
// (signed material, AO) values per slab and greedy-merging it.
func (m *TerrainMesher) meshAxis(voxels *voxel.Tensor3, reg *registry.Registry, d, u, v int, shape [3]int, lu, lv int, solidGeo, waterGeo *Geometry, resolve TextureResolver) {
	maskLen := lu * lv
	if cap(m.maskData) < maskLen {
		m.maskData = make([]int32, maskLen)
	}
	mask := m.maskData[:maskLen]

	lastSlab := shape[d] - 2

	for id := 0; id < shape[d]-1; id++ {
		for i := range mask {
			mask[i] = 0
		}

		for iu := 1; iu <= lu; iu++ {
			for iv := 1; iv <= lv; iv++ {
				p0 := point3(d, u, v, id, iu, iv)
				p1 := point3(d, u, v, id+1, iu, iv)
				block0 := voxels.AtPoint(p0)
				block1 := voxels.AtPoint(p1)

				ownerIsLow, matID, ok := faceMaterial(reg, block0, block1, d)
				if !ok {
					continue
				}

				dir := -1
				if ownerIsLow {
					dir = 1
				}

				// Boundary trim: at slab 0, a face owned by the halo
				// block (dir>0, i.e. block0's own voxel) is the mirror
				// of a face the neighbor chunk already draws looking
				// the other way; at the last slab the same holds for
				// a face owned by the far halo block (dir<0).
				if id == 0 && dir > 0 {
					continue
				}
				if id == lastSlab && dir < 0 {
					continue
				}

				aoLayer := id + 1
				if dir < 0 {
					aoLayer = id
				}
				ao := cornerAOs(voxels, reg, d, u, v, aoLayer, iu, iv)

				signed := int32(matID) + 1
				if dir < 0 {
					signed = -signed
				}
				mask[(iu-1)*lv+(iv-1)] = signed<<8 | packAOInt(ao)
			}
		}

		m.mergeSlab(mask, lu, lv, id, d, u, v, reg, solidGeo, waterGeo, resolve)
	}
}

// mergeSlab greedy-merges a filled mask into quads: for each unconsumed
// cell, extend first along v while the mask matches, then along u while
// the whole candidate rectangle matches, then emit and zero it out.
func (m *TerrainMesher) mergeSlab(mask []int32, lu, lv, id, d, u, v int, reg *registry.Registry, solidGeo, waterGeo *Geometry, resolve TextureResolver) {
	for i := 0; i < lu*lv; i++ {
		val := mask[i]
		if val == 0 {
			continue
		}
		iu0 := i/lv + 1
		iv0 := i%lv + 1

		vLen := 1
		for iv1 := iv0 + 1; iv1 <= lv && mask[(iu0-1)*lv+(iv1-1)] == val; iv1++ {
			vLen++
		}

		uLen := 1
	outer:
		for iu1 := iu0 + 1; iu1 <= lu; iu1++ {
			for iv1 := iv0; iv1 < iv0+vLen; iv1++ {
				if mask[(iu1-1)*lv+(iv1-1)] != val {
					break outer
				}
			}
			uLen++
		}

		for iu1 := iu0; iu1 < iu0+uLen; iu1++ {
			for iv1 := iv0; iv1 < iv0+vLen; iv1++ {
				mask[(iu1-1)*lv+(iv1-1)] = 0
			}
		}

		m.emitQuad(val, iu0, iv0, uLen, vLen, id, d, u, v, reg, solidGeo, waterGeo, resolve)
	}
}

// emitQuad unpacks a merged mask value back into material/AO/direction
// and appends the resulting quad to the solid or translucent buffer,
// double-emitting alpha-tested materials so both sides render.
func (m *TerrainMesher) emitQuad(val int32, iu0, iv0, uLen, vLen, id, d, u, v int, reg *registry.Registry, solidGeo, waterGeo *Geometry, resolve TextureResolver) {
	signed := val >> 8
	dir := 1
	if signed < 0 {
		dir = -1
		signed = -signed
	}
	matID := voxel.MaterialId(signed - 1)

	aoByte := int(val & 0xff)
	ao := [4]int{aoByte & 3, (aoByte >> 2) & 3, (aoByte >> 4) & 3, (aoByte >> 6) & 3}

	mat := reg.GetMaterialData(matID)

	faceDepth := id
	if dir > 0 {
		faceDepth = id + 1
	}
	faceDepth-- // drop the halo offset: tensor index 1 is chunk-local 0
	uPos := iu0 - 1
	vPos := iv0 - 1

	sizeU, sizeV := float32(uLen), float32(vLen)
	if d == 0 {
		// u/v were swapped for this axis; swap back to the shader's
		// natural ordering, carrying the AO corners along.
		sizeU, sizeV = sizeV, sizeU
		ao[1], ao[3] = ao[3], ao[1]
	}

	pos := point3(d, u, v, faceDepth, uPos, vPos)
	q := quad{
		pos:     [3]float32{float32(pos.X), float32(pos.Y), float32(pos.Z)},
		size:    [2]float32{sizeU, sizeV},
		color:   colorOf(mat),
		ao:      ao,
		dim:     d,
		dir:     dir,
		texture: textureIndexOf(mat, resolve),
	}

	target := solidGeo
	if mat.Liquid || !mat.Color.Opaque() {
		target = waterGeo
	}
	target.appendQuad(q)

	if mat.AlphaTest {
		q.dir = -dir
		target.appendQuad(q)
	}
}

func colorOf(mat *registry.Material) [4]float32 {
	return [4]float32{
		float32(mat.Color.R) / 255,
		float32(mat.Color.G) / 255,
		float32(mat.Color.B) / 255,
		float32(mat.Color.A) / 255,
	}
}
