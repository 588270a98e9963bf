package mesher

import (
	"voxelcore/internal/registry"
	"voxelcore/internal/voxel"
)

// FrontierCell is one column's worth of far-LOD heightmap data: the
// surface block and its absolute height. Bit 30 of Block is reserved as
// a merge scratch bit by MeshFrontier and must be zero between calls.
type FrontierCell struct {
	Block  voxel.BlockId
	Height int
}

const frontierConsumed = voxel.BlockId(1 << 30)

// MeshFrontier greedy-merges a sx-by-sz heightmap into a flat far-LOD
// mesh: a top-face pass over equal (block, height) rectangles, and,
// when solid is true, a side-skirt pass that closes the gap toward any
// lower neighboring column. cells is indexed x*sz+z and is restored to
// its input state before returning. mask is stamped into every emitted
// quad's Mask field, letting the renderer pick out a whole frontier
// ring by a single uniform compare. resolve resolves textured materials'
// renderer slots on first emission (see TextureResolver); pass nil for
// an untextured registry.
func (m *TerrainMesher) MeshFrontier(cells []FrontierCell, mask float32, px, pz, sx, sz int, scale float32, old *Geometry, solid bool, reg *registry.Registry, resolve TextureResolver) *Geometry {
	geo := old
	if geo == nil {
		geo = NewGeometry()
	} else {
		geo.reset()
	}

	idx := func(x, z int) int { return x*sz + z }

	for x := 0; x < sx; x++ {
		for z := 0; z < sz; z++ {
			i := idx(x, z)
			if cells[i].Block&frontierConsumed != 0 {
				continue
			}
			block, height := cells[i].Block, cells[i].Height

			zLen := 1
			for z1 := z + 1; z1 < sz; z1++ {
				j := idx(x, z1)
				if cells[j].Block&frontierConsumed != 0 || cells[j].Block != block || cells[j].Height != height {
					break
				}
				zLen++
			}

			xLen := 1
		outer:
			for x1 := x + 1; x1 < sx; x1++ {
				for z1 := z; z1 < z+zLen; z1++ {
					j := idx(x1, z1)
					if cells[j].Block&frontierConsumed != 0 || cells[j].Block != block || cells[j].Height != height {
						break outer
					}
				}
				xLen++
			}

			for x1 := x; x1 < x+xLen; x1++ {
				for z1 := z; z1 < z+zLen; z1++ {
					cells[idx(x1, z1)].Block |= frontierConsumed
				}
			}

			emitFrontierTop(geo, reg, block, float32(x)*scale, float32(height), float32(z)*scale, float32(xLen)*scale, float32(zLen)*scale, px, pz, mask, resolve)
		}
	}

	for i := range cells {
		cells[i].Block &^= frontierConsumed
	}

	if solid {
		meshFrontierSkirts(geo, reg, cells, px, pz, sx, sz, scale, mask, resolve)
	}

	if geo.NumQuads() == 0 {
		return nil
	}
	return geo
}

func emitFrontierTop(geo *Geometry, reg *registry.Registry, block voxel.BlockId, x, y, z, sizeX, sizeZ float32, px, pz int, mask float32, resolve TextureResolver) {
	mat := reg.GetMaterialData(reg.GetBlockFaceMaterial(block, registry.FacePosY))
	geo.appendQuad(quad{
		pos:     [3]float32{x + float32(px), y, z + float32(pz)},
		size:    [2]float32{sizeZ, sizeX},
		color:   colorOf(mat),
		ao:      [4]int{3, 3, 3, 3},
		dim:     1,
		dir:     1,
		mask:    mask,
		texture: textureIndexOf(mat, resolve),
	})
}

// meshFrontierSkirts walks the four horizontal directions and, for
// every column whose neighbor in that direction sits lower, emits a
// vertical quad closing the gap, merging runs of columns that share the
// same block, height, and neighbor height.
func meshFrontierSkirts(geo *Geometry, reg *registry.Registry, cells []FrontierCell, px, pz, sx, sz int, scale, mask float32, resolve TextureResolver) {
	idx := func(x, z int) int { return x*sz + z }
	neighbor := func(x, z int, dir voxel.Point) (FrontierCell, bool) {
		nx, nz := x+dir.X, z+dir.Z
		if nx < 0 || nx >= sx || nz < 0 || nz >= sz {
			return FrontierCell{}, false
		}
		return cells[idx(nx, nz)], true
	}

	for _, dir := range voxel.Cardinal {
		perp := voxel.Pt(dir.Z, 0, -dir.X)
		visited := make([]bool, sx*sz)

		for x := 0; x < sx; x++ {
			for z := 0; z < sz; z++ {
				i := idx(x, z)
				if visited[i] {
					continue
				}
				nb, ok := neighbor(x, z, dir)
				if !ok || nb.Height >= cells[i].Height {
					visited[i] = true
					continue
				}
				block, height, neighborHeight := cells[i].Block, cells[i].Height, nb.Height

				run := 1
				for {
					x1, z1 := x+perp.X*run, z+perp.Z*run
					if x1 < 0 || x1 >= sx || z1 < 0 || z1 >= sz {
						break
					}
					j := idx(x1, z1)
					if visited[j] || cells[j].Block != block || cells[j].Height != height {
						break
					}
					nb2, ok2 := neighbor(x1, z1, dir)
					if !ok2 || nb2.Height != neighborHeight {
						break
					}
					run++
				}
				for k := 0; k < run; k++ {
					visited[idx(x+perp.X*k, z+perp.Z*k)] = true
				}

				emitFrontierSkirt(geo, reg, block, x, height, z, run, neighborHeight, dir, perp, px, pz, scale, mask, resolve)
			}
		}
	}
}

func emitFrontierSkirt(geo *Geometry, reg *registry.Registry, block voxel.BlockId, x, height, z, run, neighborHeight int, dir, perp voxel.Point, px, pz int, scale, mask float32, resolve TextureResolver) {
	mat := reg.GetMaterialData(reg.GetBlockFaceMaterial(block, registry.FacePosY))
	fx := float32(x)*scale + float32(px)
	fz := float32(z)*scale + float32(pz)
	length := float32(run) * scale
	vheight := float32(height - neighborHeight)

	dim, dirSign := 2, 1
	switch {
	case dir.X > 0:
		dim, dirSign = 0, 1
	case dir.X < 0:
		dim, dirSign = 0, -1
	case dir.Z > 0:
		dim, dirSign = 2, 1
	case dir.Z < 0:
		dim, dirSign = 2, -1
	}

	size := [2]float32{length, vheight}
	if dim == 0 {
		size = [2]float32{vheight, length}
	}

	geo.appendQuad(quad{
		pos:     [3]float32{fx, float32(neighborHeight), fz},
		size:    size,
		color:   colorOf(mat),
		ao:      [4]int{3, 3, 3, 3},
		dim:     dim,
		dir:     dirSign,
		mask:    mask,
		texture: textureIndexOf(mat, resolve),
	})
}
