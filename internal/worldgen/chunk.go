package worldgen

import "voxelcore/internal/voxel"

// LoadChunkTensor fills a (sizeX+2, sizeY, sizeZ+2) tensor for the chunk
// whose minimum corner is at world (originX, originZ): the interior is
// the chunk's own sizeX x sizeZ columns, and the one-voxel halo on every
// horizontal side is the neighboring chunk's own terrain, generated by
// the same deterministic LoadChunk call a neighboring chunk's own load
// would make. This is what lets internal/mesher.MeshChunk decide
// boundary-face visibility without ever querying a neighbor chunk
// directly (§4.3's halo-border convention).
func (g *Generator) LoadChunkTensor(originX, originZ, sizeX, sizeY, sizeZ int) *voxel.Tensor3 {
	t := voxel.NewTensor3(sizeX+2, sizeY, sizeZ+2)
	for lx := 0; lx < sizeX+2; lx++ {
		for lz := 0; lz < sizeZ+2; lz++ {
			wx, wz := originX+lx-1, originZ+lz-1
			col := newChunkColumn(t, lx, lz)
			g.LoadChunk(wx, wz, col)
		}
	}
	return t
}

// LoadFrontierHeightmap fills a flat sx-by-sz heightmap of far-LOD cells
// for the chunk at world (originX, originZ), one LoadFrontier call per
// column, for internal/mesher.MeshFrontier to greedy-merge.
func (g *Generator) LoadFrontierHeightmap(originX, originZ, sx, sz int) []frontierColumn {
	cells := make([]frontierColumn, sx*sz)
	for x := 0; x < sx; x++ {
		for z := 0; z < sz; z++ {
			col := &heightmapColumn{}
			g.LoadFrontier(originX+x, originZ+z, col)
			cells[x*sz+z] = frontierColumn{Block: col.topBlock, Height: col.topY}
		}
	}
	return cells
}

// frontierColumn is worldgen's column-generation-side mirror of
// mesher.FrontierCell, with the same fields, so internal/worldgen never
// needs to import internal/mesher; no package in this module converts
// between the two.
type frontierColumn struct {
	Block  voxel.BlockId
	Height int
}

// heightmapColumn is a Column sink that only remembers the highest block
// pushed, which is all LoadFrontier's single Push (plus an optional water
// Push) produces meaningfully for far-LOD rendering.
type heightmapColumn struct {
	topBlock voxel.BlockId
	topY     int
	has      bool
}

func (c *heightmapColumn) Push(block voxel.BlockId, top int) {
	if !c.has || top >= c.topY {
		c.topBlock, c.topY, c.has = block, top, true
	}
}

func (c *heightmapColumn) Overwrite(block voxel.BlockId, y int) {
	if c.has && y == c.topY {
		c.topBlock = block
	}
}
