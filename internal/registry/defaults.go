package registry

import "voxelcore/internal/voxel"

// DefaultBlocks is the set of block ids the world generator (§4.4) and the
// bundled demo both rely on. Materials are flat-colored placeholders —
// a real deployment swaps AddMaterialOfColor for AddMaterialOfTexture once
// art assets exist, the same way the teacher's InitRegistry pre-registers
// a fixed texture order before any block references it.
type DefaultBlocks struct {
	Rock, Dirt, Sand, Grass, Snow, Water, Leaves voxel.BlockId
}

// NewDefaultRegistry builds a Registry pre-populated with the block set the
// world generator expects, and returns both the registry and the resolved
// ids.
func NewDefaultRegistry() (*Registry, DefaultBlocks) {
	r := New()

	r.AddMaterialOfColor("rock", RGBA{110, 110, 110, 255})
	r.AddMaterialOfColor("dirt", RGBA{121, 85, 58, 255})
	r.AddMaterialOfColor("sand", RGBA{219, 206, 150, 255})
	r.AddMaterialOfColor("grass_top", RGBA{95, 159, 53, 255})
	r.AddMaterialOfColor("grass_side", RGBA{136, 120, 72, 255})
	r.AddMaterialOfColor("snow", RGBA{245, 245, 250, 255})
	r.AddMaterialOfColor("water", RGBA{64, 110, 200, 140})
	r.AddMaterialOfColor("leaves", RGBA{60, 120, 50, 230})

	var b DefaultBlocks
	b.Rock = r.AddBlock([]string{"rock"}, true)
	r.RegisterBlockName("rock", b.Rock)
	b.Dirt = r.AddBlock([]string{"dirt"}, true)
	r.RegisterBlockName("dirt", b.Dirt)
	b.Sand = r.AddBlock([]string{"sand"}, true)
	r.RegisterBlockName("sand", b.Sand)
	b.Grass = r.AddBlock([]string{"grass_top", "dirt", "grass_side"}, true)
	r.RegisterBlockName("grass", b.Grass)
	b.Snow = r.AddBlock([]string{"snow"}, true)
	r.RegisterBlockName("snow", b.Snow)
	m := r.materials[r.materialNames["water"]]
	m.Liquid = true
	b.Water = r.AddBlock([]string{"water"}, false)
	r.RegisterBlockName("water", b.Water)
	b.Leaves = r.AddBlock([]string{"leaves"}, false)
	r.RegisterBlockName("leaves", b.Leaves)

	return r, b
}
