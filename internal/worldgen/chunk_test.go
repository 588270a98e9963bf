package worldgen

import "testing"

func TestLoadChunkTensorShapeHasOneVoxelHalo(t *testing.T) {
	g, _ := newTestGenerator(7)
	tensor := g.LoadChunkTensor(0, 0, 16, 64, 16)
	if tensor.SizeX != 18 || tensor.SizeY != 64 || tensor.SizeZ != 18 {
		t.Fatalf("expected an 18x64x18 tensor (16x64x16 plus a 1-voxel halo), got %dx%dx%d",
			tensor.SizeX, tensor.SizeY, tensor.SizeZ)
	}
}

func TestLoadChunkTensorIsDeterministic(t *testing.T) {
	g1, _ := newTestGenerator(42)
	g2, _ := newTestGenerator(42)

	t1 := g1.LoadChunkTensor(32, -16, 8, 32, 8)
	t2 := g2.LoadChunkTensor(32, -16, 8, 32, 8)

	for x := 0; x < t1.SizeX; x++ {
		for y := 0; y < t1.SizeY; y++ {
			for z := 0; z < t1.SizeZ; z++ {
				if t1.At(x, y, z) != t2.At(x, y, z) {
					t.Fatalf("tensors diverged at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestLoadFrontierHeightmapCoversAllColumns(t *testing.T) {
	g, _ := newTestGenerator(3)
	cells := g.LoadFrontierHeightmap(0, 0, 4, 4)
	if len(cells) != 16 {
		t.Fatalf("expected 16 cells, got %d", len(cells))
	}
}
