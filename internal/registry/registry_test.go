package registry

import "testing"

func TestAddBlockRoundTrip(t *testing.T) {
	r := New()
	r.AddMaterialOfColor("top", RGBA{0, 255, 0, 255})
	r.AddMaterialOfColor("bottom", RGBA{100, 60, 30, 255})
	r.AddMaterialOfColor("side", RGBA{80, 140, 60, 255})

	id := r.AddBlock([]string{"top", "bottom", "side"}, true)

	cases := []struct {
		face Face
		want string
	}{
		{FacePosX, "side"},
		{FaceNegX, "side"},
		{FacePosY, "top"},
		{FaceNegY, "bottom"},
		{FacePosZ, "side"},
		{FaceNegZ, "side"},
	}
	for _, c := range cases {
		matId := r.GetBlockFaceMaterial(id, c.face)
		got := r.GetMaterialData(matId)
		if got.Name != c.want {
			t.Errorf("face %v: got material %q, want %q", c.face, got.Name, c.want)
		}
	}
	if !r.IsSolid(id) || !r.IsOpaque(id) {
		t.Errorf("expected solid opaque block")
	}
}

func TestAddBlockExpansionRules(t *testing.T) {
	r := New()
	r.AddMaterialOfColor("a", RGBA{1, 1, 1, 255})
	r.AddMaterialOfColor("b", RGBA{2, 2, 2, 255})

	one := r.AddBlock([]string{"a"}, true)
	for f := Face(0); f < facesPerBlock; f++ {
		if r.GetMaterialData(r.GetBlockFaceMaterial(one, f)).Name != "a" {
			t.Errorf("1-name expansion: face %v should be %q", f, "a")
		}
	}

	two := r.AddBlock([]string{"a", "b"}, true)
	if r.GetMaterialData(r.GetBlockFaceMaterial(two, FacePosY)).Name != "a" {
		t.Errorf("2-name expansion: top should be %q", "a")
	}
	if r.GetMaterialData(r.GetBlockFaceMaterial(two, FaceNegY)).Name != "a" {
		t.Errorf("2-name expansion: bottom should be %q", "a")
	}
	if r.GetMaterialData(r.GetBlockFaceMaterial(two, FacePosX)).Name != "b" {
		t.Errorf("2-name expansion: side should be %q", "b")
	}
}

func TestAddBlockRejectsUnknownMaterial(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown material name")
		}
	}()
	New().AddBlock([]string{"nope"}, true)
}

func TestAddBlockRejectsBadNameCount(t *testing.T) {
	r := New()
	r.AddMaterialOfColor("a", RGBA{1, 1, 1, 255})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for 4-name addBlock")
		}
	}()
	r.AddBlock([]string{"a", "a", "a", "a"}, true)
}

func TestDuplicateMaterialNamePanics(t *testing.T) {
	r := New()
	r.AddMaterialOfColor("dup", RGBA{0, 0, 0, 255})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for duplicate material name")
		}
	}()
	r.AddMaterialOfColor("dup", RGBA{1, 1, 1, 255})
}

func TestTranslucentBlockIsNotOpaque(t *testing.T) {
	r := New()
	r.AddMaterialOfColor("glass", RGBA{200, 220, 255, 80})
	id := r.AddBlock([]string{"glass"}, true)
	if r.IsOpaque(id) {
		t.Errorf("translucent material should make the block non-opaque")
	}
	if !r.IsSolid(id) {
		t.Errorf("block was registered solid")
	}
}

func TestGetMaterialDataInvalidIdPanics(t *testing.T) {
	r := New()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for material id 0")
		}
	}()
	r.GetMaterialData(0)
}

func TestNewDefaultRegistry(t *testing.T) {
	r, b := NewDefaultRegistry()
	if !r.IsSolid(b.Grass) || !r.IsOpaque(b.Grass) {
		t.Errorf("grass should be solid and opaque")
	}
	if r.IsOpaque(b.Water) {
		t.Errorf("water should not be opaque")
	}
	if !r.GetMaterialData(r.GetBlockFaceMaterial(b.Water, FacePosY)).Liquid {
		t.Errorf("water material should be marked liquid")
	}
}
