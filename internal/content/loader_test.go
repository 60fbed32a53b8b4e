package content

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"crafter/internal/atlas"
	"crafter/internal/registry"
)

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, flat(8, c)); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPackDirectory(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "test", "textures", "stone.png"), color.RGBA{128, 128, 128, 255})
	writePNG(t, filepath.Join(root, "test", "textures", "top.png"), color.RGBA{0, 255, 0, 255})
	writeFile(t, filepath.Join(root, "test", PackFile), `{
		"module": "test",
		"blocks": [
			{"name": "stone", "textures": ["stone.png"]},
			{"name": "column", "textures": ["top.png", "top.png", "stone.png"], "rotations": [1], "flips": [0, 2]},
			{"name": "void", "draw_type": "airlike"},
			{"name": "post", "draw_type": "block_box", "textures": ["stone.png"], "block_box": [0, 0, 0, 0, 0, 0]}
		]
	}`)

	c, err := NewLoader(root).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg := c.Registry
	if reg.Len() != 5 {
		t.Fatalf("registry has %d blocks, want 5", reg.Len())
	}

	stone := reg.Get(reg.LookupID("stone"))
	if stone.Textures[0] != "stone.png" || stone.Textures[5] != registry.UnknownTexture {
		t.Fatalf("stone textures = %v", stone.Textures)
	}
	if _, ok := c.Atlas.Frames["test/"+registry.UnknownTexture]; !ok {
		t.Fatal("placeholder texture missing from the atlas")
	}

	column := reg.Get(reg.LookupID("column"))
	want := c.Atlas.Map("test/top.png", 1, atlas.FlipNone)
	if !column.Mapping[0].Equal(want) {
		t.Fatalf("up mapping = %v, want %v", column.Mapping[0].Corners(), want.Corners())
	}
	if column.Mapping[1].Flip != atlas.FlipY {
		t.Fatalf("down flip = %d", column.Mapping[1].Flip)
	}

	if reg.Get(reg.LookupID("void")).DrawType != registry.DrawNone {
		t.Fatal("void should be airlike")
	}
	post := reg.Get(reg.LookupID("post"))
	if post.HasMapping || post.Shape == nil {
		t.Fatalf("post = %+v", post)
	}
}

func TestLoadMissingTexture(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test", PackFile), `{"blocks": [{"name": "stone", "textures": ["nope.png"]}]}`)
	if _, err := NewLoader(root).Load(); err == nil {
		t.Fatal("expected error for a missing texture")
	}
}

func TestLoadMalformedPack(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test", PackFile), `{"blocks": [`)
	if _, err := NewLoader(root).Load(); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestModuleDefaultsToDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "zeta", PackFile), `{"blocks": []}`)
	writeFile(t, filepath.Join(root, "alpha", PackFile), `{"blocks": []}`)
	writeFile(t, filepath.Join(root, "README"), "not a pack")

	packs, err := NewLoader(root).Packs()
	if err != nil {
		t.Fatalf("Packs: %v", err)
	}
	if len(packs) != 2 || packs[0].Module != "alpha" || packs[1].Module != "zeta" {
		t.Fatalf("packs = %+v", packs)
	}
}

func TestBlockBoxWithoutShapePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	pack := Pack{Module: "m", Blocks: []Block{{Name: "bad", DrawType: "block_box", Textures: []string{"a.png"}}}}
	images := map[string]image.Image{"m/a.png": flat(4, color.RGBA{})}
	images["m/"+registry.UnknownTexture] = flat(4, color.RGBA{})
	Build([]Pack{pack}, images)
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	p := Palette(c.Registry)
	if p.Surface != c.Registry.LookupID("grass") || p.Bedrock != c.Registry.LookupID("bedrock") {
		t.Fatalf("palette = %+v", p)
	}
	grass := c.Registry.Get(p.Surface)
	if grass.Mapping[0].Equal(grass.Mapping[2]) {
		t.Fatal("grass top and side should use different textures")
	}
}

func TestPaletteFallback(t *testing.T) {
	reg := registry.New()
	stone := reg.Register("m", "stone", registry.DrawNormal, nil, nil, nil)
	p := Palette(reg)
	if p.Surface != stone || p.Filler != stone || p.Bedrock != stone {
		t.Fatalf("palette = %+v", p)
	}
}
