package content

import (
	"image"
	"image/color"

	"crafter/internal/atlas"
	"crafter/internal/registry"
	"crafter/internal/world"
)

// BuiltinModule names the block set used when no content directory exists.
const BuiltinModule = "base"

var builtinColors = map[string]color.RGBA{
	"grass_top.png":  {R: 86, G: 160, B: 48, A: 255},
	"grass_side.png": {R: 118, G: 104, B: 60, A: 255},
	"dirt.png":       {R: 134, G: 96, B: 67, A: 255},
	"stone.png":      {R: 125, G: 125, B: 125, A: 255},
	"bedrock.png":    {R: 40, G: 40, B: 40, A: 255},
	"log_top.png":    {R: 160, G: 130, B: 80, A: 255},
	"log_side.png":   {R: 100, G: 75, B: 45, A: 255},
	"fence.png":      {R: 150, G: 120, B: 70, A: 255},
}

// BuiltinPack is a small block set with flat colored textures.
func BuiltinPack() Pack {
	return Pack{
		Module: BuiltinModule,
		Blocks: []Block{
			{Name: "grass", Textures: []string{"grass_top.png", "dirt.png", "grass_side.png", "grass_side.png", "grass_side.png", "grass_side.png"}},
			{Name: "dirt", Textures: []string{"dirt.png", "dirt.png", "dirt.png", "dirt.png", "dirt.png", "dirt.png"}},
			{Name: "stone", Textures: []string{"stone.png", "stone.png", "stone.png", "stone.png", "stone.png", "stone.png"}},
			{Name: "bedrock", Textures: []string{"bedrock.png", "bedrock.png", "bedrock.png", "bedrock.png", "bedrock.png", "bedrock.png"}},
			{Name: "log", Textures: []string{"log_top.png", "log_top.png", "log_side.png", "log_side.png", "log_side.png", "log_side.png"}},
			{
				Name:     "fence",
				DrawType: "block_box",
				Textures: []string{"fence.png"},
				BlockBox: []float32{-0.375, 0, -0.375, -0.375, 0.5, -0.375},
			},
		},
	}
}

// Builtin builds the built-in block set.
func Builtin() (*Content, error) {
	pack := BuiltinPack()
	images := make(map[string]image.Image)
	for _, b := range pack.Blocks {
		for _, name := range faceTextures(b) {
			key := textureKey(pack.Module, name)
			if _, ok := images[key]; ok {
				continue
			}
			c, ok := builtinColors[name]
			if !ok {
				images[key] = atlas.Checkerboard(16)
				continue
			}
			images[key] = flat(16, c)
		}
	}
	return Build([]Pack{pack}, images)
}

func flat(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Palette resolves the terrain blocks of a registry. Missing names fall back
// to the first available of stone, dirt, then air.
func Palette(reg *registry.Registry) world.Palette {
	pick := func(names ...string) uint32 {
		for _, name := range names {
			if id, ok := reg.ID(name); ok {
				return id
			}
		}
		return registry.AirID
	}
	return world.Palette{
		Surface: pick("grass", "dirt", "stone"),
		Filler:  pick("dirt", "stone"),
		Stone:   pick("stone", "dirt"),
		Bedrock: pick("bedrock", "stone", "dirt"),
	}
}
