package world

import (
	"fmt"
	"math"

	perlin "github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Generator kinds accepted by NewGenerator.
const (
	GeneratorFlat    = "flat"
	GeneratorSimplex = "simplex"
	GeneratorPerlin  = "perlin"
)

// Palette is the set of block ids a generator places, resolved from the
// registry by the caller.
type Palette struct {
	Surface uint32
	Filler  uint32
	Stone   uint32
	Bedrock uint32
}

// TerrainGenerator fills chunks with blocks and heightmap data.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateChunk(c *Chunk)
}

// NewGenerator creates the generator named by kind.
func NewGenerator(kind string, seed int64, palette Palette) (TerrainGenerator, error) {
	switch kind {
	case GeneratorFlat:
		return NewFlatGenerator(40, palette), nil
	case GeneratorSimplex, "":
		return NewNoiseGenerator(seed, palette), nil
	case GeneratorPerlin:
		return NewPerlinGenerator(seed, palette), nil
	default:
		return nil, fmt.Errorf("unknown terrain generator %q", kind)
	}
}

// FlatGenerator builds flat terrain up to a fixed surface height.
type FlatGenerator struct {
	height  int
	palette Palette
}

func NewFlatGenerator(height int, palette Palette) *FlatGenerator {
	return &FlatGenerator{height: clampHeight(height), palette: palette}
}

func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	fillColumns(c, g, g.palette)
}

// NoiseGenerator builds rolling terrain from OpenSimplex noise.
type NoiseGenerator struct {
	noise      opensimplex.Noise
	palette    Palette
	scale      float64
	baseHeight int
	amp        float64
	octaves    int
}

// NewNoiseGenerator creates a new generator with default settings.
func NewNoiseGenerator(seed int64, palette Palette) *NoiseGenerator {
	return &NoiseGenerator{
		noise:      opensimplex.New(seed),
		palette:    palette,
		scale:      1.0 / 64.0,
		baseHeight: 40,
		amp:        16,
		octaves:    4,
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *NoiseGenerator) HeightAt(worldX, worldZ int) int {
	x := float64(worldX) * g.scale
	z := float64(worldZ) * g.scale
	sum, freq, amp, norm := 0.0, 1.0, 1.0, 0.0
	for i := 0; i < g.octaves; i++ {
		sum += g.noise.Eval2(x*freq, z*freq) * amp
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	h := float64(g.baseHeight) + (sum/norm)*g.amp
	return clampHeight(int(math.Floor(h)))
}

func (g *NoiseGenerator) PopulateChunk(c *Chunk) {
	fillColumns(c, g, g.palette)
}

// PerlinGenerator builds steeper terrain from Perlin noise.
type PerlinGenerator struct {
	noise      *perlin.Perlin
	palette    Palette
	scale      float64
	baseHeight int
	amp        float64
}

func NewPerlinGenerator(seed int64, palette Palette) *PerlinGenerator {
	return &PerlinGenerator{
		noise:      perlin.NewPerlin(2, 2, 3, seed),
		palette:    palette,
		scale:      1.0 / 48.0,
		baseHeight: 48,
		amp:        32,
	}
}

func (g *PerlinGenerator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	return clampHeight(int(math.Floor(float64(g.baseHeight) + n*g.amp)))
}

func (g *PerlinGenerator) PopulateChunk(c *Chunk) {
	fillColumns(c, g, g.palette)
}

// fillColumns places bedrock, stone, filler and surface layers and records the
// surface height in the heightmap.
func fillColumns(c *Chunk, g TerrainGenerator, p Palette) {
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			wx := int(c.X)*ChunkSizeX + lx
			wz := int(c.Z)*ChunkSizeZ + lz
			top := g.HeightAt(wx, wz)
			for y := 0; y <= top; y++ {
				var id uint32
				switch {
				case y == 0:
					id = p.Bedrock
				case y == top:
					id = p.Surface
				case y >= top-3:
					id = p.Filler
				default:
					id = p.Stone
				}
				c.SetBlock(lx, y, lz, id)
			}
			c.SetHeight(lx, lz, uint8(top))
		}
	}
}

func clampHeight(h int) int {
	return max(0, min(h, ChunkSizeY-1))
}
