package content

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"crafter/internal/atlas"
	"crafter/internal/logger"
	"crafter/internal/profiling"
	"crafter/internal/registry"

	"go.uber.org/zap"
)

// Content is a loaded block set: the registry and the atlas its mappings
// point into.
type Content struct {
	Registry *registry.Registry
	Atlas    *atlas.Atlas
}

type Loader struct {
	root string
}

func NewLoader(root string) *Loader {
	return &Loader{root: root}
}

// Packs reads every <module>/blocks.json under the root, in module name order.
func (l *Loader) Packs() ([]Pack, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("read content dir %s: %w", l.root, err)
	}

	var packs []Pack
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		path := filepath.Join(l.root, e.Name(), PackFile)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not read pack file: %w", err)
		}

		var pack Pack
		if err := json.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("could not unmarshal pack %s: %w", path, err)
		}
		if pack.Module == "" {
			pack.Module = e.Name()
		}
		packs = append(packs, pack)
	}
	sort.Slice(packs, func(i, j int) bool { return packs[i].Module < packs[j].Module })
	return packs, nil
}

// Load reads every pack, packs the textures into one atlas and registers the
// blocks.
func (l *Loader) Load() (*Content, error) {
	defer profiling.Track("content.Load")()

	packs, err := l.Packs()
	if err != nil {
		return nil, err
	}

	images := make(map[string]image.Image)
	for _, pack := range packs {
		var names []string
		for _, b := range pack.Blocks {
			names = append(names, faceTextures(b)...)
		}
		dir := filepath.Join(l.root, pack.Module, "textures")
		loaded, err := atlas.LoadImages(dir, names, registry.UnknownTexture)
		if err != nil {
			return nil, fmt.Errorf("load module %s: %w", pack.Module, err)
		}
		for name, img := range loaded {
			images[textureKey(pack.Module, name)] = img
		}
	}

	return Build(packs, images)
}

// Build packs images, keyed "module/texture", and registers every block of
// packs in order.
func Build(packs []Pack, images map[string]image.Image) (*Content, error) {
	a, err := atlas.PackerFor(images).Pack(images)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	for _, pack := range packs {
		for _, b := range pack.Blocks {
			register(reg, a, pack.Module, b)
		}
		logger.Log.Info("content module loaded",
			zap.String("module", pack.Module),
			zap.Int("blocks", len(pack.Blocks)))
	}
	logger.Log.Info("texture atlas packed",
		zap.Int("textures", len(a.Frames)),
		zap.Int("width", a.Image.Bounds().Dx()),
		zap.Int("height", a.Image.Bounds().Dy()))

	return &Content{Registry: reg, Atlas: a}, nil
}

func register(reg *registry.Registry, a *atlas.Atlas, module string, b Block) uint32 {
	draw := registry.ParseDrawType(b.DrawType)
	if draw == registry.DrawBlockBox && b.BlockBox == nil {
		panic(fmt.Sprintf("block %s is drawn as block_box but defines no block_box", b.Name))
	}

	textures := faceTextures(b)
	var mappings []atlas.TextureMap
	if draw == registry.DrawNormal {
		mappings = make([]atlas.TextureMap, len(textures))
		for i, tex := range textures {
			mappings[i] = a.Map(textureKey(module, tex), at(b.Rotations, i), at(b.Flips, i))
		}
	}
	return reg.Register(module, b.Name, draw, textures, b.BlockBox, mappings)
}

// faceTextures pads the block's textures to one per face. Airlike blocks have
// none.
func faceTextures(b Block) []string {
	if registry.ParseDrawType(b.DrawType) == registry.DrawNone {
		return nil
	}
	if len(b.Textures) > registry.FaceCount {
		panic(fmt.Sprintf("block %s has %d textures, at most %d are allowed", b.Name, len(b.Textures), registry.FaceCount))
	}
	out := make([]string, registry.FaceCount)
	for i := range out {
		if i < len(b.Textures) {
			out[i] = b.Textures[i]
		} else {
			out[i] = registry.UnknownTexture
		}
	}
	return out
}

func textureKey(module, name string) string {
	return module + "/" + name
}

func at(values []uint8, i int) uint8 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
