package registry

import (
	"fmt"

	"crafter/internal/atlas"
	"crafter/internal/logger"

	"go.uber.org/zap"
)

// AirID is the built-in empty block.
const AirID uint32 = 0

// FaceCount is the number of texture slots of every block.
const FaceCount = 6

// UnknownTexture pads texture lists shorter than FaceCount.
const UnknownTexture = "unknown.png"

// DrawType controls whether and how a block contributes geometry.
type DrawType uint8

const (
	DrawNone DrawType = iota
	DrawNormal
	DrawBlockBox
)

// ParseDrawType maps the content names. Unknown values fall back to DrawNormal.
func ParseDrawType(s string) DrawType {
	switch s {
	case "airlike":
		return DrawNone
	case "block_box":
		return DrawBlockBox
	default:
		return DrawNormal
	}
}

func (d DrawType) String() string {
	switch d {
	case DrawNone:
		return "airlike"
	case DrawBlockBox:
		return "block_box"
	default:
		return "normal"
	}
}

// BlockBox is a collection of axis aligned boxes, six offsets per box
// (-x, -y, -z, +x, +y, +z) relative to the unit cube.
type BlockBox struct {
	values []float32
}

// Boxes splits the shape into boxes.
func (b *BlockBox) Boxes() [][6]float32 {
	if b == nil {
		return nil
	}
	out := make([][6]float32, 0, len(b.values)/6)
	for i := 0; i+6 <= len(b.values); i += 6 {
		var box [6]float32
		copy(box[:], b.values[i:i+6])
		out = append(out, box)
	}
	return out
}

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID       uint32
	Name     string
	Module   string
	DrawType DrawType
	Textures [FaceCount]string
	Shape    *BlockBox

	// Mapping is populated only for DrawNormal blocks. Face order matches the
	// mesh emission order: up, down, south, north, west, east.
	Mapping    [FaceCount]atlas.TextureMap
	HasMapping bool
}

// Registry holds the block definitions of one loaded content set. It is built
// once at load time and read-only afterwards.
type Registry struct {
	blocks []*BlockDefinition
	names  map[string]uint32
}

// New creates a registry holding only air.
func New() *Registry {
	r := &Registry{names: make(map[string]uint32)}
	r.Register("", "air", DrawNone, []string{""}, nil, nil)
	return r
}

// Register adds a block and returns its id. Malformed definitions are content
// errors and panic.
func (r *Registry) Register(module, name string, draw DrawType, textures []string, shape []float32, mappings []atlas.TextureMap) uint32 {
	if _, exists := r.names[name]; exists {
		panic(fmt.Sprintf("block %s is registered twice", name))
	}
	if len(textures) > FaceCount {
		panic(fmt.Sprintf("block %s has %d textures, at most %d are allowed", name, len(textures), FaceCount))
	}
	if shape != nil && len(shape)%6 != 0 {
		panic(fmt.Sprintf("block %s shape has %d values, need 6 per box (-x, -y, -z, +x, +y, +z)", name, len(shape)))
	}

	def := &BlockDefinition{
		ID:       uint32(len(r.blocks)),
		Name:     name,
		Module:   module,
		DrawType: draw,
	}
	for i := range def.Textures {
		if i < len(textures) {
			def.Textures[i] = textures[i]
		} else {
			def.Textures[i] = UnknownTexture
		}
	}
	if shape != nil {
		def.Shape = &BlockBox{values: append([]float32(nil), shape...)}
	}
	if draw == DrawNormal {
		for i := range def.Mapping {
			if i < len(mappings) {
				def.Mapping[i] = mappings[i]
			} else {
				def.Mapping[i] = atlas.Identity()
			}
		}
		def.HasMapping = len(mappings) > 0
	}

	r.blocks = append(r.blocks, def)
	r.names[name] = def.ID

	logger.Log.Debug("block registered",
		zap.Uint32("id", def.ID),
		zap.String("module", module),
		zap.String("name", name),
		zap.Stringer("drawType", draw))
	return def.ID
}

// LookupID returns the id of a registered block. Unknown names panic; use ID
// to validate names first.
func (r *Registry) LookupID(name string) uint32 {
	id, ok := r.names[name]
	if !ok {
		panic(fmt.Sprintf("unknown block %q", name))
	}
	return id
}

// ID reports the id of name and whether it is registered.
func (r *Registry) ID(name string) (uint32, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Get returns the definition for id, or nil.
func (r *Registry) Get(id uint32) *BlockDefinition {
	if int(id) >= len(r.blocks) {
		return nil
	}
	return r.blocks[id]
}

// Len returns the number of registered blocks including air.
func (r *Registry) Len() int {
	return len(r.blocks)
}

// Names returns block names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.blocks))
	for i, def := range r.blocks {
		out[i] = def.Name
	}
	return out
}

// IsOpaque reports whether id hides the faces of its neighbors.
func (r *Registry) IsOpaque(id uint32) bool {
	def := r.Get(id)
	return def != nil && def.DrawType == DrawNormal
}
