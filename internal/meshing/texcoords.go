package meshing

import (
	"crafter/internal/atlas"
	"crafter/internal/registry"
)

// TexCoordSource chooses the texture coordinates of a block face.
type TexCoordSource interface {
	FaceMap(def *registry.BlockDefinition, d Direction) atlas.TextureMap
}

// AtlasTexCoords reads the precomputed atlas mapping of the block.
type AtlasTexCoords struct{}

func (AtlasTexCoords) FaceMap(def *registry.BlockDefinition, d Direction) atlas.TextureMap {
	if def == nil || !def.HasMapping {
		return atlas.Identity()
	}
	return def.Mapping[d]
}

// DebugTexCoords maps every face onto the full 0-1 texture.
type DebugTexCoords struct{}

func (DebugTexCoords) FaceMap(*registry.BlockDefinition, Direction) atlas.TextureMap {
	return atlas.Identity()
}

// TexCoordsFor selects the source from the debug setting.
func TexCoordsFor(debug bool) TexCoordSource {
	if debug {
		return DebugTexCoords{}
	}
	return AtlasTexCoords{}
}

// sideCycle is the order of the vertical faces for a quarter turn about +Y.
var sideCycle = [4]Direction{South, West, North, East}

// faceTurns are the quarter turns each face adds to its map so that side
// textures stand upright: the top edge of the image lands on the top edge of
// the face.
var faceTurns = [6]uint8{Up: 0, Down: 2, South: 0, North: 2, West: 1, East: 1}

// faceCoords returns the corners of m as laid out on face d.
func faceCoords(m atlas.TextureMap, d Direction) [8]float32 {
	for i := uint8(0); i < faceTurns[d]; i++ {
		m = m.Rotated()
	}
	return m.Corners()
}

// blockFaces resolves the six face coordinate sets of a block, turned by
// rotation quarter turns about +Y. Only side faces move.
func blockFaces(src TexCoordSource, def *registry.BlockDefinition, rotation uint8) [6][8]float32 {
	var faces [6][8]float32
	faces[Up] = faceCoords(src.FaceMap(def, Up), Up)
	faces[Down] = faceCoords(src.FaceMap(def, Down), Down)
	r := int(rotation % 4)
	for i, d := range sideCycle {
		faces[d] = faceCoords(src.FaceMap(def, sideCycle[(i+r)%4]), d)
	}
	return faces
}
