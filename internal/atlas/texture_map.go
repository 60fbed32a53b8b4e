package atlas

import (
	"image"
	"math"
)

// Flip modes
const (
	FlipNone uint8 = iota
	FlipX
	FlipY
)

// TextureMap is the precomputed texture coordinate set of one block face.
// The rectangle bounds are normalized atlas UVs. Corners holds the four UV pairs
// in the winding (min,min) -> (min,max) -> (max,max) -> (max,min), with the flip
// and then the rotation already applied.
type TextureMap struct {
	MinX, MinY float32
	MaxX, MaxY float32
	Rotation   uint8 // quarter turns, 0-3
	Flip       uint8 // FlipNone, FlipX or FlipY

	corners [8]float32
}

// New converts a packed pixel rectangle into a TextureMap for an atlas of the
// given pixel size.
func New(atlasW, atlasH int, rect image.Rectangle, rotation, flip uint8) TextureMap {
	w := float32(atlasW)
	h := float32(atlasH)
	return FromUV(
		float32(rect.Min.X)/w,
		float32(rect.Min.Y)/h,
		float32(rect.Max.X)/w,
		float32(rect.Max.Y)/h,
		rotation,
		flip,
	)
}

// FromUV builds a TextureMap from already normalized bounds.
func FromUV(minX, minY, maxX, maxY float32, rotation, flip uint8) TextureMap {
	if flip > FlipY {
		flip = FlipNone
	}
	m := TextureMap{
		MinX:     minX,
		MinY:     minY,
		MaxX:     maxX,
		MaxY:     maxY,
		Rotation: rotation % 4,
		Flip:     flip,
		corners: [8]float32{
			minX, minY,
			minX, maxY,
			maxX, maxY,
			maxX, minY,
		},
	}
	m.corners = flipAxis(m.corners, flip, minX, minY, maxX, maxY)
	m.corners = rotate(m.corners, m.Rotation)
	return m
}

// Identity covers the whole texture. Used for debug texture coordinates.
func Identity() TextureMap {
	return FromUV(0, 0, 1, 1, 0, FlipNone)
}

// Corners returns the transformed UV pairs.
func (m TextureMap) Corners() [8]float32 {
	return m.corners
}

// Rotated returns the map turned by one more quarter turn.
func (m TextureMap) Rotated() TextureMap {
	m.Rotation = (m.Rotation + 1) % 4
	m.corners = rotate(m.corners, 1)
	return m
}

// Flipped mirrors the map again along axis k (FlipX or FlipY).
// Mirroring on both axes equals a half turn, so the recorded Flip and Rotation
// stay a valid description of the corners.
func (m TextureMap) Flipped(k uint8) TextureMap {
	if k != FlipX && k != FlipY {
		return m
	}
	m.corners = flipAxis(m.corners, k, m.MinX, m.MinY, m.MaxX, m.MaxY)
	switch m.Flip {
	case FlipNone:
		m.Flip = k
	case k:
		m.Flip = FlipNone
	default:
		m.Flip = FlipNone
		m.Rotation = (m.Rotation + 2) % 4
	}
	return m
}

// Equal compares bounds and transformed corners.
func (m TextureMap) Equal(o TextureMap) bool {
	return m.MinX == o.MinX && m.MinY == o.MinY &&
		m.MaxX == o.MaxX && m.MaxY == o.MaxY &&
		m.corners == o.corners
}

// rotate shifts the corner array left by two values per quarter turn so that
// U/V pairs stay together.
func rotate(c [8]float32, quarterTurns uint8) [8]float32 {
	shift := int(quarterTurns%4) * 2
	if shift == 0 {
		return c
	}
	var out [8]float32
	for i := range out {
		out[i] = c[(i+shift)%8]
	}
	return out
}

func flipAxis(c [8]float32, flip uint8, minX, minY, maxX, maxY float32) [8]float32 {
	switch flip {
	case FlipX:
		for i := 0; i < 8; i += 2 {
			if quantizedEqual(c[i], minX) {
				c[i] = maxX
			} else {
				c[i] = minX
			}
		}
	case FlipY:
		for i := 1; i < 8; i += 2 {
			if quantizedEqual(c[i], minY) {
				c[i] = maxY
			} else {
				c[i] = minY
			}
		}
	}
	return c
}

// quantizedEqual compares two UVs at 1e-6 resolution.
func quantizedEqual(a, b float32) bool {
	return int32(math.Floor(float64(a)*1e6)) == int32(math.Floor(float64(b)*1e6))
}
