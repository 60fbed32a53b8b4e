package meshing

import "github.com/go-gl/mathgl/mgl32"

// Direction is a block face direction. The numeric order is the emission order
// and the index into a block's face mapping.
type Direction int

const (
	Up    Direction = iota // +Y
	Down                   // -Y
	South                  // +Z
	North                  // -Z
	West                   // +X
	East                   // -X
)

// Directions lists every face in emission order.
var Directions = [6]Direction{Up, Down, South, North, West, East}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case South:
		return "south"
	case North:
		return "north"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "invalid"
	}
}

// Offset returns the unit step towards the neighbor behind the face.
func (d Direction) Offset() (dx, dy, dz int) {
	switch d {
	case Up:
		return 0, 1, 0
	case Down:
		return 0, -1, 0
	case South:
		return 0, 0, 1
	case North:
		return 0, 0, -1
	case West:
		return 1, 0, 0
	default:
		return -1, 0, 0
	}
}

// IsSide reports whether the face is vertical and gets side shading.
func (d Direction) IsSide() bool {
	return d != Up && d != Down
}

// faceCorners are the unit cube corners of each face, counter-clockwise when
// seen from outside the block.
var faceCorners = [6][4]mgl32.Vec3{
	Up:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	Down:  {{0, 0, 1}, {0, 0, 0}, {1, 0, 0}, {1, 0, 1}},
	South: {{0, 1, 1}, {0, 0, 1}, {1, 0, 1}, {1, 1, 1}},
	North: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	West:  {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	East:  {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
}

// Mask is the set of visible faces of one block.
type Mask uint8

// AllFaces has every face visible.
const AllFaces Mask = 1<<6 - 1

// NewMask builds a mask from per-direction visibility flags.
func NewMask(up, down, south, north, west, east bool) Mask {
	var m Mask
	for d, visible := range [6]bool{up, down, south, north, west, east} {
		if visible {
			m |= 1 << d
		}
	}
	return m
}

// Has reports whether face d is visible.
func (m Mask) Has(d Direction) bool {
	return m&(1<<d) != 0
}

// With returns the mask with face d set.
func (m Mask) With(d Direction) Mask {
	return m | 1<<d
}

// Count returns the number of visible faces.
func (m Mask) Count() int {
	n := 0
	for v := m & AllFaces; v != 0; v &= v - 1 {
		n++
	}
	return n
}
