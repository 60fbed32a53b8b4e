package graphics

import (
	"crafter/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkAABB returns the world-space bounds of a chunk inflated by margin blocks.
func ChunkAABB(coord world.ChunkCoord, margin float32) (mgl32.Vec3, mgl32.Vec3) {
	lo := mgl32.Vec3{
		float32(coord.X) * world.ChunkSizeX,
		0,
		float32(coord.Z) * world.ChunkSizeZ,
	}
	hi := lo.Add(mgl32.Vec3{world.ChunkSizeX, world.ChunkSizeY, world.ChunkSizeZ})
	m := mgl32.Vec3{margin, margin, margin}
	return lo.Sub(m), hi.Add(m)
}

// AABBIntersectsFrustum tests a box against the frustum of clip
// (projection * view) with clip-space half-space tests. It may report boxes
// near frustum corners as visible.
func AABBIntersectsFrustum(lo, hi mgl32.Vec3, clip mgl32.Mat4) bool {
	var v [8]mgl32.Vec4
	for i := range v {
		c := mgl32.Vec4{lo.X(), lo.Y(), lo.Z(), 1}
		if i&1 != 0 {
			c[0] = hi.X()
		}
		if i&2 != 0 {
			c[1] = hi.Y()
		}
		if i&4 != 0 {
			c[2] = hi.Z()
		}
		v[i] = clip.Mul4x1(c)
	}

	// each plane is outside when axis*sign - w > 0 for every corner
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float32{1, -1} {
			allOutside := true
			for i := range v {
				if v[i][axis]*sign-v[i].W() <= 0 {
					allOutside = false
					break
				}
			}
			if allOutside {
				return false
			}
		}
	}
	return true
}
