package graphics

import (
	"testing"

	"crafter/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

func TestChunkAABB(t *testing.T) {
	lo, hi := ChunkAABB(world.ChunkCoord{X: -1, Z: 2}, 1)
	if lo != (mgl32.Vec3{-17, -1, 31}) || hi != (mgl32.Vec3{1, 129, 49}) {
		t.Fatalf("aabb = %v %v", lo, hi)
	}
}

func TestAABBIntersectsFrustum(t *testing.T) {
	c := NewCamera(800, 600)
	c.Position = mgl32.Vec3{8, 64, 8}
	clip := c.GetProjectionMatrix().Mul4(c.GetViewMatrix())

	ahead := world.ChunkCoord{X: 0, Z: -3}
	behind := world.ChunkCoord{X: 0, Z: 5}
	if lo, hi := ChunkAABB(ahead, 0); !AABBIntersectsFrustum(lo, hi, clip) {
		t.Error("chunk in front of the camera was culled")
	}
	if lo, hi := ChunkAABB(behind, 0); AABBIntersectsFrustum(lo, hi, clip) {
		t.Error("chunk behind the camera was kept")
	}
	if lo, hi := ChunkAABB(world.ChunkCoord{}, 0); !AABBIntersectsFrustum(lo, hi, clip) {
		t.Error("chunk containing the camera was culled")
	}
}
