package world

import "testing"

func TestNewChunk(t *testing.T) {
	c := NewChunk(-3, 7)
	if c.Key() != "-3 7" || Key(-3, 7) != "-3 7" {
		t.Fatalf("key = %q", c.Key())
	}
	if !c.IsEmpty() {
		t.Fatal("new chunk should be empty")
	}
	if c.Light(5, 60, 5) != MaxLight {
		t.Fatalf("light = %d, want %d", c.Light(5, 60, 5), MaxLight)
	}
	if ChunkVolume != 32768 || ColumnCount != 256 {
		t.Fatalf("volume %d, columns %d", ChunkVolume, ColumnCount)
	}
}

func TestIndexLayout(t *testing.T) {
	if Index(0, 0, 1) != 1 || Index(0, 1, 0) != ChunkSizeZ || Index(1, 0, 0) != ChunkSizeY*ChunkSizeZ {
		t.Fatal("index is not x-major, then y, then z")
	}
	if Index(ChunkSizeX-1, ChunkSizeY-1, ChunkSizeZ-1) != ChunkVolume-1 {
		t.Fatal("last voxel index out of place")
	}
}

func TestVersionTracksChanges(t *testing.T) {
	c := NewChunk(0, 0)
	v := c.Version()

	c.SetBlock(1, 2, 3, 4)
	if c.Version() == v {
		t.Fatal("SetBlock did not bump version")
	}
	v = c.Version()
	c.SetBlock(1, 2, 3, 4)
	if c.Version() != v {
		t.Fatal("writing the same block bumped version")
	}

	c.SetRotation(1, 2, 3, 5)
	if c.Rotation(1, 2, 3) != 1 || c.Version() == v {
		t.Fatalf("rotation = %d", c.Rotation(1, 2, 3))
	}
	v = c.Version()
	c.SetLight(1, 2, 3, 200)
	if c.Light(1, 2, 3) != MaxLight || c.Version() != v {
		t.Fatal("clamped light equal to current level should not change anything")
	}
	c.SetLight(1, 2, 3, 3)
	if c.Light(1, 2, 3) != 3 || c.Version() == v {
		t.Fatal("SetLight did not apply")
	}
}

func TestOutOfBoundsAccess(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(-1, 0, 0, 9)
	c.SetBlock(0, ChunkSizeY, 0, 9)
	if !c.IsEmpty() || c.Version() != 0 {
		t.Fatal("out of bounds write changed the chunk")
	}
	if c.Block(ChunkSizeX, 0, 0) != 0 {
		t.Fatal("out of bounds read should be air")
	}
}

func TestArrayCopies(t *testing.T) {
	c := NewChunk(0, 0)
	c.SetBlock(0, 0, 0, 1)
	blocks := c.Blocks()
	c.SetBlock(0, 0, 0, 2)
	if blocks[0] != 1 {
		t.Fatal("Blocks() should return a copy")
	}
}

type countingHandle struct{ released int }

func (h *countingHandle) Release() { h.released++ }

func TestSetMeshReturnsPrevious(t *testing.T) {
	c := NewChunk(0, 0)
	a, b := &countingHandle{}, &countingHandle{}
	if old := c.SetMesh(a); old != nil {
		t.Fatal("first mesh should have no predecessor")
	}
	if old := c.SetMesh(b); old != MeshHandle(a) {
		t.Fatal("SetMesh did not return the previous handle")
	}
	if c.Mesh() != MeshHandle(b) {
		t.Fatal("Mesh() is not the installed handle")
	}
}
