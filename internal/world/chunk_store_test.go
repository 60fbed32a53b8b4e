package world

import (
	"sync"
	"testing"
)

func TestStoreWorldCoordinates(t *testing.T) {
	s := NewChunkStore()
	coord := s.SetBlock(-1, 10, 17, 5)
	if coord != (ChunkCoord{X: -1, Z: 1}) {
		t.Fatalf("coord = %v", coord)
	}
	if s.Block(-1, 10, 17) != 5 {
		t.Fatal("block not readable through world coordinates")
	}
	if s.GetChunk(-1, 1, false).Block(15, 10, 1) != 5 {
		t.Fatal("block stored at the wrong local position")
	}
	if s.Block(1000, 10, 1000) != 0 {
		t.Fatal("unloaded chunk should read as air")
	}
}

func TestStoreAddRemove(t *testing.T) {
	s := NewChunkStore()
	c := NewChunk(2, 3)
	if !s.AddChunk(c) || s.AddChunk(NewChunk(2, 3)) {
		t.Fatal("AddChunk should accept a chunk once")
	}
	if s.GetChunk(2, 3, false) != c || s.Len() != 1 {
		t.Fatal("added chunk not stored")
	}
	mod := s.ModCount()
	if s.RemoveChunk(ChunkCoord{X: 2, Z: 3}) != c || s.HasChunk(ChunkCoord{X: 2, Z: 3}) {
		t.Fatal("RemoveChunk did not remove")
	}
	if s.ModCount() == mod {
		t.Fatal("ModCount did not change")
	}
	if s.RemoveChunk(ChunkCoord{X: 2, Z: 3}) != nil {
		t.Fatal("second remove should return nil")
	}
}

func TestEvictFarChunks(t *testing.T) {
	s := NewChunkStore()
	for x := int32(-3); x <= 3; x++ {
		for z := int32(-3); z <= 3; z++ {
			s.GetChunk(x, z, true)
		}
	}
	removed := s.EvictFarChunks(0, 0, 2)
	for _, c := range removed {
		if c.X*c.X+c.Z*c.Z <= 4 {
			t.Fatalf("evicted near chunk %v", c.Coord())
		}
	}
	for _, c := range s.AllChunks() {
		if c.X*c.X+c.Z*c.Z > 4 {
			t.Fatalf("kept far chunk %v", c.Coord())
		}
	}
	if len(removed)+s.Len() != 49 {
		t.Fatalf("%d removed + %d kept != 49", len(removed), s.Len())
	}
}

func TestGetChunkConcurrentCreate(t *testing.T) {
	s := NewChunkStore()
	var wg sync.WaitGroup
	got := make([]*Chunk, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = s.GetChunk(0, 0, true)
		}(i)
	}
	wg.Wait()
	for _, c := range got {
		if c != got[0] {
			t.Fatal("concurrent creates returned different chunks")
		}
	}
}

func TestNeighborsOrder(t *testing.T) {
	want := [4]ChunkCoord{{X: 6, Z: 2}, {X: 4, Z: 2}, {X: 5, Z: 3}, {X: 5, Z: 1}}
	if got := (ChunkCoord{X: 5, Z: 2}).Neighbors(); got != want {
		t.Fatalf("Neighbors() = %v, want %v", got, want)
	}
}
