package world

import (
	"testing"
	"time"
)

func TestRingOrder(t *testing.T) {
	coords := ring(4, -4, 2)
	if len(coords) != 25 {
		t.Fatalf("got %d coords, want 25", len(coords))
	}
	if coords[0] != (ChunkCoord{X: 4, Z: -4}) {
		t.Fatalf("first coord = %v", coords[0])
	}
	seen := make(map[ChunkCoord]bool)
	for i, c := range coords {
		if seen[c] {
			t.Fatalf("duplicate %v", c)
		}
		seen[c] = true
		if i > 0 && i < 9 {
			dx, dz := c.X-4, c.Z+4
			if max(dx, -dx, dz, -dz) != 1 {
				t.Fatalf("coord %d = %v is not in the first ring", i, c)
			}
		}
	}
}

func TestStreamAroundSync(t *testing.T) {
	store := NewChunkStore()
	cs := NewChunkStreamer(store, NewFlatGenerator(4, testPalette))
	defer cs.Close()

	added := cs.StreamAroundSync(0, 0, 1)
	if len(added) != 9 || store.Len() != 9 {
		t.Fatalf("added %d chunks, store has %d", len(added), store.Len())
	}
	if again := cs.StreamAroundSync(0, 0, 1); len(again) != 0 {
		t.Fatalf("second pass added %d chunks", len(again))
	}
	if store.Block(-5, 4, 20) != testPalette.Surface {
		t.Fatal("streamed chunk not populated")
	}
}

func TestStreamAroundAsync(t *testing.T) {
	store := NewChunkStore()
	cs := NewChunkStreamer(store, NewFlatGenerator(4, testPalette))
	defer cs.Close()

	if n := cs.StreamAroundAsync(0, 0, 2); n != 25 {
		t.Fatalf("queued %d chunks, want 25", n)
	}
	if n := cs.StreamAroundAsync(0, 0, 2); n != 0 {
		t.Fatalf("re-queued %d pending chunks", n)
	}

	total := 0
	deadline := time.Now().Add(5 * time.Second)
	for cs.Pending() > 0 {
		total += len(cs.Collect())
		if time.Now().After(deadline) {
			t.Fatalf("%d chunks still pending", cs.Pending())
		}
		time.Sleep(time.Millisecond)
	}
	if total != 25 || store.Len() != 25 {
		t.Fatalf("collected %d, store has %d", total, store.Len())
	}
}

func TestChunkOf(t *testing.T) {
	if c := ChunkOf(-1, 16); c != (ChunkCoord{X: -1, Z: 1}) {
		t.Fatalf("ChunkOf = %v", c)
	}
}

func TestStreamAfterCloseQueuesNothing(t *testing.T) {
	cs := NewChunkStreamer(NewChunkStore(), NewFlatGenerator(4, testPalette))
	cs.Close()
	cs.Close()
	if n := cs.StreamAroundAsync(0, 0, 1); n != 0 || cs.Pending() != 0 {
		t.Fatalf("queued %d chunks after Close", n)
	}
}
