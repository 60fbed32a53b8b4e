package world

import (
	"runtime"
	"sync"

	"crafter/internal/profiling"

	"github.com/alitto/pond/v2"
)

// ChunkStreamer generates chunks on a goroutine pool. Finished chunks are
// handed back through Collect so the store is only changed by its owner.
type ChunkStreamer struct {
	pool      pond.Pool
	generated chan *Chunk
	pending   map[ChunkCoord]struct{}
	pendingMu sync.Mutex
	closed    bool

	maxJobsPerCall int

	once  sync.Once
	store *ChunkStore
	gen   TerrainGenerator
}

// NewChunkStreamer creates a new chunk streamer with one worker per CPU.
func NewChunkStreamer(store *ChunkStore, gen TerrainGenerator) *ChunkStreamer {
	return &ChunkStreamer{
		pool:           pond.NewPool(max(runtime.NumCPU(), 1)),
		generated:      make(chan *Chunk, 1024),
		pending:        make(map[ChunkCoord]struct{}),
		maxJobsPerCall: 256,
		store:          store,
		gen:            gen,
	}
}

// Close waits for queued generation to finish and stops the pool.
func (cs *ChunkStreamer) Close() {
	cs.once.Do(func() {
		cs.pendingMu.Lock()
		cs.closed = true
		cs.pendingMu.Unlock()
		cs.pool.StopAndWait()
	})
}

func (cs *ChunkStreamer) generate(coord ChunkCoord) {
	chunk := NewChunk(coord.X, coord.Z)
	cs.gen.PopulateChunk(chunk)
	cs.generated <- chunk
}

// StreamAroundSync generates every missing chunk within radius of the chunk
// (cx, cz) on the calling goroutine and returns the coordinates it added.
func (cs *ChunkStreamer) StreamAroundSync(cx, cz int32, radius int) []ChunkCoord {
	defer profiling.Track("world.StreamAroundSync")()
	var added []ChunkCoord
	for _, coord := range ring(cx, cz, radius) {
		if cs.store.HasChunk(coord) {
			continue
		}
		chunk := NewChunk(coord.X, coord.Z)
		cs.gen.PopulateChunk(chunk)
		if cs.store.AddChunk(chunk) {
			added = append(added, coord)
		}
	}
	return added
}

// StreamAroundAsync queues missing chunks nearest first and returns how many
// were queued.
func (cs *ChunkStreamer) StreamAroundAsync(cx, cz int32, radius int) int {
	defer profiling.Track("world.StreamAroundAsync")()
	pushed := 0
	for _, coord := range ring(cx, cz, radius) {
		if pushed >= cs.maxJobsPerCall {
			break
		}
		if cs.request(coord) {
			pushed++
		}
	}
	return pushed
}

// request returns true if coord was queued.
func (cs *ChunkStreamer) request(coord ChunkCoord) bool {
	if cs.store.HasChunk(coord) {
		return false
	}

	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	if cs.closed {
		return false
	}
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	// keep every pending chunk room in the result channel so workers never stall
	if len(cs.pending) >= cap(cs.generated) {
		return false
	}

	cs.pending[coord] = struct{}{}
	cs.pool.Submit(func() { cs.generate(coord) })
	return true
}

// Collect adds finished chunks to the store without blocking and returns their
// coordinates.
func (cs *ChunkStreamer) Collect() []ChunkCoord {
	var added []ChunkCoord
	for {
		select {
		case chunk := <-cs.generated:
			coord := chunk.Coord()
			cs.pendingMu.Lock()
			delete(cs.pending, coord)
			cs.pendingMu.Unlock()
			if cs.store.AddChunk(chunk) {
				added = append(added, coord)
			}
		default:
			return added
		}
	}
}

// Pending returns the number of chunks queued or generating.
func (cs *ChunkStreamer) Pending() int {
	cs.pendingMu.Lock()
	defer cs.pendingMu.Unlock()
	return len(cs.pending)
}

// EvictFarChunks removes chunks outside radius of the chunk (cx, cz).
func (cs *ChunkStreamer) EvictFarChunks(cx, cz int32, radius int) []*Chunk {
	return cs.store.EvictFarChunks(cx, cz, int32(radius))
}

// ring lists the chunks within radius of (cx, cz) ordered by square ring,
// center first.
func ring(cx, cz int32, radius int) []ChunkCoord {
	out := []ChunkCoord{{X: cx, Z: cz}}
	for r := int32(1); r <= int32(radius); r++ {
		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r
		for x := x0; x <= x1; x++ {
			out = append(out, ChunkCoord{X: x, Z: z0})
		}
		for z := z0 + 1; z <= z1-1; z++ {
			out = append(out, ChunkCoord{X: x1, Z: z})
		}
		for x := x1; x >= x0; x-- {
			out = append(out, ChunkCoord{X: x, Z: z1})
		}
		for z := z1 - 1; z >= z0+1; z-- {
			out = append(out, ChunkCoord{X: x0, Z: z})
		}
	}
	return out
}

// ChunkOf returns the chunk containing world block column (x, z).
func ChunkOf(x, z int) ChunkCoord {
	return ChunkCoord{X: int32(floorDiv(x, ChunkSizeX)), Z: int32(floorDiv(z, ChunkSizeZ))}
}
