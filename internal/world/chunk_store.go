package world

import (
	"sync"

	"crafter/internal/profiling"
)

// ChunkCoord is a planar chunk coordinate.
type ChunkCoord struct {
	X, Z int32
}

// Neighbors returns the four planar neighbors in cascade order:
// +x, -x, +z, -z.
func (c ChunkCoord) Neighbors() [4]ChunkCoord {
	return [4]ChunkCoord{
		{X: c.X + 1, Z: c.Z},
		{X: c.X - 1, Z: c.Z},
		{X: c.X, Z: c.Z + 1},
		{X: c.X, Z: c.Z - 1},
	}
}

// ChunkStore manages the storage and retrieval of chunks.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, it will be created (but NOT populated).
func (cs *ChunkStore) GetChunk(x, z int32, create bool) *Chunk {
	coord := ChunkCoord{X: x, Z: z}
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if !exists && create {
		cs.mu.Lock()
		// Double-check locking: another goroutine might have created it while we were waiting for the lock
		if existing, ok := cs.chunks[coord]; ok {
			cs.mu.Unlock()
			return existing
		}
		chunk = NewChunk(x, z)
		cs.chunks[coord] = chunk
		cs.modCount++
		cs.mu.Unlock()
	}
	return chunk
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AddChunk adds a pre-generated chunk to the store. Existing chunks are kept.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	coord := chunk.Coord()
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	cs.chunks[coord] = chunk
	cs.modCount++
	return true
}

// RemoveChunk unloads a chunk and returns it so the caller can release its mesh.
func (cs *ChunkStore) RemoveChunk(coord ChunkCoord) *Chunk {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	chunk, ok := cs.chunks[coord]
	if !ok {
		return nil
	}
	delete(cs.chunks, coord)
	cs.modCount++
	return chunk
}

// Block returns the block id at world block coordinates. Unloaded chunks read as air.
func (cs *ChunkStore) Block(x, y, z int) uint32 {
	chunk := cs.GetChunk(int32(floorDiv(x, ChunkSizeX)), int32(floorDiv(z, ChunkSizeZ)), false)
	if chunk == nil {
		return 0
	}
	return chunk.Block(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// SetBlock sets a block at world block coordinates, creating the chunk if needed.
// It returns the coordinate of the chunk that changed.
func (cs *ChunkStore) SetBlock(x, y, z int, id uint32) ChunkCoord {
	chunk := cs.GetChunk(int32(floorDiv(x, ChunkSizeX)), int32(floorDiv(z, ChunkSizeZ)), true)
	chunk.SetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ), id)
	return chunk.Coord()
}

// AllChunks returns a slice of all loaded chunks.
func (cs *ChunkStore) AllChunks() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	chunks := make([]*Chunk, 0, len(cs.chunks))
	for _, chunk := range cs.chunks {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// ModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictFarChunks removes chunks outside the given radius from the store and
// returns them.
func (cs *ChunkStore) EvictFarChunks(cx, cz int32, radius int32) []*Chunk {
	defer profiling.Track("world.EvictFarChunks")()
	var removed []*Chunk
	cs.mu.Lock()
	for coord, chunk := range cs.chunks {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, coord)
			cs.modCount++
			removed = append(removed, chunk)
		}
	}
	cs.mu.Unlock()
	return removed
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
