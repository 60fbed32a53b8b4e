package meshing

import (
	"sync"

	"crafter/internal/world"
)

// Request asks for the mesh of chunk (X, Z) to be rebuilt. A cascading request
// also schedules its four planar neighbors when it is popped.
type Request struct {
	X, Z    int32
	Cascade bool
}

// Coord returns the chunk coordinate of the request.
func (r Request) Coord() world.ChunkCoord {
	return world.ChunkCoord{X: r.X, Z: r.Z}
}

// Queue is a FIFO of mesh rebuild requests, safe for concurrent use.
type Queue struct {
	mu      sync.Mutex
	items   []Request
	dedup   bool
	pending map[world.ChunkCoord]bool
}

// NewQueue creates an empty queue. With dedup, a push for a coordinate that is
// already pending merges into the existing entry.
func NewQueue(dedup bool) *Queue {
	q := &Queue{
		items: make([]Request, 0, 64),
		dedup: dedup,
	}
	if dedup {
		q.pending = make(map[world.ChunkCoord]bool)
	}
	return q
}

// PushBack appends a request.
func (q *Queue) PushBack(x, z int32, cascade bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.push(Request{X: x, Z: z, Cascade: cascade})
}

func (q *Queue) push(r Request) {
	if q.dedup {
		if q.pending[r.Coord()] {
			if r.Cascade {
				for i := range q.items {
					if q.items[i].X == r.X && q.items[i].Z == r.Z {
						q.items[i].Cascade = true
						break
					}
				}
			}
			return
		}
		q.pending[r.Coord()] = true
	}
	q.items = append(q.items, r)
}

// PopFront removes the oldest request. If it cascades, the neighbors
// (x+1,z), (x-1,z), (x,z+1), (x,z-1) are appended without cascade.
func (q *Queue) PopFront() (Request, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Request{}, false
	}
	r := q.items[0]
	q.items[0] = Request{}
	q.items = q.items[1:]
	if q.dedup {
		delete(q.pending, r.Coord())
	}

	if r.Cascade {
		for _, n := range r.Coord().Neighbors() {
			q.push(Request{X: n.X, Z: n.Z})
		}
	}
	return r, true
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Clear drops every pending request.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = q.items[:0]
	if q.dedup {
		clear(q.pending)
	}
}
