package meshing

import (
	"crafter/internal/logger"
	"crafter/internal/profiling"
	"crafter/internal/registry"
	"crafter/internal/world"

	"go.uber.org/zap"
)

// Uploader turns a finished mesh into a renderer-owned handle.
type Uploader interface {
	Upload(m Mesh) world.MeshHandle
}

// SchedulerOptions configures a Scheduler. Workers == 0 builds every request
// synchronously inside Poll.
type SchedulerOptions struct {
	Workers        int
	QueueSize      int
	Dedup          bool
	DebugTexCoords bool
}

// SchedulerStats counts what the scheduler has done since creation.
type SchedulerStats struct {
	Submitted int
	Applied   int
	Stale     int
	Skipped   int
	Deferred  int
}

// Scheduler drives the rebuild queue from the goroutine that owns the chunk
// store. Snapshots are taken and results installed only on that goroutine;
// workers see nothing but snapshots.
type Scheduler struct {
	store    *world.ChunkStore
	reg      *registry.Registry
	tex      TexCoordSource
	queue    *Queue
	pool     *WorkerPool
	uploader Uploader

	// inFlight holds the version each running build was taken at.
	inFlight map[world.ChunkCoord]uint64
	// rebuild marks coordinates requested again while a build was running.
	rebuild map[world.ChunkCoord]bool

	stats SchedulerStats
}

// NewScheduler creates a scheduler. uploader may be nil when meshes are not
// drawn, in which case chunks receive no handle.
func NewScheduler(store *world.ChunkStore, reg *registry.Registry, opts SchedulerOptions, uploader Uploader) *Scheduler {
	s := &Scheduler{
		store:    store,
		reg:      reg,
		tex:      TexCoordsFor(opts.DebugTexCoords),
		queue:    NewQueue(opts.Dedup),
		uploader: uploader,
		inFlight: make(map[world.ChunkCoord]uint64),
		rebuild:  make(map[world.ChunkCoord]bool),
	}
	if opts.Workers > 0 {
		s.pool = NewWorkerPool(opts.Workers, opts.QueueSize, reg, s.tex)
	}
	return s
}

// Queue returns the rebuild queue for producers.
func (s *Scheduler) Queue() *Queue {
	return s.queue
}

// Request enqueues a rebuild of chunk (x, z).
func (s *Scheduler) Request(x, z int32, cascade bool) {
	s.queue.PushBack(x, z, cascade)
}

// Poll handles up to budget queued requests and returns how many were popped.
func (s *Scheduler) Poll(budget int) int {
	defer profiling.Track("meshing.Scheduler.Poll")()

	n := 0
	for n < budget {
		r, ok := s.queue.PopFront()
		if !ok {
			break
		}
		n++

		coord := r.Coord()
		chunk := s.store.GetChunk(coord.X, coord.Z, false)
		if chunk == nil {
			s.stats.Skipped++
			continue
		}
		if _, busy := s.inFlight[coord]; busy {
			s.rebuild[coord] = true
			s.stats.Deferred++
			continue
		}

		snap := TakeSnapshot(s.store, chunk)
		if s.pool == nil {
			s.install(chunk, BuildChunkMesh(snap, s.reg, s.tex))
			continue
		}
		if !s.pool.SubmitJob(MeshJob{Snapshot: snap}) {
			// workers are saturated; the cascade has already been expanded
			s.queue.PushBack(coord.X, coord.Z, false)
			break
		}
		s.inFlight[coord] = snap.Version
		s.stats.Submitted++
	}
	return n
}

// Drain installs every finished result without blocking and returns how many
// were applied. apply, if not nil, sees each applied result. Results built from
// an outdated chunk version are dropped and the chunk is queued again.
func (s *Scheduler) Drain(apply func(MeshResult)) int {
	if s.pool == nil {
		return 0
	}
	applied := 0
	for {
		select {
		case res := <-s.pool.Results():
			if s.accept(res) {
				applied++
				if apply != nil {
					apply(res)
				}
			}
		default:
			return applied
		}
	}
}

func (s *Scheduler) accept(res MeshResult) bool {
	coord := res.Coord
	delete(s.inFlight, coord)
	requeue := s.rebuild[coord]
	delete(s.rebuild, coord)
	defer func() {
		if requeue {
			s.queue.PushBack(coord.X, coord.Z, false)
		}
	}()

	chunk := s.store.GetChunk(coord.X, coord.Z, false)
	if chunk == nil {
		requeue = false
		return false
	}
	if chunk.Version() != res.Version {
		logger.Log.Debug("discarding stale chunk mesh",
			zap.Int32("x", coord.X), zap.Int32("z", coord.Z),
			zap.Uint64("built", res.Version), zap.Uint64("current", chunk.Version()))
		s.stats.Stale++
		requeue = true
		return false
	}
	s.install(chunk, res.Mesh)
	return true
}

// BuildNow meshes chunk (x, z) synchronously and installs the result. It
// returns false when the chunk is not loaded.
func (s *Scheduler) BuildNow(x, z int32) bool {
	chunk := s.store.GetChunk(x, z, false)
	if chunk == nil {
		return false
	}
	s.install(chunk, BuildChunkMesh(TakeSnapshot(s.store, chunk), s.reg, s.tex))
	return true
}

func (s *Scheduler) install(chunk *world.Chunk, m Mesh) {
	var h world.MeshHandle
	if s.uploader != nil && !m.Empty() {
		h = s.uploader.Upload(m)
	}
	if old := chunk.SetMesh(h); old != nil {
		old.Release()
	}
	s.stats.Applied++
}

// Idle reports whether nothing is queued or building.
func (s *Scheduler) Idle() bool {
	return s.queue.Len() == 0 && len(s.inFlight) == 0
}

func (s *Scheduler) InFlight() int {
	return len(s.inFlight)
}

func (s *Scheduler) Stats() SchedulerStats {
	return s.stats
}

// Shutdown stops the worker pool. Results not yet drained are lost.
func (s *Scheduler) Shutdown() {
	if s.pool != nil {
		s.pool.Shutdown()
	}
}
