package meshing

import (
	"context"
	"sync"

	"crafter/internal/registry"
	"crafter/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Snapshot *Snapshot
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord   world.ChunkCoord
	Version uint64
	Mesh    Mesh
}

// WorkerPool manages goroutines for mesh generation. Workers only read the
// registry, which must not change while the pool is running.
type WorkerPool struct {
	jobQueue chan MeshJob
	results  chan MeshResult
	workers  int
	reg      *registry.Registry
	tex      TexCoordSource
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers, queueSize int, reg *registry.Registry, tex TexCoordSource) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	workers = max(workers, 1)
	queueSize = max(queueSize, 1)

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		// workers block on a full channel until the owner drains it or the
		// pool is shut down
		results: make(chan MeshResult, queueSize+workers),
		workers: workers,
		reg:     reg,
		tex:     tex,
		ctx:     ctx,
		cancel:  cancel,
	}

	// Start worker goroutines
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// Results is the channel finished meshes are delivered on.
func (p *WorkerPool) Results() <-chan MeshResult {
	return p.results
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			s := job.Snapshot
			result := MeshResult{
				Coord:   s.Coord,
				Version: s.Version,
				Mesh:    BuildChunkMesh(s, p.reg, p.tex),
			}

			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers and waits for them to exit. Jobs still queued are
// dropped.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

func (p *WorkerPool) Workers() int {
	return p.workers
}
