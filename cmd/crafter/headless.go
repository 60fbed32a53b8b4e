package main

import (
	"time"

	"crafter/internal/config"
	"crafter/internal/content"
	"crafter/internal/meshing"
	"crafter/internal/profiling"
	"crafter/internal/world"
)

// meshStats is a headless stand-in for a GPU buffer.
type meshStats struct {
	faces, vertices int
}

func (*meshStats) Release() {}

type statsUploader struct{}

func (statsUploader) Upload(m meshing.Mesh) world.MeshHandle {
	return &meshStats{faces: m.FaceCount(), vertices: m.VertexCount()}
}

type headlessStats struct {
	Chunks   int
	Meshed   int
	Faces    int
	Vertices int
	Stale    int
	Elapsed  time.Duration
	Timers   string
}

// runHeadless generates the square of chunks within radius of the origin,
// queues every chunk with cascade and drives the scheduler until it is idle.
func runHeadless(cfg *config.Config, c *content.Content, radius int) (headlessStats, error) {
	start := time.Now()
	profiling.Reset()

	store := world.NewChunkStore()
	gen, err := world.NewGenerator(cfg.Generator, cfg.Seed, content.Palette(c.Registry))
	if err != nil {
		return headlessStats{}, err
	}
	streamer := world.NewChunkStreamer(store, gen)
	defer streamer.Close()

	sched := meshing.NewScheduler(store, c.Registry, meshing.SchedulerOptions{
		Workers:        cfg.MesherWorkers,
		QueueSize:      cfg.MeshQueueSize,
		Dedup:          cfg.DedupRequests,
		DebugTexCoords: cfg.DebugTexCoords,
	}, statsUploader{})
	defer sched.Shutdown()

	for _, coord := range streamer.StreamAroundSync(0, 0, radius) {
		sched.Request(coord.X, coord.Z, true)
	}

	for !sched.Idle() {
		sched.Poll(cfg.MeshBudget)
		if sched.Drain(nil) == 0 && sched.InFlight() > 0 {
			time.Sleep(100 * time.Microsecond)
		}
	}

	stats := headlessStats{Chunks: store.Len(), Stale: sched.Stats().Stale}
	for _, ch := range store.AllChunks() {
		if m, ok := ch.Mesh().(*meshStats); ok {
			stats.Meshed++
			stats.Faces += m.faces
			stats.Vertices += m.vertices
		}
	}
	stats.Elapsed = time.Since(start)
	stats.Timers = profiling.TopN(5)
	return stats, nil
}
