package main

import (
	"crafter/internal/meshing"
	"crafter/internal/world"
)

// evictFarChunks drops the chunks outside radius of center and releases their
// meshes. Loaded neighbors of a dropped chunk are rebuilt without cascade:
// their border faces were culled against it and must now show.
func evictFarChunks(streamer *world.ChunkStreamer, store *world.ChunkStore, sched *meshing.Scheduler, center world.ChunkCoord, radius int) int {
	evicted := streamer.EvictFarChunks(center.X, center.Z, radius)
	for _, ch := range evicted {
		if old := ch.SetMesh(nil); old != nil {
			old.Release()
		}
	}
	for _, ch := range evicted {
		for _, n := range ch.Coord().Neighbors() {
			if store.HasChunk(n) {
				sched.Request(n.X, n.Z, false)
			}
		}
	}
	return len(evicted)
}
