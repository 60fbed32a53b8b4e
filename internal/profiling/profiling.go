package profiling

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Lightweight named timers for mesh build and scheduling insights.

type entry struct {
	total time.Duration
	calls int
}

var (
	mu      sync.Mutex
	entries = make(map[string]*entry)
)

// Track returns a stop function that records the elapsed time under the given name.
// Usage: defer profiling.Track("meshing.BuildChunkMesh")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		e := entries[name]
		if e == nil {
			e = &entry{}
			entries[name] = e
		}
		e.total += d
		e.calls++
		mu.Unlock()
	}
}

// Reset clears all totals.
func Reset() {
	mu.Lock()
	clear(entries)
	mu.Unlock()
}

// Stat is one timer's accumulated totals.
type Stat struct {
	Name  string
	Total time.Duration
	Calls int
}

// Average returns the mean duration per call.
func (s Stat) Average() time.Duration {
	if s.Calls == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Calls)
}

// Snapshot returns a copy of current totals, largest first.
func Snapshot() []Stat {
	mu.Lock()
	out := make([]Stat, 0, len(entries))
	for name, e := range entries {
		out = append(out, Stat{Name: name, Total: e.total, Calls: e.calls})
	}
	mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopN formats the n largest totals.
// Example: "meshing.BuildChunkMesh:4.2ms/12, world.EvictFarChunks:0.1ms/1"
func TopN(n int) string {
	stats := Snapshot()
	n = min(n, len(stats))
	parts := make([]string, 0, n)
	for _, s := range stats[:n] {
		ms := float64(s.Total.Microseconds()) / 1000.0
		parts = append(parts, fmt.Sprintf("%s:%.1fms/%d", s.Name, ms, s.Calls))
	}
	return strings.Join(parts, ", ")
}
