package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sync"
)

// Config holds the settings of the viewer and the mesh pipeline.
type Config struct {
	// Window
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	FPSLimit     int    `json:"fps_limit"` // 0 disables the limiter

	// Content and terrain. Generator is one of "flat", "simplex" or "perlin".
	ContentDir string `json:"content_dir"`
	Seed       int64  `json:"seed"`
	Generator  string `json:"generator"`

	// Meshing. MesherWorkers of 0 builds on the main goroutine; MeshBudget
	// is the number of queue entries handled per frame.
	MesherWorkers  int  `json:"mesher_workers"`
	MeshQueueSize  int  `json:"mesh_queue_size"`
	MeshBudget     int  `json:"mesh_budget"`
	DedupRequests  bool `json:"dedup_requests"`
	DebugTexCoords bool `json:"debug_tex_coords"`

	RenderDistance int  `json:"render_distance"` // in chunks
	Debug          bool `json:"debug"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "crafter",
		FPSLimit:     120,

		ContentDir: "content",
		Seed:       1,
		Generator:  "simplex",

		MesherWorkers: max(runtime.NumCPU()-1, 1),
		MeshQueueSize: 64,
		MeshBudget:    32,

		RenderDistance: 6,
	}
}

// Load reads a JSON config file over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) normalize() {
	c.FPSLimit = max(c.FPSLimit, 0)
	c.MesherWorkers = max(c.MesherWorkers, 0)
	c.MeshQueueSize = max(c.MeshQueueSize, 1)
	c.MeshBudget = max(c.MeshBudget, 1)
	c.RenderDistance = clampRenderDistance(c.RenderDistance)
	if c.Generator == "" {
		c.Generator = "simplex"
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		c.WindowWidth, c.WindowHeight = 1280, 720
	}
}

// Render distance limits in chunks
const (
	MinRenderDistance = 1
	MaxRenderDistance = 32
)

// RenderSettings holds render configuration
type RenderSettings struct {
	mu             sync.RWMutex
	renderDistance int // in chunks
}

var globalRenderSettings = &RenderSettings{
	renderDistance: 6, // default value
}

// GetRenderDistance returns the current render distance in chunks
func GetRenderDistance() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.renderDistance
}

// SetRenderDistance sets the render distance in chunks
func SetRenderDistance(distance int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.renderDistance = clampRenderDistance(distance)
}

func clampRenderDistance(distance int) int {
	return max(MinRenderDistance, min(distance, MaxRenderDistance))
}

// GetChunkEvictRadius returns radius for chunk eviction (larger than load radius)
func GetChunkEvictRadius() int {
	return GetRenderDistance() + 2
}
