package main

import (
	"flag"
	"os"
	"runtime"

	"crafter/internal/config"
	"crafter/internal/content"
	"crafter/internal/logger"

	"github.com/xlab/closer"
	"go.uber.org/zap"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "config.json", "path of the JSON config file")
	contentDir := flag.String("content", "", "content directory (overrides the config)")
	generator := flag.String("generator", "", "terrain generator: flat, simplex or perlin (overrides the config)")
	radius := flag.Int("radius", 0, "render distance in chunks (overrides the config)")
	headless := flag.Bool("headless", false, "mesh the area around the origin, print stats and exit")
	debug := flag.Bool("debug", false, "debug logging and debug texture coordinates")
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		panic(err)
	}
	// Flush logs on Ctrl-C as well as on a normal exit.
	closer.Bind(logger.Sync)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatal("load config", zap.Error(err))
	}
	if *contentDir != "" {
		cfg.ContentDir = *contentDir
	}
	if *generator != "" {
		cfg.Generator = *generator
	}
	if *radius > 0 {
		cfg.RenderDistance = *radius
	}
	if *debug {
		cfg.Debug = true
		cfg.DebugTexCoords = true
	}
	config.SetRenderDistance(cfg.RenderDistance)

	c, err := loadContent(cfg.ContentDir)
	if err != nil {
		logger.Log.Fatal("load content", zap.String("dir", cfg.ContentDir), zap.Error(err))
	}
	logger.Log.Info("content loaded",
		zap.Int("blocks", c.Registry.Len()),
		zap.Int("textures", len(c.Atlas.Frames)),
		zap.Int("atlas_width", c.Atlas.Image.Bounds().Dx()),
		zap.Int("atlas_height", c.Atlas.Image.Bounds().Dy()))

	if *headless {
		stats, err := runHeadless(cfg, c, config.GetRenderDistance())
		if err != nil {
			logger.Log.Fatal("headless run", zap.Error(err))
		}
		logger.Log.Info("headless run finished",
			zap.Int("chunks", stats.Chunks),
			zap.Int("meshed", stats.Meshed),
			zap.Int("faces", stats.Faces),
			zap.Int("vertices", stats.Vertices),
			zap.Int("stale", stats.Stale),
			zap.Duration("elapsed", stats.Elapsed),
			zap.String("timers", stats.Timers))
	} else if err := runViewer(cfg, c); err != nil {
		logger.Log.Fatal("viewer", zap.Error(err))
	}

	// Runs the bound cleanup and exits.
	closer.Close()
}

// loadContent reads the content directory, or falls back to the built-in
// blocks when it does not exist.
func loadContent(dir string) (*content.Content, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		logger.Log.Warn("content directory not found, using built-in blocks", zap.String("dir", dir))
		return content.Builtin()
	}
	return content.NewLoader(dir).Load()
}
