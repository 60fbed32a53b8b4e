package main

import (
	"fmt"
	"math"
	"time"

	"crafter/internal/config"
	"crafter/internal/content"
	"crafter/internal/graphics"
	"crafter/internal/input"
	"crafter/internal/logger"
	"crafter/internal/meshing"
	"crafter/internal/profiling"
	"crafter/internal/registry"
	"crafter/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

const (
	moveSpeed        = 20.0
	mouseSensitivity = 0.1
)

func setupWindow(cfg *config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.WindowWidth, cfg.WindowHeight, cfg.WindowTitle, nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Disable V-Sync; we'll use our own FPS limiter
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// viewer owns the chunk store and everything that touches it. All of its
// methods run on the main goroutine.
type viewer struct {
	cfg      *config.Config
	window   *glfw.Window
	camera   *graphics.Camera
	renderer *graphics.Renderer
	store    *world.ChunkStore
	streamer *world.ChunkStreamer
	sched    *meshing.Scheduler
	blocks   *content.Content

	input        *input.Manager
	lastX, lastY float64
	firstMouse   bool
}

func runViewer(cfg *config.Config, c *content.Content) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	gen, err := world.NewGenerator(cfg.Generator, cfg.Seed, content.Palette(c.Registry))
	if err != nil {
		return err
	}

	camera := graphics.NewCamera(cfg.WindowWidth, cfg.WindowHeight)
	r, err := graphics.NewRenderer(c.Atlas, camera)
	if err != nil {
		return err
	}
	defer r.Dispose()

	store := world.NewChunkStore()
	camera.Position[1] = float32(gen.HeightAt(0, 0) + 4)

	sched := meshing.NewScheduler(store, c.Registry, meshing.SchedulerOptions{
		Workers:        cfg.MesherWorkers,
		QueueSize:      cfg.MeshQueueSize,
		Dedup:          cfg.DedupRequests,
		DebugTexCoords: cfg.DebugTexCoords,
	}, graphics.Uploader{})

	v := &viewer{
		cfg:        cfg,
		window:     window,
		camera:     camera,
		renderer:   r,
		store:      store,
		streamer:   world.NewChunkStreamer(store, gen),
		sched:      sched,
		blocks:     c,
		input:      input.NewManager(),
		firstMouse: true,
	}
	defer v.streamer.Close()
	defer v.sched.Shutdown()

	w, h := window.GetFramebufferSize()
	r.SetViewport(w, h)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.SetViewport(width, height)
	})
	window.SetCursorPosCallback(v.onCursor)
	v.input.SetKeyCallback(window)

	// Initial spawn area is generated synchronously
	spawn := world.ChunkOf(0, 0)
	for _, coord := range v.streamer.StreamAroundSync(spawn.X, spawn.Z, 2) {
		v.sched.Request(coord.X, coord.Z, true)
	}

	v.loop()
	v.releaseAll()
	return nil
}

func (v *viewer) loop() {
	limiter := NewFPSLimiter(v.cfg.FPSLimit)
	last := time.Now()
	frames := 0
	fpsTimer := last

	for !v.window.ShouldClose() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		v.handleKeys(dt)
		v.update()
		v.renderer.Render(v.store)

		v.window.SwapBuffers()
		glfw.PollEvents()

		frames++
		if now.Sub(fpsTimer) >= time.Second {
			drawn, culled := v.renderer.Stats()
			st := v.sched.Stats()
			logger.Log.Debug("frame stats",
				zap.Int("fps", frames),
				zap.Int("chunks", v.store.Len()),
				zap.Int("drawn", drawn),
				zap.Int("culled", culled),
				zap.Int("queued", v.sched.Queue().Len()),
				zap.Int("in_flight", v.sched.InFlight()),
				zap.Int("applied", st.Applied),
				zap.Int("stale", st.Stale))
			frames = 0
			fpsTimer = now
		}

		limiter.Wait()
	}
}

// update streams chunks around the camera, feeds the mesh scheduler and
// evicts chunks that fell out of range.
func (v *viewer) update() {
	center := world.ChunkOf(floor(v.camera.Position[0]), floor(v.camera.Position[2]))
	radius := config.GetRenderDistance()

	v.streamer.StreamAroundAsync(center.X, center.Z, radius)
	for _, coord := range v.streamer.Collect() {
		// neighbors gain a new edge, so their meshes are rebuilt too
		v.sched.Request(coord.X, coord.Z, true)
	}

	v.sched.Poll(v.cfg.MeshBudget)
	v.sched.Drain(nil)

	evictFarChunks(v.streamer, v.store, v.sched, center, config.GetChunkEvictRadius())
}

func (v *viewer) handleKeys(dt float32) {
	in := v.input
	if in.JustPressed(input.ActionQuit) {
		v.window.SetShouldClose(true)
	}

	step := moveSpeed * dt
	v.camera.Move(
		in.Axis(input.ActionMoveForward, input.ActionMoveBackward)*step,
		in.Axis(input.ActionMoveRight, input.ActionMoveLeft)*step,
		in.Axis(input.ActionAscend, input.ActionDescend)*step,
	)

	if in.JustPressed(input.ActionPlacePillar) {
		v.placePillar()
	}
	if in.JustPressed(input.ActionRemeshAll) {
		for _, ch := range v.store.AllChunks() {
			v.sched.Request(ch.X, ch.Z, false)
		}
	}
	if in.JustPressed(input.ActionToggleProfiling) {
		logger.Log.Info("timers", zap.String("top", profiling.TopN(8)))
	}
	in.PostUpdate()
}

// placePillar fills the column below the camera with stone and rebuilds the
// touched chunk and its neighbors.
func (v *viewer) placePillar() {
	stone := content.Palette(v.blocks.Registry).Stone
	top := min(floor(v.camera.Position[1])-2, world.ChunkSizeY-1)
	if stone == registry.AirID || top < 0 {
		return
	}
	x, z := floor(v.camera.Position[0]), floor(v.camera.Position[2])
	coord := world.ChunkOf(x, z)
	for y := 0; y <= top; y++ {
		v.store.SetBlock(x, y, z, stone)
	}
	v.sched.Request(coord.X, coord.Z, true)
}

func (v *viewer) onCursor(_ *glfw.Window, xpos, ypos float64) {
	if v.firstMouse {
		v.lastX, v.lastY = xpos, ypos
		v.firstMouse = false
		return
	}
	dx, dy := xpos-v.lastX, v.lastY-ypos
	v.lastX, v.lastY = xpos, ypos
	v.camera.Turn(float32(dx*mouseSensitivity), float32(dy*mouseSensitivity))
}

func (v *viewer) releaseAll() {
	for _, ch := range v.store.AllChunks() {
		if old := ch.SetMesh(nil); old != nil {
			old.Release()
		}
	}
}

func floor(f float32) int {
	return int(math.Floor(float64(f)))
}
