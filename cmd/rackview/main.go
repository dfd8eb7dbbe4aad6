package main

import (
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"rackview/internal/engine"
	"rackview/internal/graphics"
	"rackview/internal/layout"
	"rackview/internal/material"
	"rackview/internal/profiling"
	"rackview/internal/rack"
	"rackview/pkg/rackcfg"
)

func init() {
	runtime.LockOSThread()
}

const (
	winW = 1280
	winH = 800
)

func main() {
	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("window setup: %v", err)
	}

	cfg := sampleConfig()
	shape := cfg.Shape()

	mats := material.NewCache()
	geom := layout.DefaultGeometry(shape.StorageDepth)

	var latest engine.FrameStats
	onStats := func(fs engine.FrameStats) { latest = fs }
	eng := engine.New(rack.ModeInstanced, geom, mats, onStats)
	eng.SetConfiguration(shape, cfg.MissingRules(), cfg.TypeRules())

	center := mgl32.Vec3{
		float32(shape.ModulesPerAisle) * geom.ModuleWidth(shape.LocationsPerModule) / 2,
		0,
		float32(shape.Aisles-1) * geom.AislePitch() / 2,
	}
	cam := graphics.NewOrbitCamera(center, 90, winW, winH)

	renderer := graphics.NewRackRenderer()
	if err := renderer.Init(); err != nil {
		log.Fatalf("renderer init: %v", err)
	}
	defer renderer.Dispose()

	app := &app{cfg: cfg, eng: eng, cam: cam, mats: mats, geom: geom, onStats: onStats}
	setupInputHandlers(window, app)

	limiter := engine.NewFPSLimiter()
	lastFrame := time.Now()
	lastLog := time.Now()

	log.Printf("rackview: %d slots, instanced mode (M toggles, L auto-LOD, P placeholders, R mutate rule)",
		shape.SlotCount())

	for !window.ShouldClose() {
		profiling.ResetFrame()

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		glfw.PollEvents()
		app.applyHeldKeys(window, dt)

		app.eng.Step(cam, dt)

		gl.ClearColor(0.09, 0.1, 0.12, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		gl.Enable(gl.DEPTH_TEST)
		renderer.Render(cam, app.eng.Root())

		window.SwapBuffers()
		limiter.Wait()

		if time.Since(lastLog) >= time.Second {
			lastLog = time.Now()
			log.Printf("build[%s reused=%d rebuilt=%d %.1fms] cull[%d/%d cells=%d ratio=%.2f] lod[%s %.1fms] | %s",
				latest.Build.Mode, latest.Build.Reused, latest.Build.Rebuilt,
				float64(latest.Build.Duration.Microseconds())/1000,
				latest.Cull.VisibleObjects, latest.Cull.TotalObjects,
				latest.Cull.SpatialCells, latest.Cull.CullRatio,
				latest.LOD.CurrentLOD, latest.LOD.FrameTime,
				profiling.TopN(3))
		}
	}
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "rackview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, err
	}

	// Disable V-Sync; the FPS limiter paces frames
	glfw.SwapInterval(0)
	return window, nil
}

// sampleConfig is a mid-sized warehouse exercising both rule kinds.
func sampleConfig() *rackcfg.Config {
	return &rackcfg.Config{
		Aisles:             6,
		ModulesPerAisle:    24,
		LocationsPerModule: 3,
		StorageDepth:       2,
		LevelsPerAisle:     []int{8, 8, 10, 10, 8, 8},
		MissingLocations: []rackcfg.RuleSpec{
			{Aisle: rackcfg.FlexInts{2}, Module: rackcfg.FlexInts{0}, Level: rackcfg.FlexInts{0}},
		},
		LocationTypes: []rackcfg.RuleSpec{
			{Level: rackcfg.FlexInts{0}, Type: "Pick"},
			{Aisle: rackcfg.FlexInts{0, 5}, Module: rackcfg.FlexInts{23}, Type: "Buffer"},
		},
	}
}
