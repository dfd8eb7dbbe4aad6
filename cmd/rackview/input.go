package main

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"rackview/internal/config"
	"rackview/internal/engine"
	"rackview/internal/graphics"
	"rackview/internal/layout"
	"rackview/internal/material"
	"rackview/internal/rack"
	"rackview/pkg/rackcfg"
)

// app bundles the pieces the input handlers mutate.
type app struct {
	cfg     *rackcfg.Config
	eng     *engine.Engine
	cam     *graphics.OrbitCamera
	mats    *material.Cache
	geom    layout.Geometry
	onStats func(engine.FrameStats)

	ruleCounter int
}

func setupInputHandlers(window *glfw.Window, a *app) {
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		a.cam.Zoom(float32(-yoff) * 4)
	})

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyM:
			a.toggleMode()
		case glfw.KeyL:
			a.eng.AutoLOD = !a.eng.AutoLOD
			log.Printf("auto-LOD: %v", a.eng.AutoLOD)
		case glfw.KeyP:
			config.SetShowMissing(!config.GetShowMissing())
			a.eng.Invalidate()
			log.Printf("placeholders: %v", config.GetShowMissing())
		case glfw.KeyR:
			a.mutateRule()
		}
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		winW, winH := w.GetSize()
		a.cam.SetViewport(winW, winH)
	})
}

// applyHeldKeys processes continuous orbit controls once per frame.
func (a *app) applyHeldKeys(window *glfw.Window, dt float64) {
	speed := float32(dt) * 1.5
	if window.GetKey(glfw.KeyLeft) == glfw.Press || window.GetKey(glfw.KeyA) == glfw.Press {
		a.cam.Orbit(-speed, 0)
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press || window.GetKey(glfw.KeyD) == glfw.Press {
		a.cam.Orbit(speed, 0)
	}
	if window.GetKey(glfw.KeyUp) == glfw.Press || window.GetKey(glfw.KeyW) == glfw.Press {
		a.cam.Orbit(0, speed)
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press || window.GetKey(glfw.KeyS) == glfw.Press {
		a.cam.Orbit(0, -speed)
	}
}

// toggleMode swaps the build strategy. The strategy is fixed per builder,
// so the engine is rebuilt around a fresh one.
func (a *app) toggleMode() {
	mode := rack.ModeInstanced
	if a.eng.Builder().Mode() == rack.ModeInstanced {
		mode = rack.ModeRegular
	}
	auto := a.eng.AutoLOD
	a.eng.Builder().Dispose()
	a.eng = engine.New(mode, a.geom, a.mats, a.onStats)
	a.eng.AutoLOD = auto
	a.eng.SetConfiguration(a.cfg.Shape(), a.cfg.MissingRules(), a.cfg.TypeRules())
	log.Printf("build mode: %s", mode)
}

// mutateRule narrows one slot to a fresh type, exercising the incremental
// rebuild path: only the touched module or bucket should be rebuilt.
func (a *app) mutateRule() {
	a.ruleCounter++
	module := a.ruleCounter % a.cfg.ModulesPerAisle
	// Prepended so it wins over broader rules: first match wins.
	rule := rackcfg.RuleSpec{
		Aisle:    rackcfg.FlexInts{0},
		Level:    rackcfg.FlexInts{0},
		Module:   rackcfg.FlexInts{module},
		Position: rackcfg.FlexInts{0},
		Depth:    rackcfg.FlexInts{0},
		Type:     fmt.Sprintf("Special%d", a.ruleCounter),
	}
	a.cfg.LocationTypes = append([]rackcfg.RuleSpec{rule}, a.cfg.LocationTypes...)
	a.eng.SetConfiguration(a.cfg.Shape(), a.cfg.MissingRules(), a.cfg.TypeRules())
	log.Printf("added type rule #%d on module %d", a.ruleCounter, module)
}
