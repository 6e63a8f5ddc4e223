package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
	"scene-engine/internal/opengl"
	"scene-engine/io"
	"scene-engine/renderer"
	"scene-engine/scene"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "preview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	window, err := core.NewWindow(core.DefaultWindowConfig())
	if err != nil {
		return err
	}
	defer window.Destroy()

	backend, err := opengl.NewRenderer(window)
	if err != nil {
		return err
	}
	defer backend.Destroy()

	var s *scene.Scene
	if len(os.Args) > 1 {
		s, err = io.LoadScene(os.Args[1])
		if err != nil {
			return err
		}
	} else {
		s, err = demoScene()
		if err != nil {
			return err
		}
	}

	engine := renderer.New(backend)
	engine.SetScene(s)

	var spinner *scene.Object
	for i := 0; i < s.ObjectCount; i++ {
		if !s.Objects[i].Static {
			spinner = &s.Objects[i]
			break
		}
	}

	last := time.Now()
	angle := float32(0)
	titleAt := time.Now()
	spaceHeld := false

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		// Space toggles the AABB overlay on key press, not while held.
		if window.IsKeyPressed(core.KeySpace) {
			if !spaceHeld {
				engine.DrawAABBs = !engine.DrawAABBs
			}
			spaceHeld = true
		} else {
			spaceHeld = false
		}

		// Scene mutation happens here, between frames, never inside one.
		if cam := s.ActiveCam(); cam != nil {
			const orbitSpeed = 1.5 // radians per second
			yaw := float32(0)
			if window.IsKeyPressed(core.KeyLeft) {
				yaw += orbitSpeed * dt
			}
			if window.IsKeyPressed(core.KeyRight) {
				yaw -= orbitSpeed * dt
			}
			if yaw != 0 {
				cam.Position = mgl32.QuatRotate(yaw, mgl32.Vec3{0, 1, 0}).Rotate(cam.Position)
			}
		}
		if spinner != nil {
			angle += dt
			spinner.SetRotation(mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0}))
		}

		engine.Aspect = window.AspectRatio()
		if err := engine.RenderFrame(); err != nil {
			return err
		}

		if now.Sub(titleAt) > 500*time.Millisecond {
			visible, culled := engine.DrawStats()
			window.SetTitle(fmt.Sprintf("%s — drawn %d culled %d", s.Name, visible, culled))
			titleAt = now
		}
	}
	return nil
}

// demoScene builds a small scene when no scene file is given: a static
// ground quad, a spinning cube, and one directional light.
func demoScene() (*scene.Scene, error) {
	s := scene.NewScene("demo")

	cam := scene.NewCamera(60, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 2, 6}
	cam.Target = mgl32.Vec3{0, 0, 0}
	if _, err := s.AddCamera(cam); err != nil {
		return nil, err
	}

	if err := s.AddLight(scene.Light{
		Color:     core.ColorWhite,
		Direction: mgl32.Vec3{-0.4, -1, -0.3}.Normalize(),
	}); err != nil {
		return nil, err
	}

	ground, err := s.AddObject("ground")
	if err != nil {
		return nil, err
	}
	ground.Static = true
	ground.Transform.Position = mgl32.Vec3{0, -1, 0}
	ground.Transform.Rotation = mgl32.QuatRotate(-mgl32.DegToRad(90), mgl32.Vec3{1, 0, 0})
	ground.Transform.Scale = mgl32.Vec3{10, 10, 1}
	ground.BoundsMin = mgl32.Vec3{-5, -5, 0}
	ground.BoundsMax = mgl32.Vec3{5, 5, 0}
	ground.MeshRef = "quad"
	ground.DrawList = scene.NewDrawList(scene.CreateQuad())
	ground.MarkDirty()

	cube, err := s.AddObject("cube")
	if err != nil {
		return nil, err
	}
	cube.BoundsMin = mgl32.Vec3{-0.5, -0.5, -0.5}
	cube.BoundsMax = mgl32.Vec3{0.5, 0.5, 0.5}
	cube.MeshRef = "cube"
	cube.DrawList = scene.NewDrawList(scene.CreateCube(1))

	return s, nil
}
