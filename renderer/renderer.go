package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/scene"
)

// frameState carries the per-frame values each stage needs. The buffer
// index is passed explicitly rather than read from package state so the
// update and draw passes always agree on which matrix slot is current.
type frameState struct {
	bufferIndex int
	view        mgl32.Mat4
	proj        mgl32.Mat4
	frustum     scene.Frustum
}

// Engine drives the per-frame scene-update-and-draw pipeline over a Backend.
//
// It owns the rotating frame-buffer index for the renderer's lifetime. All
// work is single-threaded and runs to completion within RenderFrame; scene
// mutation must happen between frames.
type Engine struct {
	backend Backend
	Scene   *scene.Scene

	// Aspect is the viewport width/height used for the projection matrix.
	Aspect float32

	// DrawAABBs draws a wireframe box around every drawn object's cached
	// world AABB.
	DrawAABBs bool

	debugDrawer DebugDrawer

	frameIndex int

	// Per-frame stats (populated during RenderFrame)
	lastVisible int
	lastCulled  int

	aabbDrawList *scene.DrawList // unit-cube wireframe, created on first AABB draw
}

func New(backend Backend) *Engine {
	return &Engine{
		backend: backend,
		Aspect:  16.0 / 9.0,
	}
}

func (e *Engine) SetScene(s *scene.Scene) {
	e.Scene = s
}

// SetDebugDrawer installs an optional end-of-frame debug collaborator,
// resolved once at startup rather than checked per call site.
func (e *Engine) SetDebugDrawer(d DebugDrawer) {
	e.debugDrawer = d
}

// RenderFrame runs one full frame: begin-frame, buffer-index advance,
// per-object update pass, render-state setup, cull+draw pass, optional
// debug draw, end-frame. Malformed per-object data degrades to "not drawn
// this frame"; the only hard error is a missing scene or camera.
func (e *Engine) RenderFrame() error {
	s := e.Scene
	if s == nil || s.ActiveCam() == nil {
		return fmt.Errorf("no scene or camera")
	}
	cam := s.ActiveCam()

	fs := frameState{
		view: cam.ViewMatrix(),
		proj: cam.ProjectionMatrix(e.Aspect),
	}
	e.backend.BeginFrame(fs.view, fs.proj)

	// Advance the rotating buffer index before the update pass so dynamic
	// objects write the slot this frame will draw from.
	e.frameIndex = (e.frameIndex + 1) % scene.FrameBufferCount
	fs.bufferIndex = e.frameIndex

	e.updateObjects(&fs)

	e.backend.ClearColor(s.World.ClearColor)
	e.backend.ClearDepth()
	e.backend.SetDrawFlags(true, true)

	e.backend.SetAmbientLight(s.World.Ambient)
	e.backend.SetLightCount(s.LightCount)
	for i := 0; i < s.LightCount; i++ {
		l := &s.Lights[i]
		e.backend.SetDirectionalLight(i, l.Color, l.Direction)
	}

	fs.frustum = scene.FrustumFromVP(fs.proj.Mul4(fs.view))

	visible, culled := 0, 0
	for i := 0; i < s.ObjectCount; i++ {
		obj := &s.Objects[i]
		if obj.Removed || !obj.Visible {
			continue
		}

		// Cached world AABB — refreshed by the update pass only while the
		// dirty counter is draining, never recomputed here.
		if !obj.WorldAABB.IntersectsFrustum(&fs.frustum) {
			culled++
			continue
		}

		// Asset failed to load upstream; skip, not an error.
		if obj.DrawList == nil {
			continue
		}

		e.backend.BindWorldMatrix(obj.WorldMatrices[obj.MatrixSlot(fs.bufferIndex)])
		e.backend.SubmitDrawList(obj.DrawList)
		visible++
	}
	e.lastVisible = visible
	e.lastCulled = culled

	if e.DrawAABBs {
		e.drawAABBs(&fs)
	}
	if e.debugDrawer != nil {
		e.debugDrawer.DrawDebug(fs.view, fs.proj)
	}

	e.backend.EndFrame()
	return nil
}

// updateObjects is the per-frame update pass: for every non-removed object
// whose dirty counter is non-zero, refresh the current frame's matrix slot
// and the cached world AABB, then decrement the counter by one. An object
// armed with dirty = FrameBufferCount therefore has all slots refreshed
// after FrameBufferCount frames, after which updates stop until the next
// authored change.
func (e *Engine) updateObjects(fs *frameState) {
	s := e.Scene
	for i := 0; i < s.ObjectCount; i++ {
		obj := &s.Objects[i]
		if obj.Removed {
			continue
		}
		if obj.Transform.Dirty == 0 {
			continue
		}

		// Invalid numeric state (e.g. upstream animation or physics fault):
		// reset the position, hide the object, and skip the refresh so NaN
		// never reaches the matrix or bounding-volume math.
		if !obj.Transform.IsSafe() {
			obj.Transform.Position = mgl32.Vec3{}
			obj.Visible = false
			obj.Transform.Dirty--
			continue
		}

		slot := obj.MatrixSlot(fs.bufferIndex)
		obj.WorldMatrices[slot] = obj.Transform.Matrix()
		obj.UpdateWorldAABB()
		obj.Transform.Dirty--
	}
}

// DrawStats returns counts from the most recent RenderFrame call.
func (e *Engine) DrawStats() (visible, culled int) {
	return e.lastVisible, e.lastCulled
}

// drawAABBs submits a wireframe unit cube scaled and translated to each
// drawn object's cached world AABB. The box mesh is created lazily.
func (e *Engine) drawAABBs(fs *frameState) {
	if e.aabbDrawList == nil {
		e.aabbDrawList = scene.NewDrawList(scene.CreateUnitBoxWireframe())
	}

	s := e.Scene
	for i := 0; i < s.ObjectCount; i++ {
		obj := &s.Objects[i]
		if obj.Removed || !obj.Visible || obj.DrawList == nil {
			continue
		}
		box := obj.WorldAABB

		center := box.Min.Add(box.Max).Mul(0.5)
		half := box.Max.Sub(box.Min).Mul(0.5)

		m := mgl32.Translate3D(center.X(), center.Y(), center.Z()).
			Mul4(mgl32.Scale3D(half.X(), half.Y(), half.Z()))

		e.backend.BindWorldMatrix(m)
		e.backend.SubmitDrawList(e.aabbDrawList)
	}
}
