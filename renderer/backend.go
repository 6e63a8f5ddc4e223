package renderer

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
	"scene-engine/scene"
)

// Backend is the presentation/graphics collaborator the engine drives once
// per frame. Implementations must tolerate any call order within the
// begin/end bracket; the engine guarantees BeginFrame is first and EndFrame
// last.
type Backend interface {
	// BeginFrame configures the viewport's view and projection for the frame.
	BeginFrame(view, proj mgl32.Mat4)

	// Per-frame global state.
	ClearColor(c core.Color)
	ClearDepth()
	SetDrawFlags(depthTest, cullBack bool)

	// Lighting state. SetLightCount is always called, even with zero lights,
	// so a previous frame's light set never leaks into this one.
	SetAmbientLight(c core.Color)
	SetLightCount(n int)
	SetDirectionalLight(index int, c core.Color, dir mgl32.Vec3)

	// Per-object draw submission.
	BindWorldMatrix(m mgl32.Mat4)
	SubmitDrawList(dl *scene.DrawList)

	// EndFrame presents the completed frame.
	EndFrame()
}

// DebugDrawer is an optional collaborator (e.g. a physics debug overlay)
// invoked after the draw pass, before the frame is presented.
type DebugDrawer interface {
	DrawDebug(view, proj mgl32.Mat4)
}
