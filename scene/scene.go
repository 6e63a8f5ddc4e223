package scene

import (
	"fmt"

	"scene-engine/core"
)

// Capacity limits are fixed at scene-build time. Objects and lights live in
// arena-style arrays with a Removed tombstone flag instead of dynamic
// deletion, so indices stay valid mid-frame and nothing reallocates while a
// previous frame may still be in flight.
const (
	// FrameBufferCount is the number of concurrently in-flight frames, and
	// therefore the number of world-matrix slots per object.
	FrameBufferCount = 3

	MaxObjects = 64
	MaxLights  = 4
	MaxCameras = 4
)

// World holds the global render settings authored with the scene.
type World struct {
	ClearColor core.Color
	Ambient    core.Color
}

// Scene owns a fixed-capacity ordered set of objects, lights, and cameras.
// Insertion order is draw/update order and is stable across frames. The
// render loop reads and updates it in place; authoring mutations must happen
// between frames, never interleaved with an update or draw pass.
type Scene struct {
	Name string

	Objects     [MaxObjects]Object
	ObjectCount int

	Lights     [MaxLights]Light
	LightCount int

	Cameras      [MaxCameras]Camera
	CameraCount  int
	ActiveCamera int

	World World
}

func NewScene(name string) *Scene {
	return &Scene{
		Name: name,
		World: World{
			ClearColor: core.Color{R: 0.1, G: 0.1, B: 0.12, A: 1},
			Ambient:    core.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		},
	}
}

// AddObject claims the next object slot and returns a pointer into the
// scene's arena. The object starts visible with an identity transform and
// its dirty counter armed, so every matrix slot and the world AABB get
// computed on the following frames.
func (s *Scene) AddObject(name string) (*Object, error) {
	if s.ObjectCount >= MaxObjects {
		return nil, fmt.Errorf("scene %q: object capacity %d exceeded", s.Name, MaxObjects)
	}
	obj := &s.Objects[s.ObjectCount]
	s.ObjectCount++

	*obj = Object{
		Name:      name,
		Transform: core.NewTransform(),
		Visible:   true,
	}
	obj.MarkDirty()
	return obj, nil
}

// RemoveObject tombstones an object. The slot is not reused or compacted;
// the update and draw passes skip it from then on.
func (s *Scene) RemoveObject(obj *Object) {
	obj.Removed = true
	obj.Visible = false
}

func (s *Scene) AddLight(l Light) error {
	if s.LightCount >= MaxLights {
		return fmt.Errorf("scene %q: light capacity %d exceeded", s.Name, MaxLights)
	}
	s.Lights[s.LightCount] = l
	s.LightCount++
	return nil
}

// AddCamera appends a camera and returns its index.
func (s *Scene) AddCamera(c Camera) (int, error) {
	if s.CameraCount >= MaxCameras {
		return 0, fmt.Errorf("scene %q: camera capacity %d exceeded", s.Name, MaxCameras)
	}
	idx := s.CameraCount
	s.Cameras[idx] = c
	s.CameraCount++
	return idx, nil
}

// ActiveCam returns the active camera, or nil when the scene has none.
func (s *Scene) ActiveCam() *Camera {
	if s.CameraCount == 0 {
		return nil
	}
	if s.ActiveCamera < 0 || s.ActiveCamera >= s.CameraCount {
		return &s.Cameras[0]
	}
	return &s.Cameras[s.ActiveCamera]
}
