package scene

// DrawList is the opaque handle to an object's precompiled draw commands.
// A nil DrawList on an object means its source asset failed to load; that is
// a tolerated condition, the object is simply never drawn.
type DrawList struct {
	Mesh *Mesh

	// GPUData is set by the renderer backend on first submission
	// (e.g. *opengl.GPUMesh). Do not access directly.
	GPUData interface{}
}

func NewDrawList(mesh *Mesh) *DrawList {
	if mesh == nil {
		return nil
	}
	return &DrawList{Mesh: mesh}
}
