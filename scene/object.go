package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
)

// Object is one renderable entity in the scene arena.
//
// WorldMatrices holds one world matrix per in-flight frame. Exactly one slot
// is current for drawing in a given frame: the frame's rotating buffer index
// for dynamic objects, or slot 0 unconditionally for static objects (whose
// matrix is computed once and never rewritten). Writing only the current
// slot keeps the update pass off matrices the presentation hardware may
// still be reading from a previous frame.
type Object struct {
	Name      string
	Transform core.Transform

	// Static objects read and write slot 0 only.
	Static  bool
	Visible bool
	Removed bool

	// Local-space bounds, pre-scaled to world units by the importer.
	BoundsMin mgl32.Vec3
	BoundsMax mgl32.Vec3

	// WorldAABB is a derived cache, never authored: it is only valid for the
	// last transform state whose dirty counter drained through the update
	// pass.
	WorldAABB AABB

	// MeshRef is the authored mesh reference ("cube", "quad", or an asset
	// path). Kept so a saved scene can resolve its geometry again on reload.
	MeshRef string

	// DrawList is nil when the source asset failed to load; the object is
	// then skipped at draw dispatch every frame.
	DrawList *DrawList

	WorldMatrices [FrameBufferCount]mgl32.Mat4
}

// MatrixSlot returns the matrix slot the object reads and writes for the
// given frame buffer index.
func (o *Object) MatrixSlot(bufferIndex int) int {
	if o.Static {
		return 0
	}
	return bufferIndex % FrameBufferCount
}

// MarkDirty arms the transform's refresh counter so every buffered matrix
// slot is rewritten over the next FrameBufferCount update passes.
func (o *Object) MarkDirty() {
	o.Transform.Dirty = FrameBufferCount
}

func (o *Object) SetPosition(p mgl32.Vec3) {
	o.Transform.Position = p
	o.MarkDirty()
}

func (o *Object) SetRotation(q mgl32.Quat) {
	o.Transform.Rotation = q
	o.MarkDirty()
}

func (o *Object) SetScale(s mgl32.Vec3) {
	o.Transform.Scale = s
	o.MarkDirty()
}

// UpdateWorldAABB recomputes the cached world-space AABB from the local
// bounds and the current orientation. Per output axis the min and max
// extents start at the world position and accumulate, for each source axis,
// the smaller and larger of m[i][j]*BoundsMin[j] and m[i][j]*BoundsMax[j].
// This bounds a rotated box exactly without transforming its 8 corners.
func (o *Object) UpdateWorldAABB() {
	m := o.Transform.Rotation.Mat4()
	pos := o.Transform.Position

	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = pos[i]
		box.Max[i] = pos[i]
		for j := 0; j < 3; j++ {
			a := m.At(i, j) * o.BoundsMin[j]
			b := m.At(i, j) * o.BoundsMax[j]
			if a < b {
				box.Min[i] += a
				box.Max[i] += b
			} else {
				box.Min[i] += b
				box.Max[i] += a
			}
		}
	}
	o.WorldAABB = box
}
