package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddObjectArmsDirty(t *testing.T) {
	s := NewScene("test")
	obj, err := s.AddObject("a")
	require.NoError(t, err)

	assert.Equal(t, FrameBufferCount, obj.Transform.Dirty)
	assert.True(t, obj.Visible)
	assert.False(t, obj.Removed)
}

func TestAddObjectCapacity(t *testing.T) {
	s := NewScene("test")
	for i := 0; i < MaxObjects; i++ {
		_, err := s.AddObject("obj")
		require.NoError(t, err)
	}
	_, err := s.AddObject("overflow")
	assert.Error(t, err)
}

func TestRemoveObjectTombstones(t *testing.T) {
	s := NewScene("test")
	obj, err := s.AddObject("a")
	require.NoError(t, err)

	s.RemoveObject(obj)
	assert.True(t, obj.Removed)
	assert.False(t, obj.Visible)
	// The slot is not reclaimed.
	assert.Equal(t, 1, s.ObjectCount)
}

func TestMatrixSlot(t *testing.T) {
	var static, dynamic Object
	static.Static = true

	for idx := 0; idx < FrameBufferCount*2; idx++ {
		assert.Equal(t, 0, static.MatrixSlot(idx))
		assert.Equal(t, idx%FrameBufferCount, dynamic.MatrixSlot(idx))
	}
}

func TestSettersArmDirty(t *testing.T) {
	var obj Object
	obj.Transform.Scale = mgl32.Vec3{1, 1, 1}

	obj.SetPosition(mgl32.Vec3{1, 0, 0})
	assert.Equal(t, FrameBufferCount, obj.Transform.Dirty)

	obj.Transform.Dirty = 0
	obj.SetRotation(mgl32.QuatIdent())
	assert.Equal(t, FrameBufferCount, obj.Transform.Dirty)

	obj.Transform.Dirty = 0
	obj.SetScale(mgl32.Vec3{2, 2, 2})
	assert.Equal(t, FrameBufferCount, obj.Transform.Dirty)
}

func TestUpdateWorldAABBIdentity(t *testing.T) {
	var obj Object
	obj.Transform.Rotation = mgl32.QuatIdent()
	obj.Transform.Position = mgl32.Vec3{1, 2, 3}
	obj.BoundsMin = mgl32.Vec3{-0.5, -0.5, -0.5}
	obj.BoundsMax = mgl32.Vec3{0.5, 0.5, 0.5}

	obj.UpdateWorldAABB()
	assert.Equal(t, mgl32.Vec3{0.5, 1.5, 2.5}, obj.WorldAABB.Min)
	assert.Equal(t, mgl32.Vec3{1.5, 2.5, 3.5}, obj.WorldAABB.Max)
}

func TestUpdateWorldAABBQuarterTurnExact(t *testing.T) {
	// 90° about Y swaps the X and Z extents of an axis-aligned box exactly.
	var obj Object
	obj.Transform.Position = mgl32.Vec3{1, 2, 3}
	obj.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	obj.BoundsMin = mgl32.Vec3{-0.5, -0.25, -1}
	obj.BoundsMax = mgl32.Vec3{0.5, 0.25, 1}

	obj.UpdateWorldAABB()

	wantMin := mgl32.Vec3{1 - 1, 2 - 0.25, 3 - 0.5}
	wantMax := mgl32.Vec3{1 + 1, 2 + 0.25, 3 + 0.5}
	for i := 0; i < 3; i++ {
		assert.InDelta(t, wantMin[i], obj.WorldAABB.Min[i], 1e-5)
		assert.InDelta(t, wantMax[i], obj.WorldAABB.Max[i], 1e-5)
	}
}

func TestUpdateWorldAABBHalfTurnExact(t *testing.T) {
	// 180° about any principal axis leaves an axis-aligned box unchanged.
	axes := []mgl32.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	for _, axis := range axes {
		var obj Object
		obj.Transform.Rotation = mgl32.QuatRotate(mgl32.DegToRad(180), axis)
		obj.BoundsMin = mgl32.Vec3{-1, -2, -3}
		obj.BoundsMax = mgl32.Vec3{1, 2, 3}

		obj.UpdateWorldAABB()
		for i := 0; i < 3; i++ {
			assert.InDelta(t, obj.BoundsMin[i], obj.WorldAABB.Min[i], 1e-5)
			assert.InDelta(t, obj.BoundsMax[i], obj.WorldAABB.Max[i], 1e-5)
		}
	}
}

func TestUpdateWorldAABBContainsRotatedCorners(t *testing.T) {
	// For an arbitrary rotation the accumulated AABB must equal the AABB of
	// the 8 transformed corners.
	q := mgl32.QuatRotate(0.7, mgl32.Vec3{1, 2, 3}.Normalize())

	var obj Object
	obj.Transform.Rotation = q
	obj.Transform.Position = mgl32.Vec3{-4, 5, 0.5}
	obj.BoundsMin = mgl32.Vec3{-0.5, -1, -2}
	obj.BoundsMax = mgl32.Vec3{0.5, 1, 2}
	obj.UpdateWorldAABB()

	var corners []mgl32.Vec3
	for _, x := range []float32{obj.BoundsMin.X(), obj.BoundsMax.X()} {
		for _, y := range []float32{obj.BoundsMin.Y(), obj.BoundsMax.Y()} {
			for _, z := range []float32{obj.BoundsMin.Z(), obj.BoundsMax.Z()} {
				corners = append(corners, q.Rotate(mgl32.Vec3{x, y, z}).Add(obj.Transform.Position))
			}
		}
	}
	min, max := corners[0], corners[0]
	for _, c := range corners[1:] {
		for i := 0; i < 3; i++ {
			if c[i] < min[i] {
				min[i] = c[i]
			}
			if c[i] > max[i] {
				max[i] = c[i]
			}
		}
	}

	for i := 0; i < 3; i++ {
		assert.InDelta(t, min[i], obj.WorldAABB.Min[i], 1e-4)
		assert.InDelta(t, max[i], obj.WorldAABB.Max[i], 1e-4)
	}
}

func TestActiveCam(t *testing.T) {
	s := NewScene("test")
	assert.Nil(t, s.ActiveCam())

	idx, err := s.AddCamera(NewCamera(60, 0.1, 100))
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	require.NotNil(t, s.ActiveCam())

	// Out-of-range index falls back to the first camera.
	s.ActiveCamera = 7
	assert.Equal(t, &s.Cameras[0], s.ActiveCam())
}
