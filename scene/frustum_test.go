package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	cam := NewCamera(60, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 0}
	cam.Target = mgl32.Vec3{0, 0, -1}
	return FrustumFromVP(cam.ViewProjection(16.0 / 9.0))
}

func TestFrustumPlanesPointInside(t *testing.T) {
	f := testFrustum()
	inside := mgl32.Vec3{0, 0, -5}
	for i, p := range f.Planes {
		assert.Greater(t, p.DistanceTo(inside), float32(0), "plane %d", i)
	}
}

func TestFrustumAABBInside(t *testing.T) {
	f := testFrustum()
	box := AABB{Min: mgl32.Vec3{-0.5, -0.5, -5.5}, Max: mgl32.Vec3{0.5, 0.5, -4.5}}
	assert.True(t, box.IntersectsFrustum(&f))
}

func TestFrustumAABBBehindCamera(t *testing.T) {
	f := testFrustum()
	box := AABB{Min: mgl32.Vec3{-0.5, -0.5, 4.5}, Max: mgl32.Vec3{0.5, 0.5, 5.5}}
	assert.False(t, box.IntersectsFrustum(&f))
}

func TestFrustumAABBBeyondFarPlane(t *testing.T) {
	f := testFrustum()
	box := AABB{Min: mgl32.Vec3{-1, -1, -205}, Max: mgl32.Vec3{1, 1, -201}}
	assert.False(t, box.IntersectsFrustum(&f))
}

func TestFrustumAABBOffToTheSide(t *testing.T) {
	f := testFrustum()
	// At z = -5 with 60° vertical FOV and 16:9 aspect the half-width is
	// about 5.1; a box starting at x = 50 is far outside.
	box := AABB{Min: mgl32.Vec3{50, -0.5, -5.5}, Max: mgl32.Vec3{51, 0.5, -4.5}}
	assert.False(t, box.IntersectsFrustum(&f))
}

func TestFrustumAABBPartialOverlap(t *testing.T) {
	f := testFrustum()
	// Straddles the near plane: conservative test must keep it.
	box := AABB{Min: mgl32.Vec3{-0.5, -0.5, -1}, Max: mgl32.Vec3{0.5, 0.5, 1}}
	assert.True(t, box.IntersectsFrustum(&f))
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-4, "plane %d normal length", i)
	}
}

func TestNormalizePlaneZero(t *testing.T) {
	p := normalizePlane(mgl32.Vec4{0, 0, 0, 5})
	assert.Equal(t, Plane{}, p)
}
