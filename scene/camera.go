package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective look-at camera.
type Camera struct {
	FOV      float32 // vertical field of view in degrees
	Near     float32
	Far      float32
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

func NewCamera(fov, near, far float32) Camera {
	return Camera{
		FOV:    fov,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
	}
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ViewProjection is the matrix frustum planes are extracted from.
func (c *Camera) ViewProjection(aspect float32) mgl32.Mat4 {
	return c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
}
