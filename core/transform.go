package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MinScale is the smallest scale component magnitude considered numerically
// safe. Anything closer to zero produces a degenerate (non-invertible) world
// matrix.
const MinScale = 1e-6

// Transform is an authored local transform plus its refresh debt.
//
// Dirty is a counter, not a flag: it records how many buffered matrix slots
// still hold a matrix from before the last authored change. Setters must
// re-arm it to the frame-buffer count so that every in-flight slot is
// rewritten before the object is considered clean again; a single-refresh
// boolean would leave stale poses in slots the update pass has not yet
// visited.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Dirty    int
}

func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes the world matrix as translate * rotate * scale.
func (t Transform) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	return translate.Mul4(rotate).Mul4(scale)
}

// IsSafe reports whether the position and scale are finite and the scale is
// non-degenerate. A matrix built from NaN or Inf poisons every frustum test
// that reads it, so callers must not compose one when this returns false.
func (t Transform) IsSafe() bool {
	for i := 0; i < 3; i++ {
		if !isFinite(t.Position[i]) || !isFinite(t.Scale[i]) {
			return false
		}
		if math32.Abs(t.Scale[i]) < MinScale {
			return false
		}
	}
	return true
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
