package scene

import "github.com/go-gl/mathgl/mgl32"

// Plane represents a half-space: ax + by + cz + d = 0.
// Normal (a, b, c) points into the "inside" of the frustum.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the "inside" (same side as Normal).
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from a view-projection
// matrix (projection * view, the usual mgl32 column-vector convention).
// Gribb/Hartmann: each plane is a sum or difference of the fourth row with
// one of the first three. Planes are normalized so DistanceTo returns a
// true distance in world units.
func FrustumFromVP(vp mgl32.Mat4) Frustum {
	r0 := vp.Row(0)
	r1 := vp.Row(1)
	r2 := vp.Row(2)
	r3 := vp.Row(3)

	var f Frustum
	f.Planes[0] = normalizePlane(r3.Add(r0)) // Left
	f.Planes[1] = normalizePlane(r3.Sub(r0)) // Right
	f.Planes[2] = normalizePlane(r3.Add(r1)) // Bottom
	f.Planes[3] = normalizePlane(r3.Sub(r1)) // Top
	f.Planes[4] = normalizePlane(r3.Add(r2)) // Near
	f.Planes[5] = normalizePlane(r3.Sub(r2)) // Far
	return f
}

func normalizePlane(v mgl32.Vec4) Plane {
	n := mgl32.Vec3{v.X(), v.Y(), v.Z()}
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v.W() / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// IntersectsFrustum returns false if the AABB is completely outside the
// frustum. Uses the "p-vertex" test: for each plane, check whether the
// corner most aligned with the plane normal is on the outside.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := 0; i < 6; i++ {
		p := f.Planes[i]
		px := box.Max.X()
		if p.Normal.X() < 0 {
			px = box.Min.X()
		}
		py := box.Max.Y()
		if p.Normal.Y() < 0 {
			py = box.Min.Y()
		}
		pz := box.Max.Z()
		if p.Normal.Z() < 0 {
			pz = box.Min.Z()
		}
		if p.DistanceTo(mgl32.Vec3{px, py, pz}) < 0 {
			return false // outside this plane
		}
	}
	return true
}
