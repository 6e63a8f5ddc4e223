package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
)

// DrawMode controls the primitive type used when rendering a mesh.
type DrawMode int

const (
	DrawTriangles DrawMode = iota // default
	DrawLines                     // pairs of indices form line segments
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name     string
	Vertices []core.Vertex
	Indices  []uint32
	DrawMode DrawMode // defaults to DrawTriangles

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
	}
	return m
}

// computeLocalAABB returns the tight AABB of the given vertex positions.
func computeLocalAABB(vertices []core.Vertex) AABB {
	min := vertices[0].Position
	max := vertices[0].Position
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		for j := 0; j < 3; j++ {
			if p[j] < min[j] {
				min[j] = p[j]
			}
			if p[j] > max[j] {
				max[j] = p[j]
			}
		}
	}
	return AABB{Min: min, Max: max}
}

// Primitive generation helpers

func CreateQuad() *Mesh {
	vertices := []core.Vertex{
		{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return CreateMeshFromData("Quad", vertices, indices)
}

func CreateCube(size float32) *Mesh {
	s := size / 2

	vertices := []core.Vertex{
		// Front face
		{Position: mgl32.Vec3{-s, -s, s}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, -s, s}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, s}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, s, s}, Normal: mgl32.Vec3{0, 0, 1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		// Back face
		{Position: mgl32.Vec3{-s, -s, -s}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, -s, -s}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, -s}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, s, -s}, Normal: mgl32.Vec3{0, 0, -1}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		// Top face
		{Position: mgl32.Vec3{-s, s, -s}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, -s}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, s}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, s, s}, Normal: mgl32.Vec3{0, 1, 0}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		// Bottom face
		{Position: mgl32.Vec3{-s, -s, -s}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, -s, -s}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, -s, s}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, -s, s}, Normal: mgl32.Vec3{0, -1, 0}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		// Right face
		{Position: mgl32.Vec3{s, -s, -s}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, -s, s}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, s}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{s, s, -s}, Normal: mgl32.Vec3{1, 0, 0}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		// Left face
		{Position: mgl32.Vec3{-s, -s, -s}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{1, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, -s, s}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{0, 0}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, s, s}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{0, 1}, Color: core.ColorWhite},
		{Position: mgl32.Vec3{-s, s, -s}, Normal: mgl32.Vec3{-1, 0, 0}, UV: mgl32.Vec2{1, 1}, Color: core.ColorWhite},
	}

	indices := []uint32{
		0, 1, 2, 2, 3, 0,
		4, 5, 6, 6, 7, 4,
		8, 9, 10, 10, 11, 8,
		12, 13, 14, 14, 15, 12,
		16, 17, 18, 18, 19, 16,
		20, 21, 22, 22, 23, 20,
	}

	return CreateMeshFromData("Cube", vertices, indices)
}

// CreateUnitBoxWireframe returns a ±1 cube rendered as 12 line segments,
// used for debug AABB visualization.
func CreateUnitBoxWireframe() *Mesh {
	corners := [8]mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	vertices := make([]core.Vertex, 8)
	for i, c := range corners {
		vertices[i] = core.Vertex{Position: c, Normal: mgl32.Vec3{0, 1, 0}, Color: core.ColorGreen}
	}
	indices := []uint32{
		0, 1, 1, 2, 2, 3, 3, 0, // bottom ring
		4, 5, 5, 6, 6, 7, 7, 4, // top ring
		0, 4, 1, 5, 2, 6, 3, 7, // verticals
	}
	m := CreateMeshFromData("UnitBoxWireframe", vertices, indices)
	m.DrawMode = DrawLines
	return m
}
