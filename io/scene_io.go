package io

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
	"scene-engine/scene"
)

// SceneFile is the top-level structure of the exported scene format.
type SceneFile struct {
	Version      string       `json:"version"`
	Name         string       `json:"name"`
	ClearColor   [4]float32   `json:"clear_color"`
	AmbientColor [4]float32   `json:"ambient_color"`
	ActiveCamera int          `json:"active_camera"`
	Cameras      []CameraData `json:"cameras"`
	Lights       []LightData  `json:"lights"`
	Objects      []ObjectData `json:"objects"`
}

// CameraData stores one exported camera.
type CameraData struct {
	Position [3]float32 `json:"position"`
	Target   [3]float32 `json:"target"`
	FOV      float32    `json:"fov"`
	Near     float32    `json:"near"`
	Far      float32    `json:"far"`
}

// LightData stores one exported directional light.
type LightData struct {
	Color     [4]float32 `json:"color"`
	Direction [3]float32 `json:"direction"`
}

// ObjectData stores one exported scene object.
//
// BoundsMin/BoundsMax, when present, are already scaled to world units by
// the exporter. When absent they are derived from the mesh's local AABB
// with the authored scale baked in.
type ObjectData struct {
	Name      string      `json:"name"`
	Position  [3]float32  `json:"position"`
	Rotation  [4]float32  `json:"rotation"` // quaternion (x, y, z, w)
	Scale     [3]float32  `json:"scale"`
	Static    bool        `json:"static"`
	Visible   bool        `json:"visible"`
	BoundsMin *[3]float32 `json:"bounds_min,omitempty"`
	BoundsMax *[3]float32 `json:"bounds_max,omitempty"`
	// Mesh is "cube", "quad", or a .glb/.gltf path relative to the scene file.
	Mesh string `json:"mesh,omitempty"`
}

// LoadScene reads a scene file and builds a ready-to-render fixed-capacity
// scene. Objects whose mesh fails to load keep a nil draw list and are
// skipped at draw dispatch; that is a warning, not an error.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %q: %w", path, err)
	}

	var file SceneFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scene %q: %w", path, err)
	}

	s := scene.NewScene(file.Name)
	s.World.ClearColor = colorFrom(file.ClearColor)
	s.World.Ambient = colorFrom(file.AmbientColor)
	s.ActiveCamera = file.ActiveCamera

	for _, cd := range file.Cameras {
		cam := scene.NewCamera(cd.FOV, cd.Near, cd.Far)
		cam.Position = mgl32.Vec3(cd.Position)
		cam.Target = mgl32.Vec3(cd.Target)
		if _, err := s.AddCamera(cam); err != nil {
			return nil, err
		}
	}

	for _, ld := range file.Lights {
		l := scene.Light{
			Color:     colorFrom(ld.Color),
			Direction: mgl32.Vec3(ld.Direction).Normalize(),
		}
		if err := s.AddLight(l); err != nil {
			return nil, err
		}
	}

	dir := filepath.Dir(path)
	for _, od := range file.Objects {
		if err := loadObject(s, dir, od); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func loadObject(s *scene.Scene, dir string, od ObjectData) error {
	obj, err := s.AddObject(od.Name)
	if err != nil {
		return err
	}

	obj.Transform.Position = mgl32.Vec3(od.Position)
	obj.Transform.Rotation = mgl32.Quat{
		W: od.Rotation[3],
		V: mgl32.Vec3{od.Rotation[0], od.Rotation[1], od.Rotation[2]},
	}
	obj.Transform.Scale = mgl32.Vec3(od.Scale)
	obj.Static = od.Static
	obj.Visible = od.Visible
	obj.MeshRef = od.Mesh
	obj.MarkDirty()

	mesh := resolveMesh(dir, od)
	if mesh != nil {
		obj.DrawList = scene.NewDrawList(mesh)
	}

	if od.BoundsMin != nil && od.BoundsMax != nil {
		obj.BoundsMin = mgl32.Vec3(*od.BoundsMin)
		obj.BoundsMax = mgl32.Vec3(*od.BoundsMax)
	} else if mesh != nil && mesh.HasLocalAABB {
		// Bake the authored scale into the bounds; the AABB updater applies
		// rotation only.
		for i := 0; i < 3; i++ {
			obj.BoundsMin[i] = mesh.LocalAABB.Min[i] * od.Scale[i]
			obj.BoundsMax[i] = mesh.LocalAABB.Max[i] * od.Scale[i]
		}
	}
	return nil
}

// resolveMesh maps the object's mesh reference to CPU geometry.
// Returns nil (and warns) when the asset cannot be loaded.
func resolveMesh(dir string, od ObjectData) *scene.Mesh {
	switch {
	case od.Mesh == "":
		return nil
	case od.Mesh == "cube":
		return scene.CreateCube(1)
	case od.Mesh == "quad":
		return scene.CreateQuad()
	case strings.HasSuffix(od.Mesh, ".glb") || strings.HasSuffix(od.Mesh, ".gltf"):
		mesh, err := LoadMeshGLTF(filepath.Join(dir, od.Mesh))
		if err != nil {
			fmt.Printf("scene: object %q mesh %q: %v\n", od.Name, od.Mesh, err)
			return nil
		}
		return mesh
	default:
		fmt.Printf("scene: object %q: unknown mesh %q\n", od.Name, od.Mesh)
		return nil
	}
}

// SaveScene writes a scene back out in the exported format. Tombstoned
// objects are dropped.
func SaveScene(path string, s *scene.Scene) error {
	file := SceneFile{
		Version:      "1.0",
		Name:         s.Name,
		ClearColor:   colorTo(s.World.ClearColor),
		AmbientColor: colorTo(s.World.Ambient),
		ActiveCamera: s.ActiveCamera,
	}

	for i := 0; i < s.CameraCount; i++ {
		c := &s.Cameras[i]
		file.Cameras = append(file.Cameras, CameraData{
			Position: [3]float32(c.Position),
			Target:   [3]float32(c.Target),
			FOV:      c.FOV,
			Near:     c.Near,
			Far:      c.Far,
		})
	}

	for i := 0; i < s.LightCount; i++ {
		l := &s.Lights[i]
		file.Lights = append(file.Lights, LightData{
			Color:     colorTo(l.Color),
			Direction: [3]float32(l.Direction),
		})
	}

	for i := 0; i < s.ObjectCount; i++ {
		o := &s.Objects[i]
		if o.Removed {
			continue
		}
		q := o.Transform.Rotation
		bmin, bmax := [3]float32(o.BoundsMin), [3]float32(o.BoundsMax)
		file.Objects = append(file.Objects, ObjectData{
			Name:      o.Name,
			Position:  [3]float32(o.Transform.Position),
			Rotation:  [4]float32{q.V.X(), q.V.Y(), q.V.Z(), q.W},
			Scale:     [3]float32(o.Transform.Scale),
			Static:    o.Static,
			Visible:   o.Visible,
			BoundsMin: &bmin,
			BoundsMax: &bmax,
			Mesh:      o.MeshRef,
		})
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene %q: %w", path, err)
	}
	return nil
}

func colorFrom(c [4]float32) core.Color {
	return core.Color{R: c[0], G: c[1], B: c[2], A: c[3]}
}

func colorTo(c core.Color) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}
