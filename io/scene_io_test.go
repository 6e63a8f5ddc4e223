package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scene-engine/scene"
)

const sampleScene = `{
  "version": "1.0",
  "name": "sample",
  "clear_color": [0.1, 0.2, 0.3, 1],
  "ambient_color": [0.2, 0.2, 0.2, 1],
  "active_camera": 0,
  "cameras": [
    {"position": [0, 2, 6], "target": [0, 0, 0], "fov": 60, "near": 0.1, "far": 100}
  ],
  "lights": [
    {"color": [1, 1, 1, 1], "direction": [0, -2, 0]}
  ],
  "objects": [
    {
      "name": "crate",
      "position": [0, 0, -5],
      "rotation": [0, 0, 0, 1],
      "scale": [2, 2, 2],
      "static": true,
      "visible": true,
      "mesh": "cube"
    },
    {
      "name": "ghost",
      "position": [1, 0, 0],
      "rotation": [0, 0, 0, 1],
      "scale": [1, 1, 1],
      "visible": true,
      "mesh": "missing.obj"
    }
  ]
}`

func writeScene(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(writeScene(t, sampleScene))
	require.NoError(t, err)

	assert.Equal(t, "sample", s.Name)
	assert.Equal(t, float32(0.1), s.World.ClearColor.R)
	assert.Equal(t, float32(0.2), s.World.Ambient.G)

	require.Equal(t, 1, s.CameraCount)
	cam := s.ActiveCam()
	require.NotNil(t, cam)
	assert.Equal(t, float32(60), cam.FOV)
	assert.Equal(t, mgl32.Vec3{0, 2, 6}, cam.Position)

	require.Equal(t, 1, s.LightCount)
	assert.InDelta(t, 1, s.Lights[0].Direction.Len(), 1e-6, "light direction is normalized on load")

	require.Equal(t, 2, s.ObjectCount)
	crate := &s.Objects[0]
	assert.Equal(t, "crate", crate.Name)
	assert.Equal(t, "cube", crate.MeshRef)
	assert.True(t, crate.Static)
	assert.Equal(t, scene.FrameBufferCount, crate.Transform.Dirty, "loaded objects start dirty")
	require.NotNil(t, crate.DrawList)

	// No explicit bounds: the mesh AABB with the scale baked in.
	assert.Equal(t, mgl32.Vec3{-1, -1, -1}, crate.BoundsMin)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, crate.BoundsMax)
}

func TestLoadSceneUnknownMeshTolerated(t *testing.T) {
	s, err := LoadScene(writeScene(t, sampleScene))
	require.NoError(t, err)

	ghost := &s.Objects[1]
	assert.Equal(t, "ghost", ghost.Name)
	assert.Nil(t, ghost.DrawList)
	assert.True(t, ghost.Visible)
}

func TestLoadSceneExplicitBounds(t *testing.T) {
	body := `{
  "name": "bounds",
  "cameras": [{"position": [0,0,0], "target": [0,0,-1], "fov": 60, "near": 0.1, "far": 100}],
  "objects": [
    {
      "name": "a",
      "position": [0, 0, 0],
      "rotation": [0, 0, 0, 1],
      "scale": [5, 5, 5],
      "visible": true,
      "bounds_min": [-2, -1, -3],
      "bounds_max": [2, 1, 3],
      "mesh": "cube"
    }
  ]
}`
	s, err := LoadScene(writeScene(t, body))
	require.NoError(t, err)

	// Explicit bounds are already in world units; the scale is not reapplied.
	obj := &s.Objects[0]
	assert.Equal(t, mgl32.Vec3{-2, -1, -3}, obj.BoundsMin)
	assert.Equal(t, mgl32.Vec3{2, 1, 3}, obj.BoundsMax)
}

func TestLoadSceneBadJSON(t *testing.T) {
	_, err := LoadScene(writeScene(t, "{not json"))
	assert.Error(t, err)

	_, err = LoadScene(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := LoadScene(writeScene(t, sampleScene))
	require.NoError(t, err)

	// Tombstoned objects are dropped on save.
	s.RemoveObject(&s.Objects[1])

	out := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, SaveScene(out, s))

	back, err := LoadScene(out)
	require.NoError(t, err)

	assert.Equal(t, s.Name, back.Name)
	assert.Equal(t, s.World.ClearColor, back.World.ClearColor)
	assert.Equal(t, s.CameraCount, back.CameraCount)
	assert.Equal(t, s.LightCount, back.LightCount)
	require.Equal(t, 1, back.ObjectCount)

	orig, got := &s.Objects[0], &back.Objects[0]
	assert.Equal(t, orig.Name, got.Name)
	assert.Equal(t, orig.Transform.Position, got.Transform.Position)
	assert.Equal(t, orig.Transform.Scale, got.Transform.Scale)
	assert.Equal(t, orig.BoundsMin, got.BoundsMin)
	assert.Equal(t, orig.BoundsMax, got.BoundsMax)
	assert.Equal(t, orig.Static, got.Static)

	// The mesh reference must survive, or a reloaded scene draws nothing.
	assert.Equal(t, orig.MeshRef, got.MeshRef)
	require.NotNil(t, got.DrawList)
	assert.Equal(t, orig.DrawList.Mesh.Name, got.DrawList.Mesh.Name)
}

func TestSaveLoadRepeatedCyclesKeepGeometry(t *testing.T) {
	s, err := LoadScene(writeScene(t, sampleScene))
	require.NoError(t, err)

	dir := t.TempDir()
	for cycle := 0; cycle < 2; cycle++ {
		out := filepath.Join(dir, "cycle.json")
		require.NoError(t, SaveScene(out, s))
		s, err = LoadScene(out)
		require.NoError(t, err)

		crate := &s.Objects[0]
		require.NotNil(t, crate.DrawList, "cycle %d", cycle)
		assert.Equal(t, "cube", crate.MeshRef, "cycle %d", cycle)
	}
}
