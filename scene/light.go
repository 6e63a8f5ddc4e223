package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
)

// Light is a directional light. The active set is capped at MaxLights.
type Light struct {
	Color     core.Color
	Direction mgl32.Vec3
}
