package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"scene-engine/core"
	"scene-engine/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL implementation of renderer.Backend.
type Renderer struct {
	window  *core.Window
	program uint32

	// Transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Lighting uniforms
	ambientLoc    int32
	lightCountLoc int32
	lightDirLoc   [scene.MaxLights]int32
	lightColorLoc [scene.MaxLights]int32

	// Current frame state
	view  mgl32.Mat4
	proj  mgl32.Mat4
	model mgl32.Mat4

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// Vertex shader: world + view-projection transform, world-space normal to
// the fragment stage.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;
uniform mat4 model;

out vec4 fragColor;
out vec3 fragNormal;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragColor   = inColor;
    fragNormal  = mat3(model) * inNormal;
}
` + "\x00"

// Fragment shader: ambient plus a capped set of directional lights,
// matching the engine's fixed light budget.
const fragSrc = `
#version 410 core
in vec4 fragColor;
in vec3 fragNormal;

out vec4 outColor;

#define MAX_LIGHTS 4
uniform vec3 ambientColor;
uniform int  lightCount;
uniform vec3 lightDir[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];

void main() {
    vec3 N = normalize(fragNormal);
    vec3 lit = ambientColor;
    for (int i = 0; i < lightCount; i++) {
        float d = max(dot(N, -normalize(lightDir[i])), 0.0);
        lit += lightColor[i] * d;
    }
    outColor = vec4(fragColor.rgb * lit, fragColor.a);
}
` + "\x00"

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer(window *core.Window) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{
		window:  window,
		program: prog,

		mvpLoc:   gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc: gl.GetUniformLocation(prog, gl.Str("model\x00")),

		ambientLoc:    gl.GetUniformLocation(prog, gl.Str("ambientColor\x00")),
		lightCountLoc: gl.GetUniformLocation(prog, gl.Str("lightCount\x00")),

		model:     mgl32.Ident4(),
		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	for i := 0; i < scene.MaxLights; i++ {
		r.lightDirLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightDir[%d]\x00", i)))
		r.lightColorLoc[i] = gl.GetUniformLocation(prog,
			gl.Str(fmt.Sprintf("lightColor[%d]\x00", i)))
	}

	return r, nil
}

// BeginFrame stores the frame's view and projection and resizes the
// viewport to the current framebuffer.
func (r *Renderer) BeginFrame(view, proj mgl32.Mat4) {
	r.view = view
	r.proj = proj
	w, h := r.window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.UseProgram(r.program)
}

func (r *Renderer) ClearColor(c core.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *Renderer) ClearDepth() {
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) SetDrawFlags(depthTest, cullBack bool) {
	if depthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	if cullBack {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	} else {
		gl.Disable(gl.CULL_FACE)
	}
}

func (r *Renderer) SetAmbientLight(c core.Color) {
	gl.UseProgram(r.program)
	gl.Uniform3f(r.ambientLoc, c.R, c.G, c.B)
}

func (r *Renderer) SetLightCount(n int) {
	if n > scene.MaxLights {
		n = scene.MaxLights
	}
	gl.UseProgram(r.program)
	gl.Uniform1i(r.lightCountLoc, int32(n))
}

func (r *Renderer) SetDirectionalLight(index int, c core.Color, dir mgl32.Vec3) {
	if index < 0 || index >= scene.MaxLights {
		return
	}
	gl.UseProgram(r.program)
	gl.Uniform3f(r.lightDirLoc[index], dir.X(), dir.Y(), dir.Z())
	gl.Uniform3f(r.lightColorLoc[index], c.R, c.G, c.B)
}

func (r *Renderer) BindWorldMatrix(m mgl32.Mat4) {
	r.model = m
}

func (r *Renderer) SubmitDrawList(dl *scene.DrawList) {
	if dl == nil || dl.Mesh == nil {
		return
	}
	gpu := r.ensureUploaded(dl)
	if gpu == nil {
		return
	}

	mvp := r.proj.Mul4(r.view).Mul4(r.model)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, &mvp[0])
	gl.UniformMatrix4fv(r.modelLoc, 1, false, &r.model[0])

	primitive := uint32(gl.TRIANGLES)
	if dl.Mesh.DrawMode == scene.DrawLines {
		primitive = gl.LINES
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitive, 0, int32(len(dl.Mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) EndFrame() {
	r.window.SwapBuffers()
}

// ensureUploaded lazily uploads a draw list's mesh on first submission and
// caches the GPU buffers for subsequent frames.
func (r *Renderer) ensureUploaded(dl *scene.DrawList) *GPUMesh {
	mesh := dl.Mesh
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	dl.GPUData = gpu
	return gpu
}

// ReleaseMesh frees the GPU buffers for a mesh uploaded by SubmitDrawList.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	gpu, ok := r.gpuMeshes[mesh]
	if !ok {
		return
	}
	gl.DeleteVertexArrays(1, &gpu.VAO)
	gl.DeleteBuffers(1, &gpu.VBO)
	if gpu.HasIndices {
		gl.DeleteBuffers(1, &gpu.EBO)
	}
	delete(r.gpuMeshes, mesh)
}

func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	gl.DeleteProgram(r.program)
}

// Shader helpers

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
