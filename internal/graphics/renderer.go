package graphics

import (
	"fmt"

	"crafter/internal/atlas"
	"crafter/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const chunkVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3 color;
out vec2 texCoord;

void main() {
	color = aColor;
	texCoord = aTexCoord;
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const chunkFragmentShader = `
#version 410 core
in vec3 color;
in vec2 texCoord;

uniform sampler2D atlas;

out vec4 fragColor;

void main() {
	vec4 texel = texture(atlas, texCoord);
	if (texel.a < 0.1) {
		discard;
	}
	fragColor = vec4(texel.rgb * color, texel.a);
}
`

// Renderer draws uploaded chunk meshes with the block atlas.
type Renderer struct {
	shader        *Shader
	atlasTexture  uint32
	camera        *Camera
	frustumMargin float32

	// per-frame counters
	drawn, culled int
}

// NewRenderer initializes GL state, compiles the chunk shader and uploads the
// atlas. The GL context must be current.
func NewRenderer(a *atlas.Atlas, camera *Camera) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	// Enable back-face culling (meshing emits CCW front faces)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	shader, err := NewShaderFromSource(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		shader:        shader,
		atlasTexture:  UploadTexture(a.Image),
		camera:        camera,
		frustumMargin: 1.0, // one block margin
	}, nil
}

// SetViewport resizes the GL viewport and camera aspect.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.SetViewport(width, height)
}

// Render draws every chunk of the store that has a mesh and intersects the
// camera frustum.
func (r *Renderer) Render(store *world.ChunkStore) {
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := r.camera.GetViewMatrix()
	projection := r.camera.GetProjectionMatrix()

	r.shader.Use()
	r.shader.SetMatrix4("proj", &projection[0])
	r.shader.SetMatrix4("view", &view[0])
	r.shader.SetInt("atlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.atlasTexture)

	clip := projection.Mul4(view)
	r.drawn, r.culled = 0, 0
	for _, ch := range store.AllChunks() {
		buf, ok := ch.Mesh().(*ChunkBuffer)
		if !ok {
			continue
		}
		lo, hi := ChunkAABB(ch.Coord(), r.frustumMargin)
		if !AABBIntersectsFrustum(lo, hi, clip) {
			r.culled++
			continue
		}
		model := mgl32.Translate3D(float32(ch.X)*world.ChunkSizeX, 0, float32(ch.Z)*world.ChunkSizeZ)
		r.shader.SetMatrix4("model", &model[0])
		buf.Draw()
		r.drawn++
	}
	gl.BindVertexArray(0)
}

// Stats returns the chunks drawn and culled by the last Render.
func (r *Renderer) Stats() (drawn, culled int) {
	return r.drawn, r.culled
}

// Dispose frees the shader and atlas texture.
func (r *Renderer) Dispose() {
	r.shader.Delete()
	gl.DeleteTextures(1, &r.atlasTexture)
}
