// Package renderer draws batched frames with OpenGL: instanced cubes per LOD
// tier plus line helpers.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/lodscene/internal/engine/batch"
	"github.com/Faultbox/lodscene/internal/engine/lighting"
	"github.com/Faultbox/lodscene/internal/engine/lod"
	"github.com/Faultbox/lodscene/internal/engine/mesh"
	"github.com/Faultbox/lodscene/internal/engine/renderer/shaders"
	"github.com/Faultbox/lodscene/internal/engine/shader"
	"github.com/Faultbox/lodscene/internal/engine/texture"
	"github.com/Faultbox/lodscene/internal/logger"
)

// Params are the per-frame inputs that are not part of the batched frame.
type Params struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Clock      float32
	Lights     *lighting.Buffer
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

type gpuLines struct {
	vao, vbo uint32
	count    int32
}

// Renderer owns the GPU copies of the registry meshes and the shared
// instance buffer.
type Renderer struct {
	scene  *shader.Program
	helper *shader.Program

	cubes   [lod.Count]gpuMesh
	helpers map[mesh.HelperKind]gpuLines

	instanceVBO  uint32
	instanceSize int
	packed       []float32

	texture    uint32
	ClearColor mgl32.Vec4

	log *zap.Logger
}

// New initializes OpenGL, compiles the shaders and uploads every registry
// mesh. It must run on the thread that owns the GL context.
func New(reg *mesh.Registry, tex *image.RGBA) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	r := &Renderer{
		helpers:    make(map[mesh.HelperKind]gpuLines),
		ClearColor: mgl32.Vec4{0.1, 0.1, 0.15, 1.0},
		log:        logger.Named("renderer"),
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.scene, err = shader.New("scene", shaders.SceneVertexShader, shaders.SceneFragmentShader); err != nil {
		return nil, err
	}
	if r.helper, err = shader.New("helper", shaders.HelperVertexShader, shaders.HelperFragmentShader); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.helper.Require("uModel", "uView", "uProjection"); err != nil {
		r.Close()
		return nil, err
	}

	gl.GenBuffers(1, &r.instanceVBO)

	for t := range lod.Count {
		m, err := r.uploadCube(reg.Cube(lod.Tier(t)))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("upload %s cube: %w", lod.Tier(t), err)
		}
		r.cubes[t] = m
	}
	for _, k := range []mesh.HelperKind{mesh.HelperAxis, mesh.HelperArrow, mesh.HelperSphere} {
		lines, err := uploadLines(reg.Helper(k))
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("upload %s helper: %w", k, err)
		}
		r.helpers[k] = lines
	}

	if err := r.SetTexture(tex); err != nil {
		r.Close()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return r, nil
}

// uploadCube creates the VAO for one tier. The instance attributes point at
// the shared instance buffer; their offsets are set per draw.
func (r *Renderer) uploadCube(m *mesh.Mesh) (gpuMesh, error) {
	verts := m.Flatten()
	if len(verts) == 0 || len(m.Indices) == 0 {
		return gpuMesh{}, fmt.Errorf("%s: empty mesh", m.Name)
	}

	var g gpuMesh
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	for _, a := range vertexAttribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, a.stride, uintptr(a.offset))
		gl.EnableVertexAttribArray(a.location)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	for loc := uint32(AttribModel); loc <= AttribIntensity; loc++ {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	g.count = int32(len(m.Indices))

	if e := gl.GetError(); e != gl.NO_ERROR {
		return g, fmt.Errorf("%s: GL error 0x%x", m.Name, e)
	}
	return g, nil
}

func uploadLines(m *mesh.HelperMesh) (gpuLines, error) {
	verts := m.Flatten()
	if len(verts) == 0 {
		return gpuLines{}, fmt.Errorf("%s: empty mesh", m.Name)
	}

	var g gpuLines
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	for _, a := range helperAttribs {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, a.stride, uintptr(a.offset))
		gl.EnableVertexAttribArray(a.location)
	}
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	g.count = int32(len(m.Vertices))

	if e := gl.GetError(); e != gl.NO_ERROR {
		return g, fmt.Errorf("%s: GL error 0x%x", m.Name, e)
	}
	return g, nil
}

// SetTexture replaces the cube texture.
func (r *Renderer) SetTexture(img *image.RGBA) error {
	id, err := texture.Upload(img)
	if err != nil {
		return fmt.Errorf("cube texture: %w", err)
	}
	if r.texture != 0 {
		texture.Delete(r.texture)
	}
	r.texture = id
	return nil
}

// Clear sets the viewport and clears color and depth.
func (r *Renderer) Clear(width, height int32) {
	gl.Viewport(0, 0, width, height)
	c := r.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues one instanced draw per non-empty batch, then the helpers.
func (r *Renderer) Draw(f *batch.Frame, p Params) {
	gl.Enable(gl.DEPTH_TEST)

	r.scene.Use()
	r.scene.SetMat4("uProjection", p.Projection)
	r.scene.SetMat4("uView", p.View)
	r.scene.SetVec3("uViewPos", p.CameraPos)
	r.scene.SetFloat("uTime", p.Clock)
	r.scene.SetFloat("uAmbientStrength", lighting.AmbientStrength)
	r.scene.SetFloat("uDiffuseStrength", lighting.DiffuseStrength)
	r.scene.SetFloat("uSpecularStrength", lighting.SpecularStrength)
	r.scene.SetFloat("uShininess", lighting.Shininess)
	r.setLights(p.Lights)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	r.scene.SetInt("uTexture", 0)

	for t := range f.Batches {
		for role := range f.Batches[t] {
			b := &f.Batches[t][role]
			if b.Empty() {
				continue
			}
			r.drawBatch(b)
		}
	}
	gl.BindVertexArray(0)

	r.drawHelpers(f.Helpers, p)
}

func (r *Renderer) setLights(lights *lighting.Buffer) {
	if lights == nil || lights.Count() == 0 {
		r.scene.SetInt("uLightCount", 0)
		return
	}
	r.scene.SetInt("uLightCount", int32(lights.Count()))
	r.scene.SetVec3Array("uLightPos", lights.Positions())
	r.scene.SetVec3Array("uLightDir", lights.Directions())
	r.scene.SetVec3Array("uLightColor", lights.Colors())
	r.scene.SetFloatArray("uLightIntensity", lights.Intensities())
	r.scene.SetIntArray("uLightType", lights.Types())
}

func (r *Renderer) drawBatch(b *batch.Batch) {
	r.packed = b.PackInto(r.packed)
	size := len(r.packed) * 4

	gl.BindBuffer(gl.ARRAY_BUFFER, r.instanceVBO)
	if size > r.instanceSize {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(r.packed), gl.DYNAMIC_DRAW)
		r.instanceSize = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(r.packed))
	}

	m := &r.cubes[b.Tier]
	gl.BindVertexArray(m.vao)
	for _, a := range instanceAttribs(b.Offsets()) {
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, a.stride, uintptr(a.offset))
	}
	gl.DrawElementsInstanced(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil, int32(b.Len()))
}

func (r *Renderer) drawHelpers(helpers []batch.Placement, p Params) {
	if len(helpers) == 0 {
		return
	}
	r.helper.Use()
	r.helper.SetMat4("uProjection", p.Projection)
	r.helper.SetMat4("uView", p.View)

	for _, h := range helpers {
		lines, ok := r.helpers[h.Kind]
		if !ok {
			continue
		}
		// The gizmo stays visible through the object it sits in.
		if h.Kind == mesh.HelperAxis {
			gl.Disable(gl.DEPTH_TEST)
		}
		r.helper.SetMat4("uModel", h.Model)
		r.helper.SetVec3("uTint", h.Color)
		r.helper.SetFloat("uHighlight", boolFloat(h.Selected))
		gl.BindVertexArray(lines.vao)
		gl.DrawArrays(gl.LINES, 0, lines.count)
		if h.Kind == mesh.HelperAxis {
			gl.Enable(gl.DEPTH_TEST)
		}
	}
	gl.BindVertexArray(0)
}

func boolFloat(b bool) float32 {
	if b {
		return 1
	}
	return 0
}

// Close releases all GPU resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i := range r.cubes {
		m := &r.cubes[i]
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
			gl.DeleteBuffers(1, &m.vbo)
			gl.DeleteBuffers(1, &m.ebo)
		}
	}
	for k, l := range r.helpers {
		gl.DeleteVertexArrays(1, &l.vao)
		gl.DeleteBuffers(1, &l.vbo)
		delete(r.helpers, k)
	}
	if r.instanceVBO != 0 {
		gl.DeleteBuffers(1, &r.instanceVBO)
		r.instanceVBO = 0
	}
	if r.texture != 0 {
		texture.Delete(r.texture)
		r.texture = 0
	}
	if r.scene != nil {
		r.scene.Delete()
	}
	if r.helper != nil {
		r.helper.Delete()
	}
}
