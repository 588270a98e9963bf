// Package renderer is a thin OpenGL backend implementing the renderer
// contract consumed by the mesher and the scheduler: addVoxelMesh,
// addTexture, and the VoxelMeshHandle it hands back. It is grounded on
// the teacher's internal/graphics/renderer.go (VAO/VBO lifecycle per
// mesh, chunk add/replace/dispose) and internal/graphics/shader.go
// (program compile/link helpers), generalized from the teacher's fixed
// 14-float cube-instancing layout to the mesher's own Geometry.Stride
// and Offset* constants so the shader indexes quads the way §6 requires.
package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"voxelcore/internal/mesher"
)

// GLBackend owns the shader program, the texture array every addTexture
// layer lands in, and the live set of meshes it draws each frame.
type GLBackend struct {
	program   uint32
	uViewProj int32
	uTextures int32
	uTime     int32

	textureArray   uint32
	tileW, tileH   int
	layers         []*image.RGBA

	meshes map[*VoxelMeshHandle]struct{}
}

// NewGLBackend compiles the shader program and allocates the texture
// array. A failed shader link is a backend-refusal failure (§7):
// construction-time and fatal, there is no degraded mode to fall back to.
func NewGLBackend() *GLBackend {
	program, err := compileProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		panic(fmt.Sprintf("renderer: shader program failed to link: %v", err))
	}

	b := &GLBackend{
		program:   program,
		uViewProj: gl.GetUniformLocation(program, gl.Str("uViewProj\x00")),
		uTextures: gl.GetUniformLocation(program, gl.Str("uTextures\x00")),
		uTime:     gl.GetUniformLocation(program, gl.Str("uTime\x00")),
		meshes:    make(map[*VoxelMeshHandle]struct{}),
	}
	gl.GenTextures(1, &b.textureArray)
	return b
}

// AddVoxelMesh uploads geometry as a new instanced mesh and returns a
// handle the caller can later re-upload through or dispose. solid
// distinguishes the opaque pass from the translucent water pass; the
// backend itself only needs it to decide draw order.
func (b *GLBackend) AddVoxelMesh(geometry *mesher.Geometry, solid bool) *VoxelMeshHandle {
	h := &VoxelMeshHandle{backend: b, geometry: geometry, solid: solid}
	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)
	h.upload()
	b.meshes[h] = struct{}{}
	return h
}

// AddTexture decodes an image into the next layer of the shared texture
// array and returns its (1-based, non-zero) layer index, the textureIndex
// a quad's Texture field references. Every texture added to a backend
// must share the first texture's dimensions, mirroring how a voxel game's
// texture atlas is tiled from same-size source images; a mismatch is a
// contract violation and panics immediately rather than silently
// stretching or cropping.
func (b *GLBackend) AddTexture(img image.Image) int {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if len(b.layers) == 0 {
		b.tileW, b.tileH = w, h
	} else if w != b.tileW || h != b.tileH {
		panic(fmt.Sprintf("renderer: texture %dx%d does not match array tile size %dx%d", w, h, b.tileW, b.tileH))
	}

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	b.layers = append(b.layers, rgba)
	b.reallocTextureArray()

	return len(b.layers)
}

func (b *GLBackend) reallocTextureArray() {
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, b.textureArray)
	gl.TexImage3D(gl.TEXTURE_2D_ARRAY, 0, gl.RGBA, int32(b.tileW), int32(b.tileH), int32(len(b.layers)), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	for i, layer := range b.layers {
		gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, 0, 0, 0, int32(i), int32(b.tileW), int32(b.tileH), 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(layer.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
}

// Render draws every live mesh, re-uploading any whose geometry is dirty
// since the last frame (§5: meshes own their buffers, the renderer only
// borrows them and reacts to setGeometry/Dirty).
func (b *GLBackend) Render(viewProj mgl32.Mat4, elapsed float32) {
	gl.UseProgram(b.program)
	gl.UniformMatrix4fv(b.uViewProj, 1, false, &viewProj[0])
	gl.Uniform1f(b.uTime, elapsed)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, b.textureArray)
	gl.Uniform1i(b.uTextures, 0)

	for _, pass := range []bool{true, false} {
		for h := range b.meshes {
			if h.solid != pass {
				continue
			}
			if h.geometry.Dirty() {
				h.upload()
			}
			if h.numQuads == 0 {
				continue
			}
			gl.BindVertexArray(h.vao)
			gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(h.numQuads))
		}
	}
	gl.BindVertexArray(0)
}

// VoxelMeshHandle is the renderer-side half of a mesh: a VAO/VBO pair
// bound to a Geometry buffer the mesher owns. Naming follows Go
// convention (GetGeometry/SetGeometry/Dispose) for the contract's
// getGeometry/setGeometry/dispose.
type VoxelMeshHandle struct {
	backend *GLBackend

	vao, vbo uint32
	geometry *mesher.Geometry
	solid    bool
	numQuads int
}

// GetGeometry returns the buffer currently bound to this handle.
func (h *VoxelMeshHandle) GetGeometry() *mesher.Geometry { return h.geometry }

// SetGeometry replaces the handle's buffer and re-uploads immediately.
func (h *VoxelMeshHandle) SetGeometry(g *mesher.Geometry) {
	h.geometry = g
	h.upload()
}

// Dispose releases the handle's GPU buffers and drops it from the
// backend's live set; the handle must not be used afterward.
func (h *VoxelMeshHandle) Dispose() {
	gl.DeleteVertexArrays(1, &h.vao)
	gl.DeleteBuffers(1, &h.vbo)
	delete(h.backend.meshes, h)
}

func (h *VoxelMeshHandle) upload() {
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)

	data := h.geometry.Data
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}

	stride := int32(mesher.Stride * 4)
	attrib := func(location uint32, size int32, offset int) {
		gl.EnableVertexAttribArray(location)
		gl.VertexAttribPointerWithOffset(location, size, gl.FLOAT, false, stride, uintptr(offset*4))
		gl.VertexAttribDivisor(location, 1)
	}
	attrib(0, 3, mesher.OffsetPos)
	attrib(1, 2, mesher.OffsetSize)
	attrib(2, 4, mesher.OffsetColor)
	attrib(3, 1, mesher.OffsetAOs)
	attrib(4, 1, mesher.OffsetDim)
	attrib(5, 1, mesher.OffsetDir)
	attrib(6, 1, mesher.OffsetMask)
	attrib(7, 1, mesher.OffsetWave)
	attrib(8, 1, mesher.OffsetTexture)
	attrib(9, 1, mesher.OffsetIndices)

	h.numQuads = h.geometry.NumQuads()
	h.geometry.ClearDirty()

	gl.BindVertexArray(0)
}

// compileProgram and compileShader are adapted from the teacher's
// internal/graphics/shader.go, trimmed to the pair this backend needs
// and taking source strings instead of file paths since the core ships
// its GLSL embedded rather than as assets on disk.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertexShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link program: %v", log)
	}
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile shader: %v", log)
	}
	return shader, nil
}
