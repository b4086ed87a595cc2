// Command meshview loads a scene snapshot, runs the generator, and renders
// the resulting triangle soup in a window.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"meshforge/internal/generator"
	"meshforge/internal/snapshot"
	"meshforge/pkg/meshmodel"
)

const (
	windowWidth  = 1024
	windowHeight = 768
)

func init() {
	runtime.LockOSThread()
}

func main() {
	in := flag.String("in", "", "path to a scene snapshot JSON file")
	flag.Parse()
	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: meshview -in scene.json")
		os.Exit(2)
	}

	f, err := os.Open(*in)
	if err != nil {
		panic(err)
	}
	snap, err := snapshot.LoadJSON(f)
	f.Close()
	if err != nil {
		panic(err)
	}

	obj, err := generator.New().Generate(snap)
	if err != nil {
		panic(err)
	}
	if !obj.IsSuccessful {
		fmt.Fprintln(os.Stderr, "meshview: generation produced no mesh")
		os.Exit(1)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "meshview", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		panic(err)
	}

	program, err := newProgram(vertexSrc, fragmentSrc)
	if err != nil {
		panic(err)
	}
	defer gl.DeleteProgram(program)

	vao, vbo, count := uploadMesh(obj)
	defer gl.DeleteBuffers(1, &vbo)
	defer gl.DeleteVertexArrays(1, &vao)

	mvpLoc := gl.GetUniformLocation(program, gl.Str("mvp\x00"))

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.08, 0.08, 0.1, 1.0)

	start := time.Now()
	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		w, h := window.GetSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		angle := float32(time.Since(start).Seconds())
		mvp := projection(float32(w), float32(h)).Mul4(view()).Mul4(mgl32.HomogRotate3DY(angle))

		gl.UseProgram(program)
		gl.UniformMatrix4fv(mvpLoc, 1, false, &mvp[0])
		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, count)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

func projection(w, h float32) mgl32.Mat4 {
	if h == 0 {
		h = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(55), w/h, 0.1, 1000)
}

func view() mgl32.Mat4 {
	return mgl32.LookAtV(mgl32.Vec3{3, 3, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
}

// uploadMesh flattens the object's triangle soup into a single interleaved
// position+normal vertex buffer (one unique vertex per triangle corner, so
// flat shading falls out of the face normal without extra indexing).
func uploadMesh(obj *meshmodel.Object) (vao, vbo uint32, vertexCount int32) {
	data := make([]float32, 0, len(obj.Triangles)*3*6)
	for i, tri := range obj.Triangles {
		n := obj.TriangleNormals[i]
		for _, idx := range tri {
			v := obj.Vertices[idx]
			data = append(data,
				float32(v.X()), float32(v.Y()), float32(v.Z()),
				float32(n.X()), float32(n.Y()), float32(n.Z()))
		}
	}

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*4))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return vao, vbo, int32(len(data) / 6)
}

const vertexSrc = `#version 410 core
layout(location = 0) in vec3 position;
layout(location = 1) in vec3 normal;
uniform mat4 mvp;
out vec3 vNormal;
void main() {
	vNormal = normal;
	gl_Position = mvp * vec4(position, 1.0);
}` + "\x00"

const fragmentSrc = `#version 410 core
in vec3 vNormal;
out vec4 fragColor;
void main() {
	vec3 light = normalize(vec3(0.4, 0.8, 0.6));
	float diff = max(dot(normalize(vNormal), light), 0.15);
	fragColor = vec4(vec3(0.7, 0.75, 0.8) * diff, 1.0);
}` + "\x00"

// newProgram compiles shaders and links them into a program.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v := gl.CreateShader(gl.VERTEX_SHADER)
	cvertex, freeVertex := gl.Strs(vertexSrc)
	gl.ShaderSource(v, 1, cvertex, nil)
	freeVertex()
	gl.CompileShader(v)

	var status int32
	gl.GetShaderiv(v, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(v, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(v, logLength, nil, &log[0])
		return 0, fmt.Errorf("vertex shader compile error: %s", string(log))
	}

	f := gl.CreateShader(gl.FRAGMENT_SHADER)
	cfragment, freeFragment := gl.Strs(fragmentSrc)
	gl.ShaderSource(f, 1, cfragment, nil)
	freeFragment()
	gl.CompileShader(f)
	gl.GetShaderiv(f, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(f, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(f, logLength, nil, &log[0])
		return 0, fmt.Errorf("fragment shader compile error: %s", string(log))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("program link error: %s", string(log))
	}

	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}
