// Package shader compiles the voxel atlas shaders and keeps the atlas
// texture on the GPU in sync with the packer.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", infoLog(logLen, func(buf *uint8) {
			gl.GetProgramInfoLog(program, logLen, nil, buf)
		}))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		msg := infoLog(logLen, func(buf *uint8) {
			gl.GetShaderInfoLog(shader, logLen, nil, buf)
		})
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, msg)
	}

	return shader, nil
}

func infoLog(n int32, read func(*uint8)) string {
	if n <= 0 {
		return "no info log"
	}
	buf := make([]byte, n)
	read(&buf[0])
	return string(buf)
}

// Uniform returns the location of a uniform, or -1 if it is inactive.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
