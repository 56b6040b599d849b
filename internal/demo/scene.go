// Package demo holds the sample scene shared by the forge commands: a lit,
// textured cube spinning over a wireframe ground grid.
package demo

import (
	"fmt"

	"github.com/gogpu/forge"
)

type face struct {
	normal  [3]float32
	color   [3]float32
	corners [4][3]float32 // counter-clockwise seen from outside
}

var cube = []face{
	{[3]float32{1, 0, 0}, [3]float32{1, 0.35, 0.3}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{-1, 0, 0}, [3]float32{0.3, 1, 0.4}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [3]float32{0.35, 0.5, 1}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [3]float32{1, 0.9, 0.3}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{0, 0, 1}, [3]float32{1, 1, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [3]float32{0.8, 0.4, 1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
}

var faceUV = [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

// grid holds the ground lines as x, y, z triples.
var grid = func() []float32 {
	const (
		half  = 4
		floor = -1.6
	)
	var v []float32
	for i := -half; i <= half; i++ {
		f := float32(i)
		v = append(v, f, floor, -half, f, floor, half)
		v = append(v, -half, floor, f, half, floor, f)
	}
	return v
}()

// Setup installs the projection, lighting and material of the scene and
// binds tex when it is not nil.
func Setup(c *forge.Context, tex *forge.Texture) error {
	aspect := float64(c.Width()) / float64(c.Height())
	c.SetMatrixMode(forge.Projection)
	c.Frustum(-0.1*aspect, 0.1*aspect, -0.1, 0.1, 0.2, 50)
	c.SetMatrixMode(forge.Modelview)
	c.LoadIdentity()

	c.Enable(forge.DepthTest | forge.CullFace | forge.Lighting)
	c.EnableLight(0)
	c.Lightfv(0, forge.LightPosition, []float32{1, 1.5, 2, 0})
	c.Lightfv(0, forge.LightAmbient, []float32{0.25, 0.25, 0.25, 1})
	c.Materialfv(forge.Front, forge.MaterialSpecular, []float32{0.6, 0.6, 0.6, 1})
	c.Materialf(forge.Front, forge.MaterialShininess, 24)
	c.SetClearColor(0.08, 0.09, 0.12, 1)

	if tex != nil {
		c.BindTexture(tex)
		c.Enable(forge.Texture2D)
	}
	c.SetVertexArray(3, grid)
	c.EnableArray(forge.VertexArray)

	if code := c.GetError(); code != forge.NoError {
		return fmt.Errorf("demo: setup: %w", code)
	}
	return nil
}

// Frame clears the target and draws the scene with the cube rotated by
// angle degrees.
func Frame(c *forge.Context, angle float32) error {
	c.Clear(forge.ColorBuffer | forge.DepthBuffer)
	c.LoadIdentity()
	c.Translate(0, 0, -6)
	c.Rotate(20, 1, 0, 0)

	textured := c.IsEnabled(forge.Texture2D)
	c.Disable(forge.Lighting)
	if textured {
		c.Disable(forge.Texture2D)
	}
	c.Color3f(0.35, 0.4, 0.45)
	c.DrawArrays(forge.Lines, 0, len(grid)/3)
	c.Enable(forge.Lighting)
	if textured {
		c.Enable(forge.Texture2D)
	}

	c.PushMatrix()
	c.Rotate(angle, 0, 1, 0)
	c.Rotate(angle*0.6, 1, 0, 1)
	c.Begin(forge.Quads)
	for _, f := range cube {
		c.Normal3fv(f.normal)
		c.Color3fv(f.color)
		for i, v := range f.corners {
			c.TexCoordfv(faceUV[i])
			c.Vertex3fv(v)
		}
	}
	c.End()
	c.PopMatrix()

	if code := c.GetError(); code != forge.NoError {
		return fmt.Errorf("demo: frame: %w", code)
	}
	return nil
}
