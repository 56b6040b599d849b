// Package forge provides a CPU-only, immediate-mode, fixed-function 3D
// rendering pipeline in the style of OpenGL 1.x.
//
// # Overview
//
// forge draws points, lines, triangles and quads into a caller-supplied
// pixel buffer. Vertices pass through modelview and projection matrix
// stacks, are clipped against the view volume in homogeneous coordinates,
// rasterized with perspective-correct interpolation and shaded per fragment
// with depth testing, lighting, texturing and blending. There is no GPU, no
// window system and no shader language: the library fills bytes, and the
// application decides how to present them.
//
// # Quick Start
//
//	import "github.com/gogpu/forge"
//
//	pix := make([]byte, 320*240*4)
//	ctx, err := forge.NewContext(pix, 320, 240, forge.FormatR8G8B8A8)
//	if err != nil {
//		return err
//	}
//	defer ctx.Close()
//
//	ctx.SetMatrixMode(forge.Projection)
//	ctx.Frustum(-0.1, 0.1, -0.075, 0.075, 0.2, 50)
//	ctx.SetMatrixMode(forge.Modelview)
//	ctx.Translate(0, 0, -3)
//
//	ctx.Enable(forge.DepthTest)
//	ctx.Clear(forge.ColorBuffer | forge.DepthBuffer)
//	ctx.Begin(forge.Triangles)
//	ctx.Color3f(1, 0, 0)
//	ctx.Vertex3f(-1, -1, 0)
//	ctx.Color3f(0, 1, 0)
//	ctx.Vertex3f(1, -1, 0)
//	ctx.Color3f(0, 0, 1)
//	ctx.Vertex3f(0, 1, 0)
//	ctx.End()
//
// # Errors
//
// Context methods never panic and never return errors. A failing call
// records an ErrorCode, changes nothing and returns a zero value; GetError
// returns the first code recorded since the previous call. Constructors
// that work without a context (NewTexture, NewFramebuffer) return Go errors
// wrapping an ErrorCode, so errors.Is(err, forge.OutOfMemory) works.
//
// # Pixel Formats
//
// Every buffer is interpreted through a Codec that converts between bytes
// and Color. Built-in codecs cover 8-bit gray, packed 16-bit, 24/32-bit RGB,
// half-float, float and normalized integer layouts; RegisterCodec adds
// more. Textures implement image.Image and draw.Image.
//
// # Coordinate System
//
// Window coordinates follow image conventions:
//   - Origin (0,0) at the top-left pixel
//   - X increases right
//   - Y increases down
//   - Pixel (x, y) is sampled at the integer point (x, y)
//
// Polygons that are counter-clockwise in normalized device coordinates are
// front-facing.
//
// # Concurrency
//
// A Context must be used from one goroutine at a time. Large triangles are
// split into row bands that are shaded on a per-context worker pool; see
// WithParallelThreshold and WithWorkers.
package forge

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
