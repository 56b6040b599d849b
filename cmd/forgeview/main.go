// Command forgeview shows the forge sample scene in a desktop window.
//
// The pipeline renders into a plain RGBA byte slice; the window only
// uploads that slice to an ebiten image once per frame.
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/internal/demo"
)

func main() {
	var (
		width   = flag.Int("width", 320, "framebuffer width")
		height  = flag.Int("height", 240, "framebuffer height")
		scale   = flag.Int("scale", 2, "window scale factor")
		texture = flag.String("texture", "", "image file to map onto the cube")
		speed   = flag.Float64("speed", 1.5, "rotation in degrees per tick")
	)
	flag.Parse()

	g, err := newHostGame(*width, *height, *texture, float32(*speed))
	if err != nil {
		log.Fatal(err)
	}
	defer g.ctx.Close()

	ebiten.SetWindowTitle("forge")
	ebiten.SetWindowSize(*width**scale, *height**scale)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

type hostGame struct {
	ctx    *forge.Context
	pix    []byte
	img    *ebiten.Image
	angle  float32
	speed  float32
	width  int
	height int
}

func newHostGame(w, h int, texturePath string, speed float32) (*hostGame, error) {
	pix := make([]byte, forge.FormatR8G8B8A8.ImageBytes(w, h))
	ctx, err := forge.NewContext(pix, w, h, forge.FormatR8G8B8A8)
	if err != nil {
		return nil, err
	}

	var tex *forge.Texture
	if texturePath != "" {
		tex, err = demo.LoadTexture(texturePath)
	} else {
		tex, err = demo.Checkerboard(64, 8)
	}
	if err != nil {
		ctx.Close()
		return nil, err
	}
	if err := demo.Setup(ctx, tex); err != nil {
		ctx.Close()
		return nil, err
	}
	return &hostGame{ctx: ctx, pix: pix, speed: speed, width: w, height: h}, nil
}

func (g *hostGame) Update() error {
	g.angle += g.speed
	if g.angle >= 360 {
		g.angle -= 360
	}
	return demo.Frame(g.ctx, g.angle)
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	if g.img == nil {
		g.img = ebiten.NewImage(g.width, g.height)
	}
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
