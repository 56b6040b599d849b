// Command forgedemo renders one frame of the forge sample scene to a PNG file.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/forge"
	"github.com/gogpu/forge/internal/demo"
)

func main() {
	var (
		width   = flag.Int("width", 640, "image width")
		height  = flag.Int("height", 480, "image height")
		angle   = flag.Float64("angle", 35, "cube rotation in degrees")
		texture = flag.String("texture", "", "image file to map onto the cube (png, jpeg, gif, bmp, tiff, webp)")
		output  = flag.String("output", "forge.png", "output file")
		verbose = flag.Bool("v", false, "log pipeline diagnostics")
	)
	flag.Parse()

	if *verbose {
		forge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	ctx, err := forge.NewContext(nil, *width, *height, forge.FormatR8G8B8A8)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer ctx.Close()

	tex, err := loadTexture(*texture)
	if err != nil {
		log.Fatalf("Failed to load texture: %v", err)
	}
	if err := demo.Setup(ctx, tex); err != nil {
		log.Fatalf("Failed to set up scene: %v", err)
	}
	if err := demo.Frame(ctx, float32(*angle)); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := savePNG(*output, ctx.Screen().Texture()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Frame saved to %s (%dx%d)\n", *output, *width, *height)
}

func loadTexture(path string) (*forge.Texture, error) {
	if path == "" {
		return demo.Checkerboard(64, 8)
	}
	return demo.LoadTexture(path)
}

func savePNG(path string, tex *forge.Texture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, tex); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
