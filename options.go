package forge

// DefaultParallelThreshold is the bounding-box area, in pixels, from which a
// triangle is rasterized in parallel row bands.
const DefaultParallelThreshold = 128 * 128

// ContextOption configures a Context during creation.
// Use functional options to customize Context behavior.
//
// Example:
//
//	// Single-threaded rendering into a caller-owned buffer
//	ctx, err := forge.NewContext(pix, 320, 240, forge.FormatR8G8B8A8,
//	    forge.WithParallelThreshold(0))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	parallelThreshold int
	workers           int
	screenDepth       bool
}

// defaultOptions returns the default context options.
func defaultOptions() contextOptions {
	return contextOptions{
		parallelThreshold: DefaultParallelThreshold,
		workers:           0, // GOMAXPROCS
		screenDepth:       true,
	}
}

// WithParallelThreshold sets the triangle bounding-box area, in pixels, at
// which rasterization is split across worker goroutines. Zero or a negative
// value disables parallel rasterization.
func WithParallelThreshold(pixels int) ContextOption {
	return func(o *contextOptions) {
		o.parallelThreshold = pixels
	}
}

// WithWorkers sets the number of rasterization workers. Zero or a negative
// value uses GOMAXPROCS. A single worker disables parallel rasterization.
func WithWorkers(n int) ContextOption {
	return func(o *contextOptions) {
		o.workers = n
	}
}

// WithoutScreenDepth creates the screen without a depth buffer. Depth
// testing has no effect while drawing to the screen.
func WithoutScreenDepth() ContextOption {
	return func(o *contextOptions) {
		o.screenDepth = false
	}
}
