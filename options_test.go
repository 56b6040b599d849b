package forge

import (
	"errors"
	"fmt"
	"testing"
)

// TestDefaultOptions tests the configuration NewContext uses without options.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.parallelThreshold != DefaultParallelThreshold {
		t.Errorf("parallelThreshold = %d, want %d", o.parallelThreshold, DefaultParallelThreshold)
	}
	if o.workers != 0 {
		t.Errorf("workers = %d, want 0 (GOMAXPROCS)", o.workers)
	}
	if !o.screenDepth {
		t.Error("screenDepth = false, want true")
	}
}

// TestContextOptions tests that each option sets its field.
func TestContextOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []ContextOption
		check func(contextOptions) bool
	}{
		{"threshold", []ContextOption{WithParallelThreshold(64)}, func(o contextOptions) bool { return o.parallelThreshold == 64 }},
		{"disable parallel", []ContextOption{WithParallelThreshold(0)}, func(o contextOptions) bool { return o.parallelThreshold == 0 }},
		{"workers", []ContextOption{WithWorkers(3)}, func(o contextOptions) bool { return o.workers == 3 }},
		{"no depth", []ContextOption{WithoutScreenDepth()}, func(o contextOptions) bool { return !o.screenDepth }},
		{"last wins", []ContextOption{WithWorkers(2), WithWorkers(5)}, func(o contextOptions) bool { return o.workers == 5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			for _, opt := range tt.opts {
				opt(&o)
			}
			if !tt.check(o) {
				t.Errorf("options = %+v", o)
			}
		})
	}
}

// TestNewContextAppliesOptions tests that options reach the context.
func TestNewContextAppliesOptions(t *testing.T) {
	c, err := NewContext(nil, 2, 2, FormatR8G8B8A8, WithoutScreenDepth(), WithWorkers(1))
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	defer c.Close()

	if c.Screen().HasDepth() {
		t.Error("screen has depth despite WithoutScreenDepth")
	}
	if c.opts.workers != 1 {
		t.Errorf("workers = %d, want 1", c.opts.workers)
	}
}

// =============================================================================
// Error codes
// =============================================================================

func TestErrorCodeString(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{NoError, "NoError"},
		{InvalidEnum, "InvalidEnum"},
		{StackOverflow, "StackOverflow"},
		{InvalidOperation, "InvalidOperation"},
		{OutOfMemory, "OutOfMemory"},
		{ErrorCode(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", uint8(tt.code), got, tt.want)
		}
	}
	if got := InvalidEnum.Error(); got != "forge: InvalidEnum" {
		t.Errorf("Error() = %q", got)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"nil", nil, NoError},
		{"bare", OutOfMemory, OutOfMemory},
		{"wrapped", fmt.Errorf("forge: texture: %w", InvalidEnum), InvalidEnum},
		{"foreign", errors.New("disk on fire"), InvalidOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeOf(tt.err); got != tt.want {
				t.Errorf("codeOf() = %v, want %v", got, tt.want)
			}
		})
	}
}
