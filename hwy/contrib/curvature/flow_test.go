package curvature

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/workerpool"
)

// bowl returns a 9×9 image holding sign·((x-4)² + (y-4)²).
func bowl(sign float64) *image.Image[float64] {
	img := image.NewImage[float64](9, 9)
	image.ForEachIndex(img.Region(), func(idx image.Index) {
		dx, dy := float64(idx[0]-4), float64(idx[1]-4)
		img.Set(idx, sign*(dx*dx+dy*dy))
	})
	return img
}

func TestComputeUpdate(t *testing.T) {
	// At (6, 4) the gradient is ±(4, 0), the Hessian is ±2·I and the
	// 5×5 stencil average is ±8, so u = ±2.
	tests := []struct {
		name      string
		sign      float64
		threshold float64
		want      float64
	}{
		{"convex below threshold", 1, 10, 0},
		{"convex above threshold", 1, 5, 2},
		{"concave below threshold", -1, 10, -2},
		{"concave above threshold", -1, -20, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New[float64, float64](2)
			if err != nil {
				t.Fatal(err)
			}
			f.SetThreshold(tt.threshold)
			if err := f.SetInputImage(bowl(tt.sign)); err != nil {
				t.Fatal(err)
			}
			got, err := f.ComputeUpdate(image.Index{6, 4})
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ComputeUpdate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeUpdate_FlatAndLinear(t *testing.T) {
	flat := image.NewImage[float32](6, 6, 6)
	flat.Fill(3)
	linear := image.NewImage[float32](6, 6, 6)
	image.ForEachIndex(linear.Region(), func(idx image.Index) {
		linear.Set(idx, float32(idx[0]+2*idx[1]-idx[2]))
	})

	for name, img := range map[string]*image.Image[float32]{"flat": flat, "linear": linear} {
		f, err := New[float32, float32](3)
		if err != nil {
			t.Fatal(err)
		}
		f.SetThreshold(-100)
		if err := f.SetInputImage(img); err != nil {
			t.Fatal(err)
		}
		got, err := f.ComputeUpdate(image.Index{3, 3, 3})
		if err != nil {
			t.Fatal(err)
		}
		if got != 0 {
			t.Errorf("%s: ComputeUpdate = %v, want 0", name, got)
		}
	}
}

func TestFunction_Settings(t *testing.T) {
	f, err := New[float32, float64](2)
	if err != nil {
		t.Fatal(err)
	}
	if f.StencilRadius() != DefaultStencilRadius || f.Threshold() != 0 {
		t.Errorf("defaults = (%d, %v), want (%d, 0)", f.StencilRadius(), f.Threshold(), DefaultStencilRadius)
	}
	if err := f.SetStencilRadius(-1); !errors.Is(err, neighborhood.ErrInvalidOperator) {
		t.Errorf("SetStencilRadius(-1) error = %v, want ErrInvalidOperator", err)
	}
	if f.StencilRadius() != DefaultStencilRadius {
		t.Errorf("failed SetStencilRadius changed the radius to %d", f.StencilRadius())
	}
	if err := f.SetStencilRadius(1); err != nil || f.StencilRadius() != 1 {
		t.Errorf("SetStencilRadius(1) = %v, radius %d", err, f.StencilRadius())
	}
	if err := f.SetInputImage(image.NewImage[float32](3, 3, 3)); !errors.Is(err, neighborhood.ErrDimensionMismatch) {
		t.Errorf("SetInputImage(3-D) error = %v, want ErrDimensionMismatch", err)
	}
	if _, err := f.ComputeUpdate(image.Index{0, 0}); !errors.Is(err, neighborhood.ErrNotInitialized) {
		t.Errorf("ComputeUpdate without image error = %v, want ErrNotInitialized", err)
	}
	if _, err := New[float32, float64](0); err == nil {
		t.Error("New(0) should fail")
	}
}

func TestStep(t *testing.T) {
	// A 2×2 bright square in a dark binary image is an island the flow
	// shrinks.
	img := image.NewImage[float64](8, 8)
	for _, idx := range []image.Index{{3, 3}, {4, 3}, {3, 4}, {4, 4}} {
		img.Set(idx, 1)
	}

	f, err := New[float64, float64](2)
	if err != nil {
		t.Fatal(err)
	}
	f.SetThreshold(0.5)

	pool := workerpool.New(3)
	defer pool.Close()

	out, err := f.Step(context.Background(), pool, img, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	serial, err := f.Step(context.Background(), nil, img, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	image.ForEachIndex(img.Region(), func(idx image.Index) {
		if out.At(idx) != serial.At(idx) {
			t.Errorf("pool and serial steps differ at %v: %v vs %v", idx, out.At(idx), serial.At(idx))
		}
		if out.At(idx) > img.At(idx) {
			t.Errorf("pixel %v grew from %v to %v below the threshold", idx, img.At(idx), out.At(idx))
		}
	})
	if out.At(image.Index{3, 3}) >= 1 {
		t.Errorf("island pixel = %v, want it to shrink", out.At(image.Index{3, 3}))
	}
	if img.At(image.Index{3, 3}) != 1 {
		t.Error("Step modified its input")
	}

	if _, err := f.Step(context.Background(), nil, img, math.NaN()); err == nil {
		t.Error("Step with NaN time step should fail")
	}
}
