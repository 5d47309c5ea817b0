package neighborhood

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ajroetker/go-neighborhood/hwy/contrib/image"
)

func TestNewOperator(t *testing.T) {
	tests := []struct {
		name    string
		radius  []int
		coeffs  []float64
		wantErr bool
	}{
		{"1-D", []int{1}, []float64{1, 2, 3}, false},
		{"2-D asymmetric", []int{2, 0}, []float64{1, 2, 3, 4, 5}, false},
		{"single tap", []int{0, 0, 0}, []float64{1}, false},
		{"empty", nil, nil, false},
		{"negative radius", []int{-1}, nil, true},
		{"too few", []int{1, 1}, make([]float64, 8), true},
		{"too many", []int{1}, make([]float64, 4), true},
		{"coefficients without radius", nil, []float64{1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewOperator(tt.radius, tt.coeffs)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOperator) {
					t.Fatalf("NewOperator error = %v, want ErrInvalidOperator", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewOperator: %v", err)
			}
			if op.Len() != len(tt.coeffs) {
				t.Errorf("Len() = %d, want %d", op.Len(), len(tt.coeffs))
			}
			if op.Dims() != len(tt.radius) {
				t.Errorf("Dims() = %d, want %d", op.Dims(), len(tt.radius))
			}
		})
	}
}

func TestNewOperator_Copies(t *testing.T) {
	radius := []int{1}
	coeffs := []float64{1, 2, 3}
	op, err := NewOperator(radius, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	radius[0], coeffs[0] = 5, 100
	if diff := cmp.Diff([]int{1}, op.Radius()); diff != "" {
		t.Errorf("Radius() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, op.Coefficients()); diff != "" {
		t.Errorf("Coefficients() mismatch (-want +got):\n%s", diff)
	}
	op.Coefficients()[1] = 42
	if op.At(image.Index{0}) != 2 {
		t.Error("mutating Coefficients() result changed the operator")
	}
}

func TestOperator_OffsetRoundTrip(t *testing.T) {
	op := flatIndexOperator(t, 2, 0, 1)
	if diff := cmp.Diff([]int{5, 1, 3}, op.Size()); diff != "" {
		t.Errorf("Size() mismatch (-want +got):\n%s", diff)
	}
	for i := range op.Len() {
		o := op.Offset(i)
		if got := op.At(o); got != float64(i) {
			t.Errorf("At(Offset(%d) = %v) = %v, want %d", i, o, got, i)
		}
	}
	if diff := cmp.Diff(image.Index{-2, 0, -1}, op.Offset(0)); diff != "" {
		t.Errorf("Offset(0) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(image.Index{-1, 0, -1}, op.Offset(1)); diff != "" {
		t.Errorf("Offset(1) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(image.Index{-2, 0, 0}, op.Offset(5)); diff != "" {
		t.Errorf("Offset(5) mismatch (-want +got):\n%s", diff)
	}
	if got := op.At(image.Index{3, 0, 0}); got != 0 {
		t.Errorf("At outside = %v, want 0", got)
	}
	if got := op.At(image.Index{0, 0}); got != 0 {
		t.Errorf("At with wrong dims = %v, want 0", got)
	}
}

func TestOperator_Empty(t *testing.T) {
	var op Operator[float32]
	if !op.IsEmpty() || op.Len() != 0 || op.Dims() != 0 {
		t.Errorf("zero Operator = %v, want empty", op)
	}
	if got := op.String(); got != "Operator{}" {
		t.Errorf("String() = %q", got)
	}
	if !op.Clone().IsEmpty() {
		t.Error("Clone of empty operator is not empty")
	}
}

func TestPad(t *testing.T) {
	op, _ := Derivative[float64](2, 0, 1)
	padded, err := Pad(op, []int{2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if padded.Len() != 15 {
		t.Fatalf("Len() = %d, want 15", padded.Len())
	}
	tests := []struct {
		offset image.Index
		want   float64
	}{
		{image.Index{-1, 0}, -0.5},
		{image.Index{1, 0}, 0.5},
		{image.Index{0, 0}, 0},
		{image.Index{2, 1}, 0},
		{image.Index{1, -1}, 0},
	}
	for _, tt := range tests {
		if got := padded.At(tt.offset); got != tt.want {
			t.Errorf("padded.At(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	if _, err := Pad(op, []int{0, 0}); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Pad to smaller radius error = %v, want ErrInvalidOperator", err)
	}
	if _, err := Pad(op, []int{1}); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Pad with wrong dims error = %v, want ErrInvalidOperator", err)
	}
	if _, err := Pad(Operator[float64]{}, []int{1}); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Pad of empty operator error = %v, want ErrInvalidOperator", err)
	}
}

func TestScale(t *testing.T) {
	op, _ := NewOperator([]int{1}, []float64{1, 2, 3})
	scaled := op.Scale(-2)
	if diff := cmp.Diff([]float64{-2, -4, -6}, scaled.Coefficients()); diff != "" {
		t.Errorf("Scale mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1, 2, 3}, op.Coefficients()); diff != "" {
		t.Errorf("Scale modified the receiver (-want +got):\n%s", diff)
	}
}

func TestStandardOperators(t *testing.T) {
	mustOp := func(op Operator[float64], err error) Operator[float64] {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return op
	}

	tests := []struct {
		name   string
		op     Operator[float64]
		radius []int
		coeffs []float64
	}{
		{"derivative order 1", mustOp(Derivative[float64](2, 0, 1)), []int{1, 0}, []float64{-0.5, 0, 0.5}},
		{"derivative order 2", mustOp(Derivative[float64](2, 1, 2)), []int{0, 1}, []float64{1, -2, 1}},
		{"forward", mustOp(ForwardDifference[float64](1, 0)), []int{1}, []float64{0, -1, 1}},
		{"backward", mustOp(BackwardDifference[float64](1, 0)), []int{1}, []float64{-1, 1, 0}},
		{"laplacian 2-D", mustOp(Laplacian[float64](2)), []int{1, 1}, []float64{0, 1, 0, 1, -4, 1, 0, 1, 0}},
		{"sobel x", mustOp(Sobel[float64](2, 0)), []int{1, 1}, []float64{-1, 0, 1, -2, 0, 2, -1, 0, 1}},
		{"sobel y", mustOp(Sobel[float64](2, 1)), []int{1, 1}, []float64{-1, -2, -1, 0, 0, 0, 1, 2, 1}},
		{"mixed", mustOp(MixedDerivative[float64](2, 0, 1)), []int{1, 1}, []float64{0.25, 0, -0.25, 0, 0, 0, -0.25, 0, 0.25}},
		{"mixed same axis", mustOp(MixedDerivative[float64](1, 0, 0)), []int{1}, []float64{1, -2, 1}},
		{"separable", mustOp(Separable([]float64{1, 2, 1}, []float64{1})), []int{1, 0}, []float64{1, 2, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.radius, tt.op.Radius()); diff != "" {
				t.Errorf("Radius() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.coeffs, tt.op.Coefficients()); diff != "" {
				t.Errorf("Coefficients() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLaplacian3D(t *testing.T) {
	op, err := Laplacian[float64](3)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for i, c := range op.Coefficients() {
		sum += c
		o := op.Offset(i)
		nonzero := 0
		for _, v := range o {
			if v != 0 {
				nonzero++
			}
		}
		var want float64
		switch nonzero {
		case 0:
			want = -6
		case 1:
			want = 1
		}
		if c != want {
			t.Errorf("coefficient at %v = %v, want %v", o, c, want)
		}
	}
	if sum != 0 {
		t.Errorf("coefficients sum to %v, want 0", sum)
	}
}

func TestBox(t *testing.T) {
	op, err := Box[float64](3, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := make([]float64, 27)
	for i := range want {
		want[i] = 1.0 / 27
	}
	if diff := cmp.Diff(want, op.Coefficients()); diff != "" {
		t.Errorf("Box mismatch (-want +got):\n%s", diff)
	}
	if _, err := Box[float64](2, -1); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Box(2, -1) error = %v, want ErrInvalidOperator", err)
	}
}

func TestGaussian(t *testing.T) {
	tests := []struct {
		sigma     float64
		maxRadius int
		wantLen   int
	}{
		{1, 0, 7},
		{1, 2, 5},
		{0.5, 0, 5},
		{2.2, 0, 15},
	}
	for _, tt := range tests {
		op, err := Gaussian[float64](2, 1, tt.sigma, tt.maxRadius)
		if err != nil {
			t.Fatalf("Gaussian(%v, %d): %v", tt.sigma, tt.maxRadius, err)
		}
		c := op.Coefficients()
		if len(c) != tt.wantLen {
			t.Errorf("Gaussian(%v, %d) has %d taps, want %d", tt.sigma, tt.maxRadius, len(c), tt.wantLen)
		}
		var sum float64
		for i, v := range c {
			sum += v
			if math.Abs(v-c[len(c)-1-i]) > 1e-15 {
				t.Errorf("Gaussian(%v) not symmetric at %d", tt.sigma, i)
			}
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Errorf("Gaussian(%v) sums to %v, want 1", tt.sigma, sum)
		}
		if c[len(c)/2] <= c[0] {
			t.Errorf("Gaussian(%v) center %v not above tail %v", tt.sigma, c[len(c)/2], c[0])
		}
	}

	for _, sigma := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := Gaussian[float64](1, 0, sigma, 0); !errors.Is(err, ErrInvalidOperator) {
			t.Errorf("Gaussian(sigma=%v) error = %v, want ErrInvalidOperator", sigma, err)
		}
	}
}

func TestZuckerHummel(t *testing.T) {
	for axis := range 3 {
		op, err := ZuckerHummel[float64](axis)
		if err != nil {
			t.Fatal(err)
		}
		for i := range op.Len() {
			o := op.Offset(i)
			neg := image.Index{-o[0], -o[1], -o[2]}
			if got, want := op.At(o), -op.At(neg); got != want {
				t.Errorf("axis %d: At(%v) = %v, want %v (antisymmetric)", axis, o, got, want)
			}
		}
		unit := image.Index{0, 0, 0}
		unit[axis] = 1
		if got := op.At(unit); got != 1 {
			t.Errorf("axis %d: At(%v) = %v, want 1", axis, unit, got)
		}
	}

	op, _ := ZuckerHummel[float64](0)
	tests := []struct {
		offset image.Index
		want   float64
	}{
		{image.Index{1, 1, 0}, math.Sqrt2 / 2},
		{image.Index{-1, 0, 1}, -math.Sqrt2 / 2},
		{image.Index{1, 1, 1}, 1 / math.Sqrt(3)},
		{image.Index{0, 1, 1}, 0},
	}
	approx := cmpopts.EquateApprox(0, 1e-15)
	for _, tt := range tests {
		if got := op.At(tt.offset); !cmp.Equal(got, tt.want, approx) {
			t.Errorf("At(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}

	if _, err := ZuckerHummel[float64](3); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("ZuckerHummel(3) error = %v, want ErrInvalidOperator", err)
	}
}

func TestCheckAxis(t *testing.T) {
	if _, err := Derivative[float64](2, 2, 1); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Derivative axis out of range error = %v", err)
	}
	if _, err := Derivative[float64](2, 0, 3); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Derivative order 3 error = %v", err)
	}
	if _, err := Sobel[float64](0, 0); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Sobel(0 dims) error = %v", err)
	}
	if _, err := Separable[float64]([]float64{1, 1}); !errors.Is(err, ErrInvalidOperator) {
		t.Errorf("Separable(even kernel) error = %v", err)
	}
}
