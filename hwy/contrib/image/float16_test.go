package image

import (
	"testing"

	"github.com/x448/float16"
)

func TestFromFloat16(t *testing.T) {
	samples := []float16.Float16{
		float16.Fromfloat32(0), float16.Fromfloat32(0.5), float16.Fromfloat32(1),
		float16.Fromfloat32(1.5), float16.Fromfloat32(2), float16.Fromfloat32(-3),
	}
	img, err := FromFloat16([]int{3, 2}, samples)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.At(Index{1, 0}); got != 0.5 {
		t.Errorf("At(1,0) = %v, want 0.5", got)
	}
	if got := img.At(Index{2, 1}); got != -3 {
		t.Errorf("At(2,1) = %v, want -3", got)
	}

	back := ToFloat16(img)
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("ToFloat16[%d] = %v, want %v", i, back[i], samples[i])
		}
	}

	if _, err := FromFloat16([]int{2, 2}, samples); err == nil {
		t.Error("FromFloat16 with wrong sample count should fail")
	}
}
