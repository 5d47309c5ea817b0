package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"

	nimage "github.com/ajroetker/go-neighborhood/hwy/contrib/image"
	"github.com/ajroetker/go-neighborhood/hwy/contrib/neighborhood"
)

// rampImage returns a 5×3 gray image whose columns are 0, 51, 102, 153
// and 204, which decode to 0, 0.2, 0.4, 0.6 and 0.8.
func rampImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 5, 3))
	for y := range 3 {
		for x := range 5 {
			img.SetGray(x, y, color.Gray{Y: uint8(51 * x)})
		}
	}
	return img
}

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f))
	require.NoError(t, f.Close())
	return path
}

func writePNG(t *testing.T) string {
	return writeImage(t, "ramp.png", func(f *os.File) error { return png.Encode(f, rampImage()) })
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCLI()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLoadImage(t *testing.T) {
	f, err := os.Open(writePNG(t))
	require.NoError(t, err)
	defer f.Close()

	img, err := loadImage(f)
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3}, img.Size())
	for x := range 5 {
		assert.InDelta(t, 0.2*float64(x), img.At(nimage.Index{x, 1}), 1e-6)
	}
}

func TestLoadImage_Invalid(t *testing.T) {
	_, err := loadImage(strings.NewReader("not an image"))
	require.Error(t, err)
}

func TestProbe_Derivative(t *testing.T) {
	out, err := runCLI(t, writePNG(t), "--op", "derivative", "--axis", "0", "--at", "2,1", "--at", "3,0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, out)
	assert.Contains(t, lines[0], "LOCATION")
	assert.Contains(t, lines[0], "DERIVATIVE")
	assert.Equal(t, []string{"2,1", "0.2"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"3,0", "0.2"}, strings.Fields(lines[2]))
}

func TestProbe_Gradient(t *testing.T) {
	out, err := runCLI(t, writePNG(t), "--op", "gradient", "--policy", "blended", "--at", "1.5,1")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, out)
	assert.Equal(t, []string{"LOCATION", "D0", "D1"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1.5,1", "0.2", "0"}, strings.Fields(lines[1]))
}

func TestProbe_TIFF(t *testing.T) {
	path := writeImage(t, "ramp.tif", func(f *os.File) error { return tiff.Encode(f, rampImage(), nil) })
	out, err := runCLI(t, path, "--op", "derivative", "--at", "2,2")
	require.NoError(t, err)
	assert.Contains(t, out, "0.2")
}

func TestProbe_SubPixel(t *testing.T) {
	out, err := runCLI(t, writePNG(t), "--op", "box", "--radius", "0", "--policy", "blended", "--at", "2.5,1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, out)
	assert.Equal(t, []string{"2.5,1", "0.5"}, strings.Fields(lines[1]))
}

func TestProbe_Errors(t *testing.T) {
	file := writePNG(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown operator", []string{file, "--op", "sharpen", "--at", "1,1"}, "unknown operator"},
		{"unknown boundary", []string{file, "--boundary", "reflect", "--at", "1,1"}, "unknown boundary"},
		{"unknown policy", []string{file, "--policy", "cubic", "--at", "1.5,1"}, "unknown sub-pixel policy"},
		{"bad location", []string{file, "--at", "1;1"}, "coordinates"},
		{"not a number", []string{file, "--at", "1,x"}, "invalid syntax"},
		{"3-D operator", []string{file, "--op", "zucker-hummel", "--at", "1,1"}, "3-D"},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.png"), "--at", "1,1"}, "no such file"},
		{"missing location", []string{file}, "at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProbe_HugeCoordinate(t *testing.T) {
	_, err := runCLI(t, writePNG(t), "--at", "1e20,0")
	require.ErrorIs(t, err, neighborhood.ErrOutOfBounds)
	assert.NotErrorIs(t, err, neighborhood.ErrNotInitialized)
}

func TestProbe_StrictBoundary(t *testing.T) {
	_, err := runCLI(t, writePNG(t), "--boundary", "strict", "--at", "0,0")
	require.ErrorIs(t, err, neighborhood.ErrOutOfBounds)

	out, err := runCLI(t, writePNG(t), "--boundary", "constant", "--pad", "1", "--at", "0,0")
	require.NoError(t, err)
	// (0.2 - 1) / 2
	assert.Contains(t, out, "-0.4")
}
