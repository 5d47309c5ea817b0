package hwy

import (
	"os"
	"strconv"
	"unsafe"
)

// DispatchLevel names the vector extension found on the running CPU.
// The level only sets the register width that image rows are padded to;
// no computation changes its result with the level.
type DispatchLevel int

const (
	DispatchScalar DispatchLevel = iota
	DispatchSSE2
	DispatchAVX2
	DispatchAVX512
	DispatchNEON
	DispatchSVE
)

var levelNames = [...]string{
	DispatchScalar: "scalar",
	DispatchSSE2:   "sse2",
	DispatchAVX2:   "avx2",
	DispatchAVX512: "avx512",
	DispatchNEON:   "neon",
	DispatchSVE:    "sve",
}

func (d DispatchLevel) String() string {
	if d < 0 || int(d) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[d]
}

// Set by init() in dispatch_*.go.
var (
	currentLevel DispatchLevel
	currentWidth int // bytes
)

// CurrentWidth returns the register width in bytes that image rows are
// aligned to: 16 for SSE2/NEON and scalar mode, 32 for AVX2, 64 for AVX-512.
func CurrentWidth() int {
	return currentWidth
}

// CurrentName returns the name of the detected vector extension, for logs.
func CurrentName() string {
	return currentLevel.String()
}

// NoSimdEnv reports whether NBHD_NO_SIMD is set. Any value other than a
// false boolean counts as set, and selects 16-byte alignment regardless of
// the CPU.
func NoSimdEnv() bool {
	val := os.Getenv("NBHD_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

func setScalarMode() {
	currentLevel = DispatchScalar
	currentWidth = 16
}

// MaxLanes returns how many values of T fit in one register of the current
// width, e.g. 8 float32 values with AVX2.
func MaxLanes[T Lanes]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return 0
	}
	return currentWidth / size
}
