//go:build arm64

package hwy

import "golang.org/x/sys/cpu"

func init() {
	// Check for NBHD_NO_SIMD environment variable first
	if NoSimdEnv() {
		setScalarMode()
		return
	}

	// ARM64 (AArch64) always has NEON (ASIMD) available.
	// It's part of the ARMv8-A base architecture.
	if !cpu.ARM64.HasASIMD {
		setScalarMode()
		return
	}
	currentLevel = DispatchNEON
	currentWidth = 16 // NEON is 128-bit (16 bytes)

	// SVE vector length is implementation defined; keep NEON blocking so
	// results match between SVE and non-SVE cores.
	if cpu.ARM64.HasSVE {
		currentLevel = DispatchSVE
	}
}
