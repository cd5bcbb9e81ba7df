// Package gpu reports whether this binary was built with GPU support.
//
// Kernel call payloads only matter on deployments that can launch kernels.
// Building with the gpu build tag marks the binary as GPU-capable; without
// it, Supported reports false and callers can reject payloads up front
// instead of decoding launch information for a device that is not there.
package gpu

// Supported reports whether the binary was built with the gpu build tag.
func Supported() bool {
	return supported
}
