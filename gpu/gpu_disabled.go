//go:build !gpu

package gpu

const supported = false
