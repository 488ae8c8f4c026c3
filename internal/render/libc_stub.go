//go:build !cgo

package render

// LibcAvailable reports whether the host snprintf engine is compiled in.
const LibcAvailable = false
