//go:build !amd64 || !cgo

// File: rtutil/flush_denormals_nocgo.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rtutil

// setFlushToZeroAMD64 is a no-op without cgo or on non-amd64 architectures:
// there is no portable Go intrinsic for the MXCSR flush-to-zero bits.
func setFlushToZeroAMD64() {}
