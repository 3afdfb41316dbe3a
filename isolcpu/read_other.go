//go:build !linux

// File: isolcpu/read_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package isolcpu

// Read reports no isolation on platforms without the isolated-cpu sysfs
// node.
func Read() ([]int, error) {
	return nil, nil
}
