//go:build linux

// File: isolcpu/read_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package isolcpu

import "os"

// Read reads the isolated-CPU sysfs node. A missing file (older kernels, or
// no isolation configured) is not an error: it is treated the same as
// empty content.
func Read() ([]int, error) {
	data, err := os.ReadFile(Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(string(data)), nil
}
