// File: isolcpu/isolcpu.go
// Package isolcpu parses the Linux isolated-CPU sysfs node so a worker pool
// can restrict placement to cores removed from the general scheduler's
// balance pool at boot.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
package isolcpu

import (
	"strconv"
	"strings"
)

// Path is the well-known isolated-cpu sysfs node.
const Path = "/sys/devices/system/cpu/isolated"

// Parse implements the isolated-cpu file contract: empty content, or any
// content that isn't exactly "<first>-<last>", yields no isolation.
func Parse(contents string) []int {
	s := strings.TrimSpace(contents)
	if s == "" {
		return nil
	}
	first, last, ok := strings.Cut(s, "-")
	if !ok {
		return nil
	}
	lo, err := strconv.Atoi(first)
	if err != nil {
		return nil
	}
	hi, err := strconv.Atoi(last)
	if err != nil {
		return nil
	}
	if hi < lo {
		return nil
	}
	cores := make([]int, 0, hi-lo+1)
	for c := lo; c <= hi; c++ {
		cores = append(cores, c)
	}
	return cores
}
