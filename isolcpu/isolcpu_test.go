package isolcpu

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"0-3", []int{0, 1, 2, 3}},
		{"2-3", []int{2, 3}},
		{"23", nil},
		{"", nil},
		{"4-", nil},
		{"-4", nil},
		{"3-2", nil},
		{"\n", nil},
		{"5-5", []int{5}},
	}
	for _, c := range cases {
		got := Parse(c.in)
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("Parse(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
