package parser

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// version is a parsed document version such as "2.0", "3.1.1" or
// "2.6.0-rc1". A missing patch number is zero.
type version struct {
	nums [3]int // major, minor, patch
	pre  string
}

func (v version) major() int { return v.nums[0] }

// parseVersion accepts two or three dot-separated non-negative integers with
// an optional "-pre" suffix.
func parseVersion(s string) (version, error) {
	core, pre, _ := strings.Cut(s, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 2 && len(parts) != 3 {
		return version{}, fmt.Errorf("want major.minor[.patch], got %q", s)
	}
	var v version
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return version{}, fmt.Errorf("bad version number %q in %q", p, s)
		}
		v.nums[i] = int(n)
	}
	v.pre = pre
	return v, nil
}

// compare orders versions numerically. A pre-release sorts before its
// release; pre-release tags compare as strings.
func (v version) compare(o version) int {
	for i := range v.nums {
		if c := cmp.Compare(v.nums[i], o.nums[i]); c != 0 {
			return c
		}
	}
	switch {
	case v.pre == o.pre:
		return 0
	case v.pre == "":
		return 1
	case o.pre == "":
		return -1
	}
	return strings.Compare(v.pre, o.pre)
}
