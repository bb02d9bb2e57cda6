package domain

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a parsed tool version, e.g. (13, 2, 0) for "13.2.0".
// At least two numeric components are required.
type Version []int

// ParseVersion parses a dot-separated version string.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 {
		return nil, zerr.With(zerr.New("version must have at least two components"), "version", s)
	}

	v := make(Version, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "version component is not numeric"), "version", s)
		}
		v[i] = n
	}
	return v, nil
}

// String renders the version dot-separated.
func (v Version) String() string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Equal reports whether two versions are component-wise identical.
func (v Version) Equal(o Version) bool {
	return slices.Equal(v, o)
}

// Compare orders versions component-wise, missing components count as zero.
func (v Version) Compare(o Version) int {
	for i := 0; i < max(len(v), len(o)); i++ {
		a, b := 0, 0
		if i < len(v) {
			a = v[i]
		}
		if i < len(o) {
			b = o[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}
	return 0
}
