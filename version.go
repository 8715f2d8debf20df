package fileio

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Version is a semantic version triple. Pre-release and build metadata are
// not modelled.
type Version struct {
	Major int
	Minor int
	Patch int
}

// V is shorthand for Version{major, minor, patch}.
func V(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Compare returns -1, 0 or 1 when a is older, equal or newer than b.
func Compare(a, b Version) int {
	switch {
	case a.Major != b.Major:
		return cmpInt(a.Major, b.Major)
	case a.Minor != b.Minor:
		return cmpInt(a.Minor, b.Minor)
	default:
		return cmpInt(a.Patch, b.Patch)
	}
}

// IsFuture reports whether a is strictly newer than b.
func IsFuture(a, b Version) bool {
	return Compare(a, b) > 0
}

// Compare is the method form of Compare(v, other).
func (v Version) Compare(other Version) int {
	return Compare(v, other)
}

// Equal reports component-wise equality.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Valid reports whether v is usable as a migration endpoint. The fixed arity
// of Version already guarantees the triple shape; negative components are
// accepted.
func (v Version) Valid() bool {
	return true
}

// Triple returns the wire form persisted in envelopes.
func (v Version) Triple() [3]int {
	return [3]int{v.Major, v.Minor, v.Patch}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion reads "1.2.3" or "v1.2.3".
func ParseVersion(input string) (Version, error) {
	value := strings.TrimPrefix(strings.TrimSpace(input), "v")
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("%w: %q is not major.minor.patch", ErrInvalidVersion, input)
	}
	var out [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, input, err)
		}
		out[i] = n
	}
	return V(out[0], out[1], out[2]), nil
}

// VersionFromAny converts a decoded envelope value into a Version. The value
// must be a sequence of exactly three integers. Floating point components are
// rejected even when integral.
func VersionFromAny(value any) (Version, error) {
	var items []any
	switch typed := value.(type) {
	case []any:
		items = typed
	case []int:
		for _, n := range typed {
			items = append(items, n)
		}
	case []int64:
		for _, n := range typed {
			items = append(items, n)
		}
	case [3]int:
		return V(typed[0], typed[1], typed[2]), nil
	case Version:
		return typed, nil
	default:
		return Version{}, fmt.Errorf("%w: expected a list of three integers, got %T", ErrInvalidVersion, value)
	}
	if len(items) != 3 {
		return Version{}, fmt.Errorf("%w: expected three components, got %d", ErrInvalidVersion, len(items))
	}
	var out [3]int
	for i, item := range items {
		n, ok := toInt(item)
		if !ok {
			return Version{}, fmt.Errorf("%w: component %d is not an integer (%v)", ErrInvalidVersion, i, item)
		}
		out[i] = n
	}
	return V(out[0], out[1], out[2]), nil
}

func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		if n > math.MaxInt || n < math.MinInt {
			return 0, false
		}
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case uint:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(i)
	default:
		return 0, false
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
