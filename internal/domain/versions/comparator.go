// Package versions compares package version strings numerically.
//
// Versions are reduced to tuples of their digit runs ("1.2.3-beta1" becomes
// [1 2 3]) and compared lexicographically. This deliberately ignores
// pre-release ordering: the analyzer only needs a stable "is newer" answer
// across the loosely formatted versions found on PyPI and in git tags.
package versions

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// tupleCacheSize bounds the numeric tuple memoization cache.
const tupleCacheSize = 512

var (
	minimumGE     = regexp.MustCompile(`>=\s*([0-9][0-9a-zA-Z._-]*)`)
	minimumEQ     = regexp.MustCompile(`==\s*([0-9][0-9a-zA-Z._-]*)`)
	minimumCompat = regexp.MustCompile(`~=\s*([0-9][0-9a-zA-Z._-]*)`)
	bareVersion   = regexp.MustCompile(`^([0-9][0-9a-zA-Z._-]*)$`)
	digitRuns     = regexp.MustCompile(`\d+`)
)

// Comparator extracts and compares numeric version tuples. It owns an
// explicit memoization cache for parsed tuples, safe for concurrent use.
type Comparator struct {
	tuples *lru.Cache[string, []int]
}

// NewComparator creates a Comparator with a bounded tuple cache.
func NewComparator() *Comparator {
	cache, err := lru.New[string, []int](tupleCacheSize)
	if err != nil {
		// lru.New only fails for a non-positive size
		panic(err)
	}
	return &Comparator{tuples: cache}
}

// MinimumOf extracts the lowest declared bound from a constraint expression
// like ">=1.0,<2.0" or "^1.5.0". The second return value is false when no
// minimum could be determined.
func (it *Comparator) MinimumOf(constraints string) (string, bool) {
	constraints = strings.TrimSpace(constraints)
	if constraints == "" {
		return "", false
	}

	// Poetry caret operator, and tilde when it is not the ~= form below.
	if strings.HasPrefix(constraints, "^") ||
		(strings.HasPrefix(constraints, "~") && !strings.HasPrefix(constraints, "~=")) {
		minimum, _, _ := strings.Cut(constraints[1:], ",")
		return strings.TrimSpace(minimum), true
	}

	for _, pattern := range []*regexp.Regexp{minimumGE, minimumEQ, minimumCompat} {
		if match := pattern.FindStringSubmatch(constraints); match != nil {
			return match[1], true
		}
	}

	if match := bareVersion.FindStringSubmatch(constraints); match != nil {
		return match[1], true
	}

	return "", false
}

// NumericTuple converts a version string to its tuple of digit runs,
// ignoring pre-release ("-...") and build metadata ("+...") suffixes.
// Versions without digits yield [0]. Results are memoized: repeated calls
// with the same input return the cached tuple.
func (it *Comparator) NumericTuple(version string) []int {
	if cached, ok := it.tuples.Get(version); ok {
		return cached
	}

	base := version
	if i := strings.IndexByte(base, '-'); i >= 0 {
		base = base[:i]
	}
	if i := strings.IndexByte(base, '+'); i >= 0 {
		base = base[:i]
	}

	runs := digitRuns.FindAllString(base, -1)
	tuple := make([]int, 0, len(runs))
	for _, run := range runs {
		part, err := strconv.Atoi(run)
		if err != nil {
			// Digit run too large for an int: saturate instead of dropping
			// the component, so the tuple keeps its shape.
			part = math.MaxInt
		}
		tuple = append(tuple, part)
	}
	if len(tuple) == 0 {
		tuple = []int{0}
	}

	it.tuples.Add(version, tuple)
	return tuple
}

// Compare returns -1, 0 or 1 when a is numerically lower, equal or greater
// than b. Tuples compare lexicographically: a shorter tuple that is a prefix
// of a longer one is lower ("1.0" < "1.0.0").
func (it *Comparator) Compare(a, b string) int {
	return compareTuples(it.NumericTuple(a), it.NumericTuple(b))
}

// IsGreater reports whether version a is strictly greater than version b.
func (it *Comparator) IsGreater(a, b string) bool {
	return it.Compare(a, b) > 0
}

func compareTuples(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}
