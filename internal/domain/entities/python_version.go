package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// PythonVersion represents a Python interpreter version like 3.11 or 3.12.
type PythonVersion struct {
	Major int
	Minor int
}

// KnownPythonVersions lists the Python versions the analyzer considers
// (current and near-future), in ascending order.
var KnownPythonVersions = []PythonVersion{
	{3, 8},
	{3, 9},
	{3, 10},
	{3, 11},
	{3, 12},
	{3, 13},
	{3, 14},
	{3, 15},
}

// String returns the version as "major.minor".
func (it PythonVersion) String() string {
	return fmt.Sprintf("%d.%d", it.Major, it.Minor)
}

// Compare returns -1, 0 or 1 when it is lower, equal or greater than other.
func (it PythonVersion) Compare(other PythonVersion) int {
	if it.Major != other.Major {
		if it.Major < other.Major {
			return -1
		}
		return 1
	}
	if it.Minor != other.Minor {
		if it.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// ParsePythonVersion parses a string like "3.11" or "3.11.4" into a
// PythonVersion. Patch components are ignored.
func ParsePythonVersion(raw string) (PythonVersion, error) {
	parts := strings.Split(strings.TrimSpace(raw), ".")
	if len(parts) < 2 {
		return PythonVersion{}, fmt.Errorf("invalid Python version format: %q", raw)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return PythonVersion{}, fmt.Errorf("invalid Python major version in %q: %w", raw, err)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return PythonVersion{}, fmt.Errorf("invalid Python minor version in %q: %w", raw, err)
	}

	return PythonVersion{Major: major, Minor: minor}, nil
}
