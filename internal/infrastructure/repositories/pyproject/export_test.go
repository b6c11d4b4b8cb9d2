package pyproject

// ParseDependencyString exports parseDependencyString for testing.
var ParseDependencyString = parseDependencyString //nolint:gochecknoglobals // test export

// NormalizePackageName exports normalizePackageName for testing.
var NormalizePackageName = normalizePackageName //nolint:gochecknoglobals // test export
