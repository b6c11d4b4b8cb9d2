package entities

// Resolution is the outcome of looking up a dependency's latest available
// version against an external source. Invariant: Unknown implies an empty
// LatestVersion. Values are never mutated after construction.
type Resolution struct {
	LatestVersion string // Latest known version (empty when not determined)
	Unknown       bool   // Queried but indeterminate
	Err           string // Diagnostic message, set only when resolution failed
}

// UnknownResolution builds a Resolution for a failed or indeterminate lookup.
func UnknownResolution(diagnostic string) Resolution {
	return Resolution{Unknown: true, Err: diagnostic}
}

// ResolvedVersion builds a Resolution carrying a known latest version.
func ResolvedVersion(version string) Resolution {
	return Resolution{LatestVersion: version}
}
