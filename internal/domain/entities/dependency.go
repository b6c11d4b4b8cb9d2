package entities

// RegistrySource holds the registry-specific fields of a dependency that is
// resolved through the PyPI package index.
type RegistrySource struct {
	Constraints string // Version constraints like ">=1.0,<2.0" (may be empty)
}

// GitSource holds the source-control fields of a dependency pinned to a Git
// reference instead of a registry version.
type GitSource struct {
	URL string // Repository URL (https, git+https or ssh form)
	Ref string // Pinned tag/branch/commit (may be empty)
}

// Dependency represents a single declared dependency extracted from a
// project manifest. Exactly one of Registry or Git is non-nil.
type Dependency struct {
	Name     string   // Normalized package name (unique key for resolution)
	RawSpec  string   // Original specification string
	Source   string   // Manifest section the dependency came from
	Markers  string   // Python version markers (empty = always applies)
	Extras   []string // Requested extras, if any
	Registry *RegistrySource
	Git      *GitSource
}

// IsGit reports whether the dependency is pinned to a Git reference.
func (it Dependency) IsGit() bool {
	return it.Git != nil
}

// Constraints returns the registry version constraints, or an empty string
// for Git dependencies.
func (it Dependency) Constraints() string {
	if it.Registry == nil {
		return ""
	}
	return it.Registry.Constraints
}
