//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/depscan/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DependencyBuilder helps create test dependencies with a fluent interface.
type DependencyBuilder struct {
	*testkit.BaseBuilder
	name        string
	rawSpec     string
	source      string
	markers     string
	constraints string
	gitURL      string
	gitRef      string
}

// NewDependencyBuilder creates a new dependency builder with sensible defaults.
func NewDependencyBuilder() *DependencyBuilder {
	return &DependencyBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "requests",
		rawSpec:     "requests>=2.28.0",
		source:      "project.dependencies",
		constraints: ">=2.28.0",
	}
}

// WithName sets the dependency name.
func (b *DependencyBuilder) WithName(name string) *DependencyBuilder {
	b.name = name
	return b
}

// WithRawSpec sets the raw specification string.
func (b *DependencyBuilder) WithRawSpec(rawSpec string) *DependencyBuilder {
	b.rawSpec = rawSpec
	return b
}

// WithSource sets the manifest section the dependency came from.
func (b *DependencyBuilder) WithSource(source string) *DependencyBuilder {
	b.source = source
	return b
}

// WithMarkers sets the environment markers.
func (b *DependencyBuilder) WithMarkers(markers string) *DependencyBuilder {
	b.markers = markers
	return b
}

// WithConstraints sets the registry version constraints.
func (b *DependencyBuilder) WithConstraints(constraints string) *DependencyBuilder {
	b.constraints = constraints
	return b
}

// WithGit makes the dependency a git pin with the given URL and ref.
func (b *DependencyBuilder) WithGit(url, ref string) *DependencyBuilder {
	b.gitURL = url
	b.gitRef = ref
	return b
}

// Build creates the dependency (satisfies testkit.Builder interface).
func (b *DependencyBuilder) Build() interface{} {
	return b.BuildDependency()
}

// BuildDependency creates the dependency with a concrete return type.
func (b *DependencyBuilder) BuildDependency() entities.Dependency {
	dep := entities.Dependency{
		Name:    b.name,
		RawSpec: b.rawSpec,
		Source:  b.source,
		Markers: b.markers,
	}
	if b.gitURL != "" {
		dep.Git = &entities.GitSource{URL: b.gitURL, Ref: b.gitRef}
		return dep
	}
	dep.Registry = &entities.RegistrySource{Constraints: b.constraints}
	return dep
}

// Reset clears the builder state, allowing it to be reused.
func (b *DependencyBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "requests"
	b.rawSpec = "requests>=2.28.0"
	b.source = "project.dependencies"
	b.markers = ""
	b.constraints = ">=2.28.0"
	b.gitURL = ""
	b.gitRef = ""
	return b
}

// Clone creates a deep copy of the DependencyBuilder.
func (b *DependencyBuilder) Clone() testkit.Builder {
	return &DependencyBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		rawSpec:     b.rawSpec,
		source:      b.source,
		markers:     b.markers,
		constraints: b.constraints,
		gitURL:      b.gitURL,
		gitRef:      b.gitRef,
	}
}
