package repositories

import (
	"context"
	"time"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

// ResolverConfig holds the construction parameters of a resolver instance.
type ResolverConfig struct {
	GitHubToken string        // Optional bearer credential for GitHub requests
	Timeout     time.Duration // Per-request timeout, must be positive
}

// ResolverFactory builds a resolver for one analysis run. Construction
// fails on invalid configuration (non-positive timeout).
type ResolverFactory func(config ResolverConfig) (ResolverRepository, error)

// ResolverRepository resolves dependencies to their latest available
// versions by querying external package sources. Implementations absorb all
// per-dependency failures into the returned Resolution values and never
// propagate them as errors.
type ResolverRepository interface {
	// ResolveOne resolves a single dependency, consulting the resolver's
	// cache first. Results, including failures, are cached for the
	// resolver's lifetime.
	ResolveOne(ctx context.Context, dep entities.Dependency) entities.Resolution

	// ResolveMany resolves all unique dependency names (first record wins
	// for duplicate names) with at most concurrency lookups in flight. The
	// result map contains an entry for every unique name.
	ResolveMany(
		ctx context.Context,
		deps []entities.Dependency,
		concurrency int,
	) map[string]entities.Resolution
}
