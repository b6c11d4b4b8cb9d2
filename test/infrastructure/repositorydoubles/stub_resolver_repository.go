//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// SpyResolverRepository implements repositories.ResolverRepository as a
// configurable spy. Resolutions maps dependency names to canned results;
// unmapped names resolve as unknown.
type SpyResolverRepository struct {
	Resolutions map[string]entities.Resolution

	// --- spy: inputs received ---
	ResolvedNames    []string
	ResolveManyCalls []ResolveManyCall
}

// ResolveManyCall records a single invocation of ResolveMany.
type ResolveManyCall struct {
	Names       []string
	Concurrency int
}

var _ repositories.ResolverRepository = (*SpyResolverRepository)(nil)

func (r *SpyResolverRepository) ResolveOne(
	_ context.Context, dep entities.Dependency,
) entities.Resolution {
	r.ResolvedNames = append(r.ResolvedNames, dep.Name)
	if resolution, ok := r.Resolutions[dep.Name]; ok {
		return resolution
	}
	return entities.UnknownResolution("")
}

func (r *SpyResolverRepository) ResolveMany(
	ctx context.Context, deps []entities.Dependency, concurrency int,
) map[string]entities.Resolution {
	names := make([]string, 0, len(deps))
	results := make(map[string]entities.Resolution, len(deps))
	for _, dep := range deps {
		names = append(names, dep.Name)
		results[dep.Name] = r.ResolveOne(ctx, dep)
	}
	r.ResolveManyCalls = append(
		r.ResolveManyCalls,
		ResolveManyCall{Names: names, Concurrency: concurrency},
	)
	return results
}

// StubResolverFactory wraps a resolver in a repositories.ResolverFactory,
// recording the configurations it was built with.
type StubResolverFactory struct {
	Resolver repositories.ResolverRepository
	Err      error

	// --- spy: configurations received ---
	Configs []repositories.ResolverConfig
}

// Factory returns the factory function to inject into commands.
func (f *StubResolverFactory) Factory() repositories.ResolverFactory {
	return func(config repositories.ResolverConfig) (repositories.ResolverRepository, error) {
		f.Configs = append(f.Configs, config)
		if f.Err != nil {
			return nil, f.Err
		}
		return f.Resolver, nil
	}
}
