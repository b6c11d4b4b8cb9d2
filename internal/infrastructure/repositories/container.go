package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/depscan/internal/domain/repositories"
	"github.com/rios0rios0/depscan/internal/domain/versions"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/pyproject"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/registry"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(versions.NewComparator); err != nil {
		return err
	}

	if err := container.Provide(pyproject.NewManifestRepository); err != nil {
		return err
	}
	if err := container.Provide(func(impl *pyproject.ManifestRepository) domainRepos.ManifestRepository {
		return impl
	}); err != nil {
		return err
	}

	// Resolvers are built per run: the timeout and credential come from the
	// settings loaded at execution time, not at container build time.
	if err := container.Provide(func(comparator *versions.Comparator) domainRepos.ResolverFactory {
		return func(config domainRepos.ResolverConfig) (domainRepos.ResolverRepository, error) {
			return registry.NewResolverRepository(config, comparator)
		}
	}); err != nil {
		return err
	}

	return nil
}
