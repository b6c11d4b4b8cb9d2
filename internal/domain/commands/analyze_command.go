package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/repositories"
)

// Analyze is the interface for the full manifest analysis flow.
type Analyze interface {
	Execute(
		ctx context.Context,
		path string,
		settings *entities.Settings,
	) (entities.Report, error)
}

// AnalyzeCommand orchestrates one analysis run:
// read the manifest -> resolve latest versions -> recommend per-version actions.
type AnalyzeCommand struct {
	manifests       repositories.ManifestRepository
	resolverFactory repositories.ResolverFactory
	decide          Decide
}

// NewAnalyzeCommand creates a new AnalyzeCommand with the given collaborators.
func NewAnalyzeCommand(
	manifests repositories.ManifestRepository,
	resolverFactory repositories.ResolverFactory,
	decide Decide,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		manifests:       manifests,
		resolverFactory: resolverFactory,
		decide:          decide,
	}
}

// Execute analyzes the manifest at path using the provided settings.
func (it *AnalyzeCommand) Execute(
	ctx context.Context,
	path string,
	settings *entities.Settings,
) (entities.Report, error) {
	if err := settings.Validate(); err != nil {
		return entities.Report{}, fmt.Errorf("invalid settings: %w", err)
	}

	manifest, err := it.manifests.Load(path)
	if err != nil {
		return entities.Report{}, fmt.Errorf("failed to load manifest: %w", err)
	}

	unique := uniqueByName(manifest.Dependencies)
	logger.Infof(
		"Analyzing %d dependencies against %d Python versions",
		len(unique), len(manifest.PythonVersions),
	)

	resolver, err := it.resolverFactory(repositories.ResolverConfig{
		GitHubToken: settings.GitHubToken,
		Timeout:     time.Duration(settings.Timeout * float64(time.Second)),
	})
	if err != nil {
		return entities.Report{}, fmt.Errorf("failed to create resolver: %w", err)
	}

	resolutions := resolver.ResolveMany(ctx, unique, settings.Concurrency)

	report := entities.Report{
		Entries: make(
			[]entities.Recommendation, 0,
			len(manifest.Dependencies)*len(manifest.PythonVersions),
		),
		TotalDependencies: len(unique),
	}
	for _, version := range manifest.PythonVersions {
		report.PythonVersions = append(report.PythonVersions, version.String())
	}

	// Every declared record gets its own entry set: the same name under two
	// manifest sections may carry different markers or constraints.
	for _, dependency := range manifest.Dependencies {
		resolution := resolutions[dependency.Name]
		if resolution.Err != "" {
			logger.Debugf("Resolution for %q degraded: %s", dependency.Name, resolution.Err)
		}
		for _, version := range manifest.PythonVersions {
			report.Entries = append(
				report.Entries,
				it.decide.Execute(dependency, version, resolution),
			)
		}
	}

	report.CountActions()
	logger.Infof(
		"Analysis complete: %d update, %d delete, %d none, %d check manually",
		report.UpdateCount, report.DeleteCount, report.NoneCount, report.CheckManuallyCount,
	)
	return report, nil
}

// uniqueByName keeps the first record seen for every dependency name,
// preserving manifest order.
func uniqueByName(deps []entities.Dependency) []entities.Dependency {
	seen := make(map[string]bool, len(deps))
	unique := make([]entities.Dependency, 0, len(deps))
	for _, dep := range deps {
		if seen[dep.Name] {
			continue
		}
		seen[dep.Name] = true
		unique = append(unique, dep)
	}
	return unique
}
