package commands

import (
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/versions"
)

// Decide is the interface for the per-dependency recommendation step.
type Decide interface {
	Execute(
		dependency entities.Dependency,
		version entities.PythonVersion,
		resolution entities.Resolution,
	) entities.Recommendation
}

// DecideCommand turns one dependency, one target Python version and the
// resolved latest version into an action recommendation.
type DecideCommand struct {
	comparator *versions.Comparator
}

// NewDecideCommand creates a new DecideCommand with the given comparator.
func NewDecideCommand(comparator *versions.Comparator) *DecideCommand {
	return &DecideCommand{comparator: comparator}
}

// Execute produces the recommendation for a dependency on a target Python
// version. An inapplicable environment marker always wins: a dependency the
// interpreter will never install should be deleted no matter what the
// registry says about it, and the entry carries no version fields.
func (it *DecideCommand) Execute(
	dependency entities.Dependency,
	version entities.PythonVersion,
	resolution entities.Resolution,
) entities.Recommendation {
	recommendation := entities.Recommendation{
		Package:       dependency.Name,
		PythonVersion: version.String(),
	}

	if !dependency.AppliesTo(version) {
		recommendation.Action = entities.ActionDelete
		return recommendation
	}

	recommendation.LatestVersion = latestOf(resolution)
	if dependency.IsGit() {
		recommendation.CurrentVersion = optional(dependency.Git.Ref)
	} else if minimum, ok := it.comparator.MinimumOf(dependency.Constraints()); ok {
		recommendation.CurrentVersion = optional(minimum)
	}

	if dependency.IsGit() {
		recommendation.Action = it.decideGit(dependency, resolution)
		return recommendation
	}

	recommendation.Action = it.decideRegistry(recommendation.CurrentVersion, resolution)
	return recommendation
}

// decideGit recommends an action for a git-pinned dependency. Refs are often
// branches or commit hashes, so anything short of a clearly newer release
// needs a human look.
func (it *DecideCommand) decideGit(
	dependency entities.Dependency,
	resolution entities.Resolution,
) entities.Action {
	if resolution.Unknown || resolution.LatestVersion == "" {
		return entities.ActionCheckManually
	}

	ref := dependency.Git.Ref
	if ref != "" && it.comparator.IsGreater(resolution.LatestVersion, ref) {
		return entities.ActionUpdate
	}
	return entities.ActionCheckManually
}

// decideRegistry recommends an action for a registry dependency given its
// effective current version.
func (it *DecideCommand) decideRegistry(
	currentVersion *string,
	resolution entities.Resolution,
) entities.Action {
	if resolution.Unknown || resolution.LatestVersion == "" {
		return entities.ActionCheckManually
	}
	if currentVersion == nil {
		return entities.ActionNone
	}
	if it.comparator.IsGreater(resolution.LatestVersion, *currentVersion) {
		return entities.ActionUpdate
	}
	return entities.ActionNone
}

// latestOf maps a resolution to the report's latest-version field, using the
// "unknown" sentinel for failed lookups.
func latestOf(resolution entities.Resolution) *string {
	if resolution.Unknown || resolution.LatestVersion == "" {
		return optional(entities.UnknownLatest)
	}
	return optional(resolution.LatestVersion)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
