//go:build unit

package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/commands"
	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/domain/versions"
	builders "github.com/rios0rios0/depscan/test/domain/entitybuilders"
)

func TestDecideCommandExecute(t *testing.T) {
	t.Parallel()

	py310 := entities.PythonVersion{Major: 3, Minor: 10}
	py311 := entities.PythonVersion{Major: 3, Minor: 11}

	newCommand := func() *commands.DecideCommand {
		return commands.NewDecideCommand(versions.NewComparator())
	}

	t.Run("should recommend update when a newer version exists", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithName("requests").
			WithConstraints(">=2.28.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.31.0"))

		// then
		assert.Equal(t, entities.ActionUpdate, recommendation.Action)
		require.NotNil(t, recommendation.CurrentVersion)
		assert.Equal(t, "2.28.0", *recommendation.CurrentVersion)
		require.NotNil(t, recommendation.LatestVersion)
		assert.Equal(t, "2.31.0", *recommendation.LatestVersion)
	})

	t.Run("should recommend nothing when already at the latest version", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithConstraints(">=2.31.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.31.0"))

		// then
		assert.Equal(t, entities.ActionNone, recommendation.Action)
	})

	t.Run("should recommend nothing when no minimum can be determined", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithConstraints("<3.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.31.0"))

		// then
		assert.Equal(t, entities.ActionNone, recommendation.Action)
		assert.Nil(t, recommendation.CurrentVersion)
	})

	t.Run("should recommend a manual check when resolution failed", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithConstraints(">=2.28.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.UnknownResolution("boom"))

		// then
		assert.Equal(t, entities.ActionCheckManually, recommendation.Action)
		require.NotNil(t, recommendation.LatestVersion)
		assert.Equal(t, entities.UnknownLatest, *recommendation.LatestVersion)
	})

	t.Run("should recommend deletion for an inapplicable marker", func(t *testing.T) {
		// given: tomli is only needed below 3.11
		dep := builders.NewDependencyBuilder().
			WithName("tomli").
			WithConstraints(">=1.0").
			WithMarkers(`python_version < "3.11"`).
			BuildDependency()

		// when
		onOld := newCommand().Execute(dep, py310, entities.ResolvedVersion("2.0.1"))
		onNew := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.0.1"))

		// then
		assert.Equal(t, entities.ActionUpdate, onOld.Action)
		assert.Equal(t, entities.ActionDelete, onNew.Action)
	})

	t.Run("should leave both version fields empty on a deletion", func(t *testing.T) {
		// given: a resolvable dependency with a determinable minimum
		dep := builders.NewDependencyBuilder().
			WithName("tomli").
			WithConstraints(">=1.0").
			WithMarkers(`python_version < "3.11"`).
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.0.1"))

		// then: a dependency slated for removal reports no versions at all
		assert.Equal(t, entities.ActionDelete, recommendation.Action)
		assert.Nil(t, recommendation.CurrentVersion)
		assert.Nil(t, recommendation.LatestVersion)
	})

	t.Run("should let deletion win over a failed resolution", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithMarkers(`python_version < "3.11"`).
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.UnknownResolution("boom"))

		// then
		assert.Equal(t, entities.ActionDelete, recommendation.Action)
	})

	t.Run("should recommend update for a git pin behind the latest release", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithName("lib").
			WithGit("git+https://github.com/owner/lib", "v1.0.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("2.0.0"))

		// then
		assert.Equal(t, entities.ActionUpdate, recommendation.Action)
		require.NotNil(t, recommendation.CurrentVersion)
		assert.Equal(t, "v1.0.0", *recommendation.CurrentVersion)
	})

	t.Run("should recommend a manual check for a git pin ahead of the latest release", func(t *testing.T) {
		// given: the pinned ref is newer than any published release
		dep := builders.NewDependencyBuilder().
			WithGit("git+https://github.com/owner/lib", "v2.0.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("1.0.0"))

		// then
		assert.Equal(t, entities.ActionCheckManually, recommendation.Action)
	})

	t.Run("should recommend a manual check for a git pin without a ref", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithGit("git+https://github.com/owner/lib", "").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.ResolvedVersion("1.0.0"))

		// then
		assert.Equal(t, entities.ActionCheckManually, recommendation.Action)
		assert.Nil(t, recommendation.CurrentVersion)
	})

	t.Run("should recommend a manual check for a git pin with a failed resolution", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().
			WithGit("git+https://github.com/owner/lib", "v1.0.0").
			BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py311, entities.UnknownResolution(""))

		// then
		assert.Equal(t, entities.ActionCheckManually, recommendation.Action)
		require.NotNil(t, recommendation.LatestVersion)
		assert.Equal(t, entities.UnknownLatest, *recommendation.LatestVersion)
	})

	t.Run("should record the evaluated Python version on the entry", func(t *testing.T) {
		// given
		dep := builders.NewDependencyBuilder().BuildDependency()

		// when
		recommendation := newCommand().Execute(dep, py310, entities.ResolvedVersion("2.31.0"))

		// then
		assert.Equal(t, "3.10", recommendation.PythonVersion)
		assert.Equal(t, "requests", recommendation.Package)
	})
}
