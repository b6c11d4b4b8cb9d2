//go:build unit

package pyproject_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/entities"
	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/pyproject"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func depsByName(manifest entities.Manifest) map[string]entities.Dependency {
	byName := make(map[string]entities.Dependency, len(manifest.Dependencies))
	for _, dep := range manifest.Dependencies {
		byName[dep.Name] = dep
	}
	return byName
}

func TestManifestRepositoryLoad(t *testing.T) {
	t.Parallel()

	repo := pyproject.NewManifestRepository()

	t.Run("should load a standard PEP 621 manifest", func(t *testing.T) {
		// given
		path := writeManifest(t, `
[project]
name = "myapp"
requires-python = ">=3.10"
dependencies = [
    "requests>=2.28.0",
    "tomli>=1.0; python_version < '3.11'",
]

[project.optional-dependencies]
test = ["pytest>=7.0"]

[build-system]
requires = ["setuptools>=61"]
`)

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, ">=3.10", manifest.RequiresPython)
		assert.Equal(
			t,
			[]entities.PythonVersion{{Major: 3, Minor: 10}, {Major: 3, Minor: 11}, {Major: 3, Minor: 12}, {Major: 3, Minor: 13}, {Major: 3, Minor: 14}, {Major: 3, Minor: 15}},
			manifest.PythonVersions,
		)

		byName := depsByName(manifest)
		require.Len(t, byName, 4)
		assert.Equal(t, "project.dependencies", byName["requests"].Source)
		assert.Equal(t, "project.optional-dependencies.test", byName["pytest"].Source)
		assert.Equal(t, "build-system.requires", byName["setuptools"].Source)
		assert.Equal(t, `python_version < '3.11'`, byName["tomli"].Markers)
	})

	t.Run("should load a Poetry manifest with table specs", func(t *testing.T) {
		// given
		path := writeManifest(t, `
[tool.poetry.dependencies]
python = "^3.10"
requests = ">=2.28.0"
pendulum = { version = "^2.1.0", python = "^3.8" }
mylib = { git = "https://github.com/owner/mylib", tag = "v1.2.0" }

[tool.poetry.group.dev.dependencies]
pytest = "^7.0"
`)

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		byName := depsByName(manifest)

		// the interpreter constraint feeds the version set, not the deps
		assert.NotContains(t, byName, "python")
		assert.Equal(t, "^3.10", manifest.RequiresPython)
		assert.Equal(
			t,
			[]entities.PythonVersion{{Major: 3, Minor: 10}, {Major: 3, Minor: 11}, {Major: 3, Minor: 12}, {Major: 3, Minor: 13}, {Major: 3, Minor: 14}, {Major: 3, Minor: 15}},
			manifest.PythonVersions,
		)

		assert.Equal(t, ">=2.28.0", byName["requests"].Constraints())
		assert.Equal(t, ">=2.1.0", byName["pendulum"].Constraints())
		assert.Equal(t, "^3.8", byName["pendulum"].Markers)

		require.True(t, byName["mylib"].IsGit())
		assert.Equal(t, "https://github.com/owner/mylib", byName["mylib"].Git.URL)
		assert.Equal(t, "v1.2.0", byName["mylib"].Git.Ref)

		assert.Equal(t, "tool.poetry.group.dev.dependencies", byName["pytest"].Source)
	})

	t.Run("should load PEP 735 dependency groups", func(t *testing.T) {
		// given
		path := writeManifest(t, `
[dependency-groups]
lint = ["ruff>=0.4"]
`)

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		byName := depsByName(manifest)
		require.Contains(t, byName, "ruff")
		assert.Equal(t, "dependency-groups.lint", byName["ruff"].Source)
	})

	t.Run("should load PDM and Hatch sections", func(t *testing.T) {
		// given
		path := writeManifest(t, `
[tool.pdm.dev-dependencies]
black = ">=23.0"

[tool.hatch.envs.test]
dependencies = ["coverage>=7.0"]
`)

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		byName := depsByName(manifest)
		assert.Contains(t, byName, "black")
		require.Contains(t, byName, "coverage")
		assert.Equal(t, "tool.hatch.envs.test.dependencies", byName["coverage"].Source)
	})

	t.Run("should default to all known Python versions without requires-python", func(t *testing.T) {
		// given
		path := writeManifest(t, `
[project]
name = "bare"
`)

		// when
		manifest, err := repo.Load(path)

		// then
		require.NoError(t, err)
		assert.Len(t, manifest.PythonVersions, len(entities.KnownPythonVersions))
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// when
		_, err := repo.Load(filepath.Join(t.TempDir(), "nope.toml"))

		// then
		require.Error(t, err)
	})

	t.Run("should fail on malformed TOML", func(t *testing.T) {
		// given
		path := writeManifest(t, `[project`)

		// when
		_, err := repo.Load(path)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse manifest")
	})
}
