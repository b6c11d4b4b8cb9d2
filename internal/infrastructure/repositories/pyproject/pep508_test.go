//go:build unit

package pyproject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/infrastructure/repositories/pyproject"
)

func TestNormalizePackageName(t *testing.T) {
	t.Parallel()

	t.Run("should lowercase and unify separators", func(t *testing.T) {
		cases := map[string]string{
			"Requests":          "requests",
			"typing-extensions": "typing_extensions",
			"ruamel.yaml":       "ruamel_yaml",
			"Flask-SQLAlchemy":  "flask_sqlalchemy",
		}
		for raw, expected := range cases {
			assert.Equal(t, expected, pyproject.NormalizePackageName(raw), raw)
		}
	})
}

func TestParseDependencyString(t *testing.T) {
	t.Parallel()

	t.Run("should parse a plain name", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString("requests", "project.dependencies")

		// then
		require.True(t, ok)
		assert.Equal(t, "requests", dep.Name)
		require.NotNil(t, dep.Registry)
		assert.Empty(t, dep.Registry.Constraints)
	})

	t.Run("should parse constraints and extras", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString(
			"requests[security,socks]>=2.28.0,<3.0", "project.dependencies",
		)

		// then
		require.True(t, ok)
		assert.Equal(t, "requests", dep.Name)
		assert.Equal(t, []string{"security", "socks"}, dep.Extras)
		assert.Equal(t, ">=2.28.0,<3.0", dep.Constraints())
	})

	t.Run("should split environment markers off the spec", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString(
			`tomli>=1.0; python_version < "3.11"`, "project.dependencies",
		)

		// then
		require.True(t, ok)
		assert.Equal(t, "tomli", dep.Name)
		assert.Equal(t, ">=1.0", dep.Constraints())
		assert.Equal(t, `python_version < "3.11"`, dep.Markers)
	})

	t.Run("should parse the Poetry parenthesized form", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString(
			"requests (>=2.28.0)", "tool.poetry.dependencies",
		)

		// then
		require.True(t, ok)
		assert.Equal(t, "requests", dep.Name)
		assert.Equal(t, ">=2.28.0", dep.Constraints())
	})

	t.Run("should parse a direct git reference with a ref", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString(
			"mylib @ git+https://github.com/owner/mylib@v1.2.0", "project.dependencies",
		)

		// then
		require.True(t, ok)
		assert.Equal(t, "mylib", dep.Name)
		require.True(t, dep.IsGit())
		assert.Equal(t, "git+https://github.com/owner/mylib", dep.Git.URL)
		assert.Equal(t, "v1.2.0", dep.Git.Ref)
	})

	t.Run("should derive the name from the URL for a bare git spec", func(t *testing.T) {
		// when
		dep, ok := pyproject.ParseDependencyString(
			"git+https://github.com/owner/mylib.git", "project.dependencies",
		)

		// then
		require.True(t, ok)
		assert.Equal(t, "mylib", dep.Name)
		require.True(t, dep.IsGit())
	})

	t.Run("should reject a blank spec", func(t *testing.T) {
		// when
		_, ok := pyproject.ParseDependencyString("   ", "project.dependencies")

		// then
		assert.False(t, ok)
	})
}
