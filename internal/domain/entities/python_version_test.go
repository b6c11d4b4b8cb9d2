//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/depscan/internal/domain/entities"
)

func TestParsePythonVersion(t *testing.T) {
	t.Parallel()

	t.Run("should parse a major.minor version", func(t *testing.T) {
		// when
		version, err := entities.ParsePythonVersion("3.11")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PythonVersion{Major: 3, Minor: 11}, version)
	})

	t.Run("should ignore the patch component", func(t *testing.T) {
		// when
		version, err := entities.ParsePythonVersion("3.11.4")

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.PythonVersion{Major: 3, Minor: 11}, version)
	})

	t.Run("should reject a version without a minor component", func(t *testing.T) {
		// when
		_, err := entities.ParsePythonVersion("3")

		// then
		require.Error(t, err)
	})

	t.Run("should reject non-numeric input", func(t *testing.T) {
		// when
		_, err := entities.ParsePythonVersion("whenever")

		// then
		require.Error(t, err)
	})
}

func TestPythonVersionCompare(t *testing.T) {
	t.Parallel()

	t.Run("should order versions numerically not lexically", func(t *testing.T) {
		// given
		py39 := entities.PythonVersion{Major: 3, Minor: 9}
		py310 := entities.PythonVersion{Major: 3, Minor: 10}

		// when / then
		assert.Negative(t, py39.Compare(py310))
		assert.Positive(t, py310.Compare(py39))
		assert.Zero(t, py310.Compare(py310))
	})
}
