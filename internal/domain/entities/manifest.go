package entities

// Manifest is the parsed view of a project manifest: the declared
// dependencies plus the Python versions the project supports.
type Manifest struct {
	Path           string
	RequiresPython string
	Dependencies   []Dependency
	PythonVersions []PythonVersion
}
