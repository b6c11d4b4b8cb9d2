package entities

// Action is the recommendation for a dependency under a specific Python
// version.
type Action string

const (
	// ActionUpdate means a newer version than the declared one exists.
	ActionUpdate Action = "update"
	// ActionDelete means the dependency does not apply to the Python version.
	ActionDelete Action = "delete"
	// ActionNone means no change is recommended.
	ActionNone Action = "none"
	// ActionCheckManually means the analyzer could not decide safely.
	ActionCheckManually Action = "check manually"
)

// UnknownLatest is the sentinel written to the latest_version field when a
// lookup was attempted but yielded no answer.
const UnknownLatest = "unknown"

// Recommendation is one analysis entry: a dependency evaluated against a
// single Python version.
type Recommendation struct {
	Package        string  `json:"package"`
	PythonVersion  string  `json:"python_version"`
	CurrentVersion *string `json:"current_version"`
	LatestVersion  *string `json:"latest_version"`
	Action         Action  `json:"action"`
}

// Report is the complete outcome of analyzing one manifest.
type Report struct {
	Entries            []Recommendation `json:"entries"`
	PythonVersions     []string         `json:"python_versions"`
	TotalDependencies  int              `json:"total_dependencies"`
	UpdateCount        int              `json:"update_count"`
	DeleteCount        int              `json:"delete_count"`
	NoneCount          int              `json:"none_count"`
	CheckManuallyCount int              `json:"check_manually_count"`
}

// CountActions recomputes the per-action counters from the entries.
func (it *Report) CountActions() {
	it.UpdateCount = 0
	it.DeleteCount = 0
	it.NoneCount = 0
	it.CheckManuallyCount = 0

	for _, entry := range it.Entries {
		switch entry.Action {
		case ActionUpdate:
			it.UpdateCount++
		case ActionDelete:
			it.DeleteCount++
		case ActionNone:
			it.NoneCount++
		case ActionCheckManually:
			it.CheckManuallyCount++
		}
	}
}
