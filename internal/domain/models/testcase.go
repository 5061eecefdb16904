// internal/domain/models/testcase.go
package models

// Complexity levels a catalog entry can carry.
const (
	LevelOperation = "Operation"
	LevelTask      = "Task"
	LevelWorkflow  = "Workflow"
)

// TestCase is one row of the static benchmark catalog. It is read-only
// at runtime.
type TestCase struct {
	CaseName string `json:"caseName"`
	Category string `json:"category"` // source resource the row came from

	Application      []string `json:"application"`
	Data             string   `json:"data"` // raw descriptor as written in the sheet
	DataTypes        []string `json:"dataTypes"`
	TaskDifficulty   []string `json:"taskDifficulty"`
	VisualizationOps []string `json:"visualizationOps"`

	// OperationCount is the sheet's Action Count; HasOperationCount is
	// false when the cell was blank or "N/A".
	OperationCount    int  `json:"operationCount"`
	HasOperationCount bool `json:"-"`
}

// IsCase reports whether the entry belongs to the browsable set, i.e. its
// difficulty includes Task or Workflow.
func (tc *TestCase) IsCase() bool {
	for _, d := range tc.TaskDifficulty {
		if d == LevelTask || d == LevelWorkflow {
			return true
		}
	}
	return false
}
