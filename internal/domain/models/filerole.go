// internal/domain/models/filerole.go
package models

// FileRole names one of the fixed file categories a submission may attach.
type FileRole string

const (
	RoleSourceData         FileRole = "sourceData"
	RoleGroundTruthImages  FileRole = "groundTruthImages"
	RoleGroundTruthCode    FileRole = "groundTruthCode"
	RoleVizEngineState     FileRole = "vizEngineState"
	RoleAdditionalMetadata FileRole = "additionalMetadata"
)

// FileRoles lists every role in upload order.
var FileRoles = []FileRole{
	RoleSourceData,
	RoleGroundTruthImages,
	RoleGroundTruthCode,
	RoleVizEngineState,
	RoleAdditionalMetadata,
}

var roleFolders = map[FileRole]string{
	RoleSourceData:         "source",
	RoleGroundTruthImages:  "groundtruth",
	RoleGroundTruthCode:    "code",
	RoleVizEngineState:     "state",
	RoleAdditionalMetadata: "metadata",
}

// Folder returns the blob folder files of this role are stored under.
func (r FileRole) Folder() string {
	return roleFolders[r]
}

// Valid reports whether r is one of the fixed roles.
func (r FileRole) Valid() bool {
	_, ok := roleFolders[r]
	return ok
}

func (r FileRole) String() string {
	return string(r)
}
