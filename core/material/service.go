package material

import (
	"github.com/trezcool/educonnect/core/submit"
)

// UploadResult is the backend answer to an upload.
type UploadResult struct {
	Message  string   `json:"message,omitempty"`
	Material Material `json:"material"`
}

// UploadForm uploads the material to its class. The form stays on screen afterwards.
func UploadForm(nm NewMaterial) submit.Form {
	return submit.Form{
		Draft:          nm,
		Endpoint:       nm.Endpoint(),
		Result:         new(UploadResult),
		SuccessMessage: "Material uploaded successfully!",
		FailureMessage: "Upload failed",
	}
}
