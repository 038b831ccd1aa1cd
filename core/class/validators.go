package class

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/educonnect/core"
)

var coverPhotoRule = core.AttachmentRule{
	MediaTypes: []string{"image/jpeg", "image/png"},
	MaxSize:    5 * core.MiB,
}

// InitValidators registers the class rules. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(classStructValidation, NewClass{})
}

// classStructValidation checks the optional cover photo.
func classStructValidation(sl validator.StructLevel) {
	nc := sl.Current().Interface().(NewClass)
	coverPhotoRule.Report(sl, nc.CoverPhoto, "coverPhoto", "CoverPhoto")
}
