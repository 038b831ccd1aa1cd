package material

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/educonnect/core"
)

var (
	urlTag = "url"

	fileRules = map[string]core.AttachmentRule{
		TypePDF:   {MediaTypes: []string{"application/pdf"}, MaxSize: 20 * core.MiB},
		TypeVideo: {MediaTypes: []string{"video/mp4"}, MaxSize: 200 * core.MiB},
	}
)

// InitValidators registers the material rules. core.InitValidators must run first.
func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(materialStructValidation, NewMaterial{})
}

// materialStructValidation checks the content of the material against its type:
// links need a URL, files need an attachment of the matching kind.
func materialStructValidation(sl validator.StructLevel) {
	nm := sl.Current().Interface().(NewMaterial)

	switch nm.Type {
	case TypeLink:
		if core.CleanString(nm.Content) == "" {
			sl.ReportError(nm.Content, "content", "Content", "required", "")
		} else if sl.Validator().Var(nm.Content, urlTag) != nil {
			sl.ReportError(nm.Content, "content", "Content", urlTag, "")
		}
	case TypePDF, TypeVideo:
		if nm.File == nil {
			sl.ReportError(nm.File, "file", "File", "required", "")
			return
		}
		fileRules[nm.Type].Report(sl, nm.File, "file", "File")
	}
}
