package shared

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/educonnect/core"
	"github.com/trezcool/educonnect/core/class"
	"github.com/trezcool/educonnect/core/material"
)

// NewValidator returns the validator of every form, so the dashboard and the backend check drafts alike.
func NewValidator() *core.Validator {
	validate := validator.New()
	translator := core.NewTranslator()

	core.InitValidators(validate, translator)
	class.InitValidators(validate, translator)
	material.InitValidators(validate, translator)

	return core.NewValidator(validate, translator)
}
