package core

import (
	"sort"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

// NonFieldKey holds errors that are not tied to a single field.
const NonFieldKey = "non_field_errors"

// Draft is the in-memory state of one form, before it is submitted.
// Implementations are plain value structs carrying `json` and `validate` tags.
type Draft interface {
	// Messages maps "field.tag" to the user facing message of that violation.
	// Violations without an entry use the translator's text.
	Messages() map[string]string

	// Payload returns the request body for the draft.
	Payload() Payload
}

// ValidationResult maps a field name to its first violation message. An empty result means valid.
type ValidationResult map[string]string

func (vr ValidationResult) IsValid() bool { return len(vr) == 0 }

// Err returns a *ValidationError carrying the result, or nil if the result is valid.
func (vr ValidationResult) Err() error {
	if vr.IsValid() {
		return nil
	}
	names := make([]string, 0, len(vr))
	for name := range vr {
		names = append(names, name)
	}
	sort.Strings(names)

	flds := make([]FieldError, 0, len(vr))
	for _, name := range names {
		flds = append(flds, FieldError{Field: name, Error: vr[name]})
	}
	return NewValidationError(ErrInvalidDraft, flds...)
}

// Validator checks drafts against their rules. It is stateless and safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewValidator expects validate to be initialised with InitValidators and the domain validators.
func NewValidator(validate *validator.Validate, translator ut.Translator) *Validator {
	return &Validator{validate: validate, translator: translator}
}

// Validate recomputes the full ValidationResult of the draft.
func (v *Validator) Validate(d Draft) ValidationResult {
	res := make(ValidationResult)
	if d == nil {
		return res
	}

	err := v.validate.Struct(d)
	if err == nil {
		return res
	}
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res[NonFieldKey] = err.Error()
		return res
	}

	msgs := d.Messages()
	for _, fe := range vErrs {
		fld := fe.Field()
		if _, seen := res[fld]; seen {
			continue
		}
		if msg, ok := msgs[fld+"."+fe.Tag()]; ok {
			res[fld] = msg
		} else {
			res[fld] = fe.Translate(v.translator)
		}
	}
	return res
}
