package core

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

var (
	// custom validation tags & texts
	notBlankTag  = "notblank"
	notBlankText = "this field cannot be blank"

	decimalTag  = "decimal"
	decimalText = "{0} must be a number"

	positiveTag  = "positive"
	positiveText = "{0} must be a positive number"

	maxNumTag  = "maxnum"
	maxNumText = "{0} cannot exceed {1}"

	isoDateTag  = "isodate"
	isoDateText = "{0} must be a date formatted as YYYY-MM-DD"

	// reported at struct level, see AttachmentRule
	mediaTypeTag  = "mediatype"
	mediaTypeText = "unsupported file type"
	maxSizeTag    = "maxsize"
	maxSizeText   = "file is too large"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(notBlankTag, notBlankValidation)
	RegisterCustomTranslation(validate, translator, notBlankTag, notBlankText)

	_ = validate.RegisterValidation(decimalTag, decimalValidation)
	RegisterCustomTranslation(validate, translator, decimalTag, decimalText)

	_ = validate.RegisterValidation(positiveTag, positiveValidation)
	RegisterCustomTranslation(validate, translator, positiveTag, positiveText)

	_ = validate.RegisterValidation(maxNumTag, maxNumValidation)
	RegisterCustomTranslation(validate, translator, maxNumTag, maxNumText)

	_ = validate.RegisterValidation(isoDateTag, isoDateValidation)
	RegisterCustomTranslation(validate, translator, isoDateTag, isoDateText)

	RegisterCustomTranslation(validate, translator, mediaTypeTag, mediaTypeText)
	RegisterCustomTranslation(validate, translator, maxSizeTag, maxSizeText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
// The text may reference the field name as {0} and the tag param as {1}.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field(), fe.Param())
			return s
		},
	)
}

// Custom Global Validators

// notBlankValidation rejects strings made only of whitespace.
func notBlankValidation(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// decimalValidation checks that a string holds a finite number.
func decimalValidation(fl validator.FieldLevel) bool {
	_, ok := fieldNumber(fl.Field())
	return ok
}

// positiveValidation checks that a number (or numeric string) is > 0.
func positiveValidation(fl validator.FieldLevel) bool {
	n, ok := fieldNumber(fl.Field())
	return ok && n > 0
}

// maxNumValidation checks that a number (or numeric string) is <= the tag param.
func maxNumValidation(fl validator.FieldLevel) bool {
	limit, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil {
		panic("maxnum: invalid param " + fl.Param())
	}
	n, ok := fieldNumber(fl.Field())
	return ok && n <= limit
}

// isoDateValidation checks that a string is a YYYY-MM-DD calendar date.
func isoDateValidation(fl validator.FieldLevel) bool {
	_, err := time.Parse(DateLayout, fl.Field().String())
	return err == nil
}

func fieldNumber(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		n := v.Float()
		return n, !(math.IsNaN(n) || math.IsInf(n, 0))
	}
	return 0, false
}
