package core

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/volatiletech/null/v8"
)

var (
	// custom validation tags & texts
	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"

	dateTag  = "datetime"
	dateText = "must be a valid date (YYYY-MM-DD)"

	courseOrClassTag  = "course_or_class"
	courseOrClassText = "one of course_id or class_id is required"
)

// NewValidator returns a validator configured with the app's translations, and its translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	InitValidators(validate, translator)
	return validate, translator
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

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, dateTag, dateText, true)
	RegisterCustomTranslation(validate, translator, courseOrClassTag, courseOrClassText)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// ValidateCourseOrClass reports both fields when a record links to neither a course nor a class.
func ValidateCourseOrClass(sl validator.StructLevel, courseID, classID null.Int) {
	if !courseID.Valid && !classID.Valid {
		sl.ReportError(courseID, "course_id", "CourseID", courseOrClassTag, "")
		sl.ReportError(classID, "class_id", "ClassID", courseOrClassTag, "")
	}
}
