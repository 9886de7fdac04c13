package enrollment

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

// Enrollment links a Student to a Course and/or a Class.
type Enrollment struct {
	ID        int      `json:"id"`
	StudentID int      `json:"student_id"`
	CourseID  null.Int `json:"course_id"`
	ClassID   null.Int `json:"class_id"`
}

// NewEnrollment contains information needed to create a new Enrollment.
type NewEnrollment struct {
	StudentID int      `json:"student_id" validate:"required"`
	CourseID  null.Int `json:"course_id"`
	ClassID   null.Int `json:"class_id"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	return validate.Struct(ne)
}

// UpdateEnrollment defines what information may be provided to modify an existing Enrollment.
// Zero ids keep their current value.
type UpdateEnrollment struct {
	StudentID int `json:"student_id"`
	CourseID  int `json:"course_id"`
	ClassID   int `json:"class_id"`
}

func (ue UpdateEnrollment) apply(e *Enrollment) {
	if ue.StudentID != 0 {
		e.StudentID = ue.StudentID
	}
	if ue.CourseID != 0 {
		e.CourseID = null.IntFrom(ue.CourseID)
	}
	if ue.ClassID != 0 {
		e.ClassID = null.IntFrom(ue.ClassID)
	}
}

func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		ne := sl.Current().Interface().(NewEnrollment)
		core.ValidateCourseOrClass(sl, ne.CourseID, ne.ClassID)
	}, NewEnrollment{})
}
