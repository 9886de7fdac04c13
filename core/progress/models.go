package progress

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

type Progress struct {
	ID                 int      `json:"id"`
	StudentID          int      `json:"student_id"`
	CourseID           null.Int `json:"course_id"`
	ClassID            null.Int `json:"class_id"`
	ProgressPercentage float64  `json:"progress_percentage"`
}

type NewProgress struct {
	StudentID          int      `json:"student_id" validate:"required"`
	CourseID           null.Int `json:"course_id"`
	ClassID            null.Int `json:"class_id"`
	ProgressPercentage *float64 `json:"progress_percentage" validate:"required,gte=0,lte=100"`
}

func (np *NewProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(np)
}

// UpdateProgress defines what information may be provided to modify an existing Progress.
// Zero values keep their current value.
type UpdateProgress struct {
	StudentID          int     `json:"student_id"`
	CourseID           int     `json:"course_id"`
	ClassID            int     `json:"class_id"`
	ProgressPercentage float64 `json:"progress_percentage" validate:"omitempty,gte=0,lte=100"`
}

func (up *UpdateProgress) Validate(validate *validator.Validate) error {
	return validate.Struct(up)
}

func (up UpdateProgress) apply(p *Progress) {
	if up.StudentID != 0 {
		p.StudentID = up.StudentID
	}
	if up.CourseID != 0 {
		p.CourseID = null.IntFrom(up.CourseID)
	}
	if up.ClassID != 0 {
		p.ClassID = null.IntFrom(up.ClassID)
	}
	if up.ProgressPercentage != 0 {
		p.ProgressPercentage = up.ProgressPercentage
	}
}

func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		np := sl.Current().Interface().(NewProgress)
		core.ValidateCourseOrClass(sl, np.CourseID, np.ClassID)
	}, NewProgress{})
}
