package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

// Grade is the mark (e.g. "A+") a Student got in a Course or Class.
type Grade struct {
	ID        int      `json:"id"`
	StudentID int      `json:"student_id"`
	CourseID  null.Int `json:"course_id"`
	ClassID   null.Int `json:"class_id"`
	Grade     string   `json:"grade"`
}

type NewGrade struct {
	StudentID int      `json:"student_id" validate:"required"`
	CourseID  null.Int `json:"course_id"`
	ClassID   null.Int `json:"class_id"`
	Grade     string   `json:"grade" validate:"required,max=5"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.Grade = core.CleanString(ng.Grade)
	return validate.Struct(ng)
}

type UpdateGrade struct {
	StudentID int    `json:"student_id"`
	CourseID  int    `json:"course_id"`
	ClassID   int    `json:"class_id"`
	Grade     string `json:"grade" validate:"omitempty,max=5"`
}

func (ug *UpdateGrade) Validate(validate *validator.Validate) error {
	ug.Grade = core.CleanString(ug.Grade)
	return validate.Struct(ug)
}

func (ug UpdateGrade) apply(g *Grade) {
	if ug.StudentID != 0 {
		g.StudentID = ug.StudentID
	}
	if ug.CourseID != 0 {
		g.CourseID = null.IntFrom(ug.CourseID)
	}
	if ug.ClassID != 0 {
		g.ClassID = null.IntFrom(ug.ClassID)
	}
	if ug.Grade != "" {
		g.Grade = ug.Grade
	}
}

func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		ng := sl.Current().Interface().(NewGrade)
		core.ValidateCourseOrClass(sl, ng.CourseID, ng.ClassID)
	}, NewGrade{})
}
