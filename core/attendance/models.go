package attendance

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

// Statuses
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusLate    = "Late"
)

type Attendance struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	CourseID  null.Int  `json:"course_id"`
	ClassID   null.Int  `json:"class_id"`
	Date      core.Date `json:"date"`
	Status    string    `json:"status"`
}

type NewAttendance struct {
	StudentID int      `json:"student_id" validate:"required"`
	CourseID  null.Int `json:"course_id"`
	ClassID   null.Int `json:"class_id"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string   `json:"status" validate:"required,oneof=Present Absent Late"`
}

func (na *NewAttendance) Validate(validate *validator.Validate) error {
	na.Date = core.CleanString(na.Date)
	na.Status = core.CleanString(na.Status)
	return validate.Struct(na)
}

type UpdateAttendance struct {
	StudentID int    `json:"student_id"`
	CourseID  int    `json:"course_id"`
	ClassID   int    `json:"class_id"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status" validate:"omitempty,oneof=Present Absent Late"`
}

func (ua *UpdateAttendance) Validate(validate *validator.Validate) error {
	ua.Date = core.CleanString(ua.Date)
	ua.Status = core.CleanString(ua.Status)
	return validate.Struct(ua)
}

func (ua UpdateAttendance) apply(a *Attendance) error {
	if ua.StudentID != 0 {
		a.StudentID = ua.StudentID
	}
	if ua.CourseID != 0 {
		a.CourseID = null.IntFrom(ua.CourseID)
	}
	if ua.ClassID != 0 {
		a.ClassID = null.IntFrom(ua.ClassID)
	}
	if ua.Date != "" {
		d, err := core.ParseDate(ua.Date)
		if err != nil {
			return dateError(err)
		}
		a.Date = d
	}
	if ua.Status != "" {
		a.Status = ua.Status
	}
	return nil
}

func dateError(err error) error {
	return core.NewValidationError(err, core.FieldError{Field: "date", Error: "must be a valid date (YYYY-MM-DD)"})
}

func InitValidators(validate *validator.Validate, _ ut.Translator) {
	validate.RegisterStructValidation(func(sl validator.StructLevel) {
		na := sl.Current().Interface().(NewAttendance)
		core.ValidateCourseOrClass(sl, na.CourseID, na.ClassID)
	}, NewAttendance{})
}
