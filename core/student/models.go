package student

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

type Student struct {
	ID             int         `json:"id"`
	UserID         int         `json:"user_id"`
	Name           string      `json:"name"`
	EnrollmentDate core.Date   `json:"enrollment_date"`
	DateOfBirth    core.Date   `json:"date_of_birth"`
	Gender         null.String `json:"gender"`
	PhoneNumber    null.String `json:"phone_number"`
	CourseID       int         `json:"course_id"`
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	UserID         int    `json:"user_id" validate:"required"`
	Name           string `json:"name" validate:"required,max=100"`
	EnrollmentDate string `json:"enrollment_date" validate:"required,datetime=2006-01-02"`
	DateOfBirth    string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"omitempty,max=10"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=15"`
	CourseID       int    `json:"course_id" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.EnrollmentDate = core.CleanString(ns.EnrollmentDate)
	ns.DateOfBirth = core.CleanString(ns.DateOfBirth)
	ns.Gender = core.CleanString(ns.Gender)
	ns.PhoneNumber = core.CleanString(ns.PhoneNumber)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields keep their current value.
type UpdateStudent struct {
	UserID         int    `json:"user_id"`
	Name           string `json:"name" validate:"omitempty,max=100"`
	EnrollmentDate string `json:"enrollment_date" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" validate:"omitempty,max=10"`
	PhoneNumber    string `json:"phone_number" validate:"omitempty,max=15"`
	CourseID       int    `json:"course_id"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.CleanString(us.Name)
	us.EnrollmentDate = core.CleanString(us.EnrollmentDate)
	us.DateOfBirth = core.CleanString(us.DateOfBirth)
	us.Gender = core.CleanString(us.Gender)
	us.PhoneNumber = core.CleanString(us.PhoneNumber)
	return validate.Struct(us)
}

func (us UpdateStudent) apply(s *Student) error {
	if us.UserID != 0 {
		s.UserID = us.UserID
	}
	if us.Name != "" {
		s.Name = us.Name
	}
	if us.EnrollmentDate != "" {
		d, err := core.ParseDate(us.EnrollmentDate)
		if err != nil {
			return dateError("enrollment_date", err)
		}
		s.EnrollmentDate = d
	}
	if us.DateOfBirth != "" {
		d, err := core.ParseDate(us.DateOfBirth)
		if err != nil {
			return dateError("date_of_birth", err)
		}
		s.DateOfBirth = d
	}
	if us.Gender != "" {
		s.Gender = null.StringFrom(us.Gender)
	}
	if us.PhoneNumber != "" {
		s.PhoneNumber = null.StringFrom(us.PhoneNumber)
	}
	if us.CourseID != 0 {
		s.CourseID = us.CourseID
	}
	return nil
}

// Profile holds the academic details of a Student.
type Profile struct {
	ID               int    `json:"id"`
	StudentID        int    `json:"student_id"`
	EnrollmentNumber string `json:"enrollment_number"`
	Course           string `json:"course"`
	YearOfStudy      int    `json:"year_of_study"`
}

type NewProfile struct {
	EnrollmentNumber string `json:"enrollment_number" validate:"required,max=20"`
	Course           string `json:"course" validate:"required,max=100"`
	YearOfStudy      int    `json:"year_of_study" validate:"required,min=1,max=10"`
}

func (np *NewProfile) Validate(validate *validator.Validate) error {
	np.EnrollmentNumber = core.CleanString(np.EnrollmentNumber)
	np.Course = core.CleanString(np.Course)
	return validate.Struct(np)
}

type UpdateProfile struct {
	EnrollmentNumber string `json:"enrollment_number" validate:"omitempty,max=20"`
	Course           string `json:"course" validate:"omitempty,max=100"`
	YearOfStudy      int    `json:"year_of_study" validate:"omitempty,min=1,max=10"`
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.EnrollmentNumber = core.CleanString(up.EnrollmentNumber)
	up.Course = core.CleanString(up.Course)
	return validate.Struct(up)
}

func (up UpdateProfile) apply(p *Profile) {
	if up.EnrollmentNumber != "" {
		p.EnrollmentNumber = up.EnrollmentNumber
	}
	if up.Course != "" {
		p.Course = up.Course
	}
	if up.YearOfStudy != 0 {
		p.YearOfStudy = up.YearOfStudy
	}
}

func dateError(field string, err error) error {
	return core.NewValidationError(err, core.FieldError{Field: field, Error: "must be a valid date (YYYY-MM-DD)"})
}
