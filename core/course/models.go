package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

type Course struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Schedule    null.String `json:"schedule"`
	TeacherID   int         `json:"teacher_id"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Schedule    string `json:"schedule" validate:"omitempty,max=100"`
	TeacherID   int    `json:"teacher_id" validate:"required"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Schedule = core.CleanString(nc.Schedule)
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Empty fields keep their current value.
type UpdateCourse struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Schedule    string `json:"schedule" validate:"omitempty,max=100"`
	TeacherID   int    `json:"teacher_id"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Description = core.CleanString(uc.Description)
	uc.Schedule = core.CleanString(uc.Schedule)
	return validate.Struct(uc)
}

func (uc UpdateCourse) apply(c *Course) {
	if uc.Name != "" {
		c.Name = uc.Name
	}
	if uc.Description != "" {
		c.Description = null.StringFrom(uc.Description)
	}
	if uc.Schedule != "" {
		c.Schedule = null.StringFrom(uc.Schedule)
	}
	if uc.TeacherID != 0 {
		c.TeacherID = uc.TeacherID
	}
}
