package class

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/studysphere/core"
)

type Class struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description"`
	Schedule    null.String `json:"schedule"`
	TeacherID   int         `json:"teacher_id"`
}

// NewClass contains information needed to create a new Class.
type NewClass struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Schedule    string `json:"schedule" validate:"omitempty,max=100"`
	TeacherID   int    `json:"teacher_id" validate:"required"`
}

func (ncl *NewClass) Validate(validate *validator.Validate) error {
	ncl.Name = core.CleanString(ncl.Name)
	ncl.Description = core.CleanString(ncl.Description)
	ncl.Schedule = core.CleanString(ncl.Schedule)
	return validate.Struct(ncl)
}

// UpdateClass defines what information may be provided to modify an existing Class.
// Empty fields keep their current value.
type UpdateClass struct {
	Name        string `json:"name" validate:"omitempty,max=100"`
	Description string `json:"description"`
	Schedule    string `json:"schedule" validate:"omitempty,max=100"`
	TeacherID   int    `json:"teacher_id"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	uc.Name = core.CleanString(uc.Name)
	uc.Description = core.CleanString(uc.Description)
	uc.Schedule = core.CleanString(uc.Schedule)
	return validate.Struct(uc)
}

func (uc UpdateClass) apply(c *Class) {
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
