package teacher

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/studysphere/core"
)

type Teacher struct {
	ID     int    `json:"id"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
}

// NewTeacher contains information needed to create a new Teacher.
type NewTeacher struct {
	UserID int    `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required,max=100"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	return validate.Struct(nt)
}

// UpdateTeacher defines what information may be provided to modify an existing Teacher.
// Empty fields keep their current value.
type UpdateTeacher struct {
	UserID int    `json:"user_id"`
	Name   string `json:"name" validate:"omitempty,max=100"`
}

func (ut *UpdateTeacher) Validate(validate *validator.Validate) error {
	ut.Name = core.CleanString(ut.Name)
	return validate.Struct(ut)
}

func (ut UpdateTeacher) apply(t *Teacher) {
	if ut.UserID != 0 {
		t.UserID = ut.UserID
	}
	if ut.Name != "" {
		t.Name = ut.Name
	}
}
