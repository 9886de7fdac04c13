package user

import (
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/studysphere/core"
)

// Roles
const (
	RoleAdmin   = "Admin"
	RoleTeacher = "Teacher"
	RoleStudent = "Student"
)

var AllRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	IsVerified   bool   `json:"is_verified"`
	PasswordHash []byte `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsStudent() bool { return u.Role == RoleStudent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=Admin Teacher Student"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role)
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Empty fields keep their current value.
type UpdateUser struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Teacher Student"`
	Password string `json:"password"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate) error {
	email := core.CleanString(uu.Email, true /* lower */)
	if email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	role := core.CleanString(uu.Role)
	if role != "" {
		uu.Role = role
	} else {
		uu.Role = origUsr.Role
	}

	return validate.Struct(uu)
}
