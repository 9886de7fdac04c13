package core

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

var ErrReferencedNotFound = errors.New("referenced record not found")

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return "invalid input"
	}
	return err.Err.Error()
}

// ConstraintKind is the kind of integrity constraint rejected by the database engine.
type ConstraintKind int

const (
	UniqueConstraint ConstraintKind = iota + 1
	ForeignKeyConstraint
)

// ConstraintError wraps an integrity violation reported by the database engine.
type ConstraintError struct {
	Kind   ConstraintKind
	Table  string
	Field  string // may be empty when the engine does not report it
	Delete bool   // raised while deleting a row
	Err    error
}

func (err ConstraintError) Error() string {
	switch err.Kind {
	case UniqueConstraint:
		if err.Field != "" {
			return fmt.Sprintf("a %s with this %s already exists", singular(err.Table), err.Field)
		}
		return fmt.Sprintf("this %s already exists", singular(err.Table))
	case ForeignKeyConstraint:
		if err.Delete {
			return fmt.Sprintf("%s is still referenced by other records", singular(err.Table))
		}
		return ErrReferencedNotFound.Error()
	}
	if err.Err != nil {
		return err.Err.Error()
	}
	return "constraint violation"
}

func (err ConstraintError) Unwrap() error { return err.Err }

func singular(table string) string {
	switch {
	case table == "":
		return "record"
	case strings.HasSuffix(table, "sses"):
		table = table[:len(table)-2]
	case strings.HasSuffix(table, "s"):
		table = table[:len(table)-1]
	}
	return strings.ReplaceAll(table, "_", " ")
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := pkgerrors.Cause(err).(*shutdown)
	return ok
}
