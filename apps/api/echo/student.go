package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/student"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(r *router, deps *Deps) {
	api := studentApi{svc: deps.StudentSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/students", staff, api.query)
	r.add(http.MethodPost, "/students", adminOnly, api.create)
	r.add(http.MethodGet, "/students/:id", staff, api.retrieve)
	r.add(http.MethodPut, "/students/:id", adminOnly, api.update)
	r.add(http.MethodDelete, "/students/:id", adminOnly, api.destroy)

	r.add(http.MethodPost, "/students/:id/profile", adminOnly, api.createProfile)
	r.add(http.MethodGet, "/students/:id/profile", staff, api.retrieveProfile)
	r.add(http.MethodPut, "/students/:id/profile", adminOnly, api.updateProfile)
	r.add(http.MethodDelete, "/students/:id/profile", adminOnly, api.destroyProfile)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(students), "students": students})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data student.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// Profile

func (api *studentApi) createProfile(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data student.NewProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.CreateProfile(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating student profile")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *studentApi) retrieveProfile(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.GetProfile(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding student profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *studentApi) updateProfile(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data student.UpdateProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.UpdateProfile(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating student profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *studentApi) destroyProfile(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteProfile(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting student profile")
	}
	return ctx.NoContent(http.StatusNoContent)
}
