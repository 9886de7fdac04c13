package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/teacher"
)

type teacherApi struct {
	svc      *teacher.Service
	validate *validator.Validate
}

func registerTeacherAPI(r *router, deps *Deps) {
	api := teacherApi{svc: deps.TeacherSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/teachers", authenticated, api.query)
	r.add(http.MethodPost, "/teachers", adminOnly, api.create)
	r.add(http.MethodGet, "/teachers/:id", authenticated, api.retrieve)
	r.add(http.MethodPut, "/teachers/:id", adminOnly, api.update)
	r.add(http.MethodDelete, "/teachers/:id", adminOnly, api.destroy)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	if teachers == nil {
		teachers = []teacher.Teacher{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(teachers), "teachers": teachers})
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding teacher by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *teacherApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data teacher.UpdateTeacher
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *teacherApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}
