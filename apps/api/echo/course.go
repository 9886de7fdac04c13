package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(r *router, deps *Deps) {
	api := courseApi{svc: deps.CourseSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/courses", authenticated, api.query)
	r.add(http.MethodPost, "/courses", staff, api.create)
	r.add(http.MethodGet, "/courses/:id", authenticated, api.retrieve)
	r.add(http.MethodPut, "/courses/:id", staff, api.update)
	r.add(http.MethodDelete, "/courses/:id", staff, api.destroy)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(courses), "courses": courses})
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding course by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *courseApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data course.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *courseApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}
