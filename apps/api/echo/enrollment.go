package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/studysphere/core/enrollment"
)

type enrollmentApi struct {
	svc      *enrollment.Service
	validate *validator.Validate
}

func registerEnrollmentAPI(r *router, deps *Deps) {
	api := enrollmentApi{svc: deps.EnrollmentSvc, validate: deps.Validate}

	r.add(http.MethodGet, "/enrollments", staff, api.query)
	r.add(http.MethodPost, "/enrollments", adminOnly, api.create)
	r.add(http.MethodGet, "/enrollments/:id", staff, api.retrieve)
	r.add(http.MethodPut, "/enrollments/:id", adminOnly, api.update)
	r.add(http.MethodDelete, "/enrollments/:id", adminOnly, api.destroy)
}

func (api *enrollmentApi) create(ctx echo.Context) error {
	var data enrollment.NewEnrollment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEnrollment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	obj, err := api.svc.Create(ctx.Request().Context(), data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "creating enrollment")
	}
	return ctx.JSON(http.StatusCreated, obj)
}

func (api *enrollmentApi) query(ctx echo.Context) error {
	enrollments, err := api.svc.Query(ctx.Request().Context(), dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	if enrollments == nil {
		enrollments = []enrollment.Enrollment{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": len(enrollments), "enrollments": enrollments})
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	obj, err := api.svc.GetByID(ctx.Request().Context(), id, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "finding enrollment by ID")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *enrollmentApi) update(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data enrollment.UpdateEnrollment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEnrollment")
	}

	obj, err := api.svc.Update(ctx.Request().Context(), id, data, dbExec(ctx))
	if err != nil {
		return errors.Wrap(err, "updating enrollment")
	}
	return ctx.JSON(http.StatusOK, obj)
}

func (api *enrollmentApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id, dbExec(ctx)); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
